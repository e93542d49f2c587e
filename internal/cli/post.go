package cli

import (
	"net/http"

	"github.com/spf13/cobra"
)

var postCmd = &cobra.Command{
	Use:   "post [url]",
	Short: "Perform a POST request",
	Long: `Perform a POST request to the specified URL. The -d body is encoded
according to the content type (JSON by default).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runVerb(cmd, http.MethodPost, args[0])
	},
}

func init() {
	addVerbFlags(postCmd, true)
}
