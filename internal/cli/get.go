package cli

import (
	"net/http"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get [url]",
	Short: "Perform a GET request",
	Long: `Perform a GET request to the specified URL. Body data is folded into
the query string, matching the client pipeline's GET handling.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runVerb(cmd, http.MethodGet, args[0])
	},
}

func init() {
	addVerbFlags(getCmd, false)
}
