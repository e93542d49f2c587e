package cli

import (
	"net/http"

	"github.com/spf13/cobra"
)

var headCmd = &cobra.Command{
	Use:   "head [url]",
	Short: "Perform a HEAD request",
	Long:  `Perform a HEAD request to the specified URL. Only status and headers are displayed.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runVerb(cmd, http.MethodHead, args[0])
	},
}

func init() {
	addVerbFlags(headCmd, false)
}
