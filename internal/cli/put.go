package cli

import (
	"net/http"

	"github.com/spf13/cobra"
)

var putCmd = &cobra.Command{
	Use:   "put [url]",
	Short: "Perform a PUT request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runVerb(cmd, http.MethodPut, args[0])
	},
}

func init() {
	addVerbFlags(putCmd, true)
}
