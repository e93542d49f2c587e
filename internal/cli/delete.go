package cli

import (
	"net/http"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [url]",
	Short: "Perform a DELETE request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runVerb(cmd, http.MethodDelete, args[0])
	},
}

func init() {
	addVerbFlags(deleteCmd, true)
}
