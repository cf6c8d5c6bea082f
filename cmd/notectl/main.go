package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var apiFlag string
	rootCmd := &cobra.Command{
		Use:           "notectl",
		Short:         "CLI client for the NoteNest REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Notes service base URL")

	client := func() *apiClient { return newAPIClient(apiFlag) }
	rootCmd.AddCommand(
		newCategoriesCmd(client),
		newNotesCmd(client),
		newSmartCmd(client),
		newAnalyticsCmd(client),
		newSeedCmd(client),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
