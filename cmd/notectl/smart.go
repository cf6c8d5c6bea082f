package main

import (
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func newSmartCmd(client func() *apiClient) *cobra.Command {
	var user, content string
	cmd := &cobra.Command{
		Use:   "smart",
		Short: "Create a note and let the service pick its category",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"user_id": user, "content": content}
			data, err := client().call(cmd.Context(), http.MethodPost, "/api/smart-notes", nil, payload)
			if err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), data)
			return nil
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "User ID (required)")
	cmd.Flags().StringVarP(&content, "content", "t", "", "Note text (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newAnalyticsCmd(client func() *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics USER_ID",
		Short: "Active note counts per category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := client().call(cmd.Context(), http.MethodGet, "/api/analytics/"+url.PathEscape(args[0]), nil, nil)
			if err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), data)
			return nil
		},
	}
}
