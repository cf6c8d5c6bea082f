package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func newNotesCmd(client func() *apiClient) *cobra.Command {
	notesCmd := &cobra.Command{Use: "notes", Short: "Note operations"}

	// list
	var archived bool
	listCmd := &cobra.Command{
		Use:   "list USER_ID",
		Short: "List a user's notes, most recently modified first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := client().call(cmd.Context(), http.MethodGet, "/api/notes/"+url.PathEscape(args[0]),
				map[string]string{"archived": strconv.FormatBool(archived)}, nil)
			if err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), data)
			return nil
		},
	}
	listCmd.Flags().BoolVar(&archived, "archived", false, "List archived notes instead of active ones")
	notesCmd.AddCommand(listCmd)

	notesCmd.AddCommand(&cobra.Command{
		Use:   "get USER_ID NOTE_ID",
		Short: "Get one note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := client().call(cmd.Context(), http.MethodGet,
				fmt.Sprintf("/api/notes/%s/%s", url.PathEscape(args[0]), url.PathEscape(args[1])), nil, nil)
			if err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), data)
			return nil
		},
	})

	// create
	var user, category, content string
	var tags []string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note in a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"user_id": user, "category_id": category, "content": content, "tags": tags}
			data, err := client().call(cmd.Context(), http.MethodPost, "/api/notes", nil, payload)
			if err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), data)
			return nil
		},
	}
	createCmd.Flags().StringVarP(&user, "user", "u", "", "User ID (required)")
	createCmd.Flags().StringVarP(&category, "category", "c", "", "Category ID (required)")
	createCmd.Flags().StringVarP(&content, "content", "t", "", "Note text (required)")
	createCmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	_ = createCmd.MarkFlagRequired("user")
	_ = createCmd.MarkFlagRequired("category")
	_ = createCmd.MarkFlagRequired("content")
	notesCmd.AddCommand(createCmd)

	// update
	updateCmd := &cobra.Command{
		Use:   "update NOTE_ID",
		Short: "Move, edit or retag a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{}
			if cmd.Flags().Changed("category") {
				v, _ := cmd.Flags().GetString("category")
				payload["category_id"] = v
			}
			if cmd.Flags().Changed("content") {
				v, _ := cmd.Flags().GetString("content")
				payload["content"] = v
			}
			if cmd.Flags().Changed("tag") {
				v, _ := cmd.Flags().GetStringSlice("tag")
				payload["tags"] = v
			}
			if len(payload) == 0 {
				return fmt.Errorf("nothing to update; pass --category, --content or --tag")
			}
			data, err := client().call(cmd.Context(), http.MethodPut, "/api/notes/"+url.PathEscape(args[0]), nil, payload)
			if err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), data)
			return nil
		},
	}
	updateCmd.Flags().StringP("category", "c", "", "New category ID")
	updateCmd.Flags().StringP("content", "t", "", "New note text")
	updateCmd.Flags().StringSlice("tag", nil, "Replacement tags (repeatable)")
	notesCmd.AddCommand(updateCmd)

	notesCmd.AddCommand(archiveCmd(client, "archive", "Archive a note"))
	notesCmd.AddCommand(archiveCmd(client, "unarchive", "Restore an archived note"))

	notesCmd.AddCommand(&cobra.Command{
		Use:   "delete NOTE_ID",
		Short: "Delete a note permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client().call(cmd.Context(), http.MethodDelete, "/api/notes/"+url.PathEscape(args[0]), nil, nil); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	})

	return notesCmd
}

func archiveCmd(client func() *apiClient, action, short string) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   action + " NOTE_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query map[string]string
			if user != "" {
				query = map[string]string{"user_id": user}
			}
			data, err := client().call(cmd.Context(), http.MethodPut,
				fmt.Sprintf("/api/notes/%s/%s", url.PathEscape(args[0]), action), query, nil)
			if err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), data)
			return nil
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "Restrict to this user's notes")
	return cmd
}
