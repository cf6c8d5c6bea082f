package main

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(client func() *apiClient) *cobra.Command {
	categoriesCmd := &cobra.Command{Use: "categories", Aliases: []string{"cat"}, Short: "Category operations"}

	// list
	categoriesCmd.AddCommand(&cobra.Command{
		Use:   "list USER_ID",
		Short: "List a user's categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := client().call(cmd.Context(), http.MethodGet, "/api/categories/"+url.PathEscape(args[0]), nil, nil)
			if err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), data)
			return nil
		},
	})

	// create
	var user, name, description, color string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"user_id": user, "name": name}
			if description != "" {
				payload["description"] = description
			}
			if color != "" {
				payload["color_code"] = color
			}
			data, err := client().call(cmd.Context(), http.MethodPost, "/api/categories", nil, payload)
			if err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), data)
			return nil
		},
	}
	createCmd.Flags().StringVarP(&user, "user", "u", "", "User ID (required)")
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Category name (required)")
	createCmd.Flags().StringVarP(&description, "description", "d", "", "Description")
	createCmd.Flags().StringVarP(&color, "color", "c", "", "Color code, e.g. #10B981")
	_ = createCmd.MarkFlagRequired("user")
	_ = createCmd.MarkFlagRequired("name")
	categoriesCmd.AddCommand(createCmd)

	// update
	updateCmd := &cobra.Command{
		Use:   "update CATEGORY_ID",
		Short: "Update a category's name, description or color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{}
			for flag, field := range map[string]string{"name": "name", "description": "description", "color": "color_code"} {
				if cmd.Flags().Changed(flag) {
					v, _ := cmd.Flags().GetString(flag)
					payload[field] = v
				}
			}
			if len(payload) == 0 {
				return fmt.Errorf("nothing to update; pass --name, --description or --color")
			}
			data, err := client().call(cmd.Context(), http.MethodPut, "/api/categories/"+url.PathEscape(args[0]), nil, payload)
			if err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), data)
			return nil
		},
	}
	updateCmd.Flags().StringP("name", "n", "", "New name")
	updateCmd.Flags().StringP("description", "d", "", "New description")
	updateCmd.Flags().StringP("color", "c", "", "New color code")
	categoriesCmd.AddCommand(updateCmd)

	// delete
	var deleteUser string
	deleteCmd := &cobra.Command{
		Use:   "delete CATEGORY_ID",
		Short: "Delete a category; its notes move to Uncategorized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := client().call(cmd.Context(), http.MethodDelete, "/api/categories/"+url.PathEscape(args[0]),
				map[string]string{"user_id": deleteUser}, nil)
			if err != nil {
				return err
			}
			printJSON(cmd.OutOrStdout(), data)
			return nil
		},
	}
	deleteCmd.Flags().StringVarP(&deleteUser, "user", "u", "", "Owning user ID (required)")
	_ = deleteCmd.MarkFlagRequired("user")
	categoriesCmd.AddCommand(deleteCmd)

	return categoriesCmd
}
