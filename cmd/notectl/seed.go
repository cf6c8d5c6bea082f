package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

type seedCategory struct {
	Name  string
	Color string
	Notes []string
}

var seedData = []seedCategory{
	{"Finance", "#10B981", []string{
		"Pay the electricity bill by Friday ($120)",
		"Cancel the unused streaming subscription",
		"Review monthly budget and savings goals for December",
	}},
	{"Health", "#EF4444", []string{
		"Morning yoga routine: 15 mins stretching",
		"Buy vitamins and protein powder",
		"Schedule annual dental check-up",
	}},
	{"Travel", "#0EA5E9", []string{
		"Pack passport, charger, and travel adapter",
		"Look up top-rated restaurants in Tokyo",
		"Book train tickets from Kyoto to Osaka",
	}},
	{"Learning", "#8B5CF6", []string{
		"Finish Chapter 4 of 'Designing Data-Intensive Applications'",
		"Watch tutorial on React Server Components",
		"Practice Spanish vocabulary on Duolingo",
	}},
	{"To-Do", "#F59E0B", []string{
		"Pick up dry cleaning",
		"Water the plants in the living room",
		"Reply to emails from the project manager",
	}},
	{"Project X", "#EC4899", []string{
		"Brainstorm UI layout for the new landing page",
		"Research competitors in the AI space",
		"Draft the initial pitch deck",
	}},
	{"Meetings", "#6366F1", []string{
		"Weekly sync with the engineering team at 10 AM",
		"Client feedback session notes: Focus on mobile responsiveness",
		"Prepare agenda for the quarterly review",
	}},
}

const seedRef = "manual-seed"

func newSeedCmd(client func() *apiClient) *cobra.Command {
	var user string
	var withNotes bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create sample categories and notes for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), client(), user, withNotes, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "User ID (required)")
	cmd.Flags().BoolVar(&withNotes, "notes", true, "Also create sample notes")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

type categoryRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// runSeed creates each sample category, reusing ones the user already has.
func runSeed(ctx context.Context, c *apiClient, user string, withNotes bool, out io.Writer) error {
	var existing []categoryRef
	if err := c.callInto(ctx, http.MethodGet, "/api/categories/"+url.PathEscape(user), nil, nil, &existing); err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	byName := make(map[string]string, len(existing))
	for _, e := range existing {
		byName[e.Name] = e.ID
	}

	notes := 0
	for _, sc := range seedData {
		id, ok := byName[sc.Name]
		if !ok {
			var created categoryRef
			err := c.callInto(ctx, http.MethodPost, "/api/categories", nil,
				map[string]interface{}{"user_id": user, "name": sc.Name, "color_code": sc.Color}, &created)
			var apiErr *apiError
			if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
				// Created concurrently; look it up again.
				if id, err = lookupCategory(ctx, c, user, sc.Name); err != nil {
					return err
				}
			} else if err != nil {
				return fmt.Errorf("create category %s: %w", sc.Name, err)
			} else {
				id = created.ID
				_, _ = fmt.Fprintf(out, "created category %s (%s)\n", sc.Name, id)
			}
		} else {
			_, _ = fmt.Fprintf(out, "category %s exists (%s)\n", sc.Name, id)
		}

		if !withNotes {
			continue
		}
		for _, text := range sc.Notes {
			payload := map[string]interface{}{
				"user_id": user, "category_id": id, "content": text,
				"tags": []string{"Seeded"}, "llm_ref": seedRef,
			}
			if _, err := c.call(ctx, http.MethodPost, "/api/notes", nil, payload); err != nil {
				return fmt.Errorf("create note in %s: %w", sc.Name, err)
			}
			notes++
		}
	}
	_, _ = fmt.Fprintf(out, "seeded %d categories and %d notes for %s\n", len(seedData), notes, user)
	return nil
}

func lookupCategory(ctx context.Context, c *apiClient, user, name string) (string, error) {
	var cats []categoryRef
	if err := c.callInto(ctx, http.MethodGet, "/api/categories/"+url.PathEscape(user), nil, nil, &cats); err != nil {
		return "", err
	}
	for _, cat := range cats {
		if cat.Name == name {
			return cat.ID, nil
		}
	}
	return "", fmt.Errorf("category %s reported as duplicate but not listed", name)
}
