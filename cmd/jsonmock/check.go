package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/theheadmen/jsonmock/internal/placeholder"
)

// newCheckCmd проходит по всем коллекциям сервера клиентом и проверяет форму записей.
func newCheckCmd() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fetch every collection from a server and validate the record shapes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), placeholder.NewClient(baseURL), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", placeholder.DefaultBaseURL, "server to check")
	return cmd
}

// runCheck останавливается на первой ошибке.
func runCheck(ctx context.Context, client *placeholder.Client, out io.Writer) error {
	steps := []struct {
		name  string
		count func() (int, error)
	}{
		{"users", func() (int, error) { items, err := client.AllUsers(ctx); return len(items), err }},
		{"posts", func() (int, error) { items, err := client.AllPosts(ctx); return len(items), err }},
		{"comments", func() (int, error) { items, err := client.AllComments(ctx); return len(items), err }},
		{"todos", func() (int, error) { items, err := client.AllTodos(ctx); return len(items), err }},
		{"albums", func() (int, error) { items, err := client.AllAlbums(ctx); return len(items), err }},
	}

	for _, step := range steps {
		count, err := step.count()
		if err != nil {
			return fmt.Errorf("check %s at %s: %w", step.name, client.BaseURL(), err)
		}
		fmt.Fprintf(out, "%-8s %d ok\n", step.name, count)
	}
	return nil
}
