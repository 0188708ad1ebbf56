package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/vango-dev/roster/internal/app"
	"github.com/vango-dev/roster/pkg/router"
)

type resolved struct {
	Name     string       `json:"name"`
	View     router.View  `json:"view"`
	Path     string       `json:"path"`
	FullPath string       `json:"fullPath"`
	Props    router.Props `json:"props"`
}

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <url>",
		Short: "Resolve a URL against the route table",
		Long: `Resolve a URL against the route table and print the matched
view and its props as JSON.

Examples:
  roster resolve /characters?page=2
  roster resolve "/about?q=rick&page=3"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.NewRouter()
			if err != nil {
				return err
			}
			match, err := r.Navigate(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resolved{
				Name:     match.Name(),
				View:     match.View(),
				Path:     match.Location.Path,
				FullPath: match.Location.FullPath,
				Props:    match.Props,
			})
		},
	}
	return cmd
}
