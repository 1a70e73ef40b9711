package main

import (
	"fmt"

	"github.com/odvcencio/gitstorage/pkg/repo"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var exclude string

	cmd := &cobra.Command{
		Use:   "search <pattern>",
		Short: "Find committed lines containing pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStorage(cmd)
			if err != nil {
				return err
			}
			results, err := st.Search(args[0], repo.SearchOptions{Exclude: exclude})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, res := range results {
				for _, line := range res.Lines {
					fmt.Fprintf(out, "%s:%s\n", res.Path, line)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&exclude, "exclude", "", "skip paths matching this regular expression")
	return cmd
}
