package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <from> <to>",
		Short: "Show changes between two commits",
		Long:  "Show a git-style patch between two commits given as full hashes or unique prefixes.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStorage(cmd)
			if err != nil {
				return err
			}
			patch, err := st.Diff(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), patch)
			return nil
		},
	}
}
