package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/odvcencio/gitstorage/pkg/repo"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show uncommitted changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStorage(cmd)
			if err != nil {
				return err
			}
			r := st.Repo()

			entries, err := st.Status()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			branch := "main"
			if head, err := r.Head(); err == nil && strings.HasPrefix(head, "refs/heads/") {
				branch = strings.TrimPrefix(head, "refs/heads/")
			}
			if _, err := r.ResolveHead(); errors.Is(err, repo.ErrNoCommits) {
				fmt.Fprintf(out, "on %s (no commits yet)\n", branch)
			} else {
				fmt.Fprintf(out, "on %s\n", branch)
			}

			if len(entries) == 0 {
				fmt.Fprintln(out, "nothing to commit, working tree clean")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "  %s %s\n", statusSymbol(e.State), e.Path)
			}
			return nil
		},
	}
}

func statusSymbol(s repo.FileState) string {
	switch s {
	case repo.StateAdded:
		return "+"
	case repo.StateModified:
		return "~"
	case repo.StateDeleted:
		return "-"
	default:
		return " "
	}
}
