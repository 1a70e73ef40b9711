package main

import (
	"fmt"
	"strings"

	"github.com/odvcencio/gitstorage/pkg/repo"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02 15:04:05 -0700"

func newLogCmd() *cobra.Command {
	var oneline bool
	var limit int
	var path string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show commit history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStorage(cmd)
			if err != nil {
				return err
			}

			records, err := st.History(repo.HistoryOptions{Path: path, Limit: limit})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "no commits yet")
				return nil
			}

			for _, rec := range records {
				c := rec.Commit
				subject, _, _ := strings.Cut(c.Message, "\n")
				if oneline {
					fmt.Fprintf(out, "%s %s\n", shortHash(string(rec.Hash)), subject)
					continue
				}
				fmt.Fprintf(out, "commit %s\n", rec.Hash)
				fmt.Fprintf(out, "Author: %s\n", c.Author)
				fmt.Fprintf(out, "Date:   %s\n", repo.CommitTime(c).Format(dateLayout))
				fmt.Fprintln(out)
				for _, line := range strings.Split(strings.TrimRight(c.Message, "\n"), "\n") {
					fmt.Fprintf(out, "    %s\n", line)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&oneline, "oneline", false, "show each commit on a single line")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of commits to show (0 = all)")
	cmd.Flags().StringVar(&path, "path", "", "only commits containing this file")

	return cmd
}

func newChangelogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "List commits with parent, author and date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStorage(cmd)
			if err != nil {
				return err
			}
			entries, err := st.Changelog(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range entries {
				parent := "-"
				if e.ParentHash != "" {
					parent = shortHash(string(e.ParentHash))
				}
				subject, _, _ := strings.Cut(e.Message, "\n")
				fmt.Fprintf(out, "%s %s %s %s %s\n",
					shortHash(string(e.Hash)), parent, e.Date.Format(dateLayout), e.Author, subject)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of entries (0 = all)")
	return cmd
}
