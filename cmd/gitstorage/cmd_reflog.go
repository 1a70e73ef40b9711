package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReflogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "reflog [ref]",
		Short: "Show where HEAD has pointed, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStorage(cmd)
			if err != nil {
				return err
			}

			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			entries, err := st.Repo().ReadReflog(ref, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, e := range entries {
				fmt.Fprintf(out, "%s HEAD@{%d} %s %s\n",
					shortHash(string(e.NewHash)), i, e.Time.Format(dateLayout), e.Reason)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of entries (0 = all)")
	return cmd
}
