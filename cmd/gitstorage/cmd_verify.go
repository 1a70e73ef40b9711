package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <commit>",
		Short: "Check the SSH signature of a commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStorage(cmd)
			if err != nil {
				return err
			}
			r := st.Repo()

			h, err := r.ResolveCommit(args[0])
			if err != nil {
				return err
			}
			c, err := r.Store.ReadCommit(h)
			if err != nil {
				return err
			}
			fingerprint, err := verifyCommitSignature(c)
			if err != nil {
				return fmt.Errorf("verify %s: %w", shortHash(string(h)), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s signed with %s\n", shortHash(string(h)), fingerprint)
			return nil
		},
	}
}
