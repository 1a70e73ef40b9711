package main

import (
	"fmt"

	"github.com/odvcencio/gitstorage/pkg/repo"
	"github.com/odvcencio/gitstorage/pkg/storage"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, logger, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			dir := settings.Repo
			if len(args) == 1 {
				dir = args[0]
			}

			st, err := storage.Create(dir, repo.Options{Logger: logger})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty repository in %s\n", st.Repo().MetaDir)
			return nil
		},
	}
}
