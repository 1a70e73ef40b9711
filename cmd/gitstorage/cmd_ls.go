package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [dir]",
		Short: "List directories and files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStorage(cmd)
			if err != nil {
				return err
			}
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			dirs, files, err := st.Listdir(dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, d := range dirs {
				fmt.Fprintf(out, "%s/\n", d)
			}
			for _, f := range files {
				fmt.Fprintln(out, f)
			}
			return nil
		},
	}
}

func newStatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat <name>",
		Short: "Show path, size and times of a stored file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStorage(cmd)
			if err != nil {
				return err
			}
			name := args[0]

			path, err := st.Path(name)
			if err != nil {
				return err
			}
			size, err := st.Size(name)
			if err != nil {
				return err
			}
			created, err := st.CreatedTime(name)
			if err != nil {
				return err
			}
			modified, err := st.ModifiedTime(name)
			if err != nil {
				return err
			}
			accessed, err := st.AccessedTime(name)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "path:     %s\n", path)
			fmt.Fprintf(out, "size:     %d\n", size)
			fmt.Fprintf(out, "created:  %s\n", created.Format(dateLayout))
			fmt.Fprintf(out, "modified: %s\n", modified.Format(dateLayout))
			fmt.Fprintf(out, "accessed: %s\n", accessed.Format(dateLayout))
			return nil
		},
	}
}
