package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newSaveCmd() *cobra.Command {
	var available bool

	cmd := &cobra.Command{
		Use:   "save <name> [file|-]",
		Short: "Store a file in the working tree",
		Long: "Store the content of file (or standard input when omitted or \"-\") under name.\n" +
			"The file becomes part of history on the next commit.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStorage(cmd)
			if err != nil {
				return err
			}

			var src io.Reader = cmd.InOrStdin()
			if len(args) == 2 && args[1] != "-" {
				f, err := os.Open(args[1])
				if err != nil {
					return fmt.Errorf("save: %w", err)
				}
				defer f.Close()
				src = f
			}

			save := st.Save
			if available {
				save = st.SaveAvailable
			}
			stored, err := save(args[0], src)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), stored)
			return nil
		},
	}

	cmd.Flags().BoolVar(&available, "available", false, "pick a free name (name_1.ext, ...) instead of overwriting")
	return cmd
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>...",
		Short: "Delete stored files from the working tree",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStorage(cmd)
			if err != nil {
				return err
			}
			for _, name := range args {
				if err := st.Delete(name); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "rm '%s'\n", name)
			}
			return nil
		},
	}
}
