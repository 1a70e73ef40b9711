package main

import (
	"fmt"
	"strings"

	"github.com/odvcencio/gitstorage/internal/config"
	"github.com/odvcencio/gitstorage/pkg/repo"
	"github.com/spf13/cobra"
)

func newCommitCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record the working tree as a new commit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, settings, err := openStorage(cmd)
			if err != nil {
				return err
			}
			r := st.Repo()

			author, err := resolveAuthor(r, settings)
			if err != nil {
				return err
			}

			if settings.Sign.Enabled {
				signer, keyPath, err := newSSHCommitSigner(settings.Sign.Key)
				if err != nil {
					return err
				}
				r.Signer = signer
				r.Logger().Debug("signing commit", "key", keyPath)
			}

			rec, err := st.Commit(author, message)
			if err != nil {
				return err
			}

			branch := "HEAD"
			if head, err := r.Head(); err == nil && strings.HasPrefix(head, "refs/heads/") {
				branch = strings.TrimPrefix(head, "refs/heads/")
			}
			subject, _, _ := strings.Cut(message, "\n")
			fmt.Fprintf(cmd.OutOrStdout(), "[%s %s] %s\n", branch, shortHash(string(rec.Hash)), subject)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().String("author-name", "", "author name (env GITSTORAGE_USER_NAME, default [user] name)")
	cmd.Flags().String("author-email", "", "author email (env GITSTORAGE_USER_EMAIL, default [user] email)")
	cmd.Flags().Bool("sign", false, "sign the commit with an SSH key")
	cmd.Flags().String("key", "", "SSH private key for --sign (default ~/.ssh/id_ed25519, id_ecdsa, id_rsa)")

	return cmd
}

// resolveAuthor fills the commit identity from settings, then from the
// repository config.
func resolveAuthor(r *repo.Repo, settings *config.Settings) (repo.Signature, error) {
	author := repo.Signature{Name: settings.User.Name, Email: settings.User.Email}
	if author.Name != "" && author.Email != "" {
		return author, nil
	}

	cfg, err := r.ReadConfig()
	if err != nil {
		return repo.Signature{}, err
	}
	if author.Name == "" {
		author.Name = strings.TrimSpace(cfg.User.Name)
	}
	if author.Email == "" {
		author.Email = strings.TrimSpace(cfg.User.Email)
	}
	if author.Name == "" || author.Email == "" {
		return repo.Signature{}, fmt.Errorf("author identity required: pass --author-name and --author-email or set [user] in %s/config.toml", repo.MetaDirName)
	}
	return author, nil
}
