package repo

import (
	"io"
	"log/slog"

	"github.com/odvcencio/gitstorage/pkg/object"
)

// MetaDirName is the repository metadata directory under the working tree
// root. It is never reconciled, listed or searched.
const MetaDirName = ".gitstorage"

// ObjectStore is the content-addressed storage the engine builds on.
// *object.Store implements it.
type ObjectStore interface {
	Has(h object.Hash) bool
	WriteBlob(b *object.Blob) (object.Hash, error)
	ReadBlob(h object.Hash) (*object.Blob, error)
	WriteTree(tr *object.TreeObj) (object.Hash, error)
	ReadTree(h object.Hash) (*object.TreeObj, error)
	WriteCommit(c *object.CommitObj) (object.Hash, error)
	ReadCommit(h object.Hash) (*object.CommitObj, error)
}

// prefixResolver is implemented by stores that can expand abbreviated hashes,
// optionally restricted to objects of the given types.
type prefixResolver interface {
	ResolvePrefix(prefix string, types ...object.ObjectType) (object.Hash, error)
}

// CommitSigner signs canonical commit payload bytes and returns an encoded
// signature string to be persisted in CommitObj.Signature.
type CommitSigner func(payload []byte) (string, error)

// Repo is an opened repository. It is an explicit context value: every
// operation loads the state it needs from disk, so several Repo values may
// coexist in one process and none of them caches the staging index.
type Repo struct {
	RootDir string      // working directory root
	MetaDir string      // .gitstorage/ directory
	Store   ObjectStore // content-addressed object store

	// Signer, when set, signs every commit created by Commit.
	Signer CommitSigner

	logger *slog.Logger
}

// Options configures Init and Open.
type Options struct {
	// Store overrides the object store. By default an *object.Store rooted at
	// the metadata directory is used, compressed according to config.toml.
	Store ObjectStore
	// Logger receives operational records. Defaults to a discarding logger.
	Logger *slog.Logger
	// Signer signs new commits.
	Signer CommitSigner
}

func newRepo(root, metaDir string, opts Options) (*Repo, error) {
	r := &Repo{
		RootDir: root,
		MetaDir: metaDir,
		Store:   opts.Store,
		Signer:  opts.Signer,
		logger:  opts.Logger,
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.Store == nil {
		cfg, err := r.ReadConfig()
		if err != nil {
			return nil, err
		}
		r.Store = object.NewStore(metaDir, object.WithCompression(cfg.Core.CompressEnabled()))
	}
	return r, nil
}

// Logger returns the repository logger.
func (r *Repo) Logger() *slog.Logger {
	return r.logger
}
