package repo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/odvcencio/gitstorage/pkg/object"
)

// Signature identifies the author of a commit. Both fields are required.
type Signature struct {
	Name  string
	Email string
}

func (s Signature) validate() (object.Identity, error) {
	id := object.Identity{
		Name:  strings.TrimSpace(s.Name),
		Email: strings.TrimSpace(s.Email),
	}
	if id.Name == "" {
		return object.Identity{}, invalidArgument("author name is required")
	}
	if id.Email == "" {
		return object.Identity{}, invalidArgument("author email is required")
	}
	if strings.ContainsAny(id.Name, "<>\n") || strings.ContainsAny(id.Email, "<>\n ") {
		return object.Identity{}, invalidArgument("malformed author %q <%s>", id.Name, id.Email)
	}
	return id, nil
}

// CommitRecord pairs a commit hash with its decoded object.
type CommitRecord struct {
	Hash   object.Hash
	Commit *object.CommitObj
}

// Commit snapshots the working tree as a new commit on the current branch.
//
//  1. Validate author (before any mutation)
//  2. Reconcile the working tree against a freshly read index
//  3. Drop deleted paths, write blobs for added and modified paths
//  4. BuildTree from the updated index
//  5. Create, sign and write the CommitObj with HEAD as parent
//  6. Advance the branch ref with compare-and-swap against that parent
//  7. Persist the index
//
// A failure before step 6 leaves HEAD and the persisted index untouched.
// Committing with no changes is allowed and reuses the parent's tree.
func (r *Repo) Commit(author Signature, message string) (*CommitRecord, error) {
	id, err := author.validate()
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	changes, err := r.Status()
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	stg, err := r.ReadStaging()
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	counts := make(map[FileState]int)
	for _, change := range changes {
		counts[change.State]++
		if change.State == StateDeleted {
			stg.Remove(change.Path)
			continue
		}
		entry, err := r.stageWorktreeFile(change.Path)
		if err != nil {
			return nil, fmt.Errorf("commit: %w", err)
		}
		stg.Set(entry)
	}

	treeHash, err := r.BuildTree(stg)
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	var parents []object.Hash
	parentHash, err := r.ResolveHead()
	switch {
	case errors.Is(err, ErrNoCommits):
	case err != nil:
		return nil, fmt.Errorf("commit: %w", err)
	default:
		parents = append(parents, parentHash)
	}

	now := time.Now()
	tz := now.Format("-0700")
	commitObj := &object.CommitObj{
		TreeHash:           treeHash,
		Parents:            parents,
		Author:             id,
		Timestamp:          now.Unix(),
		AuthorTimezone:     tz,
		Committer:          id,
		CommitterTimestamp: now.Unix(),
		CommitterTimezone:  tz,
		Message:            message,
	}
	if r.Signer != nil {
		signature, err := r.Signer(object.CommitSigningPayload(commitObj))
		if err != nil {
			return nil, fmt.Errorf("commit: sign commit: %w", err)
		}
		commitObj.Signature = signature
	}

	commitHash, err := r.Store.WriteCommit(commitObj)
	if err != nil {
		return nil, fmt.Errorf("commit: write commit: %w", ioError(err))
	}

	if err := r.advanceHead(commitHash, parentHash, message); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	if err := r.WriteStaging(stg); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	r.logger.Info("committed",
		"hash", string(commitHash),
		"author", id.String(),
		"added", counts[StateAdded],
		"modified", counts[StateModified],
		"deleted", counts[StateDeleted],
	)
	return &CommitRecord{Hash: commitHash, Commit: commitObj}, nil
}

// stageWorktreeFile writes the current content of rel as a blob and returns
// the index entry describing it.
func (r *Repo) stageWorktreeFile(rel string) (*StagingEntry, error) {
	absPath := r.AbsPath(rel)
	info, err := lstatRegular(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", rel, ioError(err))
	}
	content, err := readWorktreeFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", rel, ioError(err))
	}
	blobHash, err := r.Store.WriteBlob(&object.Blob{Data: content})
	if err != nil {
		return nil, fmt.Errorf("write blob %q: %w", rel, ioError(err))
	}
	return &StagingEntry{
		Path:     rel,
		BlobHash: blobHash,
		Mode:     modeFromFileInfo(info),
		Size:     int64(len(content)),
		ModTime:  info.ModTime().Unix(),
		Checksum: contentChecksum(content),
	}, nil
}

// advanceHead moves the branch HEAD points at (or a detached HEAD) from
// parent to commitHash. A reflog failure after the ref moved is logged and
// otherwise ignored.
func (r *Repo) advanceHead(commitHash, parent object.Hash, message string) error {
	head, err := r.Head()
	if err != nil {
		return fmt.Errorf("read HEAD: %w", err)
	}
	refName := head
	if !strings.HasPrefix(head, "refs/") {
		refName = "HEAD"
	}

	reason := "commit"
	if subject, _, _ := strings.Cut(message, "\n"); strings.TrimSpace(subject) != "" {
		reason = "commit: " + subject
	}
	err = r.UpdateRefCAS(refName, commitHash, reason, parent)
	var reflogErr *RefUpdateReflogError
	if errors.As(err, &reflogErr) {
		r.logger.Warn("reflog append failed", "ref", refName, "err", reflogErr.Err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("update ref %q: %w", refName, err)
	}
	return nil
}
