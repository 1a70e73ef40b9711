package repo

import (
	"errors"
	"fmt"
	"time"

	"github.com/odvcencio/gitstorage/pkg/object"
)

// HistoryOptions restricts History.
type HistoryOptions struct {
	// Path keeps only commits whose tree contains this file.
	Path string
	// Limit stops the walk after this many returned commits. Zero or
	// negative means unbounded.
	Limit int
}

// History walks the first-parent chain from HEAD, newest first. With a Path
// filter, commits whose tree lacks the file are skipped and do not count
// against Limit. An unborn HEAD yields an empty result.
func (r *Repo) History(opts HistoryOptions) ([]*CommitRecord, error) {
	filter := ""
	if opts.Path != "" {
		p, err := CleanPath(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("history: %w", err)
		}
		filter = p
	}

	current, err := r.ResolveHead()
	if errors.Is(err, ErrNoCommits) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	var records []*CommitRecord
	for current != "" {
		c, err := r.Store.ReadCommit(current)
		if err != nil {
			return nil, fmt.Errorf("history: read commit %s: %w", current, Classify(err))
		}

		keep := true
		if filter != "" {
			_, keep, err = r.fileInTree(c.TreeHash, filter)
			if err != nil {
				return nil, fmt.Errorf("history: commit %s: %w", current, err)
			}
		}
		if keep {
			records = append(records, &CommitRecord{Hash: current, Commit: c})
			if opts.Limit > 0 && len(records) >= opts.Limit {
				break
			}
		}

		current = ""
		if len(c.Parents) > 0 {
			current = c.Parents[0]
		}
	}
	return records, nil
}

// ChangelogEntry summarizes one commit for display.
type ChangelogEntry struct {
	Hash        object.Hash
	ParentHash  object.Hash // empty for the root commit
	Author      string      // display name
	AuthorEmail string
	Message     string
	Date        time.Time
}

// Changelog lists the unfiltered history as display entries, newest first.
func (r *Repo) Changelog(limit int) ([]ChangelogEntry, error) {
	records, err := r.History(HistoryOptions{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("changelog: %w", err)
	}
	entries := make([]ChangelogEntry, 0, len(records))
	for _, rec := range records {
		entry := ChangelogEntry{
			Hash:        rec.Hash,
			Author:      rec.Commit.Author.Name,
			AuthorEmail: rec.Commit.Author.Email,
			Message:     rec.Commit.Message,
			Date:        CommitTime(rec.Commit),
		}
		if len(rec.Commit.Parents) > 0 {
			entry.ParentHash = rec.Commit.Parents[0]
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// CommitTime returns the author time of c in the author's recorded offset.
func CommitTime(c *object.CommitObj) time.Time {
	t := time.Unix(c.Timestamp, 0)
	if zone, err := time.Parse("-0700", c.AuthorTimezone); err == nil {
		return t.In(zone.Location())
	}
	return t.UTC()
}

// ResolveCommit expands a full hash or a unique hex prefix (at least four
// characters) to a commit hash.
func (r *Repo) ResolveCommit(id string) (object.Hash, error) {
	if len(id) < 4 || !object.IsHex(id) {
		return "", invalidArgument("commit id %q must be at least 4 hex characters", id)
	}

	h := object.Hash(id)
	if len(id) != 64 {
		resolver, ok := r.Store.(prefixResolver)
		if !ok {
			return "", invalidArgument("commit id %q: store cannot resolve abbreviated hashes", id)
		}
		full, err := resolver.ResolvePrefix(id, object.TypeCommit)
		if errors.Is(err, object.ErrAmbiguousPrefix) {
			return "", fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
		if err != nil {
			return "", Classify(err)
		}
		h = full
	}

	if _, err := r.Store.ReadCommit(h); err != nil {
		return "", fmt.Errorf("commit %s: %w", id, Classify(err))
	}
	return h, nil
}
