package object

// Hash is a 64-character hex-encoded SHA-256 digest.
type Hash string

// Short returns the first n characters of the hash, or the whole hash when it
// is shorter than n.
func (h Hash) Short(n int) string {
	if len(h) <= n {
		return string(h)
	}
	return string(h[:n])
}

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
)

const (
	// Tree mode constants compatible with Git's canonical mode strings.
	TreeModeDir        = "40000"
	TreeModeFile       = "100644"
	TreeModeExecutable = "100755"
)

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

// TreeEntry is one entry in a tree object. Files carry a BlobHash,
// directories a SubtreeHash.
type TreeEntry struct {
	Name        string
	IsDir       bool
	Mode        string
	BlobHash    Hash
	SubtreeHash Hash
}

// TreeObj holds a sorted list of tree entries.
type TreeObj struct {
	Entries []TreeEntry // sorted by Name
}

// Identity is the display name and email recorded as a commit's author or
// committer.
type Identity struct {
	Name  string
	Email string
}

// CommitObj represents a commit pointing to a tree with metadata.
type CommitObj struct {
	TreeHash           Hash
	Parents            []Hash
	Author             Identity
	Timestamp          int64
	AuthorTimezone     string
	Committer          Identity
	CommitterTimestamp int64
	CommitterTimezone  string
	Signature          string
	Message            string
}
