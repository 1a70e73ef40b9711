package object

import (
	"bytes"
	"strings"
	"testing"
)

func TestMarshalTreeSortsEntries(t *testing.T) {
	tr := &TreeObj{
		Entries: []TreeEntry{
			{Name: "z.txt", BlobHash: Hash(strings.Repeat("1", 64))},
			{Name: "a.txt", BlobHash: Hash(strings.Repeat("2", 64))},
		},
	}
	data := string(MarshalTree(tr))
	if strings.Index(data, "a.txt") > strings.Index(data, "z.txt") {
		t.Errorf("entries not sorted:\n%s", data)
	}
}

func TestMarshalTreeModes(t *testing.T) {
	tr := &TreeObj{
		Entries: []TreeEntry{
			{Name: "run.sh", Mode: TreeModeExecutable, BlobHash: Hash(strings.Repeat("1", 64))},
			{Name: "docs", IsDir: true, SubtreeHash: Hash(strings.Repeat("2", 64))},
			{Name: "plain", BlobHash: Hash(strings.Repeat("3", 64))},
		},
	}
	got, err := UnmarshalTree(MarshalTree(tr))
	if err != nil {
		t.Fatalf("UnmarshalTree: %v", err)
	}
	want := map[string]string{
		"docs":   TreeModeDir,
		"plain":  TreeModeFile,
		"run.sh": TreeModeExecutable,
	}
	for _, e := range got.Entries {
		if e.Mode != want[e.Name] {
			t.Errorf("%s mode = %q, want %q", e.Name, e.Mode, want[e.Name])
		}
	}
}

func TestUnmarshalTreeRejectsMalformed(t *testing.T) {
	for _, in := range []string{
		"100644 onlyhash\n",
		"777 " + strings.Repeat("a", 64) + " f\n",
	} {
		if _, err := UnmarshalTree([]byte(in)); err == nil {
			t.Errorf("UnmarshalTree(%q) should fail", in)
		}
	}
}

func TestMarshalUnmarshalCommit(t *testing.T) {
	orig := &CommitObj{
		TreeHash:           Hash(strings.Repeat("a", 64)),
		Parents:            []Hash{Hash(strings.Repeat("b", 64))},
		Author:             Identity{Name: "Ada Lovelace", Email: "ada@example.com"},
		Timestamp:          1700000000,
		AuthorTimezone:     "+0100",
		Committer:          Identity{Name: "Build Bot", Email: "bot@example.com"},
		CommitterTimestamp: 1700000100,
		CommitterTimezone:  "-0500",
		Message:            "subject\n\nbody\n",
	}
	got, err := UnmarshalCommit(MarshalCommit(orig))
	if err != nil {
		t.Fatalf("UnmarshalCommit: %v", err)
	}
	if got.Author != orig.Author || got.Timestamp != orig.Timestamp || got.AuthorTimezone != orig.AuthorTimezone {
		t.Errorf("author = %+v %d %s", got.Author, got.Timestamp, got.AuthorTimezone)
	}
	if got.Committer != orig.Committer || got.CommitterTimestamp != orig.CommitterTimestamp || got.CommitterTimezone != orig.CommitterTimezone {
		t.Errorf("committer = %+v %d %s", got.Committer, got.CommitterTimestamp, got.CommitterTimezone)
	}
	if len(got.Parents) != 1 || got.Parents[0] != orig.Parents[0] {
		t.Errorf("Parents = %v, want %v", got.Parents, orig.Parents)
	}
	if got.Message != orig.Message {
		t.Errorf("Message = %q, want %q", got.Message, orig.Message)
	}
}

func TestMarshalCommitNoParents(t *testing.T) {
	c := &CommitObj{
		TreeHash: Hash(strings.Repeat("a", 64)),
		Author:   Identity{Name: "A", Email: "a@example.com"},
	}
	data := MarshalCommit(c)
	if bytes.Contains(data, []byte("parent ")) {
		t.Errorf("root commit should not carry a parent header:\n%s", data)
	}
	got, err := UnmarshalCommit(data)
	if err != nil {
		t.Fatalf("UnmarshalCommit: %v", err)
	}
	if len(got.Parents) != 0 {
		t.Errorf("Parents = %v, want none", got.Parents)
	}
	if got.Message != "" {
		t.Errorf("Message = %q, want empty", got.Message)
	}
}

func TestCommitSigningPayloadExcludesSignature(t *testing.T) {
	c := &CommitObj{
		TreeHash:  Hash(strings.Repeat("a", 64)),
		Author:    Identity{Name: "A", Email: "a@example.com"},
		Signature: "sshsig-v1:ssh-ed25519:pub:sig",
		Message:   "signed",
	}
	payload := CommitSigningPayload(c)
	if bytes.Contains(payload, []byte("signature ")) {
		t.Errorf("payload contains signature header:\n%s", payload)
	}
	if c.Signature == "" {
		t.Error("CommitSigningPayload mutated its argument")
	}

	got, err := UnmarshalCommit(MarshalCommit(c))
	if err != nil {
		t.Fatalf("UnmarshalCommit: %v", err)
	}
	if got.Signature != c.Signature {
		t.Errorf("Signature = %q, want %q", got.Signature, c.Signature)
	}
}

func TestParseIdentity(t *testing.T) {
	tests := []struct {
		in      string
		want    Identity
		wantErr bool
	}{
		{in: "Gérard Test <gerard.test@example.com>", want: Identity{Name: "Gérard Test", Email: "gerard.test@example.com"}},
		{in: "<only@example.com>", want: Identity{Email: "only@example.com"}},
		{in: "no email", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseIdentity(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseIdentity(%q) should fail", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseIdentity(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseIdentity(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
