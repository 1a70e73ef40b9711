package repo

import (
	"strings"
	"testing"
)

func TestStaging_OrderAndReplace(t *testing.T) {
	s := NewStaging()
	s.Set(&StagingEntry{Path: "z.txt", BlobHash: "1"})
	s.Set(&StagingEntry{Path: "a.txt", BlobHash: "2"})
	s.Set(&StagingEntry{Path: "m.txt", BlobHash: "3"})
	s.Set(&StagingEntry{Path: "z.txt", BlobHash: "4"})

	if got := strings.Join(s.Paths(), ","); got != "z.txt,a.txt,m.txt" {
		t.Errorf("Paths = %q, want %q", got, "z.txt,a.txt,m.txt")
	}
	e, ok := s.Get("z.txt")
	if !ok || e.BlobHash != "4" {
		t.Errorf("Get(z.txt) = %+v, %v; want replaced entry", e, ok)
	}
}

func TestStaging_Remove(t *testing.T) {
	s := NewStaging()
	for _, p := range []string{"a", "b", "c"} {
		s.Set(&StagingEntry{Path: p})
	}
	if !s.Remove("b") {
		t.Fatal("Remove(b) = false, want true")
	}
	if s.Remove("b") {
		t.Error("second Remove(b) = true, want false")
	}
	if _, ok := s.Get("c"); !ok {
		t.Error("Get(c) missing after removing b")
	}
	s.Set(&StagingEntry{Path: "d"})
	if got := strings.Join(s.Paths(), ","); got != "a,c,d" {
		t.Errorf("Paths = %q, want %q", got, "a,c,d")
	}
}

func TestReadWriteStaging_PreservesOrder(t *testing.T) {
	r := initTestRepo(t)

	empty, err := r.ReadStaging()
	if err != nil {
		t.Fatalf("ReadStaging(missing): %v", err)
	}
	if empty.Len() != 0 {
		t.Fatalf("missing index Len = %d, want 0", empty.Len())
	}

	s := NewStaging()
	s.Set(&StagingEntry{Path: "test_é.txt", BlobHash: "h1", Mode: "100644", Size: 6, Checksum: "c1"})
	s.Set(&StagingEntry{Path: "b/nested.txt", BlobHash: "h2", Size: 3})
	s.Set(&StagingEntry{Path: "a.txt", BlobHash: "h3"})
	if err := r.WriteStaging(s); err != nil {
		t.Fatalf("WriteStaging: %v", err)
	}

	got, err := r.ReadStaging()
	if err != nil {
		t.Fatalf("ReadStaging: %v", err)
	}
	if paths := strings.Join(got.Paths(), ","); paths != "test_é.txt,b/nested.txt,a.txt" {
		t.Errorf("Paths = %q, want insertion order", paths)
	}
	e, ok := got.Get("test_é.txt")
	if !ok {
		t.Fatal("Get(test_é.txt) missing")
	}
	if e.BlobHash != "h1" || e.Size != 6 || e.Checksum != "c1" || e.Mode != "100644" {
		t.Errorf("entry = %+v", e)
	}
}
