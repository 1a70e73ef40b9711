package repo

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_Defaults(t *testing.T) {
	r := initTestRepo(t)
	cfg, err := r.ReadConfig()
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if !cfg.Core.CompressEnabled() {
		t.Error("compression disabled by default")
	}
	if _, ok := cfg.Identity(); ok {
		t.Error("fresh config should carry no identity")
	}
}

func TestConfig_RoundTrip(t *testing.T) {
	r := initTestRepo(t)
	off := false
	cfg := &Config{
		User: UserConfig{Name: "Gérard Test", Email: "gerard.test@example.com"},
		Core: CoreConfig{Compress: &off},
	}
	if err := r.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}

	got, err := r.ReadConfig()
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	sig, ok := got.Identity()
	if !ok || sig.Name != "Gérard Test" || sig.Email != "gerard.test@example.com" {
		t.Errorf("Identity = %+v, %v", sig, ok)
	}
	if got.Core.CompressEnabled() {
		t.Error("CompressEnabled = true, want false")
	}
}

func TestConfig_UncompressedStore(t *testing.T) {
	r := initTestRepo(t)
	off := false
	if err := r.WriteConfig(&Config{Core: CoreConfig{Compress: &off}}); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}

	reopened, err := Open(r.RootDir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	writeWorktreeFile(t, reopened, "a.txt", "hello")
	mustCommit(t, reopened, "plain")

	stg, err := reopened.ReadStaging()
	if err != nil {
		t.Fatalf("ReadStaging: %v", err)
	}
	e, _ := stg.Get("a.txt")
	raw, err := os.ReadFile(filepath.Join(r.MetaDir, "objects", string(e.BlobHash[:2]), string(e.BlobHash[2:])))
	if err != nil {
		t.Fatalf("read object file: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("blob 5\x00")) {
		t.Errorf("object file = %q, want plain envelope", raw)
	}
}
