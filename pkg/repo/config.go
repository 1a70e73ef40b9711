package repo

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the repository-local configuration stored in
// .gitstorage/config.toml.
type Config struct {
	User UserConfig `toml:"user"`
	Core CoreConfig `toml:"core"`
}

// UserConfig supplies the default commit identity.
type UserConfig struct {
	Name  string `toml:"name,omitempty"`
	Email string `toml:"email,omitempty"`
}

// CoreConfig holds object store settings.
type CoreConfig struct {
	// Compress enables zstd compression of new loose objects. Unset means on.
	Compress *bool `toml:"compress,omitempty"`
}

// CompressEnabled reports whether new objects should be compressed.
func (c CoreConfig) CompressEnabled() bool {
	return c.Compress == nil || *c.Compress
}

// DefaultConfig returns the configuration written by Init.
func DefaultConfig() *Config {
	on := true
	return &Config{Core: CoreConfig{Compress: &on}}
}

// Identity returns the configured user as a commit signature. ok is false
// when either field is missing.
func (c *Config) Identity() (Signature, bool) {
	sig := Signature{
		Name:  strings.TrimSpace(c.User.Name),
		Email: strings.TrimSpace(c.User.Email),
	}
	return sig, sig.Name != "" && sig.Email != ""
}

func (r *Repo) configPath() string {
	return filepath.Join(r.MetaDir, "config.toml")
}

// ReadConfig reads .gitstorage/config.toml. Missing config returns an empty
// config.
func (r *Repo) ReadConfig() (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(r.configPath(), &cfg); err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", ioError(err))
	}
	return &cfg, nil
}

// WriteConfig atomically writes .gitstorage/config.toml.
func (r *Repo) WriteConfig(cfg *Config) error {
	if cfg == nil {
		cfg = &Config{}
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("write config: encode: %w", err)
	}
	if err := writeFileAtomic(r.MetaDir, r.configPath(), ".config-tmp-*", buf.Bytes()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file in dir and renames it over path.
func writeFileAtomic(dir, path, pattern string, data []byte) error {
	tmp, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return fmt.Errorf("tmpfile: %w", ioError(err))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write: %w", ioError(err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close: %w", ioError(err))
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename: %w", ioError(err))
	}
	return nil
}
