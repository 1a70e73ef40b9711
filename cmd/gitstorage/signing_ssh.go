package main

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/gitstorage/pkg/object"
	"github.com/odvcencio/gitstorage/pkg/repo"
	"golang.org/x/crypto/ssh"
)

// Signatures are stored as "sshsig-v1:<format>:<pubkey b64>:<sig b64>".
const commitSignaturePrefix = "sshsig-v1"

var defaultSigningKeys = []string{"id_ed25519", "id_ecdsa", "id_rsa"}

// newSSHCommitSigner loads an unencrypted SSH private key and returns a
// signer for Repo.Signer along with the resolved key path.
func newSSHCommitSigner(keyPath string) (repo.CommitSigner, string, error) {
	resolved, err := resolveSigningKeyPath(keyPath)
	if err != nil {
		return nil, "", err
	}
	raw, err := os.ReadFile(resolved)
	if err != nil {
		return nil, "", fmt.Errorf("read signing key %q: %w", resolved, err)
	}
	key, err := ssh.ParsePrivateKey(raw)
	if err != nil {
		return nil, "", fmt.Errorf("parse signing key %q: %w", resolved, err)
	}
	return sshSigner(key), resolved, nil
}

func sshSigner(key ssh.Signer) repo.CommitSigner {
	pubB64 := base64.StdEncoding.EncodeToString(key.PublicKey().Marshal())
	return func(payload []byte) (string, error) {
		sig, err := key.Sign(rand.Reader, payload)
		if err != nil {
			return "", fmt.Errorf("ssh sign: %w", err)
		}
		return strings.Join([]string{
			commitSignaturePrefix,
			sig.Format,
			pubB64,
			base64.StdEncoding.EncodeToString(sig.Blob),
		}, ":"), nil
	}
}

// verifyCommitSignature checks c.Signature against the canonical payload and
// returns the signing key's fingerprint.
func verifyCommitSignature(c *object.CommitObj) (string, error) {
	if c.Signature == "" {
		return "", errors.New("commit is not signed")
	}
	parts := strings.Split(c.Signature, ":")
	if len(parts) != 4 || parts[0] != commitSignaturePrefix {
		return "", errors.New("unsupported signature encoding")
	}
	pubRaw, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return "", fmt.Errorf("decode public key: %w", err)
	}
	pub, err := ssh.ParsePublicKey(pubRaw)
	if err != nil {
		return "", fmt.Errorf("parse public key: %w", err)
	}
	blob, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil {
		return "", fmt.Errorf("decode signature: %w", err)
	}
	sig := &ssh.Signature{Format: parts[1], Blob: blob}
	if err := pub.Verify(object.CommitSigningPayload(c), sig); err != nil {
		return "", fmt.Errorf("bad signature: %w", err)
	}
	return ssh.FingerprintSHA256(pub), nil
}

func resolveSigningKeyPath(path string) (string, error) {
	if path != "" {
		return filepath.Abs(path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	for _, name := range defaultSigningKeys {
		candidate := filepath.Join(home, ".ssh", name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no default SSH private key found in ~/.ssh (%s)", strings.Join(defaultSigningKeys, ", "))
}
