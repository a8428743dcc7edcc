package pia

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"golang.zx2c4.com/wireguard/wgctrl/wgtypes"
)

func TestNativeKeyGenerator(t *testing.T) {
	keys, err := NativeKeyGenerator{}.GenerateKeyPair(context.Background())
	if err != nil {
		t.Fatalf("GenerateKeyPair() failed: %v", err)
	}

	privkey, err := wgtypes.ParseKey(keys.PrivateKey)
	if err != nil {
		t.Fatalf("invalid private key %q: %v", keys.PrivateKey, err)
	}
	if privkey.PublicKey().String() != keys.PublicKey {
		t.Errorf("public key does not match private key")
	}
}

// fakeWG writes a shell script that answers genkey and pubkey like wg does.
func fakeWG(t *testing.T, privkey wgtypes.Key) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}

	script := fmt.Sprintf(`#!/bin/sh
case "$1" in
genkey) echo "  %s  " ;;
pubkey) read key; [ "$key" = "%s" ] || exit 2; echo "%s" ;;
*) exit 1 ;;
esac
`, privkey, privkey, privkey.PublicKey())

	path := filepath.Join(t.TempDir(), "wg")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write fake wg: %v", err)
	}
	return path
}

func TestExecKeyGenerator(t *testing.T) {
	privkey, err := wgtypes.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() failed: %v", err)
	}

	keys, err := ExecKeyGenerator{Path: fakeWG(t, privkey)}.GenerateKeyPair(context.Background())
	if err != nil {
		t.Fatalf("GenerateKeyPair() failed: %v", err)
	}

	if keys.PrivateKey != privkey.String() {
		t.Errorf("expected trimmed private key %q, got %q", privkey.String(), keys.PrivateKey)
	}
	if keys.PublicKey != privkey.PublicKey().String() {
		t.Errorf("expected public key %q, got %q", privkey.PublicKey().String(), keys.PublicKey)
	}
}

func TestExecKeyGeneratorMissingBinary(t *testing.T) {
	g := ExecKeyGenerator{Path: filepath.Join(t.TempDir(), "does-not-exist")}
	if _, err := g.GenerateKeyPair(context.Background()); !errors.Is(err, ErrSubprocess) {
		t.Fatalf("expected ErrSubprocess, got %v", err)
	}
}

func TestExecKeyGeneratorBadOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}

	path := filepath.Join(t.TempDir(), "wg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\necho not-a-key\n"), 0o755); err != nil {
		t.Fatalf("failed to write fake wg: %v", err)
	}

	if _, err := (ExecKeyGenerator{Path: path}).GenerateKeyPair(context.Background()); !errors.Is(err, ErrSubprocess) {
		t.Fatalf("expected ErrSubprocess, got %v", err)
	}
}
