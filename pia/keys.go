package pia

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"golang.zx2c4.com/wireguard/wgctrl/wgtypes"
)

type KeyGenerator interface {
	GenerateKeyPair(ctx context.Context) (KeyPair, error)
}

// NativeKeyGenerator generates Curve25519 keys in process.
type NativeKeyGenerator struct{}

func (NativeKeyGenerator) GenerateKeyPair(context.Context) (KeyPair, error) {
	privkey, err := wgtypes.GeneratePrivateKey()
	if err != nil {
		return KeyPair{}, err
	}

	return KeyPair{
		PrivateKey: privkey.String(),
		PublicKey:  privkey.PublicKey().String(),
	}, nil
}

// ExecKeyGenerator shells out to `wg genkey` and `wg pubkey`.
type ExecKeyGenerator struct {
	// Path of the wg binary, "wg" if empty.
	Path string
}

func (g ExecKeyGenerator) GenerateKeyPair(ctx context.Context) (KeyPair, error) {
	privkey, err := g.run(ctx, "", "genkey")
	if err != nil {
		return KeyPair{}, err
	}

	pubkey, err := g.run(ctx, privkey, "pubkey")
	if err != nil {
		return KeyPair{}, err
	}

	return KeyPair{PrivateKey: privkey, PublicKey: pubkey}, nil
}

func (g ExecKeyGenerator) run(ctx context.Context, stdin, arg string) (string, error) {
	path := g.Path
	if path == "" {
		path = "wg"
	}

	cmd := exec.CommandContext(ctx, path, arg)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%w: %s %s: %v %s", ErrSubprocess, path, arg, err, bytes.TrimSpace(stderr.Bytes()))
	}

	key := string(bytes.TrimSpace(out))
	if _, err := wgtypes.ParseKey(key); err != nil {
		return "", fmt.Errorf("%w: %s %s: %v", ErrSubprocess, path, arg, err)
	}

	return key, nil
}
