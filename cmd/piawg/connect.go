package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/L11R/piawg/pia"

	"github.com/spf13/cobra"
)

type connectOptions struct {
	region        string
	outDir        string
	keygen        string
	wgPath        string
	latency       bool
	maxLatency    time.Duration
	loginAttempts int
}

func newConnectCmd(root *rootOptions) *cobra.Command {
	opts := &connectOptions{}

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Register a new key in a region and write its WireGuard config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("latency") && opts.region == "" {
				opts.latency = root.prompt.Confirm("Sort servers by latency")
			}
			return runConnect(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.region, "region", "r", "", "region name, e.g. \"US East\" (prompted if empty)")
	f.StringVarP(&opts.outDir, "out", "o", ".", "directory to write the configuration to")
	f.StringVar(&opts.keygen, "keygen", "native", "key generator: native or wg")
	f.StringVar(&opts.wgPath, "wg-path", "wg", "wg binary used by --keygen=wg")
	f.BoolVar(&opts.latency, "latency", false, "sort regions by latency before prompting")
	f.DurationVar(&opts.maxLatency, "max-latency", 100*time.Millisecond, "hide regions slower than this; 0 shows all")
	f.IntVar(&opts.loginAttempts, "login-attempts", 3, "how many times to ask for credentials")

	return cmd
}

func keyGenerator(opts *connectOptions) (pia.KeyGenerator, error) {
	switch opts.keygen {
	case "native", "":
		return pia.NativeKeyGenerator{}, nil
	case "wg":
		return pia.ExecKeyGenerator{Path: opts.wgPath}, nil
	default:
		return nil, fmt.Errorf("unknown key generator %q", opts.keygen)
	}
}

func runConnect(cmd *cobra.Command, root *rootOptions, opts *connectOptions) error {
	ctx := cmd.Context()
	logger := newLogger(cmd)

	keygen, err := keyGenerator(opts)
	if err != nil {
		return err
	}
	creds, err := loadCredentials(root.envFile, root.username, root.password)
	if err != nil {
		return err
	}

	client := root.client()
	caPath, err := client.EnsureTrustAnchor(ctx)
	if err != nil {
		return err
	}

	regions, err := client.Regions(ctx)
	if err != nil {
		return err
	}

	region, err := selectRegion(ctx, client, root.prompt, regions, opts)
	if err != nil {
		return err
	}
	logger.Printf("Selected '%s'", region.Name)

	keys, err := keygen.GenerateKeyPair(ctx)
	if err != nil {
		return err
	}

	gw, err := root.gateway(caPath)
	if err != nil {
		return err
	}

	token, err := login(ctx, gw, root.prompt, region, creds, opts.loginAttempts, logger)
	if err != nil {
		return err
	}

	added, err := gw.AddKey(ctx, region, token, keys.PublicKey)
	if err != nil {
		return err
	}
	logger.Println(successStyle.Render("Added key to server!"))

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir output: %w", err)
	}
	path := filepath.Join(opts.outDir, pia.ConfigFileName(region.Name, time.Now()))
	logger.Printf("Saving configuration file %s", path)
	if err := os.WriteFile(path, []byte(pia.RenderConfig(keys, added)), 0o600); err != nil {
		return fmt.Errorf("write wireguard config: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func selectRegion(ctx context.Context, client *pia.Client, p prompter, regions pia.Regions, opts *connectOptions) (*pia.Region, error) {
	if opts.region != "" {
		r, ok := regions[opts.region]
		if !ok {
			return nil, fmt.Errorf("unknown region %q", opts.region)
		}
		return r, nil
	}

	var candidates []*pia.Region
	var items []string
	if opts.latency {
		for _, rl := range client.RankByLatency(ctx, regions, opts.maxLatency) {
			candidates = append(candidates, rl.Region)
			items = append(items, fmt.Sprintf("%s (%s)", rl.Region.Name, rl.Latency.Round(time.Millisecond)))
		}
	} else {
		for _, name := range regions.Names() {
			candidates = append(candidates, regions[name])
			items = append(items, name)
		}
	}
	if len(candidates) == 0 {
		return nil, errors.New("no regions available")
	}

	i, err := p.Select("Please choose a region", items)
	if err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	return candidates[i], nil
}

// login asks for new credentials after every rejected attempt until
// attempts are exhausted. Other errors end the loop immediately.
func login(ctx context.Context, gw *pia.Gateway, p prompter, region *pia.Region, creds credentials, attempts int, logger *log.Logger) (string, error) {
	for attempt := 1; ; attempt++ {
		if !creds.complete() {
			var err error
			creds, err = p.Credentials()
			if err != nil {
				return "", fmt.Errorf("prompt failed: %w", err)
			}
		}

		token, err := gw.GenerateToken(ctx, region, creds.Username, creds.Password)
		if err == nil {
			logger.Println(successStyle.Render("Login successful!"))
			return token, nil
		}
		if !errors.Is(err, pia.ErrAuthentication) || attempt >= attempts {
			return "", err
		}

		logger.Println(warnStyle.Render("Error logging in, please try again..."))
		creds = credentials{}
	}
}
