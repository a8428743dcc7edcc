package main

import (
	"log"
	"net/http"
	"time"

	"github.com/L11R/piawg/pia"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	username string
	password string
	envFile  string
	timeout  time.Duration

	// Endpoint overrides, hidden from help.
	serverListURL string
	certURL       string
	certPath      string
	metaPort      int
	wgPort        int

	prompt prompter
}

func newRootCmd(p prompter) *cobra.Command {
	opts := &rootOptions{prompt: p}

	cmd := &cobra.Command{
		Use:   "piawg",
		Short: "Generate WireGuard configurations for Private Internet Access",
		Long: `piawg logs in to a Private Internet Access region, registers a fresh
WireGuard key on the region's gateway and writes a wg-quick configuration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&opts.username, "username", "u", "", "Your PIA username (env PIA_USERNAME)")
	f.StringVarP(&opts.password, "password", "p", "", "Your PIA password (env PIA_PASSWD)")
	f.StringVar(&opts.envFile, "env-file", ".env", "dotenv file with PIA_USERNAME and PIA_PASSWD")
	f.DurationVar(&opts.timeout, "timeout", 30*time.Second, "timeout of every HTTP request")

	f.StringVar(&opts.serverListURL, "server-list-url", "", "override the PIA server list URL")
	f.StringVar(&opts.certURL, "cert-url", "", "override the PIA certificate URL")
	f.StringVar(&opts.certPath, "cert-path", "", "where the PIA certificate is cached")
	f.IntVar(&opts.metaPort, "meta-port", pia.DefaultMetaPort, "port of meta servers")
	f.IntVar(&opts.wgPort, "wg-port", pia.DefaultWireGuardPort, "port of WireGuard servers")
	for _, name := range []string{"server-list-url", "cert-url", "meta-port", "wg-port"} {
		_ = f.MarkHidden(name)
	}

	cmd.AddCommand(
		newConnectCmd(opts),
		newRegionsCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

func (o *rootOptions) client() *pia.Client {
	c := pia.NewClient()
	c.HTTPClient = &http.Client{Timeout: o.timeout}
	if o.serverListURL != "" {
		c.ServerListURL = o.serverListURL
	}
	if o.certURL != "" {
		c.CertURL = o.certURL
	}
	if o.certPath != "" {
		c.CertPath = o.certPath
	}
	c.ProbePort = o.metaPort
	return c
}

func (o *rootOptions) gateway(caPath string) (*pia.Gateway, error) {
	g, err := pia.NewGateway(caPath)
	if err != nil {
		return nil, err
	}
	g.HTTPClient.Timeout = o.timeout
	g.MetaPort = o.metaPort
	g.WireGuardPort = o.wgPort
	return g, nil
}

func newLogger(cmd *cobra.Command) *log.Logger {
	return log.New(cmd.ErrOrStderr(), "", 0)
}
