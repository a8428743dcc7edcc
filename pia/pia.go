package pia

import (
	"net/http"
	"time"
)

const (
	serverListURL = "https://serverlist.piaservers.net/vpninfo/servers/v4"
	certURL       = "http://www.privateinternetaccess.com/openvpn/ca.rsa.4096.crt"
	certPath      = "ca.rsa.4096.crt"

	DefaultMetaPort      = 443
	DefaultWireGuardPort = 1337

	defaultTimeout = 30 * time.Second
)

// Client talks to the public PIA endpoints: the server list and the
// certificate download. Calls to region servers go through a Gateway.
type Client struct {
	HTTPClient *http.Client

	ServerListURL string
	CertURL       string
	CertPath      string

	// ProbePort is dialed on meta servers when ranking regions by latency.
	ProbePort int
}

func NewClient() *Client {
	return &Client{
		HTTPClient:    &http.Client{Timeout: defaultTimeout},
		ServerListURL: serverListURL,
		CertURL:       certURL,
		CertPath:      certPath,
		ProbePort:     DefaultMetaPort,
	}
}
