package pia

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

type resolveKey struct{}

// Gateway calls region servers by IP while verifying their certificates
// against the PIA root certificate for the server's common name.
type Gateway struct {
	HTTPClient *http.Client

	MetaPort      int
	WireGuardPort int
}

// NewGateway builds a Gateway that trusts only the certificate at caPath.
func NewGateway(caPath string) (*Gateway, error) {
	b, err := os.ReadFile(caPath)
	if err != nil {
		return nil, err
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(b) {
		return nil, fmt.Errorf("no certificates found in %s", caPath)
	}

	// Requests are addressed to the common name, so SNI, hostname
	// verification and the Host header all use it; the dialer swaps in the IP.
	dialer := &net.Dialer{
		Timeout:   defaultTimeout,
		KeepAlive: defaultTimeout,
	}
	tr := &http.Transport{
		TLSClientConfig: &tls.Config{
			RootCAs:    pool,
			MinVersion: tls.VersionTLS12,
		},
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			if value := ctx.Value(resolveKey{}); value != nil {
				resolved, ok := value.(string)
				if !ok {
					return nil, errors.New("invalid resolve address")
				}
				addr = resolved
			}
			return dialer.DialContext(ctx, network, addr)
		},
		TLSHandshakeTimeout: 10 * time.Second,
		// Connections are keyed by common name, which may map to more
		// than one IP across regions.
		DisableKeepAlives: true,
	}

	return &Gateway{
		HTTPClient:    &http.Client{Transport: tr, Timeout: defaultTimeout},
		MetaPort:      DefaultMetaPort,
		WireGuardPort: DefaultWireGuardPort,
	}, nil
}

func (g *Gateway) get(ctx context.Context, u *url.URL, e Endpoint, port int) (*http.Response, error) {
	p := strconv.Itoa(port)
	u.Scheme = "https"
	u.Host = e.CommonName
	if port != DefaultMetaPort {
		u.Host = net.JoinHostPort(e.CommonName, p)
	}

	ctx = context.WithValue(ctx, resolveKey{}, net.JoinHostPort(e.IP, p))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	return g.HTTPClient.Do(req)
}

// GenerateToken logs in on the region's meta server. Rejected credentials
// are reported as ErrAuthentication.
func (g *Gateway) GenerateToken(ctx context.Context, region *Region, username, password string) (string, error) {
	meta, ok := region.Meta()
	if !ok {
		return "", errors.New("there is no meta server")
	}

	u := &url.URL{
		User: url.UserPassword(username, password),
		Path: "/authv3/generateToken",
	}

	resp, err := g.get(ctx, u, meta, g.MetaPort)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s", ErrAuthentication, resp.Status)
	}

	var body struct {
		Status string `json:"status"`
		Token  string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthResponse, err)
	}
	if body.Status != "" && body.Status != "OK" {
		return "", fmt.Errorf("%w: status %s", ErrAuthentication, body.Status)
	}
	if body.Token == "" {
		return "", fmt.Errorf("%w: no token", ErrAuthResponse)
	}

	return body.Token, nil
}

// AddKey registers publicKey on the region's WireGuard server.
func (g *Gateway) AddKey(ctx context.Context, region *Region, token, publicKey string) (*Registration, error) {
	wgServer, ok := region.WireGuard()
	if !ok {
		return nil, errors.New("there is no wireguard server")
	}
	if token == "" {
		return nil, errors.New("empty token")
	}
	if publicKey == "" {
		return nil, errors.New("empty public key")
	}

	values := url.Values{}
	values.Set("pt", token)
	values.Set("pubkey", publicKey)

	u := &url.URL{
		Path:     "/addKey",
		RawQuery: values.Encode(),
	}

	resp, err := g.get(ctx, u, wgServer, g.WireGuardPort)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %s %s", ErrRegistration, resp.Status, b)
	}

	var body Registration
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRegistrationResponse, err)
	}
	if body.Status != "" && body.Status != "OK" {
		return nil, fmt.Errorf("%w: status %s", ErrRegistration, body.Status)
	}

	switch {
	case body.PeerIP == "":
		return nil, fmt.Errorf("%w: missing peer_ip", ErrRegistrationResponse)
	case len(body.DNSServers) == 0:
		return nil, fmt.Errorf("%w: missing dns_servers", ErrRegistrationResponse)
	case body.ServerKey == "":
		return nil, fmt.Errorf("%w: missing server_key", ErrRegistrationResponse)
	case body.ServerIP == "":
		return nil, fmt.Errorf("%w: missing server_ip", ErrRegistrationResponse)
	}

	return &body, nil
}
