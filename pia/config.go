package pia

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// RenderConfig builds a wg-quick configuration from a key pair and the
// gateway's answer to AddKey.
func RenderConfig(keys KeyPair, added *Registration) string {
	port := added.ServerPort
	if port == 0 {
		port = DefaultWireGuardPort
	}

	return fmt.Sprintf(
		`[Interface]
Address = %s
PrivateKey = %s
DNS = %s

[Peer]
PersistentKeepalive = 25
PublicKey = %s
AllowedIPs = 0.0.0.0/0
Endpoint = %s
`,
		added.PeerIP,
		keys.PrivateKey,
		strings.Join(added.DNSServers, ","),
		added.ServerKey,
		net.JoinHostPort(added.ServerIP, strconv.Itoa(port)),
	)
}

// ConfigFileName returns e.g. "PIA-US-East-20240102T150405.conf".
func ConfigFileName(region string, t time.Time) string {
	return fmt.Sprintf("PIA-%s-%s.conf", strings.ReplaceAll(region, " ", "-"), t.Format("20060102T150405"))
}
