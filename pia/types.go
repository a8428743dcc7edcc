package pia

import (
	"sort"
	"time"
)

// Service roles inside Region.Servers.
const (
	RoleMeta      = "meta"
	RoleWireGuard = "wg"
)

type serverList struct {
	Groups  map[string]Group `json:"groups"`
	Regions []*Region        `json:"regions"`
}

type Group []struct {
	Name  string `json:"name"`
	Ports []int  `json:"ports"`
}

type Region struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Country        string                `json:"country"`
	AutoRegion     bool                  `json:"auto_region"`
	DNS            string                `json:"dns"`
	PortForwarding bool                  `json:"port_forward"`
	Geo            bool                  `json:"geo"`
	Offline        bool                  `json:"offline"`
	Servers        map[string][]Endpoint `json:"servers"`
}

// Endpoint is a single server of a region. IP is the address to connect to,
// CommonName is the name its certificate is issued for.
type Endpoint struct {
	IP         string `json:"ip"`
	CommonName string `json:"cn"`
}

// Meta returns the first authentication endpoint of the region.
func (r *Region) Meta() (Endpoint, bool) {
	return r.first(RoleMeta)
}

// WireGuard returns the first WireGuard gateway of the region.
func (r *Region) WireGuard() (Endpoint, bool) {
	return r.first(RoleWireGuard)
}

func (r *Region) first(role string) (Endpoint, bool) {
	if r == nil {
		return Endpoint{}, false
	}
	endpoints := r.Servers[role]
	if len(endpoints) == 0 {
		return Endpoint{}, false
	}
	return endpoints[0], true
}

// Regions indexes regions by their display name.
type Regions map[string]*Region

// Names returns region names in alphabetical order.
func (rs Regions) Names() []string {
	names := make([]string, 0, len(rs))
	for name := range rs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type RegionLatency struct {
	Region  *Region
	Latency time.Duration
}

type KeyPair struct {
	PrivateKey string
	PublicKey  string
}

// Registration is the addKey answer of a WireGuard gateway.
type Registration struct {
	Status          string   `json:"status"`
	ServerKey       string   `json:"server_key"`
	ServerPort      int      `json:"server_port"`
	ServerIP        string   `json:"server_ip"`
	ServerVirtualIP string   `json:"server_vip"`
	PeerIP          string   `json:"peer_ip"`
	PeerPublicKey   string   `json:"peer_pubkey"`
	DNSServers      []string `json:"dns_servers"`
}
