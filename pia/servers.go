package pia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"
)

// Regions fetches the PIA server list and indexes it by region name.
func (c *Client) Regions(ctx context.Context) (Regions, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ServerListURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryFetch, err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryFetch, resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryFetch, err)
	}

	return ParseServerList(b)
}

// ParseServerList decodes the JSON document that precedes the first blank
// line of a server list response. The signature after it is ignored.
// Regions sharing a name are overwritten by the later one.
func ParseServerList(b []byte) (Regions, error) {
	if i := bytes.Index(b, []byte("\n\n")); i >= 0 {
		b = b[:i]
	}

	var list serverList
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryParse, err)
	}
	if list.Regions == nil {
		return nil, fmt.Errorf("%w: no regions", ErrDirectoryParse)
	}

	regions := make(Regions, len(list.Regions))
	for _, r := range list.Regions {
		if r == nil {
			continue
		}
		regions[r.Name] = r
	}

	return regions, nil
}

// RankByLatency measures TCP connect time to the meta server of every region
// and returns the reachable ones, fastest first. Regions slower than
// maxLatency are dropped; set maxLatency to 0 to keep all reachable regions.
func (c *Client) RankByLatency(ctx context.Context, regions Regions, maxLatency time.Duration) []RegionLatency {
	dialer := &net.Dialer{Timeout: maxLatency}
	port := strconv.Itoa(c.ProbePort)

	// Wait group to sync goroutines
	var wg sync.WaitGroup
	// Channel to get result back
	results := make(chan RegionLatency, len(regions))
	for _, r := range regions {
		meta, ok := r.Meta()
		if !ok {
			continue
		}

		wg.Add(1)
		go func(r *Region, addr string) {
			defer wg.Done()

			now := time.Now()
			conn, err := dialer.DialContext(ctx, "tcp", addr)
			if err != nil {
				return
			}
			l := time.Since(now)
			if err := conn.Close(); err != nil {
				return
			}
			if maxLatency > 0 && l > maxLatency {
				return
			}

			results <- RegionLatency{Region: r, Latency: l}
		}(r, net.JoinHostPort(meta.IP, port))
	}

	wg.Wait()
	close(results)

	ranked := make([]RegionLatency, 0, len(regions))
	for r := range results {
		ranked = append(ranked, r)
	}

	// Sort by latency (ascending)
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Latency < ranked[j].Latency
	})

	return ranked
}
