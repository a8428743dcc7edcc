package main

import (
	"strings"
	"testing"

	"github.com/L11R/piawg/pia"
	"gopkg.in/yaml.v3"
)

var testRows = []regionRow{
	newRegionRow(&pia.Region{
		ID:      "us_east",
		Name:    "US East",
		Country: "US",
		Servers: map[string][]pia.Endpoint{
			pia.RoleMeta:      {{CommonName: "meta.example", IP: "1.2.3.4"}},
			pia.RoleWireGuard: {{CommonName: "wg.example", IP: "5.6.7.8"}},
		},
	}, 0),
}

func TestTableFormatter(t *testing.T) {
	out := newFormatter("table").Format(testRows)
	for _, want := range []string{"NAME", "US East", "meta.example/1.2.3.4", "wg.example/5.6.7.8"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected table to contain %q, got:\n%s", want, out)
		}
	}

	if out := newFormatter("").Format(nil); out != "No regions found.\n" {
		t.Errorf("unexpected empty table %q", out)
	}
}

func TestYAMLFormatter(t *testing.T) {
	out := newFormatter("yaml").Format(testRows)

	var rows []regionRow
	if err := yaml.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("invalid yaml %q: %v", out, err)
	}
	if len(rows) != 1 || rows[0] != testRows[0] {
		t.Errorf("unexpected rows %+v", rows)
	}
	if strings.Contains(out, "latency") {
		t.Errorf("empty latency should be omitted:\n%s", out)
	}
}

func TestJSONFormatterEmpty(t *testing.T) {
	if out := newFormatter("json").Format(nil); out != "[]\n" {
		t.Errorf("unexpected output %q", out)
	}
}
