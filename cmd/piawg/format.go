package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

type formatter interface {
	Format(rows []regionRow) string
}

// newFormatter supports "table" (default), "json" and "yaml".
func newFormatter(format string) formatter {
	switch strings.ToLower(format) {
	case "json":
		return jsonFormatter{}
	case "yaml":
		return yamlFormatter{}
	default:
		return tableFormatter{}
	}
}

type tableFormatter struct{}

func (tableFormatter) Format(rows []regionRow) string {
	if len(rows) == 0 {
		return "No regions found.\n"
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tID\tCOUNTRY\tMETA\tWG\tLATENCY")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.Name, r.ID, r.Country, r.Meta, r.WireGuard, r.Latency)
	}
	w.Flush()
	return buf.String()
}

type jsonFormatter struct{}

func (jsonFormatter) Format(rows []regionRow) string {
	if rows == nil {
		rows = []regionRow{}
	}
	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Sprintf("error formatting JSON: %v\n", err)
	}
	return string(b) + "\n"
}

type yamlFormatter struct{}

func (yamlFormatter) Format(rows []regionRow) string {
	b, err := yaml.Marshal(rows)
	if err != nil {
		return fmt.Sprintf("error formatting YAML: %v\n", err)
	}
	return string(b)
}
