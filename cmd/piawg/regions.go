package main

import (
	"fmt"
	"time"

	"github.com/L11R/piawg/pia"

	"github.com/spf13/cobra"
)

type regionRow struct {
	Name      string `json:"name" yaml:"name"`
	ID        string `json:"id" yaml:"id"`
	Country   string `json:"country" yaml:"country"`
	Meta      string `json:"meta" yaml:"meta"`
	WireGuard string `json:"wg" yaml:"wg"`
	Latency   string `json:"latency,omitempty" yaml:"latency,omitempty"`
}

func newRegionRow(r *pia.Region, latency time.Duration) regionRow {
	row := regionRow{Name: r.Name, ID: r.ID, Country: r.Country}
	if meta, ok := r.Meta(); ok {
		row.Meta = meta.CommonName + "/" + meta.IP
	}
	if wg, ok := r.WireGuard(); ok {
		row.WireGuard = wg.CommonName + "/" + wg.IP
	}
	if latency > 0 {
		row.Latency = latency.Round(time.Millisecond).String()
	}
	return row
}

func newRegionsCmd(root *rootOptions) *cobra.Command {
	var (
		output     string
		latency    bool
		maxLatency time.Duration
	)

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List PIA regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := root.client()
			regions, err := client.Regions(cmd.Context())
			if err != nil {
				return err
			}

			var rows []regionRow
			if latency {
				for _, rl := range client.RankByLatency(cmd.Context(), regions, maxLatency) {
					rows = append(rows, newRegionRow(rl.Region, rl.Latency))
				}
			} else {
				for _, name := range regions.Names() {
					rows = append(rows, newRegionRow(regions[name], 0))
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), newFormatter(output).Format(rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json, yaml")
	cmd.Flags().BoolVar(&latency, "latency", false, "measure latency and sort by it")
	cmd.Flags().DurationVar(&maxLatency, "max-latency", 0, "hide regions slower than this; 0 shows all")

	return cmd
}
