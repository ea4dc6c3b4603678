package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/geo-tutorial/internal/dataset"
)

var seedsCmd = &cobra.Command{
	Use:   "seeds",
	Short: "List embedded seed datasets",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := newConsole(cmd.OutOrStdout())
		out.linef("%-12s %-25s %7s  %s", "NAME", "TITLE", "RECORDS", "BOUNDS (lon, lat)")
		for _, name := range dataset.SeedNames() {
			s, err := dataset.LoadSeed(name)
			if err != nil {
				return err
			}
			b := s.Bounds
			out.linef("%-12s %-25s %7d  [%g, %g] x [%g, %g]",
				s.Name, s.Title, s.Dataset.Len(), b.MinLon, b.MaxLon, b.MinLat, b.MaxLat)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedsCmd)
}
