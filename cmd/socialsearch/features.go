package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var featuresJSON bool

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Show registered features and their status",
	RunE:  runFeatures,
}

func init() {
	featuresCmd.Flags().BoolVar(&featuresJSON, "json", false, "Print JSON instead of a table")
	rootCmd.AddCommand(featuresCmd)
}

func runFeatures(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	items := a.features.List(cmd.Context())
	out := cmd.OutOrStdout()
	if featuresJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tTITLE\tACTIVE\tSTATUS\tREINDEX\tMESSAGE")
	for _, f := range items {
		reindex := "-"
		if f.RequiresInstallReindex {
			reindex = "required"
		}
		fmt.Fprintf(w, "%s\t%s\t%t\t%d\t%s\t%s\n", f.Slug, f.Title, f.Active, f.Status.Code, reindex, f.Status.Message)
	}
	return w.Flush()
}
