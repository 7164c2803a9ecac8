package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/socialsearch/internal/domain/tenant"
)

var (
	indexSite  string
	indexSetup bool
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Bulk index tenant content",
	Long: `Index every native document of a tenant, then run the bulk hooks that index
social groups and members. Without --site every active tenant is indexed.
--setup drops and recreates each index first.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexSite, "site", "", "Tenant ID to index (default: all active tenants)")
	indexCmd.Flags().BoolVar(&indexSetup, "setup", false, "Recreate the index before indexing")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	targets, err := indexTargets(cmd, a)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var errs []error
	for _, t := range targets {
		if err := indexTenant(cmd, a, t, out); err != nil {
			fmt.Fprintf(out, "Site %s failed: %v\n", t.ID(), err)
			errs = append(errs, fmt.Errorf("site %s: %w", t.ID(), err))
		}
	}
	if len(errs) == 0 {
		fmt.Fprintf(out, "Done. Indexed %d site(s).\n", len(targets))
	}
	return errors.Join(errs...)
}

func indexTargets(cmd *cobra.Command, a *app) ([]tenant.Tenant, error) {
	if indexSite != "" {
		t, err := a.tenants.Get(cmd.Context(), indexSite)
		if err != nil {
			return nil, err
		}
		return []tenant.Tenant{t}, nil
	}

	const page = 100
	var all []tenant.Tenant
	for offset := 0; ; offset += page {
		batch, err := a.tenants.List(cmd.Context(), tenant.StatusActive, offset, page)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < page {
			return all, nil
		}
	}
}

func indexTenant(cmd *cobra.Command, a *app, t tenant.Tenant, out io.Writer) error {
	ctx := cmd.Context()
	name, err := a.indexer.Setup(ctx, t, indexSetup)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Site %s -> %s\n", t.ID(), name)
	return a.indexer.IndexAll(ctx, t, out)
}
