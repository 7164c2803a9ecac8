package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/socialsearch/internal/domain/tenant"
)

var (
	tenantName      string
	tenantURL       string
	tenantStatus    string
	tenantIndexName string
	tenantsStatus   string
)

var tenantsCmd = &cobra.Command{
	Use:   "tenants",
	Short: "Manage the tenant directory",
}

var tenantsAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add or update a tenant",
	Args:  cobra.ExactArgs(1),
	RunE:  runTenantsAdd,
}

var tenantsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tenants by status",
	RunE:  runTenantsList,
}

func init() {
	tenantsAddCmd.Flags().StringVar(&tenantName, "name", "", "Display name")
	tenantsAddCmd.Flags().StringVar(&tenantURL, "url", "", "Site base URL")
	tenantsAddCmd.Flags().StringVar(&tenantStatus, "status", string(tenant.StatusActive),
		"Status: active, archived, spam, deleted")
	tenantsAddCmd.Flags().StringVar(&tenantIndexName, "index-name", "", "Explicit index name (default: site-<id>)")
	tenantsListCmd.Flags().StringVar(&tenantsStatus, "status", string(tenant.StatusActive), "Status to list")

	tenantsCmd.AddCommand(tenantsAddCmd, tenantsListCmd)
	rootCmd.AddCommand(tenantsCmd)
}

func runTenantsAdd(cmd *cobra.Command, args []string) error {
	t, err := tenant.New(args[0], tenantName, tenantURL, tenant.Status(tenantStatus), tenantIndexName)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.tenants.Put(cmd.Context(), t); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Tenant %s saved (%s).\n", t.ID(), t.Status())
	return nil
}

func runTenantsList(cmd *cobra.Command, _ []string) error {
	status := tenant.Status(tenantsStatus)
	if !status.IsValid() {
		return fmt.Errorf("invalid status %q", tenantsStatus)
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tURL\tINDEX")
	const page = 100
	for offset := 0; ; offset += page {
		batch, err := a.tenants.List(cmd.Context(), status, offset, page)
		if err != nil {
			return err
		}
		for _, t := range batch {
			idx := t.IndexName()
			if idx == "" {
				idx = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID(), t.Name(), t.URL(), idx)
		}
		if len(batch) < page {
			break
		}
	}
	return w.Flush()
}
