package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/socialsearch/internal/version"
)

var (
	// envFlag overrides the ENV variable when selecting config/<env>.yaml.
	envFlag string
)

var rootCmd = &cobra.Command{
	Use:   "socialsearch",
	Short: "Federated search over tenant sites and their social content",
	Long: `socialsearch indexes documents, groups and members of every tenant site into
per-tenant search indexes and serves searches that may span all of them.`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("socialsearch {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&envFlag, "env", "", "Config environment (default: $ENV or local)")
}
