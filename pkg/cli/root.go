package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/adfharrison1/go-esmigrate/pkg/client"
	"github.com/adfharrison1/go-esmigrate/pkg/config"
)

var version = "dev"

// SetVersion sets the version reported by --version
func SetVersion(v string) {
	if v == "" {
		return
	}
	version = v
}

// NewRootCommand builds the go-esmigrate command tree. Flag defaults come
// from the environment (see package config).
func NewRootCommand() *cobra.Command {
	cfg, cfgErr := config.FromEnv()
	if cfgErr != nil {
		cfg = config.Default()
	}

	rootCmd := &cobra.Command{
		Use:     "go-esmigrate",
		Version: version,
		Short:   "Zero-downtime index migrations behind a stable alias",
		Long: `go-esmigrate creates a new index generation for an alias, copies the
documents of the current generation into it and moves the alias in one
atomic request, so that clients reading and writing through the alias never
see a missing or half-built index.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfgErr
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.URL, "url", cfg.URL, "Engine base URL (env "+config.EnvURL+")")
	rootCmd.PersistentFlags().Uint64Var(&cfg.Retries, "retries", cfg.Retries, "Retries for engine reads (env "+config.EnvRetries+")")

	rootCmd.AddCommand(
		newMigrateCommand(&cfg),
		newAliasesCommand(&cfg),
		newServeCommand(&cfg),
	)

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

func newClient(cfg *config.Config) *client.Client {
	return client.New(cfg.URL, client.WithRetries(cfg.Retries))
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
