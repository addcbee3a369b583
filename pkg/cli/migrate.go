package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/adfharrison1/go-esmigrate/pkg/config"
	"github.com/adfharrison1/go-esmigrate/pkg/domain"
	"github.com/adfharrison1/go-esmigrate/pkg/lock"
	"github.com/adfharrison1/go-esmigrate/pkg/migration"
)

func newMigrateCommand(cfg *config.Config) *cobra.Command {
	var (
		bodyFile  string
		prefix    string
		target    int
		replace   int
		noReindex bool
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "migrate <alias>",
		Short: "Move an alias to a new index generation",
		Long: `Create the next index generation for the alias with the given body,
reindex the current generation into it and swap the alias atomically.

The body file holds the index mappings and settings as JSON; use "-" to read
it from standard input.`,
		Example: `  go-esmigrate migrate users --body users.json
  go-esmigrate migrate users --body users.json --version 7 --replace 5
  go-esmigrate migrate users --body users.json --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alias := args[0]

			body, err := readBody(cmd, bodyFile)
			if err != nil {
				return err
			}

			if prefix == "" {
				prefix = migration.DefaultPrefix(alias)
			}

			var options []migration.PlannerOption
			if target > 0 {
				options = append(options, migration.WithVersion(target))
			}
			if cfg.RedisAddr != "" {
				locker := lock.OpenRedisLocker(lock.RedisOptions{
					Address:  cfg.RedisAddr,
					Password: cfg.RedisPassword,
					DB:       cfg.RedisDB,
				})
				defer locker.Close()
				options = append(options, migration.WithLocker(locker), migration.WithLockTTL(cfg.LockTTL))
			}

			planner, err := migration.NewPlanner(newClient(cfg), alias, prefix, body, options...)
			if err != nil {
				return err
			}

			execOptions := []migration.ExecuteOption{migration.WithReindex(!noReindex)}
			if cmd.Flags().Changed("replace") {
				execOptions = append(execOptions, migration.ReplacingVersion(replace))
			}

			if dryRun {
				plan, err := planner.Plan(cmd.Context(), execOptions...)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), plan)
			}

			result, err := planner.Execute(cmd.Context(), execOptions...)
			if err != nil {
				if result != nil {
					// Show how far the sequence got
					printJSON(cmd.ErrOrStderr(), result)
				}
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&bodyFile, "body", "b", "", "JSON file with the index body, - for stdin")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Index name prefix (default <alias>__v)")
	cmd.Flags().IntVar(&target, "version", 0, "Explicit target version (default next generation)")
	cmd.Flags().IntVar(&replace, "replace", 0, "Live version to replace (default highest)")
	cmd.Flags().BoolVar(&noReindex, "no-reindex", false, "Swap the alias without copying documents")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the plan without changing anything")
	cmd.Flags().StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address for the migration lease (env "+config.EnvRedisAddr+")")
	cmd.Flags().DurationVar(&cfg.LockTTL, "lock-ttl", cfg.LockTTL, "Migration lease TTL (env "+config.EnvLockTTL+")")
	cmd.MarkFlagRequired("body")

	return cmd
}

func readBody(cmd *cobra.Command, filename string) (domain.IndexBody, error) {
	var reader io.Reader
	if filename == "-" {
		reader = cmd.InOrStdin()
	} else {
		file, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to open body file: %w", err)
		}
		defer file.Close()
		reader = file
	}

	var body domain.IndexBody
	if err := json.NewDecoder(reader).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode body file %s: %w", filename, err)
	}
	return body, nil
}
