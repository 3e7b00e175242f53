// Package main is the seeder CLI that bulk-loads synthetic walkers and requests.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/pawsitivewalks/pawsitivewalks/internal/config"
	"github.com/pawsitivewalks/pawsitivewalks/internal/repository"
	"github.com/pawsitivewalks/pawsitivewalks/internal/seed"
)

type seedConfig struct {
	DatabaseURL string `env:"DATABASE_URL"`
}

type options struct {
	databaseURL string
	count       int
	reset       bool
	migrate     bool
	seed        int64
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	var cfg seedConfig
	_ = env.Parse(&cfg)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = config.DefaultDatabaseURL
	}

	root := &cobra.Command{
		Use:   "seed",
		Short: "Load synthetic walkers and requests into PostgreSQL",
		Long: `Generate fixture data for local development.

Examples:
  seed all
  seed walkers --count 500 --reset
  seed requests --seed 42`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.databaseURL, "database-url", cfg.DatabaseURL, "PostgreSQL connection string (defaults to $DATABASE_URL)")
	flags.IntVar(&opts.count, "count", 1000, "number of rows to generate per table")
	flags.BoolVar(&opts.reset, "reset", true, "delete existing rows before loading")
	flags.BoolVar(&opts.migrate, "migrate", true, "apply schema migrations first")
	flags.Int64Var(&opts.seed, "seed", time.Now().UnixNano(), "random seed for reproducible data")

	root.AddCommand(
		&cobra.Command{
			Use:   "walkers",
			Short: "Seed walker profiles",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd.Context(), cmd.OutOrStdout(), opts, true, false)
			},
		},
		&cobra.Command{
			Use:   "requests",
			Short: "Seed walking requests",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd.Context(), cmd.OutOrStdout(), opts, false, true)
			},
		},
		&cobra.Command{
			Use:   "all",
			Short: "Seed walkers and requests",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd.Context(), cmd.OutOrStdout(), opts, true, true)
			},
		},
	)

	return root
}

func run(ctx context.Context, out io.Writer, opts *options, walkers, requests bool) error {
	if opts.count <= 0 {
		return fmt.Errorf("--count must be positive, got %d", opts.count)
	}

	if opts.migrate {
		if err := repository.Migrate(opts.databaseURL); err != nil {
			return err
		}
	}

	db, err := sql.Open("postgres", opts.databaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	loader := seed.NewLoader(db)
	gen := seed.NewGenerator(opts.seed, time.Now())
	fmt.Fprintf(out, "Seed: %d\n", opts.seed)

	if walkers {
		if err := seedWalkers(ctx, out, loader, gen, opts); err != nil {
			return err
		}
	}
	if requests {
		if err := seedRequests(ctx, out, loader, gen, opts); err != nil {
			return err
		}
	}
	return nil
}

func seedWalkers(ctx context.Context, out io.Writer, loader *seed.Loader, gen *seed.Generator, opts *options) error {
	if opts.reset {
		n, err := loader.Reset(ctx, "walkers")
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared %d walkers\n", n)
	}

	n, err := loader.LoadWalkers(ctx, gen.Walkers(opts.count))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Inserted %d walkers\n", n)

	stats, err := loader.WalkerStats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Walkers: total=%d group_walks=%d (%d%%) morning=%d (%d%%) sizes small=%d medium=%d large=%d\n",
		stats.Total,
		stats.OpenToGroupWalks, seed.Percent(stats.OpenToGroupWalks, stats.Total),
		stats.MorningAvailable, seed.Percent(stats.MorningAvailable, stats.Total),
		stats.SmallPref, stats.MediumPref, stats.LargePref,
	)
	return nil
}

func seedRequests(ctx context.Context, out io.Writer, loader *seed.Loader, gen *seed.Generator, opts *options) error {
	if opts.reset {
		n, err := loader.Reset(ctx, "requests")
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared %d requests\n", n)
	}

	n, err := loader.LoadRequests(ctx, gen.Requests(opts.count))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Inserted %d requests\n", n)

	stats, err := loader.RequestStats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Requests: total=%d open=%d social=%d (%d%%) sizes small=%d medium=%d large=%d\n",
		stats.Total, stats.Open,
		stats.OpenToSocial, seed.Percent(stats.OpenToSocial, stats.Total),
		stats.Small, stats.Medium, stats.Large,
	)
	return nil
}
