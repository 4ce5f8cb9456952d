package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"hytalei18n/internal/application"
	"hytalei18n/internal/config"
	"hytalei18n/internal/infrastructure/database"
	infrai18n "hytalei18n/internal/infrastructure/i18n"
	"hytalei18n/internal/ports/output"
	"hytalei18n/pkg/i18n"
)

type rootOptions struct {
	dir           string
	patterns      []string
	defaultLocale string
	databaseURL   string
}

var (
	rootOpts rootOptions
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "i18nctl",
	Short:         msg(MsgCliShort, nil),
	Long:          msg(MsgCliLong, nil),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		applyFlags(cmd, loaded)
		cfg = loaded
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "i18nctl: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootOpts.dir, "dir", "", msg(MsgFlagDir, nil))
	flags.StringArrayVar(&rootOpts.patterns, "pattern", nil, msg(MsgFlagPattern, nil))
	flags.StringVar(&rootOpts.defaultLocale, "default-locale", "", msg(MsgFlagDefaultLocale, nil))
	flags.StringVar(&rootOpts.databaseURL, "database-url", "", msg(MsgFlagDatabaseURL, nil))
}

// applyFlags lets explicitly set flags override the environment.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("dir") {
		c.ResourceDir = rootOpts.dir
	}
	if flags.Changed("pattern") {
		c.Patterns = rootOpts.patterns
	}
	if flags.Changed("default-locale") {
		c.DefaultLocale = rootOpts.defaultLocale
	}
	if flags.Changed("database-url") {
		c.DatabaseURL = rootOpts.databaseURL
	}
}

// app is the wired catalog service plus what must be released after use.
type app struct {
	service *application.CatalogService
	repo    *database.MessageRepository
	pool    *pgxpool.Pool
}

func (a *app) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// fileSources returns the lang file and go-i18n sources configured in c.
func fileSources(c *config.Config) ([]output.ResourceSource, error) {
	var sources []output.ResourceSource
	if len(c.Patterns) > 0 {
		src, err := infrai18n.NewDirSource(c.ResourceDir, c.Patterns...)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if c.GoI18nGlob != "" {
		sources = append(sources, infrai18n.NewGoI18nSource(os.DirFS(c.ResourceDir), c.GoI18nGlob))
	}
	return sources, nil
}

// catalogSources picks where messages come from. Once imported, the database holds
// the same keys as the files, so a configured database replaces the file sources.
func catalogSources(c *config.Config, db output.ResourceSource) ([]output.ResourceSource, error) {
	if db != nil {
		return []output.ResourceSource{db}, nil
	}
	return fileSources(c)
}

// newApp wires the message sources and the localizer. withDatabase reads from
// PostgreSQL when a database URL is configured, and from the files otherwise.
func newApp(ctx context.Context, c *config.Config, withDatabase bool) (*app, error) {
	resolver, err := i18n.NewResolver(c.DefaultLocale, c.ResolverOptions()...)
	if err != nil {
		return nil, err
	}

	a := &app{}
	var db output.ResourceSource
	if withDatabase && c.DatabaseURL != "" {
		pool, err := database.NewPool(ctx, c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		a.pool = pool
		a.repo = database.NewMessageRepository(pool)
		db = a.repo
	}
	sources, err := catalogSources(c, db)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.service = application.NewCatalogService(i18n.New(resolver, nil), sources...)
	return a, nil
}

func requireDatabase(c *config.Config) error {
	if c.DatabaseURL == "" {
		return errors.New(msg(MsgErrDatabase, nil))
	}
	return nil
}
