package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/eringen/landing"
	"github.com/eringen/landing/content"
	"github.com/eringen/landing/locale"
)

// globalFlags are shared by every subcommand and override the config file
// and environment.
type globalFlags struct {
	config    string
	locales   []string
	url       string
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	cmd := &cobra.Command{
		Use:          "landing",
		Short:        "Localized landing page server and static exporter",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&g.config, "config", "c", landing.EnvOr("LANDING_CONFIG", ""), "YAML config file")
	cmd.PersistentFlags().StringSliceVar(&g.locales, "locales", nil, "supported locales, default first (overrides config)")
	cmd.PersistentFlags().StringVar(&g.url, "url", "", "canonical site URL (overrides config)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "log format: console or json")

	cmd.AddCommand(serveCmd(&g), buildCmd(&g), postsCmd(&g), versionCmd())
	return cmd
}

// load resolves the effective config and logger for a subcommand.
func (g *globalFlags) load() (landing.SiteConfig, zerolog.Logger, error) {
	cfg, err := landing.LoadConfig(g.config)
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	if len(g.locales) > 0 {
		cfg.Locales = g.locales
	}
	if g.url != "" {
		cfg.URL = g.url
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if g.logFormat != "" {
		cfg.LogFormat = g.logFormat
	}
	logger, err := landing.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	return cfg, logger, nil
}

func serveCmd(g *globalFlags) *cobra.Command {
	var addr string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := g.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			app, err := landing.New(cfg, landing.WithLogger(logger))
			if err != nil {
				logger.Error().Err(err).Msg("Startup failed")
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := app.Start(ctx); err != nil {
				logger.Error().Err(err).Msg("Server stopped")
				return err
			}
			logger.Info().Msg("Server stopped")
			return nil
		},
	}
	c.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return c
}

func buildCmd(g *globalFlags) *cobra.Command {
	var out string

	c := &cobra.Command{
		Use:   "build",
		Short: "Pre-render every localized page into a directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := g.load()
			if err != nil {
				return err
			}
			app, err := landing.New(cfg, landing.WithLogger(logger))
			if err != nil {
				return err
			}
			defer app.Close()

			n, err := app.Export(cmd.Context(), out)
			if err != nil {
				logger.Error().Err(err).Msg("Export failed")
				return err
			}
			logger.Info().Int("files", n).Str("out", out).Msg("Export complete")
			return nil
		},
	}
	c.Flags().StringVarP(&out, "out", "o", "dist", "output directory")
	return c
}

func postsCmd(g *globalFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "posts",
		Short: "Manage the local Mempool post store",
	}

	c.AddCommand(&cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import posts from a YAML file into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.load()
			if err != nil {
				return err
			}
			n, err := importPosts(cfg, args[0])
			if err != nil {
				return err
			}
			logger.Info().Int("posts", n).Str("db", cfg.DatabasePath).Msg("Import complete")
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d posts\n", n)
			return nil
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "latest <locale>",
		Short: "Print the latest published post for a locale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.load()
			if err != nil {
				return err
			}
			return printLatest(cmd.Context(), cmd, cfg, args[0])
		},
	})
	return c
}

func importPosts(cfg landing.SiteConfig, path string) (int, error) {
	set, err := locale.NewSet(cfg.Locales...)
	if err != nil {
		return 0, err
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	posts, err := content.DecodePosts(f, set)
	if err != nil {
		return 0, err
	}
	store, err := content.NewStore(cfg.DatabasePath)
	if err != nil {
		return 0, err
	}
	defer store.Close()
	return store.Import(posts)
}

func printLatest(ctx context.Context, cmd *cobra.Command, cfg landing.SiteConfig, raw string) error {
	set, err := locale.NewSet(cfg.Locales...)
	if err != nil {
		return err
	}
	loc, err := set.Parse(raw)
	if err != nil {
		return err
	}
	var fetcher content.Fetcher
	if cfg.ContentAPI != "" {
		fetcher, err = content.NewClient(cfg.ContentAPI, cfg.ContentTimeout)
		if err != nil {
			return err
		}
	} else {
		store, err := content.NewStore(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()
		fetcher = store
	}
	post, err := fetcher.Latest(ctx, loc)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if post == nil {
		fmt.Fprintf(w, "no published posts for %s\n", loc)
		return nil
	}
	fmt.Fprintf(w, "%s\t%s\n", post.Slug, post.Title)
	if ex := strings.TrimSpace(post.Excerpt); ex != "" {
		fmt.Fprintln(w, ex)
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the landing version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "landing %s\n", version)
		},
	}
}
