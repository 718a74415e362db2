package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"transcript-app/domain/repository"
	"transcript-app/infrastructure/cache"
	"transcript-app/infrastructure/clients/api"
	"transcript-app/infrastructure/configuration"
	"transcript-app/infrastructure/logger"
	"transcript-app/usecase"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const sessionFileName = "session.json"

type rootOptions struct {
	apiURL   string
	cacheDir string
	logLevel string
	noRedis  bool
}

// app holds what a command needs once the flags are resolved.
type app struct {
	api         *api.Client
	library     *usecase.Library
	entities    *cache.EntityStore
	redis       redis.UniversalClient
	sessionFile string
	out         io.Writer
	now         func() time.Time
}

// close persists the session cookie and releases the stores.
func (a *app) close() error {
	var firstErr error
	if a.sessionFile != "" {
		if err := saveSession(a.sessionFile, a.api.BaseURL(), a.api.Cookies()); err != nil {
			firstErr = err
		}
	}
	if a.entities != nil {
		if err := a.entities.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	return firstErr
}

type cli struct {
	opts rootOptions
	app  *app
	// newApp builds the dependencies after flag parsing.
	newApp func(ctx context.Context, opts rootOptions) (*app, error)
}

func newCLI() *cli {
	return &cli{newApp: buildApp}
}

func (c *cli) execute(ctx context.Context, args []string) error {
	root := c.rootCmd()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if c.app != nil {
		if closeErr := c.app.close(); closeErr != nil {
			logger.GetLogger().WithField("error", closeErr).Warn("Failed to save client state")
		}
		c.app = nil
	}
	return err
}

func (c *cli) rootCmd() *cobra.Command {
	cfg := configuration.C
	root := &cobra.Command{
		Use:   "ytt",
		Short: "Fetch, save and export YouTube transcripts",
		Long: `ytt talks to the transcript backend. Fetched videos and channel listings are kept in a
local cache (24h and 12h), and library reads are cached in Redis when it is reachable.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.SetLevel(c.opts.logLevel); err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
			logger.SetOutput(cmd.ErrOrStderr())
			a, err := c.newApp(cmd.Context(), c.opts)
			if err != nil {
				return err
			}
			a.out = cmd.OutOrStdout()
			if a.now == nil {
				a.now = time.Now
			}
			c.app = a
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.opts.apiURL, "api-url", cfg.Client.APIURL, "backend base URL (env API_URL)")
	flags.StringVar(&c.opts.cacheDir, "cache-dir", cfg.Cache.Dir, "directory for the local cache and session (env CACHE_DIR)")
	flags.StringVar(&c.opts.logLevel, "log-level", "warn", "log level written to stderr")
	flags.BoolVar(&c.opts.noRedis, "no-redis", false, "do not cache library reads in Redis")

	root.AddCommand(
		c.signupCmd(),
		c.loginCmd(),
		c.whoamiCmd(),
		c.logoutCmd(),
		c.profileCmd(),
		c.fetchCmd(),
		c.channelCmd(),
		c.libraryCmd(),
		c.memoriesCmd(),
		c.settingsCmd(),
		c.cacheCmd(),
	)
	return root
}

func buildApp(ctx context.Context, opts rootOptions) (*app, error) {
	if err := os.MkdirAll(opts.cacheDir, 0o700); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	a := &app{sessionFile: filepath.Join(opts.cacheDir, sessionFileName)}
	var blobs repository.IBlobCache
	if !opts.noRedis {
		rc := configuration.C.RedisClient
		client, err := cache.NewCache(ctx, rc.RedisAddr(), rc.Username, rc.Password, rc.DB)
		if err != nil {
			logger.GetLogger().WithField("error", err).Info("Redis unavailable, library reads are not cached")
		} else {
			a.redis = client
			blobs = cache.NewBlobCache(client, rc.Prefix)
		}
	}

	client, err := api.New(opts.apiURL, blobs)
	if err != nil {
		return nil, err
	}
	cookies, err := loadSession(a.sessionFile, client.BaseURL())
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Ignoring unreadable session file")
	}
	client.SetCookies(cookies)

	a.api = client
	a.entities = cache.NewEntityStore(filepath.Join(opts.cacheDir, "entities"))
	a.library = usecase.NewLibrary(client, a.entities, blobs)
	return a, nil
}
