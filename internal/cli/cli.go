// Package cli implements the toplangs command-line interface.
//
// The root command fetches the language statistics of every repository the
// token's user owns, renders the largest languages as an SVG bar chart and
// commits it to the user's profile repository (or writes it locally with
// --local). The CLI is built using cobra and logs via charmbracelet/log.
//
// # Commands
//
//   - toplangs: fetch, render and publish (or print) the chart
//   - whoami: print the login the token belongs to
//   - languages: print the aggregated language table
//   - cache: manage the response cache
//   - completion: generate shell completion scripts
//
// # Configuration
//
// Flags win over the profile file ($XDG_CONFIG_HOME/toplangs/config.toml),
// which wins over built-in defaults. The token is read from --token,
// GITHUB_TOKEN or GH_TOKEN, in that order; a .env file in the working
// directory is loaded by main.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every HTTP request, cache lookup and pipeline stage.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/toplangs/pkg/buildinfo"
	"github.com/matzehuels/toplangs/pkg/cache"
	"github.com/matzehuels/toplangs/pkg/github"
	"github.com/matzehuels/toplangs/pkg/observability"
	"github.com/matzehuels/toplangs/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "toplangs"

	// defaultCacheTTL is how long fetched language statistics are reused.
	defaultCacheTTL = time.Hour
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// EnableDebugHooks logs pipeline, HTTP and cache events at debug level.
func (c *CLI) EnableDebugHooks() {
	observability.Register(&logHooks{logger: c.Logger})
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := c.rootCommand()
	root.Version = buildinfo.Version
	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.whoamiCommand())
	root.AddCommand(c.languagesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client Factory
// =============================================================================

// clientOpts holds the flags shared by every command that talks to GitHub.
type clientOpts struct {
	token    string
	baseURL  string
	noCache  bool
	refresh  bool
	cacheTTL time.Duration
}

func (o *clientOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.token, "token", "", "GitHub token (default: $GITHUB_TOKEN, then $GH_TOKEN)")
	cmd.Flags().StringVar(&o.baseURL, "api-url", github.DefaultBaseURL, "GitHub API base URL")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the response cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached responses and fetch again")
	cmd.Flags().DurationVar(&o.cacheTTL, "cache-ttl", defaultCacheTTL, "how long fetched statistics are cached")
}

// newClient creates an authenticated GitHub client backed by the CLI cache.
func (c *CLI) newClient(o clientOpts) (*github.Client, error) {
	token, err := resolveToken(o.token)
	if err != nil {
		return nil, err
	}
	ch, err := newCache(o.noCache)
	if err != nil {
		return nil, err
	}
	return github.NewClient(token,
		github.WithBaseURL(o.baseURL),
		github.WithCache(ch, o.cacheTTL),
		github.WithRefresh(o.refresh),
	), nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(client *github.Client) *pipeline.Runner {
	return pipeline.NewRunner(client, client, c.Logger)
}

// newCache returns the on-disk cache behind a small in-memory tier, or a
// NullCache for --no-cache and when no cache directory can be determined.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	file, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	mem, err := cache.NewMemory(file, cache.DefaultMemoryEntries)
	if err != nil {
		return nil, err
	}
	return mem, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/toplangs/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/toplangs/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
