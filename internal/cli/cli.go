// Package cli implements the govcat command-line interface.
//
// Commands cover the whole client surface: keyword search, dataset fetching
// with format resolution, format listings, the publisher directory, cache
// management, and the read-only HTTP facade. All commands support --verbose
// (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/opendata-tools/govcat/pkg/buildinfo"
	"github.com/opendata-tools/govcat/pkg/cache"
	"github.com/opendata-tools/govcat/pkg/catalog"
	"github.com/opendata-tools/govcat/pkg/dataset"
	"github.com/opendata-tools/govcat/pkg/formats"
	"github.com/opendata-tools/govcat/pkg/httputil"
)

// appName is the application name used for directories and display.
const appName = "govcat"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a CLI instance with a default logger and the on-disk
// configuration applied.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
	c.Config = LoadConfig(c.Logger)
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Govcat fetches and normalizes open-data catalog datasets",
		Long:         `Govcat is a client for government open-data catalogs: it searches the paginated catalog API, resolves each dataset's distributions against a format priority list, and downloads and parses the acceptable ones into uniform tables.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.searchCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.formatsCommand())
	root.AddCommand(c.publishersCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newCatalogClient builds the catalog client shared by the query commands.
func (c *CLI) newCatalogClient(cmd *cobra.Command, noCache bool) *catalog.Client {
	backend, err := c.newCache(cmd, noCache)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without", "err", err)
		backend = cache.NewNullCache()
	}
	return catalog.NewClient(catalog.Options{
		BaseURL: c.Config.BaseURL,
		HTTP:    httputil.NewClient(httputil.Options{}),
		Cache:   backend,
		Logger:  c.Logger,
	})
}

// newLoader builds the dataset loader with the configured priority list.
func (c *CLI) newLoader() (*dataset.Loader, error) {
	priority, err := c.priority()
	if err != nil {
		return nil, err
	}
	return dataset.NewLoader(nil, priority, c.Logger), nil
}

// priority resolves the configured format priority list.
func (c *CLI) priority() (formats.Priority, error) {
	if c.Config.Formats == "" {
		return formats.DefaultPriority(), nil
	}
	return formats.ParsePriority(c.Config.Formats)
}

// newCache selects the cache backend: the configured one, unless --no-cache
// asked for none.
func (c *CLI) newCache(cmd *cobra.Command, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.CacheBackend {
	case "", "file":
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(cmd.Context(), c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	case "mongo":
		return cache.NewMongoCache(cmd.Context(), c.Config.MongoURI, appName, "responses")
	case "none":
		return cache.NewNullCache(), nil
	default:
		c.Logger.Warn("unknown cache backend, disabling cache", "backend", c.Config.CacheBackend)
		return cache.NewNullCache(), nil
	}
}

// cacheDir returns the cache directory using the XDG convention
// (~/.cache/govcat/).
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
