// Package cli provides the cobra commands of the prodsearch binary.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/prodsearch/internal/app"
	"github.com/custodia-labs/prodsearch/internal/config"
	"github.com/custodia-labs/prodsearch/internal/core/ports/driving"
	"github.com/custodia-labs/prodsearch/internal/logger"
)

// Annotation values for bootstrapAnnotation.
const (
	bootstrapAnnotation = "prodsearch.bootstrap"
	bootstrapNone       = "none"
	bootstrapConfig     = "config"
)

var (
	version = "dev"

	cfgFile string
	envFile string
	verbose bool

	appConfig       *config.Config
	searchService   driving.SearchService
	identityService driving.IdentityService
	storeWatcher    app.Watcher

	// closeServices releases whatever bootstrap opened.
	closeServices func(ctx context.Context) error
)

var rootCmd = &cobra.Command{
	Use:   "prodsearch",
	Short: "Search the product catalog from the command line",
	Long: `prodsearch queries a remote product search endpoint.

Each installation identifies itself with an anonymous client identifier that
is generated on first use and stored locally. The identifier is sent as the
X-Newaim-Api-Key header with every search.`,
	SilenceUsage:       true,
	PersistentPreRunE:  bootstrap,
	PersistentPostRunE: shutdown,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.prodsearch/config.toml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file (default .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetVersion sets the version reported by the binary.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Services are the dependencies commands run against.
type Services struct {
	Config   *config.Config
	Search   driving.SearchService
	Identity driving.IdentityService
	Watcher  app.Watcher
}

// SetServices injects ready-made services. Commands then skip bootstrap.
func SetServices(s *Services) {
	if s == nil {
		appConfig, searchService, identityService, storeWatcher = nil, nil, nil, nil
		return
	}
	appConfig = s.Config
	searchService = s.Search
	identityService = s.Identity
	storeWatcher = s.Watcher
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func requiredBootstrap(cmd *cobra.Command) string {
	for c := cmd; c != nil; c = c.Parent() {
		if v, ok := c.Annotations[bootstrapAnnotation]; ok {
			return v
		}
	}
	return ""
}

// bootstrap loads configuration and wires services for the command.
func bootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	level := requiredBootstrap(cmd)
	if level == bootstrapNone {
		return nil
	}

	if appConfig == nil {
		cfg, err := config.Load(config.Options{ConfigPath: cfgFile, EnvFile: envFile})
		if err != nil {
			return err
		}
		appConfig = cfg
	}
	if level == bootstrapConfig || searchService != nil {
		return nil
	}

	a, err := app.New(commandContext(cmd), appConfig, version)
	if err != nil {
		return err
	}
	searchService = a.Search
	identityService = a.Identity
	if w, ok := a.Watcher(); ok {
		storeWatcher = w
	}
	closeServices = func(ctx context.Context) error {
		SetServices(nil)
		return a.Close(ctx)
	}
	return nil
}

func shutdown(cmd *cobra.Command, _ []string) error {
	if closeServices == nil {
		return nil
	}
	fn := closeServices
	closeServices = nil
	return fn(context.WithoutCancel(commandContext(cmd)))
}

// Close releases services opened by bootstrap when a command failed before
// PersistentPostRunE could run.
func Close(ctx context.Context) error {
	if closeServices == nil {
		return nil
	}
	fn := closeServices
	closeServices = nil
	return fn(ctx)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

var errNotConfigured = errors.New("service not configured")
