// Package commands implements the CLI commands for modcache.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/modcache/internal/app"
	"go.trai.ch/modcache/internal/build"
	"go.trai.ch/modcache/internal/core/domain"
)

// CLI represents the command line interface for modcache.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Configure(opts app.ConfigureOptions) error
	Checksum(path string) (domain.Checksum, error)
	Store(ctx context.Context, path string) (app.StoreResult, error)
	Load(ctx context.Context, checksum string) (app.LoadResult, error)
	Run(ctx context.Context, path, export string, args []int64, opts app.RunOptions) (app.RunResult, error)
	Remove(ctx context.Context, checksum string) (bool, error)
	Warm(ctx context.Context, paths []string) ([]app.WarmResult, error)
	Stat(ctx context.Context) (app.Stats, error)
	Prune(ctx context.Context) ([]string, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "modcache",
		Short:         "A content addressed cache for compiled modules",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", domain.ConfigFileName, "Path to the configuration file")
	flags.String("cache-dir", "", "Base directory of the module cache (overrides the config file)")
	flags.String("log-format", "", "Log format: auto, pretty or json (overrides the config file)")
	flags.Bool("trace", false, "Write OpenTelemetry spans to stderr")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = c.configure

	rootCmd.AddCommand(c.newChecksumCmd())
	rootCmd.AddCommand(c.newStoreCmd())
	rootCmd.AddCommand(c.newLoadCmd())
	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newRemoveCmd())
	rootCmd.AddCommand(c.newWarmCmd())
	rootCmd.AddCommand(c.newStatCmd())
	rootCmd.AddCommand(c.newPruneCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) configure(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	logFormat, _ := cmd.Flags().GetString("log-format")
	trace, _ := cmd.Flags().GetBool("trace")

	return c.app.Configure(app.ConfigureOptions{
		ConfigPath:  configPath,
		CacheDir:    cacheDir,
		LogFormat:   logFormat,
		Trace:       trace,
		TraceOutput: cmd.ErrOrStderr(),
	})
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
