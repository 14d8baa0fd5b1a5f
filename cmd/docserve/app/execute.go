package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/docserve/cmd/docserve/cmd/list"
	"github.com/agentstation/docserve/cmd/docserve/cmd/serve"
	"github.com/agentstation/docserve/cmd/docserve/cmd/version"
	"github.com/agentstation/docserve/pkg/logging"
)

// Execute runs the docserve CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(a.stdout)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
// Running the root command without a subcommand starts the server.
func (a *App) createRootCommand() *cobra.Command {
	defaults := DefaultConfig()

	rootCmd := &cobra.Command{
		Use:     "docserve",
		Short:   "Serve a directory with Markdown rendered as HTML",
		Version: a.version,
		Long: `docserve serves the files under a directory over HTTP.

Requests for files ending in .md are rendered to HTML pages with fenced
code blocks and tables. Every other path is served as a static file or a
directory listing.`,
		Example: `  docserve                         # Serve the current directory on port 8000
  docserve --root ./docs --port 9000
  docserve list --format markdown  # List the documents that would be rendered`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setupCommand,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve.Run(cmd.Context(), a)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.String(keyConfig, "", "config file (default is ./.docserve.yaml or $HOME/.docserve.yaml)")
	pf.BoolP(keyVerbose, "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.BoolP(keyQuiet, "q", false, "minimal output (shortcut for --log-level=warn)")
	pf.Bool(keyNoColor, false, "disable colored output")
	pf.String(keyLogLevel, "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	pf.String(keyRoot, defaults.Root, "directory to serve")

	f := rootCmd.Flags()
	f.String(keyHost, defaults.Host, "host to bind (empty binds every interface)")
	f.Int(keyPort, defaults.Port, "port to listen on")
	f.Duration(keyReadTimeout, defaults.ReadTimeout, "HTTP read timeout")
	f.Duration(keyWriteTimeout, defaults.WriteTimeout, "HTTP write timeout")
	f.Duration(keyIdleTimeout, defaults.IdleTimeout, "HTTP idle timeout")
	f.Duration(keyShutdownTimeout, defaults.ShutdownTimeout, "time allowed for in-flight requests on shutdown")

	rootCmd.SetVersionTemplate("docserve {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It resolves the
// configuration now that flags are parsed, rebuilds the logger and makes
// it the process default.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if !a.fixedConfig {
		config, err := LoadConfig(cmd.Flags())
		if err != nil {
			return err
		}
		a.config = config
	}

	if !a.fixedLogger {
		logger := NewLogger(a.config)
		a.logger = &logger
	}
	logging.SetDefault(a.logger)

	a.logger.Debug().
		Str("config_file", a.config.ConfigFile).
		Str("root", a.config.Root).
		Msg("Configuration loaded")
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(a))
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
