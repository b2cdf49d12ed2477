package cmd

import (
	"fmt"
	"io"

	"github.com/AmiraAbdelhalim/fyyur/config"
	"github.com/AmiraAbdelhalim/fyyur/pkg/logger"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the fyyur CLI. Running it without a subcommand
// starts the web server.
func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	serve := newServeCommand(stdin, stdout, stderr)

	rc := &cobra.Command{
		Use:   "fyyur",
		Short: "Fyyur is a booking directory for venues, artists and shows.",
		Long: `Fyyur is a booking directory for venues, artists and shows.

Run without arguments to start the web server. Use the migrate
subcommands to manage the database schema.`,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	rc.Flags().AddFlagSet(serve.Flags())

	rc.AddCommand(serve)
	rc.AddCommand(newMigrateCommand(stdin, stdout, stderr))

	rc.SetOut(stdout)
	rc.SetErr(stderr)
	return rc
}

// setup loads and validates configuration and installs the global logger.
// The returned closer releases the error log file, if one was opened.
func setup(stderr io.Writer) (*config.Config, io.Closer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logCfg := logger.Config{
		Level:        cfg.LogLevel,
		Format:       cfg.LogFormat,
		Output:       stderr,
		ErrorLogFile: cfg.ErrorLogFile,
	}
	if cfg.IsDebug() {
		logCfg.ErrorLogFile = ""
	}

	l, closer, err := logger.New(logCfg)
	if err != nil {
		return nil, nil, err
	}
	logger.SetGlobal(l)
	return cfg, closer, nil
}
