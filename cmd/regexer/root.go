package main

import (
	"io"
	"time"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/regexer/cmd/regexer/opts"
	"github.com/walteh/regexer/pkg/log"
)

// newRootCmd creates the root command and wires logging into its context
func newRootCmd(rootOpts *opts.RootOpts, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regexer",
		Short: "Apply ordered regex find/replace scripts to files",
		Long: `regexer reads a script of "find" -> "replace" rules and applies them, in
order, to each input. Later rules see the output of earlier ones. Replacements
may reference capture groups with $1 or ${name}.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			rootOpts.ConfigExplicit = cmd.Flags().Changed("config")

			logger := setupLogging(rootOpts, stderr)
			ctx := logger.WithContext(cmd.Context())
			ctx = log.NewContext(ctx, log.New(stdout, logger))
			rootOpts.UserLogger = log.NewUserLogger(ctx, stderr)

			cmd.SetContext(ctx)
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	addRootFlags(cmd, rootOpts)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", opts.DefaultConfigFile, "config file path (yaml, yml, hcl or json)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&o.Trace, "trace", false, "enable trace logging, including every parsed script line")
	cmd.PersistentFlags().StringVar(&o.Engine, "engine", "", "pattern engine: re2 or regexp2")
	cmd.PersistentFlags().StringVar(&o.CommentPrefix, "comment-prefix", "", "full-line comment marker in scripts (default \"//\")")
	cmd.PersistentFlags().BoolVar(&o.NoComments, "no-comments", false, "treat every non-empty script line as a rule")
}

// setupLogging builds the zerolog logger for the selected verbosity
func setupLogging(o *opts.RootOpts, stderr io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case o.Trace:
		level = zerolog.TraceLevel
	case o.Debug:
		level = zerolog.DebugLevel
	}

	if level <= zerolog.DebugLevel {
		pterm.EnableDebugMessages()
	}

	zerolog.SetGlobalLevel(level)
	return zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
