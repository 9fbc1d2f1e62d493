package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/regexer/cmd/regexer/opts"
	"github.com/walteh/regexer/pkg/operation"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	var scriptPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Parse a rule script and list its rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := opts.LoadConfig(ctx)
			if err != nil {
				return err
			}
			if scriptPath != "" {
				cfg.Script = scriptPath
			}

			op, err := operation.NewCheckOperation(operation.Options{Config: cfg, Logger: zerolog.Ctx(ctx)})
			if err != nil {
				return errors.Errorf("creating operation: %w", err)
			}

			if err := op.Execute(ctx); err != nil {
				return err
			}

			opts.UserLogger.LogValidation(true, "script is valid", nil)
			return nil
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "rule script path")

	return cmd
}
