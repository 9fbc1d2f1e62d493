package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/regexer/cmd/regexer/opts"
	"github.com/walteh/regexer/pkg/operation"
)

// NewDiffCmd creates a new diff command
func NewDiffCmd(opts *opts.RootOpts) *cobra.Command {
	flags := &fileFlags{}

	cmd := &cobra.Command{
		Use:   "diff [inputs...]",
		Short: "Preview what run would change",
		Long:  `Diff applies the script to each input and prints a colored line diff. Nothing is written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := opts.LoadConfig(ctx)
			if err != nil {
				return err
			}
			flags.apply(cmd, cfg, args)

			op, err := operation.NewDiffOperation(operation.Options{Config: cfg, Logger: zerolog.Ctx(ctx)})
			if err != nil {
				return errors.Errorf("creating operation: %w", err)
			}

			return op.Execute(ctx)
		},
	}

	cmd.Flags().StringVar(&flags.script, "script", "", "rule script path")
	cmd.Flags().StringVar(&flags.suffix, "suffix", "", "suffix shown in diff headers")

	return cmd
}
