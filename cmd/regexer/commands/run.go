package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/regexer/cmd/regexer/opts"
	"github.com/walteh/regexer/pkg/config"
	"github.com/walteh/regexer/pkg/log"
	"github.com/walteh/regexer/pkg/operation"
	"github.com/walteh/regexer/pkg/status"
)

// fileFlags are the per-command overrides shared by run and diff
type fileFlags struct {
	script  string
	output  string
	suffix  string
	async   bool
	workers int
}

func (f *fileFlags) apply(cmd *cobra.Command, cfg *config.Config, args []string) {
	if f.script != "" {
		cfg.Script = f.script
	}
	if len(args) > 0 {
		cfg.Inputs = args
	}
	if f.output != "" {
		cfg.Output = f.output
	}
	if f.suffix != "" {
		cfg.Suffix = f.suffix
	}
	if cmd.Flags().Changed("async") {
		cfg.Async = f.async
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
}

// NewRunCmd creates a new run command
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	flags := &fileFlags{}

	cmd := &cobra.Command{
		Use:   "run [inputs...]",
		Short: "Apply a rule script to files",
		Long: `Run applies every rule of the script, in order, to each input and writes
the result next to it as <input><suffix>, or to --output when exactly one
input is given. Inputs may be doublestar globs.

The script is parsed before any input is read, so a bad line writes nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := opts.LoadConfig(ctx)
			if err != nil {
				return err
			}
			flags.apply(cmd, cfg, args)

			statusMgr := status.New(zerolog.Ctx(ctx))
			op, err := operation.NewTransformOperation(operation.Options{
				Config:    cfg,
				StatusMgr: statusMgr,
				Logger:    zerolog.Ctx(ctx),
			})
			if err != nil {
				return errors.Errorf("creating operation: %w", err)
			}

			if err := op.Execute(ctx); err != nil {
				return err
			}

			counts := statusMgr.Counts(ctx)
			log.FromContext(ctx).Successf("%d new, %d updated, %d unchanged",
				counts[status.StatusNew], counts[status.StatusModified], counts[status.StatusUnchanged])

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.script, "script", "", "rule script path")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "explicit output path (single input only)")
	cmd.Flags().StringVar(&flags.suffix, "suffix", "", "output suffix (default \".replaced\")")
	cmd.Flags().BoolVar(&flags.async, "async", false, "process files concurrently")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "concurrent workers (default number of CPUs)")

	return cmd
}
