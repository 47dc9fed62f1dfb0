package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/pipeline"
	"github.com/matzehuels/okrdash/pkg/report"
)

// validateCommand creates the validate command. It runs every stage up to
// the logo load, so a descriptor that validates will render.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "validate <descriptor|preset>...",
		Short:             "Check report descriptors without rendering them",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completePresets,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := pipeline.NewRunner(nil, c.Logger)
			prog := newProgress(c.Logger)

			failed := 0
			for _, ref := range args {
				rep, err := report.Open(ref)
				if err == nil {
					var res *pipeline.Result
					if res, err = runner.Compose(cmd.Context(), rep); err == nil {
						printSuccess("%s", ref)
						printStats(res.Stats)
						continue
					}
				}
				if cmd.Context().Err() != nil {
					return cmd.Context().Err()
				}
				failed++
				printError("%s", ref)
				printDetail("%s", err)
			}

			if failed > 0 {
				return errors.New(errors.ErrCodeInvalidDescriptor, "%d of %d descriptor(s) invalid", failed, len(args))
			}
			prog.done(fmt.Sprintf("Validated %d descriptor(s)", len(args)))
			return nil
		},
	}
}
