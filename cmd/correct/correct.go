// Package correct implements the manual time correction command.
package correct

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MSSputnik/RVEZeitmessung/internal/datastore"
	"github.com/MSSputnik/RVEZeitmessung/internal/runtime"
	"github.com/MSSputnik/RVEZeitmessung/internal/timecode"
)

// Command creates the correct command.
func Command(ctx *runtime.Context) *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "correct [bib] [HH:MM:SS]",
		Short: "Correct the recorded time of an existing bib number",
		Long: "Overwrites the recorded time of an existing bib number. The old " +
			"time is kept in the two-level correction history and the change is " +
			"written to the audit log. A correction that does not change the " +
			"time is skipped entirely.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bib, err := datastore.ParseBib(args[0])
			if err != nil {
				return err
			}
			hour, minute, second, err := timecode.ParseClock(args[1])
			if err != nil {
				return err
			}

			start := time.Now()
			outcome, err := ctx.Store.UpdateWithHistory(bib, hour, minute, second, comment)
			ctx.Metrics.RecordDuration("correct", time.Since(start).Seconds())
			if err != nil {
				ctx.Metrics.RecordError("correct")
				return err
			}
			ctx.Metrics.RecordOperation("correct", outcome.String())

			switch outcome {
			case datastore.Unchanged:
				fmt.Printf("%04d unchanged, time is already %s\n", bib, timecode.Clock(hour, minute, second))
			default:
				fmt.Printf("%04d corrected to %s\n", bib, timecode.Clock(hour, minute, second))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&comment, "comment", "m", "", "Comment stored with the audit entry")

	return cmd
}
