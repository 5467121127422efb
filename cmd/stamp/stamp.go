// Package stamp implements the command that records the current time
// against a bib number.
package stamp

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MSSputnik/RVEZeitmessung/internal/datastore"
	"github.com/MSSputnik/RVEZeitmessung/internal/runtime"
	"github.com/MSSputnik/RVEZeitmessung/internal/timecode"
)

// Command creates the stamp command.
func Command(ctx *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stamp [bib] [HH:MM:SS]",
		Short: "Record a time against a bib number",
		Long: "Records the current wall-clock time against the given bib number. " +
			"An explicit time may be passed instead. Re-stamping an existing bib " +
			"number shifts the old time into the correction history.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bib, err := datastore.ParseBib(args[0])
			if err != nil {
				return err
			}

			hour, minute, second := timecode.Now()
			if len(args) == 2 {
				hour, minute, second, err = timecode.ParseClock(args[1])
				if err != nil {
					return err
				}
			}

			start := time.Now()
			outcome, err := ctx.Store.Upsert(bib, hour, minute, second)
			ctx.Metrics.RecordDuration("stamp", time.Since(start).Seconds())
			if err != nil {
				ctx.Metrics.RecordError("stamp")
				return err
			}
			ctx.Metrics.RecordOperation("stamp", outcome.String())

			fmt.Printf("%04d  %s  (%s)\n", bib, timecode.Clock(hour, minute, second), outcome)

			// Pre-fill hint for the operator, like the entry fields of
			// the old desktop tool.
			if maxNumber, err := ctx.Store.MaxNumber(); err == nil {
				fmt.Printf("next bib: %d\n", maxNumber+1)
			}
			return nil
		},
	}

	return cmd
}
