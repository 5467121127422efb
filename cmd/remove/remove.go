// Package remove implements the delete command.
package remove

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MSSputnik/RVEZeitmessung/internal/datastore"
	"github.com/MSSputnik/RVEZeitmessung/internal/runtime"
)

// Command creates the delete command.
func Command(ctx *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [bib]",
		Short: "Delete a recorded time and its audit history",
		Long: "Removes the time record for a bib number together with every " +
			"audit entry describing it. Deleting an unknown bib number is not " +
			"an error.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bib, err := datastore.ParseBib(args[0])
			if err != nil {
				return err
			}

			start := time.Now()
			err = ctx.Store.Delete(bib)
			ctx.Metrics.RecordDuration("delete", time.Since(start).Seconds())
			if err != nil {
				ctx.Metrics.RecordError("delete")
				return err
			}
			ctx.Metrics.RecordOperation("delete", "ok")

			fmt.Printf("%04d deleted\n", bib)
			return nil
		},
	}

	return cmd
}
