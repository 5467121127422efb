// Package list implements the listing command.
package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MSSputnik/RVEZeitmessung/internal/export"
	"github.com/MSSputnik/RVEZeitmessung/internal/runtime"
)

// Command creates the list command.
func Command(ctx *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all recorded times, latest first",
		Long: "Prints every recorded time ordered by time of day descending. " +
			"Corrected entries are annotated with their prior times.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := ctx.Store.AllRecords()
			if err != nil {
				ctx.Metrics.RecordError("list")
				return err
			}
			ctx.Metrics.SetRecordCount(len(records))

			for i := range records {
				fmt.Println(export.Annotate(&records[i]))
			}
			return nil
		},
	}

	return cmd
}
