// Package export implements the TRZ file export command.
package export

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	trz "github.com/MSSputnik/RVEZeitmessung/internal/export"
	"github.com/MSSputnik/RVEZeitmessung/internal/runtime"
)

// Command creates the export command.
func Command(ctx *runtime.Context) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the recorded times to the TRZ result file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := outputPath
			if path == "" {
				path = ctx.Settings.Output.TRZ.Path
			}

			start := time.Now()
			records, err := ctx.Store.AllRecords()
			if err != nil {
				ctx.Metrics.RecordError("export")
				return err
			}
			if err := trz.WriteTRZ(path, records); err != nil {
				ctx.Metrics.RecordError("export")
				return err
			}
			ctx.Metrics.RecordDuration("export", time.Since(start).Seconds())
			ctx.Metrics.RecordOperation("export", "ok")
			ctx.Metrics.SetRecordCount(len(records))

			fmt.Printf("wrote %d records to %s\n", len(records), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to the TRZ file, defaults to the configured one")

	return cmd
}
