// Package send implements the export-and-upload command.
package send

import (
	"fmt"

	"github.com/spf13/cobra"

	trz "github.com/MSSputnik/RVEZeitmessung/internal/export"
	"github.com/MSSputnik/RVEZeitmessung/internal/runtime"
	"github.com/MSSputnik/RVEZeitmessung/internal/transport"
)

// Command creates the send command.
func Command(ctx *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Export the TRZ file and upload it together with the database",
		Long: "Writes the TRZ result file and uploads both the TRZ file and " +
			"the raw SQLite database to the configured FTP server.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !ctx.Settings.FTP.Enabled {
				return fmt.Errorf("FTP upload is not enabled in the configuration")
			}

			trzPath := ctx.Settings.Output.TRZ.Path
			dbPath := ctx.Settings.Output.SQLite.Path

			records, err := ctx.Store.AllRecords()
			if err != nil {
				ctx.Metrics.RecordError("export")
				return err
			}
			if err := trz.WriteTRZ(trzPath, records); err != nil {
				ctx.Metrics.RecordError("export")
				return err
			}
			ctx.Metrics.RecordOperation("export", "ok")

			uploader, err := transport.FromSettings(ctx.Settings)
			if err != nil {
				return err
			}
			if err := uploader.Upload(cmd.Context(), trzPath, dbPath); err != nil {
				ctx.Metrics.RecordUpload("error")
				return err
			}
			ctx.Metrics.RecordUpload("success")

			fmt.Printf("uploaded %s and %s\n", trzPath, dbPath)
			return nil
		},
	}

	return cmd
}
