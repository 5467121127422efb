// Package audit implements the audit log query command.
package audit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MSSputnik/RVEZeitmessung/internal/datastore"
	"github.com/MSSputnik/RVEZeitmessung/internal/runtime"
)

// Command creates the audit command.
func Command(ctx *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [bib]",
		Short: "Show the correction history of a bib number",
		Long: "Prints every audit entry describing the given bib number in " +
			"the order the corrections were made.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bib, err := datastore.ParseBib(args[0])
			if err != nil {
				return err
			}

			entries, err := ctx.Store.AuditForSubject(bib)
			if err != nil {
				ctx.Metrics.RecordError("audit")
				return err
			}

			if len(entries) == 0 {
				fmt.Printf("no corrections recorded for bib %d\n", bib)
				return nil
			}
			for i := range entries {
				e := &entries[i]
				fmt.Printf("#%d  %s  %s %d: %s\n", e.Number, e.TimeString, e.Name, e.Subject, e.Data)
			}
			return nil
		},
	}

	return cmd
}
