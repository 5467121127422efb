// Package clock implements the running clock display.
package clock

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MSSputnik/RVEZeitmessung/internal/runtime"
)

// refresh matches the update interval of the old clock label.
const refresh = 500 * time.Millisecond

// Command creates the clock command.
func Command(ctx *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clock",
		Short: "Show the running wall clock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout := "15:04:05"
			if !ctx.Settings.Main.TimeAs24h {
				layout = "03:04:05 PM"
			}

			ticker := time.NewTicker(refresh)
			defer ticker.Stop()

			for {
				select {
				case <-cmd.Context().Done():
					fmt.Println()
					return nil
				case now := <-ticker.C:
					fmt.Printf("\r%s", now.Format(layout))
				}
			}
		},
	}

	return cmd
}
