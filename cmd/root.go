package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MSSputnik/RVEZeitmessung/cmd/audit"
	"github.com/MSSputnik/RVEZeitmessung/cmd/clock"
	"github.com/MSSputnik/RVEZeitmessung/cmd/correct"
	"github.com/MSSputnik/RVEZeitmessung/cmd/export"
	"github.com/MSSputnik/RVEZeitmessung/cmd/list"
	"github.com/MSSputnik/RVEZeitmessung/cmd/remove"
	"github.com/MSSputnik/RVEZeitmessung/cmd/send"
	"github.com/MSSputnik/RVEZeitmessung/cmd/stamp"
	"github.com/MSSputnik/RVEZeitmessung/internal/conf"
	"github.com/MSSputnik/RVEZeitmessung/internal/runtime"
)

// RootCommand creates and returns the root command
func RootCommand(ctx *runtime.Context) (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:   "rvezeit",
		Short: "RVE Zeitmessung CLI",
		Long:  "Race timing: stamp bib numbers against the wall clock, correct and list recorded times, export and upload the result file.",
	}

	// Set up the global flags for the root command.
	if err := setupFlags(rootCmd, ctx.Settings); err != nil {
		return nil, err
	}

	clockCmd := clock.Command(ctx)

	subcommands := []*cobra.Command{
		stamp.Command(ctx),
		correct.Command(ctx),
		remove.Command(ctx),
		list.Command(ctx),
		audit.Command(ctx),
		export.Command(ctx),
		send.Command(ctx),
		clockCmd,
	}

	rootCmd.AddCommand(subcommands...)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// The clock command only reads the wall clock, it never touches
		// the database.
		if cmd.Name() == clockCmd.Name() {
			return nil
		}
		return ctx.OpenStore()
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return ctx.CloseStore()
	}

	return rootCmd, nil
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Output.SQLite.Path, "database", settings.Output.SQLite.Path, "Path to the SQLite database file")

	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}

	return nil
}
