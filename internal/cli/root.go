// Package cli implements the railgen command-line interface.
//
// The main commands are:
//   - generate: build a frame, run the infill generation and save the project
//   - export: re-export a saved project to the fabrication formats
//   - compare: run what-if parameter scenarios against a saved project
//   - shapes: list the available frame shapes and their parameters
//   - config: back up or restore the application data under ~/.railgen
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. It is
// called by the main package with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the railgen CLI and returns an error if any command fails.
// The context carries cancellation: interrupting it makes a running
// generation stop cooperatively and keep its best arrangement so far.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "railgen",
		Short:        "Railgen fills railing frames with generated rod infills",
		Long: `Railgen generates decorative rod infills for closed railing frames: anchor
points along the frame boundary are connected into layered, non-crossing rod
arrangements, scored by an evaluator and searched over multiple attempts.
Results can be exported as DXF drawings, cut lists, PDF drawings, QR label
sheets and HTML reports.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("railgen %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newShapesCmd())
	root.AddCommand(newConfigCmd())

	return root.ExecuteContext(ctx)
}
