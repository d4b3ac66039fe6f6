package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/railgen/internal/model"
	"github.com/piwi3910/railgen/internal/project"
)

// newConfigCmd creates the config command group for backing up and restoring
// the shared application data under ~/.railgen.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Back up or restore the application data",
		Long: `Back up or restore the application data.

The app config (default parameters, recent projects) and the stored presets
live under ~/.railgen. backup bundles both into a single JSON file; restore
replaces the current data with a bundle's contents.`,
	}

	cmd.AddCommand(newConfigBackupCmd(), newConfigRestoreCmd())

	return cmd
}

func newConfigBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup <file.json>",
		Short: "Write the app config and presets to a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runConfigBackup(c, args[0])
		},
	}
}

func newConfigRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file.json>",
		Short: "Replace the app config and presets with a backup's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runConfigRestore(c, args[0])
		},
	}
}

func runConfigBackup(cmd *cobra.Command, path string) error {
	logger := loggerFromContext(cmd.Context())

	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		logger.Warn("Could not read app config, backing up defaults", "err", err)
		config = model.DefaultAppConfig()
	}
	presets, err := project.LoadDefaultPresets()
	if err != nil {
		return err
	}

	if err := project.ExportAllData(path, config, presets); err != nil {
		return err
	}
	logger.Info("Backup written", "path", path, "presets", len(presets.Presets))
	return nil
}

func runConfigRestore(cmd *cobra.Command, path string) error {
	logger := loggerFromContext(cmd.Context())

	backup, err := project.ImportAllData(path)
	if err != nil {
		return err
	}

	if err := project.SaveAppConfig(project.DefaultConfigPath(), backup.Config); err != nil {
		return err
	}
	if err := project.SaveDefaultPresets(backup.Presets); err != nil {
		return err
	}
	logger.Info("Backup restored",
		"created", backup.CreatedAt, "presets", len(backup.Presets.Presets))
	return nil
}
