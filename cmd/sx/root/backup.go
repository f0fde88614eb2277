package root

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"synthevix/internal/backup"
	"synthevix/internal/ui"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up the database now",
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			path, err := a.backups.Run(cmd.Context(), a.db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconDisk+" Backup written:"), path)
			return nil
		}),
	}
	return cmd
}

func newRestoreCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace the database with a backup file",
		Long: `Replace the current database with a backup file.

The current database is backed up first, so a restore can itself be undone
with another restore.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("backup file is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			if err := backup.CheckFile(src); err != nil {
				return err
			}
			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("Replace current data with %q? The current data is backed up first.", filepath.Base(src)))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Cancelled."))
					return nil
				}
			}

			// src may be a file the pre-restore backup prunes.
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			staged, err := backup.Stage(src, cfg.Storage.DBPath)
			if err != nil {
				return err
			}
			defer staged.Discard()

			a, cleanup, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			saved, err := a.backups.Run(cmd.Context(), a.db)
			cleanup()
			if err != nil {
				return fmt.Errorf("backup before restore: %w", err)
			}

			if err := staged.Commit(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconDone+" Data restored from"), src,
				ui.Muted.Render("(previous data saved to "+saved+")"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
