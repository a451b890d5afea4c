package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/RogerChu8/voiceRecorder-app/internal/journal"
	"github.com/RogerChu8/voiceRecorder-app/internal/logging"
	"github.com/RogerChu8/voiceRecorder-app/internal/project"
)

// recordEvent appends a journal row. Journaling is best-effort observability;
// a failure is logged and never fails the command that triggered it.
func recordEvent(ctx *commandContext, projectDir, action string, itemNum int, detail string) {
	store, err := ctx.openJournal()
	if err == nil {
		err = store.Record(context.Background(), filepath.Base(projectDir), action, itemNum, detail)
		if closeErr := store.Close(); err == nil {
			err = closeErr
		}
	}
	if err != nil {
		if logger, logErr := ctx.ensureLogger(); logErr == nil {
			logger.Warn("journal write failed", logging.Error(err))
		}
	}
}

func newInitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init <scripts.txt> <dir>",
		Short: "Start a new project directory from a prompt list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			promptPath, dir := args[0], args[1]

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			promptData, err := os.ReadFile(promptPath)
			if err != nil {
				return fmt.Errorf("read prompt list: %w", err)
			}
			if _, err := os.Stat(filepath.Join(dir, project.ScriptsFileName)); err == nil {
				return fmt.Errorf("%s already contains a project (%s exists)", dir, project.ScriptsFileName)
			}

			session, err := project.New(promptData, logger)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create project directory: %w", err)
			}
			lock, err := project.LockDir(dir)
			if err != nil {
				return err
			}
			defer lock.Unlock()

			if err := session.SyncDir(dir); err != nil {
				return err
			}
			recordEvent(ctx, dir, journal.ActionInit, 0, fmt.Sprintf("%d items from %s", len(session.Items), filepath.Base(promptPath)))
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized project with %d items in %s\n", len(session.Items), dir)
			return nil
		},
	}
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <dir> <scripts.txt>",
		Short: "Merge additional prompts into a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, promptPath := args[0], args[1]

			promptData, err := os.ReadFile(promptPath)
			if err != nil {
				return fmt.Errorf("read prompt list: %w", err)
			}
			session, lock, err := ctx.openSession(dir)
			if err != nil {
				return err
			}
			defer lock.Unlock()

			added := session.Merge(promptData)
			if err := session.SyncDir(dir); err != nil {
				return err
			}
			recordEvent(ctx, dir, journal.ActionMerge, 0, fmt.Sprintf("%d added", added))
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d new item(s)\n", added)
			return nil
		},
	}
}

func newAcceptCommand(ctx *commandContext) *cobra.Command {
	var keepDate bool

	cmd := &cobra.Command{
		Use:   "accept <dir> <num> [recording.wav]",
		Short: "Accept a recording for a script item",
		Long: "Accept a new recording for the item, dated today. With --keep-date the " +
			"item's retained recording is re-accepted under its original date and no " +
			"recording file is read.",
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			num, err := strconv.Atoi(args[1])
			if err != nil || num <= 0 {
				return fmt.Errorf("invalid item number %q", args[1])
			}

			if keepDate && len(args) == 3 {
				return fmt.Errorf("--keep-date re-accepts the retained audio; do not pass a recording file")
			}
			if !keepDate && len(args) != 3 {
				return fmt.Errorf("a recording file is required (or use --keep-date)")
			}

			session, lock, err := ctx.openSession(dir)
			if err != nil {
				return err
			}
			defer lock.Unlock()

			if err := session.Select(num); err != nil {
				return err
			}
			detail := "retained recording"
			if !keepDate {
				audio, readErr := os.ReadFile(args[2])
				if readErr != nil {
					return fmt.Errorf("read recording: %w", readErr)
				}
				if err := session.SetPending(audio); err != nil {
					return err
				}
				detail = filepath.Base(args[2])
			}
			if _, ok := session.PendingDuration(); !ok {
				return fmt.Errorf("item %d has no retained recording to re-accept", num)
			}

			if err := session.Accept(num, time.Now()); err != nil {
				return err
			}
			if err := session.SyncDir(dir); err != nil {
				return err
			}

			item, _ := session.Item(num)
			recordEvent(ctx, dir, journal.ActionAccept, num, detail)
			fmt.Fprintf(cmd.OutOrStdout(), "Accepted item %d (%.1fs, date %s)\n", num, item.RecordSeconds, item.LatestDate)
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepDate, "keep-date", false, "Re-accept the retained recording without changing its date")
	return cmd
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <dir> <num>",
		Short: "Mark a script item removed and discard its recordings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			num, err := strconv.Atoi(args[1])
			if err != nil || num <= 0 {
				return fmt.Errorf("invalid item number %q", args[1])
			}

			session, lock, err := ctx.openSession(dir)
			if err != nil {
				return err
			}
			defer lock.Unlock()

			if err := session.Remove(num); err != nil {
				return err
			}
			if err := session.SyncDir(dir); err != nil {
				return err
			}
			recordEvent(ctx, dir, journal.ActionRemove, num, "")
			fmt.Fprintf(cmd.OutOrStdout(), "Removed item %d (re-accept to restore)\n", num)
			return nil
		},
	}
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir> [zipfile]",
		Short: "Write the portable project archive",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			target := project.DefaultArchiveName(time.Now())
			if len(args) == 2 {
				target = args[1]
			}

			session, lock, err := ctx.openSession(dir)
			if err != nil {
				return err
			}
			defer lock.Unlock()

			out, err := os.Create(target)
			if err != nil {
				return fmt.Errorf("create archive: %w", err)
			}
			exportErr := session.ExportArchive(out)
			if closeErr := out.Close(); exportErr == nil {
				exportErr = closeErr
			}
			if exportErr != nil {
				return exportErr
			}

			recordEvent(ctx, dir, journal.ActionExport, 0, filepath.Base(target))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", target)
			return nil
		},
	}
}
