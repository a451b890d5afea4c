package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/RogerChu8/voiceRecorder-app/internal/script"
)

const previewLimit = 40

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "status <dir>",
		Short: "Reconcile a project directory and show its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter script.Status
			if statusFilter != "" {
				parsed, ok := script.ParseStatus(statusFilter)
				if !ok {
					return fmt.Errorf("unknown status %q (valid: %s)", statusFilter, statusNames())
				}
				filter = parsed
			}

			session, lock, err := ctx.openSession(args[0])
			if err != nil {
				return err
			}
			defer lock.Unlock()

			// Reconciliation on load may have pruned stale files.
			if err := session.SyncDir(args[0]); err != nil {
				return err
			}

			items := session.Items
			if filter != "" {
				filtered := make([]script.Item, 0, len(items))
				for _, item := range items {
					if item.Status == filter {
						filtered = append(filtered, item)
					}
				}
				items = filtered
			}

			if jsonOutput {
				return printItemsJSON(cmd, items)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderItemTable(items))
			if len(session.Warnings) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) skipped; see log for details\n", len(session.Warnings))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable items")
	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show items with this status")
	return cmd
}

func statusNames() string {
	statuses := script.AllStatuses()
	names := make([]string, 0, len(statuses))
	for _, status := range statuses {
		names = append(names, string(status))
	}
	return strings.Join(names, ", ")
}

type itemView struct {
	Num             int     `json:"num"`
	Text            string  `json:"text"`
	Status          string  `json:"status"`
	DurationSeconds float64 `json:"duration_seconds"`
	Date            string  `json:"date,omitempty"`
}

func printItemsJSON(cmd *cobra.Command, items []script.Item) error {
	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, itemView{
			Num:             item.Num,
			Text:            item.Text,
			Status:          string(item.Status),
			DurationSeconds: item.RecordSeconds,
			Date:            item.LatestDate,
		})
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(views)
}

func renderItemTable(items []script.Item) string {
	headers := []string{"Num", "Status", "Duration", "Date", "Text"}
	aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft}

	rows := make([][]string, 0, len(items))
	rowColors := make(map[string]text.Colors)
	for _, item := range items {
		numCell := strconv.Itoa(item.Num)
		rows = append(rows, []string{
			numCell,
			item.Status.Label(),
			formatDuration(item.RecordSeconds),
			item.LatestDate,
			previewText(item.Text),
		})
		switch item.Status {
		case script.StatusCompleted:
			rowColors[numCell] = text.Colors{text.FgGreen}
		case script.StatusRemoved:
			rowColors[numCell] = text.Colors{text.Faint}
		}
	}

	return renderTable(headers, rows, aligns, rowColors, colorOutput())
}

func formatDuration(seconds float64) string {
	if seconds == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1fs", seconds)
}

// previewText truncates long prompts for the table; full text is available
// via --json.
func previewText(value string) string {
	runes := []rune(value)
	if len(runes) <= previewLimit {
		return value
	}
	return string(runes[:previewLimit-1]) + "…"
}
