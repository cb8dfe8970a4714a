package main

import (
	"fmt"

	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/gcalendar"
	"github.com/cmlabs-hris/leave-backend-go/internal/repository/postgresql"
	calendarSyncService "github.com/cmlabs-hris/leave-backend-go/internal/service/calendarsync"
	"github.com/spf13/cobra"
)

var calendarSyncCmd = &cobra.Command{
	Use:   "calendar-sync",
	Short: "Push absence requests without a calendar event to Google Calendar",
	RunE:  runCalendarSync,
}

func runCalendarSync(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.GoogleCalendar.Enabled() {
		return fmt.Errorf("GOOGLE_CALENDAR_CREDENTIALS and GOOGLE_CALENDAR_ID must be set")
	}

	db, err := openDB(cmd, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	client, err := gcalendar.NewClient(cmd.Context(), cfg.GoogleCalendar)
	if err != nil {
		return fmt.Errorf("initialize google calendar client: %w", err)
	}

	syncService := calendarSyncService.NewCalendarSyncService(postgresql.NewAbsenceRequestRepository(db), client, cfg.GoogleCalendar.CalendarID)
	result, err := syncService.SyncAll(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Synced %d request(s), %d failed\n", result.Synced, result.Failed)
	for _, msg := range result.Errors {
		fmt.Fprintln(out, "  -", msg)
	}
	return nil
}
