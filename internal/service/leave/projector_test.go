package leave

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/absence"
	domainLeave "github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/sickness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCalendarClipsToWindow(t *testing.T) {
	window := domainLeave.Month(2024, time.June)
	requests := []absence.AbsenceRequest{
		request("r1", absence.TypeVacation, absence.StatusApproved, "2024-05-30", "2024-06-02"),
	}

	events := ProjectCalendar(window, ProjectAllUsers, requests, nil)
	require.Len(t, events, 1)
	assert.Equal(t, "2024-06-01", events[0].Start)
	assert.Equal(t, "2024-06-02", events[0].End)
	assert.Equal(t, "Alice Martin - Vacation", events[0].Title)
	assert.Equal(t, domainLeave.SourceAbsenceRequest, events[0].Source)
}

func TestProjectCalendarOverlapCases(t *testing.T) {
	window := domainLeave.Month(2024, time.June)
	requests := []absence.AbsenceRequest{
		request("starts-in", absence.TypeVacation, absence.StatusApproved, "2024-06-28", "2024-07-03"),
		request("ends-in", absence.TypeVacation, absence.StatusApproved, "2024-05-28", "2024-06-03"),
		request("spans", absence.TypeVacation, absence.StatusApproved, "2024-05-01", "2024-07-31"),
		request("inside", absence.TypeVacation, absence.StatusApproved, "2024-06-10", "2024-06-12"),
		request("before", absence.TypeVacation, absence.StatusApproved, "2024-05-01", "2024-05-31"),
		request("after", absence.TypeVacation, absence.StatusApproved, "2024-07-01", "2024-07-05"),
	}

	events := ProjectCalendar(window, ProjectSingleUser, requests, nil)
	require.Len(t, events, 4)

	got := map[string][2]string{}
	for _, e := range events {
		got[e.ID] = [2]string{e.Start, e.End}
	}
	assert.Equal(t, [2]string{"2024-06-28", "2024-06-30"}, got["starts-in"])
	assert.Equal(t, [2]string{"2024-06-01", "2024-06-03"}, got["ends-in"])
	assert.Equal(t, [2]string{"2024-06-01", "2024-06-30"}, got["spans"])
	assert.Equal(t, [2]string{"2024-06-10", "2024-06-12"}, got["inside"])
}

func TestProjectCalendarTitlesByMode(t *testing.T) {
	window := domainLeave.CalendarYear(2024)
	requests := []absence.AbsenceRequest{
		request("p", absence.TypeVacation, absence.StatusPending, "2024-03-04", "2024-03-05"),
		request("r", absence.TypeSickness, absence.StatusRejected, "2024-04-01", "2024-04-01"),
	}

	user := ProjectCalendar(window, ProjectSingleUser, requests, nil)
	require.Len(t, user, 2)
	assert.Equal(t, "Vacation (pending)", user[0].Title)
	assert.Equal(t, "Sickness (rejected)", user[1].Title)

	admin := ProjectCalendar(window, ProjectAllUsers, requests, nil)
	require.Len(t, admin, 2)
	assert.Equal(t, "Alice Martin - Vacation (pending)", admin[0].Title)
	assert.Equal(t, "Alice Martin", admin[0].OwnerName)
}

func TestProjectCalendarDeclarations(t *testing.T) {
	window := domainLeave.CalendarYear(2024)

	withDoc := declaration("d1", "2024-03-04", "2024-03-05", true)
	withDoc.DocumentFilename = strPtr("certificate.pdf")
	withDoc.Description = strPtr("flu")

	withoutDoc := declaration("d2", "2024-04-08", "2024-04-08", false)
	withoutDoc.Description = strPtr("migraine")

	requests := []absence.AbsenceRequest{
		request("r1", absence.TypeVacation, absence.StatusApproved, "2024-08-05", "2024-08-09"),
	}
	declarations := []sickness.SicknessDeclaration{withDoc, withoutDoc}

	events := ProjectCalendar(window, ProjectAllUsers, requests, declarations)
	require.Len(t, events, 3)

	assert.Equal(t, "r1", events[0].ID, "requests come before declarations")

	assert.Equal(t, "Alice Martin - Sick leave ✉️", events[1].Title)
	assert.Equal(t, string(absence.TypeSickness), events[1].Type)
	assert.Equal(t, string(absence.StatusApproved), events[1].Status)
	assert.Equal(t, domainLeave.SourceSicknessDeclaration, events[1].Source)
	require.NotNil(t, events[1].Reason)
	assert.Equal(t, "certificate.pdf", *events[1].Reason)

	assert.Equal(t, "Alice Martin - Sick leave ❌", events[2].Title)
	require.NotNil(t, events[2].Reason)
	assert.Equal(t, "migraine", *events[2].Reason)

	personal := ProjectCalendar(window, ProjectSingleUser, nil, declarations)
	require.Len(t, personal, 2)
	assert.Equal(t, "Sick leave ✉️", personal[0].Title)
	require.NotNil(t, personal[0].Reason)
	assert.Equal(t, "flu", *personal[0].Reason)
}

func TestProjectCalendarEmpty(t *testing.T) {
	events := ProjectCalendar(domainLeave.Month(2024, time.February), ProjectAllUsers, nil, nil)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}
