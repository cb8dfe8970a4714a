package leave

import (
	"testing"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/absence"
	domainLeave "github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

func TestBuildDashboard(t *testing.T) {
	counts := map[absence.Status]int{
		absence.StatusPending:  2,
		absence.StatusApproved: 3,
		absence.StatusRejected: 1,
	}

	d := BuildDashboard(testUser(), 7, 4, counts, 2024)

	assert.Equal(t, domainLeave.Dashboard{
		RemainingDays: 18,
		UsedDays:      7,
		TotalDays:     25,
		PendingCount:  2,
		ApprovedCount: 3,
		SickDays:      4,
		Year:          2024,
	}, d)
}

func TestBuildDashboardNeverNegative(t *testing.T) {
	d := BuildDashboard(testUser(), 40, 0, nil, 2024)
	assert.Zero(t, d.RemainingDays)
	assert.Equal(t, 40, d.UsedDays)
}

func TestBuildDashboardAdminIsZero(t *testing.T) {
	admin := testUser()
	admin.Role = user.RoleAdmin

	d := BuildDashboard(admin, 7, 4, map[absence.Status]int{absence.StatusPending: 9}, 2024)
	assert.Equal(t, domainLeave.Dashboard{}, d)
}
