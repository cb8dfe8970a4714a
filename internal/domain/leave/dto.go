package leave

// Dashboard is the personal leave balance of a user.
type Dashboard struct {
	RemainingDays int `json:"remaining_days"`
	UsedDays      int `json:"used_days"`
	TotalDays     int `json:"total_days"`
	PendingCount  int `json:"pending_requests"`
	ApprovedCount int `json:"approved_requests"`
	SickDays      int `json:"sick_days"`
	Year          int `json:"year"`
}

const (
	SourceAbsenceRequest      = "absence_request"
	SourceSicknessDeclaration = "sickness_declaration"
)

// CalendarEvent is one absence rendered on a calendar. Dates are YYYY-MM-DD.
type CalendarEvent struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Type      string  `json:"type"`
	Status    string  `json:"status"`
	OwnerName string  `json:"owner_name"`
	Reason    *string `json:"reason"`
	Source    string  `json:"source"`
}

type RecentRequest struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Status       string  `json:"status"`
	Reason       *string `json:"reason"`
	AdminComment *string `json:"admin_comment"`
	BusinessDays int     `json:"business_days"`
	CreatedAt    string  `json:"created_at"`
}

type SummaryUser struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	AnnualLeaveDays int    `json:"annual_leave_days"`
}

// AbsenceSummary is the lifetime rollup of a user's absences.
type AbsenceSummary struct {
	User             SummaryUser     `json:"user"`
	TotalAbsenceDays int             `json:"total_absence_days"`
	VacationDays     int             `json:"vacation_days"`
	SickDays         int             `json:"sick_days"`
	PendingRequests  int             `json:"pending_requests"`
	ApprovedRequests int             `json:"approved_requests"`
	RecentRequests   []RecentRequest `json:"recent_requests"`
}

// CalendarSummary reports vacation taken inside one calendar year, counted in calendar days.
type CalendarSummary struct {
	UserID          string `json:"user_id"`
	Year            int    `json:"year"`
	AnnualLeaveDays int    `json:"annual_leave_days"`
	UsedDays        int    `json:"used_days"`
	RemainingDays   int    `json:"remaining_days"`
}
