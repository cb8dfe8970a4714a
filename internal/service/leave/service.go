package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/absence"
	domainLeave "github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/sickness"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

type LeaveServiceImpl struct {
	userRepo     user.UserRepository
	absenceRepo  absence.AbsenceRequestRepository
	sicknessRepo sickness.SicknessDeclarationRepository
	now          func() time.Time
}

// NewLeaveService builds the leave accounting service. A nil clock defaults to time.Now.
func NewLeaveService(
	userRepo user.UserRepository,
	absenceRepo absence.AbsenceRequestRepository,
	sicknessRepo sickness.SicknessDeclarationRepository,
	now func() time.Time,
) domainLeave.LeaveService {
	if now == nil {
		now = time.Now
	}
	return &LeaveServiceImpl{
		userRepo:     userRepo,
		absenceRepo:  absenceRepo,
		sicknessRepo: sicknessRepo,
		now:          now,
	}
}

// UsedVacationDays implements leave.LeaveService.
func (s *LeaveServiceImpl) UsedVacationDays(ctx context.Context, userID string, year int) (int, error) {
	window := domainLeave.LeaveYear(year)
	requests, err := s.absenceRepo.List(ctx, absence.Filter{
		UserID: userID,
		Type:   absence.TypeVacation,
		Status: absence.StatusApproved,
		Period: &window,
		Match:  domainLeave.MatchContained,
	})
	if err != nil {
		return 0, fmt.Errorf("load vacation requests: %w", err)
	}
	return UsedVacationDays(requests, year), nil
}

// UsedSickDays implements leave.LeaveService.
func (s *LeaveServiceImpl) UsedSickDays(ctx context.Context, userID string, year int) (int, error) {
	window := domainLeave.CalendarYear(year)

	var (
		requests     []absence.AbsenceRequest
		declarations []sickness.SicknessDeclaration
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		requests, err = s.absenceRepo.List(gctx, absence.Filter{
			UserID: userID,
			Type:   absence.TypeSickness,
			Status: absence.StatusApproved,
			Period: &window,
			Match:  domainLeave.MatchContained,
		})
		if err != nil {
			return fmt.Errorf("load sickness requests: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		declarations, err = s.sicknessRepo.List(gctx, sickness.Filter{
			UserID: userID,
			Period: &window,
			Match:  domainLeave.MatchContained,
		})
		if err != nil {
			return fmt.Errorf("load sickness declarations: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	return UsedSickDays(requests, declarations, year), nil
}

// Dashboard implements leave.LeaveService.
func (s *LeaveServiceImpl) Dashboard(ctx context.Context, userID string) (domainLeave.Dashboard, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return domainLeave.Dashboard{}, err
	}
	if u.IsAdmin() {
		return BuildDashboard(u, 0, 0, nil, 0), nil
	}

	year := s.now().Year()

	var (
		used, sick int
		counts     map[absence.Status]int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		used, err = s.UsedVacationDays(gctx, userID, year)
		return err
	})
	g.Go(func() error {
		var err error
		sick, err = s.UsedSickDays(gctx, userID, year)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.absenceRepo.CountByStatus(gctx, userID)
		if err != nil {
			return fmt.Errorf("count absence requests: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domainLeave.Dashboard{}, err
	}

	return BuildDashboard(u, used, sick, counts, year), nil
}

// AdminCalendar implements leave.LeaveService.
func (s *LeaveServiceImpl) AdminCalendar(ctx context.Context, year int, month time.Month) ([]domainLeave.CalendarEvent, error) {
	window := domainLeave.Month(year, month)
	return s.project(ctx, window, ProjectAllUsers, "")
}

// UserCalendar implements leave.LeaveService.
func (s *LeaveServiceImpl) UserCalendar(ctx context.Context, userID string, year int) ([]domainLeave.CalendarEvent, error) {
	window := domainLeave.CalendarYear(year)
	return s.project(ctx, window, ProjectSingleUser, userID)
}

func (s *LeaveServiceImpl) project(ctx context.Context, window domainLeave.Period, mode ProjectionMode, userID string) ([]domainLeave.CalendarEvent, error) {
	var (
		requests     []absence.AbsenceRequest
		declarations []sickness.SicknessDeclaration
	)
	allUsers := mode == ProjectAllUsers

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		requests, err = s.absenceRepo.List(gctx, absence.Filter{
			UserID:           userID,
			Period:           &window,
			Match:            domainLeave.MatchOverlapping,
			ActiveOwnersOnly: allUsers,
			OldestFirst:      true,
		})
		if err != nil {
			return fmt.Errorf("load absence requests: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		declarations, err = s.sicknessRepo.List(gctx, sickness.Filter{
			UserID:           userID,
			Period:           &window,
			Match:            domainLeave.MatchOverlapping,
			ActiveOwnersOnly: allUsers,
			OldestFirst:      true,
		})
		if err != nil {
			return fmt.Errorf("load sickness declarations: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return ProjectCalendar(window, mode, requests, declarations), nil
}

// AbsenceSummary implements leave.LeaveService.
func (s *LeaveServiceImpl) AbsenceSummary(ctx context.Context, userID string) (domainLeave.AbsenceSummary, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return domainLeave.AbsenceSummary{}, err
	}

	requests, err := s.absenceRepo.List(ctx, absence.Filter{UserID: userID})
	if err != nil {
		return domainLeave.AbsenceSummary{}, fmt.Errorf("load absence requests: %w", err)
	}
	declarations, err := s.sicknessRepo.List(ctx, sickness.Filter{UserID: userID})
	if err != nil {
		return domainLeave.AbsenceSummary{}, fmt.Errorf("load sickness declarations: %w", err)
	}

	return BuildAbsenceSummary(u, requests, declarations), nil
}

// CalendarSummary implements leave.LeaveService.
func (s *LeaveServiceImpl) CalendarSummary(ctx context.Context, userID string, year int) (domainLeave.CalendarSummary, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return domainLeave.CalendarSummary{}, err
	}

	window := domainLeave.CalendarYear(year)
	requests, err := s.absenceRepo.List(ctx, absence.Filter{
		UserID: userID,
		Type:   absence.TypeVacation,
		Status: absence.StatusApproved,
		Period: &window,
		Match:  domainLeave.MatchOverlapping,
	})
	if err != nil {
		return domainLeave.CalendarSummary{}, fmt.Errorf("load vacation requests: %w", err)
	}

	used := UsedCalendarDays(requests, year)
	return domainLeave.CalendarSummary{
		UserID:          u.ID,
		Year:            year,
		AnnualLeaveDays: u.AnnualLeaveDays,
		UsedDays:        used,
		RemainingDays:   max(0, u.AnnualLeaveDays-used),
	}, nil
}
