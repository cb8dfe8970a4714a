package gcalendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/leave-backend-go/internal/config"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/absence"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Client pushes absence requests to a shared Google Calendar as all-day events.
type Client struct {
	events     *calendar.EventsService
	calendarID string
	timeZone   string
}

// NewClient authenticates with the service account credentials of cfg.
func NewClient(ctx context.Context, cfg config.GoogleCalendarConfig) (*Client, error) {
	if !cfg.Enabled() {
		return nil, errors.New("google calendar credentials or calendar id missing")
	}

	jwtConfig, err := google.JWTConfigFromJSON(cfg.Credentials, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}

	return newClient(ctx, cfg.CalendarID, cfg.TimeZone, option.WithHTTPClient(jwtConfig.Client(ctx)))
}

// NewClientWithHTTP targets an explicit endpoint with a preconfigured HTTP client.
func NewClientWithHTTP(ctx context.Context, httpClient *http.Client, endpoint, calendarID, timeZone string) (*Client, error) {
	return newClient(ctx, calendarID, timeZone, option.WithHTTPClient(httpClient), option.WithEndpoint(endpoint))
}

func newClient(ctx context.Context, calendarID, timeZone string, opts ...option.ClientOption) (*Client, error) {
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return &Client{
		events:     svc.Events,
		calendarID: calendarID,
		timeZone:   timeZone,
	}, nil
}

func (c *Client) CalendarID() string {
	return c.calendarID
}

// CreateEvent inserts the event and returns its id.
func (c *Client) CreateEvent(ctx context.Context, a absence.AbsenceRequest) (string, error) {
	created, err := c.events.Insert(c.calendarID, c.buildEvent(a)).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert calendar event: %w", err)
	}
	return created.Id, nil
}

func (c *Client) UpdateEvent(ctx context.Context, eventID string, a absence.AbsenceRequest) error {
	if _, err := c.events.Update(c.calendarID, eventID, c.buildEvent(a)).Context(ctx).Do(); err != nil {
		return fmt.Errorf("update calendar event: %w", err)
	}
	return nil
}

// DeleteEvent removes the event. An event that is already gone counts as deleted.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	err := c.events.Delete(c.calendarID, eventID).Context(ctx).Do()
	if err != nil && !isGone(err) {
		return fmt.Errorf("delete calendar event: %w", err)
	}
	return nil
}

func isGone(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone)
}
