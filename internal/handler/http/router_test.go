package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/storage"
	absenceService "github.com/cmlabs-hris/leave-backend-go/internal/service/absence"
	authService "github.com/cmlabs-hris/leave-backend-go/internal/service/auth"
	calendarSyncService "github.com/cmlabs-hris/leave-backend-go/internal/service/calendarsync"
	fileService "github.com/cmlabs-hris/leave-backend-go/internal/service/file"
	leaveService "github.com/cmlabs-hris/leave-backend-go/internal/service/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/service/notification"
	sicknessService "github.com/cmlabs-hris/leave-backend-go/internal/service/sickness"
	userService "github.com/cmlabs-hris/leave-backend-go/internal/service/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/testutil/fakes"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	handlerTestSecret   = "test-secret-key-for-jwt"
	handlerTestPassword = "correct-horse"
)

type stubPinger struct{ err error }

func (p *stubPinger) Ping(context.Context) error { return p.err }

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type handlerEnv struct {
	router *chi.Mux
	jwt    jwt.Service
	users  *fakes.Users
	mailer *fakes.Mailer
	pinger *stubPinger
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(handlerTestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	users := fakes.NewUsers(
		user.User{ID: "user-1", Email: "alice@example.com", PasswordHash: string(hash), FirstName: "Alice", LastName: "Martin", Role: user.RoleUser, IsActive: true, AnnualLeaveDays: 25},
		user.User{ID: "user-2", Email: "carol@example.com", PasswordHash: string(hash), FirstName: "Carol", LastName: "Petit", Role: user.RoleUser, IsActive: false, AnnualLeaveDays: 25},
		user.User{ID: "admin-1", Email: "admin@example.com", PasswordHash: string(hash), FirstName: "Ada", LastName: "Admin", Role: user.RoleAdmin, IsActive: true, AnnualLeaveDays: 25},
	)
	absences := fakes.NewAbsenceRequests(users)
	declarations := fakes.NewSicknessDeclarations(users)
	mailer := &fakes.Mailer{}

	jwtService, err := jwt.NewJWTService(handlerTestSecret, "1h")
	require.NoError(t, err)

	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	files := fileService.NewFileService(local, 1<<20)

	notifier := notification.NewNotificationService(users, notification.Config{})
	t.Cleanup(notifier.Stop)

	clock := func() time.Time { return time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC) }
	leaves := leaveService.NewLeaveService(users, absences, declarations, clock)

	pinger := &stubPinger{}
	router := NewRouter(RouterConfig{Env: "test", AllowedOrigins: []string{"http://localhost:3000"}}, jwtService, pinger, Handlers{
		Auth:           NewAuthHandler(authService.NewAuthService(users, jwtService)),
		User:           NewUserHandler(userService.NewUserService(users, &fakes.Transactor{}), leaves),
		Absence:        NewAbsenceHandler(absenceService.NewAbsenceService(absences, users, declarations, mailer, notifier, nil)),
		Sickness:       NewSicknessHandler(sicknessService.NewSicknessService(declarations, users, files, mailer, notifier), 1<<20),
		Dashboard:      NewDashboardHandler(leaves),
		Calendar:       NewCalendarHandler(leaves, clock),
		GoogleCalendar: NewGoogleCalendarHandler(calendarSyncService.NewCalendarSyncService(absences, nil, "")),
	})

	return &handlerEnv{router: router, jwt: jwtService, users: users, mailer: mailer, pinger: pinger}
}

func (e *handlerEnv) token(t *testing.T, userID, email string, role user.Role) string {
	t.Helper()
	token, _, err := e.jwt.GenerateAccessToken(userID, email, role)
	require.NoError(t, err)
	return token
}

func (e *handlerEnv) alice(t *testing.T) string {
	return e.token(t, "user-1", "alice@example.com", user.RoleUser)
}

func (e *handlerEnv) admin(t *testing.T) string {
	return e.token(t, "admin-1", "admin@example.com", user.RoleAdmin)
}

func (e *handlerEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.serve(t, req)
}

func (e *handlerEnv) serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestHealth(t *testing.T) {
	env := newHandlerEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	env.pinger.err = errors.New("connection refused")
	rec, body := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
}

func TestLogin(t *testing.T) {
	env := newHandlerEnv(t)

	t.Run("success", func(t *testing.T) {
		rec, body := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email": "Alice@Example.com", "password": handlerTestPassword,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var token struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
			User        struct {
				Email string `json:"email"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(body.Data, &token))
		assert.NotEmpty(t, token.AccessToken)
		assert.Equal(t, "bearer", token.TokenType)
		assert.Equal(t, "alice@example.com", token.User.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec, body := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email": "alice@example.com", "password": "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
	})

	t.Run("inactive account", func(t *testing.T) {
		rec, _ := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email": "carol@example.com", "password": handlerTestPassword,
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{"))
		rec, body := env.serve(t, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request format", body.Error.Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec, body := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "alice@example.com"})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, body.Error.Details, "password")
	})
}

func TestTokenForm(t *testing.T) {
	env := newHandlerEnv(t)

	form := url.Values{"username": {"admin@example.com"}, "password": {handlerTestPassword}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var token map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	assert.NotEmpty(t, token["access_token"])
	assert.Equal(t, "bearer", token["token_type"])
}

func TestAuthenticationRequired(t *testing.T) {
	env := newHandlerEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/api/v1/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/dashboard", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body := env.do(t, http.MethodGet, "/api/v1/auth/me", env.alice(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body.Data), "alice@example.com")
}

func TestUsersAreAdminOnly(t *testing.T) {
	env := newHandlerEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/api/v1/users/", env.alice(t), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, body := env.do(t, http.MethodGet, "/api/v1/users/?limit=2", env.admin(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(body.Data, &listed))
	assert.Len(t, listed, 2)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/users/?limit=0", env.admin(t), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUserLifecycle(t *testing.T) {
	env := newHandlerEnv(t)
	admin := env.admin(t)

	rec, _ := env.do(t, http.MethodPost, "/api/v1/users/", admin, map[string]any{
		"email": "alice@example.com", "password": "long-enough", "first_name": "A", "last_name": "B",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, body := env.do(t, http.MethodPost, "/api/v1/users/", admin, map[string]any{
		"email": "dave@example.com", "password": "long-enough", "first_name": "Dave", "last_name": "Moreau",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID              string `json:"id"`
		AnnualLeaveDays int    `json:"annual_leave_days"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &created))
	assert.Equal(t, 25, created.AnnualLeaveDays)

	rec, _ = env.do(t, http.MethodPut, "/api/v1/users/admin-1", admin, map[string]any{"first_name": "Self"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = env.do(t, http.MethodDelete, "/api/v1/users/admin-1", admin, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = env.do(t, http.MethodDelete, "/api/v1/users/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/users/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAbsenceRequestFlow(t *testing.T) {
	env := newHandlerEnv(t)
	alice, admin := env.alice(t), env.admin(t)

	rec, body := env.do(t, http.MethodPost, "/api/v1/absence-requests/", alice, map[string]any{
		"type": "vacation", "start_date": "2024-08-05", "end_date": "2024-08-09", "reason": "Holiday",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID           string `json:"id"`
		Status       string `json:"status"`
		BusinessDays int    `json:"business_days"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &created))
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, 5, created.BusinessDays)

	rec, body = env.do(t, http.MethodGet, "/api/v1/absence-requests/pending-count", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"absence_requests":1,"sickness_declarations":0,"total":1}`, string(body.Data))

	rec, _ = env.do(t, http.MethodGet, "/api/v1/absence-requests/pending-count", alice, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, body = env.do(t, http.MethodPut, "/api/v1/absence-requests/"+created.ID+"/status", admin, map[string]any{
		"status": "approved", "admin_comment": "Enjoy",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body.Data), `"status":"approved"`)

	rec, _ = env.do(t, http.MethodDelete, "/api/v1/absence-requests/"+created.ID, alice, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = env.do(t, http.MethodGet, "/api/v1/dashboard", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dashboard struct {
		UsedDays      int `json:"used_days"`
		RemainingDays int `json:"remaining_days"`
		TotalDays     int `json:"total_days"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &dashboard))
	assert.Equal(t, 5, dashboard.UsedDays)
	assert.Equal(t, 20, dashboard.RemainingDays)
	assert.Equal(t, 25, dashboard.TotalDays)

	rec, _ = env.do(t, http.MethodDelete, "/api/v1/absence-requests/admin/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAbsenceRequestRejections(t *testing.T) {
	env := newHandlerEnv(t)

	rec, body := env.do(t, http.MethodPost, "/api/v1/absence-requests/", env.alice(t), map[string]any{
		"type": "vacation", "start_date": "2024-08-09", "end_date": "2024-08-05",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, body.Error.Details, "end_date")

	rec, _ = env.do(t, http.MethodPost, "/api/v1/absence-requests/", env.admin(t), map[string]any{
		"type": "vacation", "start_date": "2024-08-05", "end_date": "2024-08-09",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/absence-requests/?status=unknown", env.alice(t), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/absence-requests/missing", env.alice(t), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func multipartDeclaration(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("start_date", "2024-03-04"))
	require.NoError(t, mw.WriteField("end_date", "2024-03-05"))
	require.NoError(t, mw.WriteField("description", "Flu"))
	part, err := mw.CreateFormFile("pdf_file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestSicknessDeclarationUploadAndDownload(t *testing.T) {
	env := newHandlerEnv(t)
	alice := env.alice(t)

	pdf := []byte("%PDF-1.4 medical certificate")
	body, contentType := multipartDeclaration(t, "certificate.pdf", pdf)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sickness-declarations/", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+alice)
	rec, resp := env.serve(t, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID               string `json:"id"`
		DocumentFilename string `json:"document_filename"`
		EmailSent        bool   `json:"email_sent"`
		BusinessDays     int    `json:"business_days"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, "certificate.pdf", created.DocumentFilename)
	assert.True(t, created.EmailSent)
	assert.Equal(t, 2, created.BusinessDays)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/sickness-declarations/"+created.ID+"/pdf", nil)
	req.Header.Set("Authorization", "Bearer "+alice)
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "inline; filename=certificate.pdf", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, pdf, rec.Body.Bytes())

	rec, resp = env.do(t, http.MethodGet, "/api/v1/sickness-declarations/admin/unviewed-count", env.admin(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"unviewed_count":1}`, string(resp.Data))
}

func TestSicknessDeclarationRejectsNonPDF(t *testing.T) {
	env := newHandlerEnv(t)

	body, contentType := multipartDeclaration(t, "notes.pdf", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sickness-declarations/", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+env.alice(t))
	rec, _ := env.serve(t, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalendarEndpoints(t *testing.T) {
	env := newHandlerEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/api/v1/calendar/admin?year=2024&month=13", env.admin(t), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/calendar/admin", env.alice(t), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, body := env.do(t, http.MethodGet, "/api/v1/calendar/user?year=2024", env.alice(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(body.Data))

	rec, body = env.do(t, http.MethodGet, "/api/v1/calendar/summary", env.alice(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":"user-1","year":2024,"annual_leave_days":25,"used_days":0,"remaining_days":25}`, string(body.Data))
}

func TestGoogleCalendarDisabled(t *testing.T) {
	env := newHandlerEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/v1/google-calendar/status", env.admin(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"enabled":false,"unsynced_requests":0}`, string(body.Data))

	rec, _ = env.do(t, http.MethodPost, "/api/v1/google-calendar/sync", env.admin(t), nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
