package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/absence"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/sickness"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"wrapped not found", fmt.Errorf("load user: %w", user.ErrUserNotFound), http.StatusNotFound, "NOT_FOUND", "User not found"},
		{"conflict", user.ErrUserEmailExists, http.StatusConflict, "CONFLICT", "Email already registered"},
		{"not pending", absence.ErrNotPending, http.StatusBadRequest, "BAD_REQUEST", "Only pending absence requests can be changed"},
		{"sentinel message", sickness.ErrDocumentNotPDF, http.StatusBadRequest, "BAD_REQUEST", "only PDF documents are accepted"},
		{"too large", sickness.ErrDocumentTooLarge, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Document exceeds the maximum upload size"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			body := decode(t, rec)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.message, body.Error.Message)
		})
	}
}

func TestHandleErrorValidation(t *testing.T) {
	var errs validator.ValidationErrors
	errs.Add("email", "email is required")

	rec := httptest.NewRecorder()
	HandleError(rec, errs.Err())

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, map[string]string{"email": "email is required"}, body.Error.Details)
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, []string{"a"}, &Meta{Skip: 0, Limit: 100, Count: 1})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":["a"],"meta":{"skip":0,"limit":100,"count":1}}`, rec.Body.String())
}
