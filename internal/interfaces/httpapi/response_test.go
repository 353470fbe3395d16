package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/wrestling-roster/internal/domain/member"
	"github.com/riskibarqy/wrestling-roster/internal/infrastructure/rosterfile"
	"github.com/riskibarqy/wrestling-roster/internal/usecase"
)

type envelopeBody struct {
	APIVersion string         `json:"apiVersion"`
	Data       map[string]any `json:"data"`
	Error      *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelopeBody {
	t.Helper()

	var body envelopeBody
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v (%s)", err, rec.Body.String())
	}
	if body.APIVersion != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %q", body.APIVersion)
	}
	return body
}

func TestEnvelope(t *testing.T) {
	t.Run("success carries data only", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeSuccess(context.Background(), rec, http.StatusCreated, map[string]string{"name": "Varsity"})

		body := decodeEnvelope(t, rec)
		if rec.Code != http.StatusCreated || body.Data["name"] != "Varsity" || body.Error != nil {
			t.Fatalf("unexpected success envelope: %d %+v", rec.Code, body)
		}
	})

	t.Run("error carries status and message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeError(context.Background(), rec, fmt.Errorf("%w: weight must be positive", usecase.ErrInvalidInput))

		body := decodeEnvelope(t, rec)
		if rec.Code != http.StatusBadRequest || body.Error == nil || body.Data != nil {
			t.Fatalf("unexpected error envelope: %d %+v", rec.Code, body)
		}
		if body.Error.Status != "INVALID_ARGUMENT" || body.Error.Code != http.StatusBadRequest {
			t.Fatalf("unexpected error object: %+v", body.Error)
		}
	})
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{name: "invalid input", err: fmt.Errorf("%w: x", usecase.ErrInvalidInput), wantStatus: http.StatusBadRequest, wantReason: "invalidInput"},
		{name: "not found", err: fmt.Errorf("%w: team", usecase.ErrNotFound), wantStatus: http.StatusNotFound, wantReason: "notFound"},
		{name: "conflict", err: fmt.Errorf("%w: team", usecase.ErrConflict), wantStatus: http.StatusConflict, wantReason: "conflict"},
		{name: "archive down", err: fmt.Errorf("%w: db", usecase.ErrDependencyUnavailable), wantStatus: http.StatusServiceUnavailable, wantReason: "dependencyUnavailable"},
		{name: "member invalid", err: fmt.Errorf("%w: last name", member.ErrInvalidMember), wantStatus: http.StatusBadRequest, wantReason: "invalidMember"},
		{name: "outside roster dir", err: fmt.Errorf("open: %w", rosterfile.ErrOutsideRosterDir), wantStatus: http.StatusForbidden, wantReason: "pathForbidden"},
		{name: "no roster dir", err: rosterfile.ErrNoRosterDir, wantStatus: http.StatusForbidden, wantReason: "pathForbidden"},
		{name: "body too large", err: fmt.Errorf("%w: %w", usecase.ErrInvalidInput, &http.MaxBytesError{Limit: 8}), wantStatus: http.StatusRequestEntityTooLarge, wantReason: "payloadTooLarge"},
		{name: "unknown", err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError, wantReason: "internalError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err)
			if got.HTTPStatus != tt.wantStatus || got.Reason != tt.wantReason {
				t.Fatalf("mapError(%v)=%+v want status=%d reason=%s", tt.err, got, tt.wantStatus, tt.wantReason)
			}
		})
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("pq: password authentication failed for user roster"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}

	var body struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Error.Message != "internal server error" || body.Error.Status != "INTERNAL" {
		t.Fatalf("unexpected internal error body: %+v", body.Error)
	}
}
