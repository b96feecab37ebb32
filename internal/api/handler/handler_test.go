package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nvoss/linkstash/internal/api/handler"
	"github.com/nvoss/linkstash/internal/api/response"
	"github.com/nvoss/linkstash/internal/domain"
)

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	handler.HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp["success"] != true {
		t.Error("expected success to be true")
	}

	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data to be a map")
	}

	if data["status"] != "ok" {
		t.Errorf("expected status 'ok', got %v", data["status"])
	}
}

func TestFromError_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewValidation("bad input"), http.StatusBadRequest},
		{"not found", domain.NewNotFound("bookmark"), http.StatusNotFound},
		{"forbidden", domain.NewForbidden("viewer role is read-only"), http.StatusForbidden},
		{"conflict", domain.NewConflict("invitation already accepted"), http.StatusConflict},
		{"untyped", http.ErrBodyNotAllowed, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.FromError(rec, tc.err)

			if rec.Code != tc.want {
				t.Errorf("expected status %d, got %d", tc.want, rec.Code)
			}

			var resp map[string]any
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp["success"] != false {
				t.Error("expected success to be false")
			}
		})
	}
}
