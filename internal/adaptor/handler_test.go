package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskturf/internal/data/entity"
	"taskturf/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleServiceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation maps to 400",
			err:        entity.NewValidationError("category is required"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_error",
		},
		{
			name:       "not found maps to 404",
			err:        entity.NewNotFoundError("booking missing"),
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "forbidden maps to 403",
			err:        entity.NewForbiddenError("not your booking"),
			wantStatus: http.StatusForbidden,
			wantCode:   "forbidden",
		},
		{
			name:       "invalid transition maps to 409",
			err:        entity.NewInvalidTransitionError("accepted cannot accept"),
			wantStatus: http.StatusConflict,
			wantCode:   "invalid_transition",
		},
		{
			name:       "stale state maps to 409",
			err:        entity.NewStaleStateError("lost the race"),
			wantStatus: http.StatusConflict,
			wantCode:   "stale_state",
		},
		{
			name:       "directory outage maps to 503",
			err:        entity.NewDirectoryUnavailableError(errors.New("timeout")),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "directory_unavailable",
		},
		{
			name:       "repository outage maps to 503",
			err:        entity.NewRepositoryUnavailableError(errors.New("timeout")),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "repository_unavailable",
		},
		{
			name:       "unknown error maps to 500",
			err:        errors.New("something else"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tt.err, "test op")

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body utils.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Status)
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestHandleServiceErrorUnwrapsChain(t *testing.T) {
	wrapped := fmt.Errorf("retrying transition: %w", entity.NewStaleStateError("racy"))

	rec := httptest.NewRecorder()
	handleServiceError(rec, zap.NewNop(), wrapped, "test op")

	assert.Equal(t, http.StatusConflict, rec.Code)
}
