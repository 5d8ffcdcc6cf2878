package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"taskturf/internal/data/entity"
	"taskturf/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIdentity(t *testing.T) {
	actorID := uuid.New()

	var gotActor uuid.UUID
	var gotRole string
	var called bool

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		gotActor, gotRole, ok = utils.GetActorFromContext(r.Context())
		require.True(t, ok)
		called = true
		w.WriteHeader(http.StatusOK)
	})

	handler := Identity(zap.NewNop())(next)

	run := func(t *testing.T, id, role string) *httptest.ResponseRecorder {
		t.Helper()
		called = false
		req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		if id != "" {
			req.Header.Set(HeaderActorID, id)
		}
		if role != "" {
			req.Header.Set(HeaderActorRole, role)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid worker identity", func(t *testing.T) {
		rec := run(t, actorID.String(), entity.RoleWorker)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
		assert.Equal(t, actorID, gotActor)
		assert.Equal(t, entity.RoleWorker, gotRole)
	})

	t.Run("missing role defaults to customer", func(t *testing.T) {
		rec := run(t, actorID.String(), "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, entity.RoleCustomer, gotRole)
	})

	t.Run("missing actor header", func(t *testing.T) {
		rec := run(t, "", entity.RoleCustomer)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("malformed actor id", func(t *testing.T) {
		rec := run(t, "not-a-uuid", entity.RoleCustomer)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("unknown role", func(t *testing.T) {
		rec := run(t, actorID.String(), "superuser")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})
}
