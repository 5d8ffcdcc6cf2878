package middleware

import (
	"net/http"

	"taskturf/internal/data/entity"
	"taskturf/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Headers set by the upstream gateway after authenticating the caller.
// Authentication itself is out of scope here; the gateway is trusted.
const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

// Identity extracts the authenticated actor from gateway headers and puts it
// on the request context. Requests without a valid actor are rejected, so
// downstream handlers can rely on the context being populated.
func Identity(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actorHeader := r.Header.Get(HeaderActorID)
			if actorHeader == "" {
				utils.ResponseUnauthorized(w, "Missing actor identity")
				return
			}

			actorID, err := uuid.Parse(actorHeader)
			if err != nil {
				logger.Warn("Invalid actor id header",
					zap.String("actor_id", actorHeader),
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid actor identity")
				return
			}

			role := r.Header.Get(HeaderActorRole)
			switch role {
			case entity.RoleCustomer, entity.RoleWorker, entity.RoleOperator:
			case "":
				role = entity.RoleCustomer
			default:
				utils.ResponseUnauthorized(w, "Unknown actor role")
				return
			}

			ctx := utils.SetActorContext(r.Context(), actorID, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
