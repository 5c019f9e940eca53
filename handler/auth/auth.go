package auth

import (
	"net/http"
	"strings"

	"ledger/core"
	"ledger/handler/render"
	"ledger/handler/request"

	"github.com/fox-one/pkg/logger"
	"github.com/twitchtv/twirp"
)

// HeaderKeyUserID header carrying the calling user id, set by the gateway in front
const HeaderKeyUserID = "X-User-ID"

// HandleAuthentication put the calling user into the request context
func HandleAuthentication() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(HeaderKeyUserID))
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			log := logger.FromContext(ctx).WithField("caller", userID)
			ctx = logger.WithContext(request.WithUser(ctx, userID), log)
			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}

// RequireUser reject anonymous requests
func RequireUser(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if _, ok := request.UserFrom(r.Context()); !ok {
			render.Error(w, twirp.NewError(twirp.Unauthenticated, "missing "+HeaderKeyUserID))
			return
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

// RequireAdmin reject callers not listed as admins
func RequireAdmin(cfg *core.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			userID, ok := request.UserFrom(r.Context())
			if !ok || !cfg.IsAdmin(userID) {
				render.Error(w, twirp.NewError(twirp.PermissionDenied, "admin only"))
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}
