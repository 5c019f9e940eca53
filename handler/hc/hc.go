package hc

import (
	"net/http"
	"time"

	"ledger/core"
	"ledger/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/twitchtv/twirp"
)

// Handle handle hc request, the ledger must be able to list its assets
func Handle(ver string, ledger core.ILedgerService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, ledger))
	return r
}

func handle(version string, ledger core.ILedgerService) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		assets, err := ledger.Assets(r.Context())
		if err != nil {
			render.Error(w, twirp.NewError(twirp.Unavailable, err.Error()))
			return
		}

		uptime := time.Since(b).Truncate(time.Millisecond)
		render.JSON(w, render.H{
			"uptime":  uptime.String(),
			"version": version,
			"assets":  len(assets),
		})
	}
}
