package handler

import (
	"net/http"

	"ledger/core"
	"ledger/handler/hc"
	"ledger/handler/render"
	"ledger/handler/rest"
	"ledger/pkg/metrics"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
	"github.com/twitchtv/twirp"
)

// Server server
type Server struct {
	cfg          *core.Config
	ledger       core.ILedgerService
	transactions core.ITransactionStore
	model        core.IInterestRateModel
	tokens       rest.TokenLedger
	metrics      *metrics.Metrics
	version      string
}

// New new server function
func New(
	cfg *core.Config,
	ledger core.ILedgerService,
	transactions core.ITransactionStore,
	model core.IInterestRateModel,
	tokens rest.TokenLedger,
	metrics *metrics.Metrics,
	version string,
) Server {
	return Server{
		cfg:          cfg,
		ledger:       ledger,
		transactions: transactions,
		model:        model,
		tokens:       tokens,
		metrics:      metrics,
		version:      version,
	}
}

// Handler the whole http surface: /hc, /metrics and the rest api under /api
func (s Server) Handler() http.Handler {
	mux := chi.NewMux()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(cors.AllowAll().Handler)
	mux.Use(logger.WithRequestID)
	mux.Use(middleware.Logger)
	mux.Use(middleware.NewCompressor(5).Handler)

	mux.Mount("/hc", hc.Handle(s.version, s.ledger))
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}
	mux.Mount("/api", s.HandleRestAPI())

	return mux
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(resetRoutePath)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware("api"))
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	r.Mount("/", rest.Handle(s.cfg, s.ledger, s.transactions, s.model, s.tokens))
	return r
}

func resetRoutePath(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if c := chi.RouteContext(ctx); c != nil {
			c.RoutePath = r.URL.Path
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
