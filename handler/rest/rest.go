package rest

import (
	"errors"
	"net/http"

	"ledger/core"
	"ledger/handler/auth"
	"ledger/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	cfg *core.Config,
	ledger core.ILedgerService,
	transactions core.ITransactionStore,
	model core.IInterestRateModel,
	tokens TokenLedger,
) http.Handler {
	router := chi.NewRouter()
	router.Use(auth.HandleAuthentication())

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/assets", assetsHandler(ledger, model))
	router.With(auth.RequireAdmin(cfg)).Post("/assets", registerAssetHandler(ledger, model))
	router.With(auth.RequireUser).Post("/actions/{action}", actionHandler(ledger))
	router.With(auth.RequireAdmin(cfg)).Get("/accounts", accountsHandler(ledger))
	router.Get("/accounts/{user}", accountHandler(ledger))
	router.Get("/accounts/{user}/assets/{asset}", accountAssetHandler(ledger))
	router.Get("/transactions", transactionsHandler(transactions))

	router.With(auth.RequireUser).Post("/tokens/mint", mintHandler(tokens))
	router.With(auth.RequireUser).Post("/tokens/approve", approveHandler(tokens))
	router.Get("/tokens/{user}/{asset}", tokenBalanceHandler(tokens))

	return router
}
