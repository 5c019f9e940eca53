package rest

import (
	"net/http"

	"ledger/core"
	"ledger/handler/render"
	"ledger/handler/views"

	"github.com/go-chi/chi"
)

func accountsHandler(ledger core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := ledger.Users(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		if users == nil {
			users = []string{}
		}

		render.JSON(w, users)
	}
}

func accountHandler(ledger core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account, err := ledger.Account(r.Context(), chi.URLParam(r, "user"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.AccountView(account))
	}
}

func accountAssetHandler(ledger core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID, assetID := chi.URLParam(r, "user"), chi.URLParam(r, "asset")

		balance, err := ledger.BalanceOf(ctx, userID, assetID)
		if err != nil {
			render.Error(w, err)
			return
		}

		debt, err := ledger.DebtOf(ctx, userID, assetID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Position{
			AssetID:    assetID,
			Collateral: balance.String(),
			Debt:       debt.String(),
		})
	}
}
