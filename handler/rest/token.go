package rest

import (
	"context"
	"net/http"

	"ledger/handler/param"
	"ledger/handler/render"
	"ledger/handler/request"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

// TokenLedger the asset ledger funds are pulled from and pushed to
type TokenLedger interface {
	Pool() string
	Mint(ctx context.Context, caller, to, assetID string, amount decimal.Decimal) error
	Approve(ctx context.Context, owner, spender, assetID string, amount decimal.Decimal) error
	Allowance(ctx context.Context, owner, spender, assetID string) decimal.Decimal
	BalanceOf(ctx context.Context, user, assetID string) decimal.Decimal
}

type tokenParams struct {
	AssetID string `json:"asset_id" valid:"required"`
	Amount  string `json:"amount" valid:"required"`
	// mint receiver, the caller if empty
	To string `json:"to"`
}

func bindTokenParams(r *http.Request) (tokenParams, decimal.Decimal, error) {
	var params tokenParams
	if err := param.Binding(r, &params); err != nil {
		return params, decimal.Zero, err
	}

	amount, err := decimal.NewFromString(params.Amount)
	return params, amount, err
}

func mintHandler(tokens TokenLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, amount, err := bindTokenParams(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		caller, _ := request.UserFrom(r.Context())
		to := params.To
		if to == "" {
			to = caller
		}

		if err := tokens.Mint(r.Context(), caller, to, params.AssetID, amount); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"user_id":  to,
			"asset_id": params.AssetID,
			"balance":  tokens.BalanceOf(r.Context(), to, params.AssetID),
		})
	}
}

// approveHandler let the pool pull up to amount from the caller
func approveHandler(tokens TokenLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, amount, err := bindTokenParams(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		caller, _ := request.UserFrom(r.Context())
		if err := tokens.Approve(r.Context(), caller, tokens.Pool(), params.AssetID, amount); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"user_id":   caller,
			"asset_id":  params.AssetID,
			"allowance": tokens.Allowance(r.Context(), caller, tokens.Pool(), params.AssetID),
		})
	}
}

func tokenBalanceHandler(tokens TokenLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, assetID := chi.URLParam(r, "user"), chi.URLParam(r, "asset")

		render.JSON(w, render.H{
			"user_id":   userID,
			"asset_id":  assetID,
			"balance":   tokens.BalanceOf(r.Context(), userID, assetID),
			"allowance": tokens.Allowance(r.Context(), userID, tokens.Pool(), assetID),
		})
	}
}
