package rest

import (
	"net/http"

	"ledger/core"
	"ledger/handler/param"
	"ledger/handler/render"
	"ledger/handler/views"
)

func transactionsHandler(transactions core.ITransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID string `json:"user_id"`
			From   int64  `json:"from"`
			Limit  int    `json:"limit"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		limit := params.Limit
		if limit <= 0 || limit > 500 {
			limit = 500
		}

		var (
			list []*core.Transaction
			err  error
		)

		if params.UserID != "" {
			list, err = transactions.ListByUser(ctx, params.UserID, params.From, limit)
		} else {
			list, err = transactions.List(ctx, params.From, limit)
		}

		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.TransactionViews(list))
	}
}
