package rest

import (
	"context"
	"net/http"

	"ledger/core"
	"ledger/handler/param"
	"ledger/handler/render"
	"ledger/handler/request"
	"ledger/handler/views"
	"ledger/pkg/id"
	"ledger/service/ledger"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/twitchtv/twirp"
)

type actionParams struct {
	AssetID string `json:"asset_id" valid:"required"`
	Amount  string `json:"amount" valid:"required"`
	// liquidated user, liquidate only
	Borrower string `json:"borrower"`
	// client request id, replaying it returns the first result
	RequestID string `json:"request_id"`
}

type actionFunc func(ctx context.Context, l core.ILedgerService, caller string, params actionParams, amount decimal.Decimal) (*core.Transaction, error)

var actions = map[string]actionFunc{
	"deposit": func(ctx context.Context, l core.ILedgerService, caller string, params actionParams, amount decimal.Decimal) (*core.Transaction, error) {
		return l.Deposit(ctx, caller, params.AssetID, amount)
	},
	"withdraw": func(ctx context.Context, l core.ILedgerService, caller string, params actionParams, amount decimal.Decimal) (*core.Transaction, error) {
		return l.Withdraw(ctx, caller, params.AssetID, amount)
	},
	"borrow": func(ctx context.Context, l core.ILedgerService, caller string, params actionParams, amount decimal.Decimal) (*core.Transaction, error) {
		return l.Borrow(ctx, caller, params.AssetID, amount)
	},
	"repay": func(ctx context.Context, l core.ILedgerService, caller string, params actionParams, amount decimal.Decimal) (*core.Transaction, error) {
		return l.Repay(ctx, caller, params.AssetID, amount)
	},
	"liquidate": func(ctx context.Context, l core.ILedgerService, caller string, params actionParams, amount decimal.Decimal) (*core.Transaction, error) {
		return l.Liquidate(ctx, caller, params.Borrower, params.AssetID, amount)
	},
}

func actionHandler(l core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		action, ok := actions[chi.URLParam(r, "action")]
		if !ok {
			render.NotFoundRequest(w, twirp.NotFoundError("unknown action"))
			return
		}

		var params actionParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := decimal.NewFromString(params.Amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		caller, _ := request.UserFrom(ctx)
		if params.RequestID != "" {
			// request ids are unique per caller
			ctx = ledger.WithTraceID(ctx, id.TraceIDFrom(caller, params.RequestID))
		}

		tx, err := action(ctx, l, caller, params, amount)
		if err != nil {
			logger.FromContext(ctx).WithError(err).Infoln("rest: action", chi.URLParam(r, "action"))
			render.Error(w, err)
			return
		}

		render.JSON(w, views.TransactionView(tx))
	}
}
