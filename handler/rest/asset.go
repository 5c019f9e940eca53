package rest

import (
	"net/http"

	"ledger/core"
	"ledger/handler/param"
	"ledger/handler/render"
	"ledger/handler/views"
)

func assetsHandler(ledger core.ILedgerService, model core.IInterestRateModel) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Fields string `json:"fields"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		assets, err := ledger.Assets(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		items := make([]map[string]interface{}, 0, len(assets))
		for _, asset := range assets {
			items = append(items, views.Select(views.AssetView(asset, model), params.Fields))
		}

		render.JSON(w, items)
	}
}

func registerAssetHandler(ledger core.ILedgerService, model core.IInterestRateModel) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			AssetID              string `json:"asset_id" valid:"required"`
			Symbol               string `json:"symbol"`
			Decimals             int32  `json:"decimals"`
			MaxLtv               int64  `json:"max_ltv"`
			LiquidationThreshold int64  `json:"liquidation_threshold"`
			LiquidationBonus     int64  `json:"liquidation_bonus"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		asset, err := ledger.RegisterAsset(r.Context(), params.AssetID, params.Symbol, params.Decimals, core.AssetConfig{
			MaxLtv:               params.MaxLtv,
			LiquidationThreshold: params.LiquidationThreshold,
			LiquidationBonus:     params.LiquidationBonus,
		})
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.AssetView(asset, model))
	}
}
