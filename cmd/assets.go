package cmd

import (
	"encoding/json"

	"ledger/core"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var assetsCmd = &cobra.Command{
	Use:     "assets",
	Aliases: []string{"as"},
	Short:   "list registered assets with interest accrued to now",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s := provideStores()
		defer s.Close()

		model, err := provideInterestRateModel()
		if err != nil {
			return err
		}

		svc, err := provideLedger(ctx, s, providePriceFeed(), provideTokenLedger(), model, nil)
		if err != nil {
			return err
		}

		assets, err := svc.Assets(ctx)
		if err != nil {
			return err
		}

		data, _ := json.MarshalIndent(assets, "", "  ")
		cmd.Println(string(data))
		return nil
	},
}

var registerAssetCmd = &cobra.Command{
	Use:     "register-asset <asset_id> <symbol> <decimals> <max_ltv> <liquidation_threshold> <liquidation_bonus>",
	Aliases: []string{"ra"},
	Short:   "register an asset, risk parameters in basis points",
	Args:    cobra.ExactArgs(6),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		decimals, err := cast.ToInt32E(args[2])
		if err != nil {
			return err
		}

		var params [3]int64
		for i := range params {
			if params[i], err = cast.ToInt64E(args[3+i]); err != nil {
				return err
			}
		}

		s := provideStores()
		defer s.Close()

		model, err := provideInterestRateModel()
		if err != nil {
			return err
		}

		svc, err := provideLedger(ctx, s, providePriceFeed(), provideTokenLedger(), model, nil)
		if err != nil {
			return err
		}

		asset, err := svc.RegisterAsset(ctx, args[0], args[1], decimals, core.AssetConfig{
			MaxLtv:               params[0],
			LiquidationThreshold: params[1],
			LiquidationBonus:     params[2],
		})
		if err != nil {
			return err
		}

		cmd.Println("asset registered", asset.AssetID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(registerAssetCmd)
}
