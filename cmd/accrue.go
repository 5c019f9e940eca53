package cmd

import (
	"context"

	"ledger/worker/accrual"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var accrueCmd = &cobra.Command{
	Use:   "accrue",
	Short: "accrue interest of every asset, once or periodically with --loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx).WithField("cmd", "accrue")
		ctx = logger.WithContext(ctx, log)

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

		w := accrual.New(svc, cfg.App.AccrualInterval)
		if loop, _ := cmd.Flags().GetBool("loop"); !loop {
			return w.RunOnce(ctx)
		}

		if err := w.Run(ctx); err != context.Canceled {
			return err
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(accrueCmd)
	accrueCmd.Flags().Bool("loop", false, "keep accruing every accrual_interval")
}
