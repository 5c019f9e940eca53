package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ledger/handler"
	"ledger/worker/accrual"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run ledger api server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		s := provideStores()
		defer s.Close()

		model, err := provideInterestRateModel()
		if err != nil {
			return err
		}

		tokens := provideTokenLedger()
		m := provideMetrics()
		svc, err := provideLedger(ctx, s, providePriceFeed(), tokens, model, m)
		if err != nil {
			return err
		}

		mux := handler.New(provideConfig(), svc, s.transactions, model, tokens, m, rootCmd.Version).Handler()

		port, _ := cmd.Flags().GetInt("port")
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		ctx, quit := context.WithCancel(ctx)
		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			quit()

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		})

		if runAccrual, _ := cmd.Flags().GetBool("accrual"); runAccrual {
			w := accrual.New(svc, cfg.App.AccrualInterval)
			go func() {
				if err := w.Run(ctx); err != nil && err != context.Canceled {
					log.WithError(err).Errorln("accrual worker stopped")
				}
			}()
		}

		logrus.Infoln("serve at", addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 9000, "server port")
	serverCmd.Flags().Bool("accrual", true, "run the accrual worker in process")
}
