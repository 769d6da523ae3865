package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StalePaymentJob periodically cancels orders whose payment never arrived.
// Runs every minute and cancels orders that have been waiting for payment
// longer than the configured maximum age.
type StalePaymentJob struct {
	handler commands.CancelStalePaymentsCommandHandler
	maxAge  time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStalePaymentJob creates a job cancelling stale unpaid orders.
// Uses CancelStalePaymentsCommandHandler with the given payment deadline.
func NewStalePaymentJob(
	handler commands.CancelStalePaymentsCommandHandler,
	maxAge time.Duration,
	logger *slog.Logger,
) *StalePaymentJob {
	return &StalePaymentJob{
		handler: handler,
		maxAge:  maxAge,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "stale_payment_job"),
	}
}

// Start begins the stale payment job to run every minute.
func (j *StalePaymentJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewCancelStalePaymentsCommand(j.maxAge)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale payment job misconfigured", "error", err)
			return
		}

		canceled, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale payment job failed", "error", err)
			return
		}

		if canceled > 0 {
			j.logger.InfoContext(ctx, "Canceled stale unpaid orders", "count", canceled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale payment job started (running every minute)")
	return nil
}

// Stop stops the stale payment job.
func (j *StalePaymentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale payment job stopped")
}
