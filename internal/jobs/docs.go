// Package jobs provides scheduled background tasks for the order backend.
//
// Jobs are cron-based, built on github.com/robfig/cron/v3, and managed
// through JobManager:
//
//	jobManager := jobs.NewJobManager(cancelStaleHandler, 30*time.Minute, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// The StalePaymentJob runs every minute and cancels orders that have been
// waiting for payment longer than the configured deadline. Cancellation goes
// through the regular status state machine, so the job cannot produce an
// illegal transition.
package jobs
