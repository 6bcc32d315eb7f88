package processor

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/dawnthivakar/e-com-product-catalog/internal/app/worker/service"
)

type CronScheduler struct {
	cron      *cron.Cron
	ratingSvc service.RatingServiceInterface
}

func NewCronScheduler(ratingSvc service.RatingServiceInterface) *CronScheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &CronScheduler{
		cron:      c,
		ratingSvc: ratingSvc,
	}
}

func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	log.Printf("Starting cron scheduler with schedule: %s", schedule)

	_, err := s.cron.AddFunc(schedule, func() {
		log.Println("Cron job triggered: reconciling rating summaries")

		if err := s.ratingSvc.Reconcile(ctx); err != nil {
			log.Printf("ERROR: Failed to reconcile rating summaries: %v", err)
		} else {
			log.Println("Cron job completed: rating summaries reconciled")
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started")

	log.Println("Performing initial rating summaries reconciliation...")
	if err := s.ratingSvc.Reconcile(ctx); err != nil {
		log.Printf("WARNING: Failed initial reconciliation: %v", err)
	} else {
		log.Println("Initial reconciliation completed")
	}

	return nil
}

func (s *CronScheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
