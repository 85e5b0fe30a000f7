package reconcile

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the repair job on a cron spec from config.
type Scheduler struct {
	svc  *Service
	spec string
	cron *cron.Cron
}

func NewScheduler(svc *Service, spec string) *Scheduler {
	return &Scheduler{svc: svc, spec: spec}
}

// Start registers the repair job and starts the cron loop. The returned
// error only covers spec parsing; job failures are logged per run.
func (s *Scheduler) Start() error {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		repaired, err := s.svc.RepairUnprovisionedChats(ctx)
		if err != nil {
			log.Printf("[error] reconcile run failed: %v", err)
			return
		}
		if repaired > 0 {
			log.Printf("[info] reconcile run repaired %d event(s)", repaired)
		}
	})
	if err != nil {
		return err
	}

	log.Printf("[info] reconcile scheduler started (spec %q)", s.spec)
	c.Start()
	s.cron = c
	return nil
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}
