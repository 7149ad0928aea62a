// Package maintenance wires up the cron job that periodically anonymizes
// tracking events whose viewer identity no longer exists.
package maintenance

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/campusjobs/board/pkg/tracking"
)

// Sweeper wraps robfig/cron and runs the orphan-anonymization sweep.
type Sweeper struct {
	cron   *cron.Cron
	events tracking.Repository
	spec   string // cron spec, e.g. "@every 24h"
}

// New creates a Sweeper that fires every intervalHours hours.
func New(events tracking.Repository, intervalHours int) *Sweeper {
	return &Sweeper{
		cron:   cron.New(),
		events: events,
		spec:   fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. One sweep runs
// immediately so a restart does not postpone cleanup by a full interval.
func (s *Sweeper) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	log.Printf("maintenance: sweep scheduled, spec %s", s.spec)

	go s.run(ctx)
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Sweeper) Stop() {
	s.cron.Stop()
	log.Println("maintenance: sweep stopped")
}

func (s *Sweeper) run(ctx context.Context) {
	n, err := s.events.AnonymizeOrphans(ctx)
	if err != nil {
		log.Printf("maintenance: anonymize orphans: %v", err)
		return
	}
	if n > 0 {
		log.Printf("maintenance: anonymized %d orphaned events", n)
	}
}
