package reconcile

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"

	eventdomain "github.com/the3dsandwich/csci3100-grp31/internal/events/domain"
)

// EventSource is the slice of the event store the repair job reads and
// patches.
type EventSource interface {
	ListUnprovisioned(ctx context.Context, olderThan time.Time) ([]eventdomain.Event, error)
	AttachChat(ctx context.Context, eid, cid string) error
}

// ChatProvisioner re-runs the chat provisioning step that failed during
// event creation.
type ChatProvisioner interface {
	ProvisionEventChat(ctx context.Context, hostUID, eid, eventName string) (string, error)
}

// Service repairs events whose creation cascade stopped before chat
// provisioning, leaving them with an empty cid.
type Service struct {
	events  EventSource
	chats   ChatProvisioner
	limiter *rate.Limiter
	grace   time.Duration

	Now func() time.Time
}

func NewService(events EventSource, chats ChatProvisioner, grace time.Duration) *Service {
	return &Service{
		events: events,
		chats:  chats,
		// One repair per second keeps a large backlog from hammering
		// Firestore in a single cron tick.
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
		grace:   grace,
		Now:     time.Now,
	}
}

// RepairUnprovisionedChats provisions a chat for every event older than the
// grace period that still has no cid. Returns the number of events repaired.
// Individual failures are logged and skipped so one bad event cannot block
// the rest; the next run picks it up again.
func (s *Service) RepairUnprovisionedChats(ctx context.Context) (int, error) {
	cutoff := s.Now().Add(-s.grace)

	events, err := s.events.ListUnprovisioned(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("list unprovisioned events: %w", err)
	}

	repaired := 0
	for _, ev := range events {
		if err := s.limiter.Wait(ctx); err != nil {
			return repaired, err
		}

		cid, err := s.chats.ProvisionEventChat(ctx, ev.HostUID, ev.EID, ev.EventName)
		if err != nil {
			log.Printf("[error] reconcile: provision chat for event %s: %v", ev.EID, err)
			continue
		}
		if err := s.events.AttachChat(ctx, ev.EID, cid); err != nil {
			log.Printf("[error] reconcile: attach chat %s to event %s: %v", cid, ev.EID, err)
			continue
		}
		log.Printf("[info] reconcile: provisioned chat %s for event %s", cid, ev.EID)
		repaired++
	}
	return repaired, nil
}
