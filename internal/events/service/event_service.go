package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/the3dsandwich/csci3100-grp31/internal/events/domain"
	profiledomain "github.com/the3dsandwich/csci3100-grp31/internal/profiles/domain"
)

// Store is the slice of event persistence this service needs.
type Store interface {
	Create(ctx context.Context, e domain.Event) (string, error)
	Get(ctx context.Context, eid string) (*domain.Event, error)
	AttachChat(ctx context.Context, eid, cid string) error
	PutParticipant(ctx context.Context, eid string, p domain.Participant) error
	Participants(ctx context.Context, eid string) ([]domain.Participant, error)
	MirrorForUser(ctx context.Context, uid string, m domain.Mirror) error
	UserMirrors(ctx context.Context, uid string) ([]domain.Mirror, error)
	ListPublicUpcoming(ctx context.Context, now time.Time, limit int) ([]domain.Event, error)
}

// ProfileDirectory resolves uids to profiles; used for existence checks and
// for stamping usernames onto roster entries.
type ProfileDirectory interface {
	Get(ctx context.Context, uid string) (*profiledomain.UserProfile, error)
}

// ChatRoster is the slice of the chat service event participation cascades into.
type ChatRoster interface {
	ProvisionEventChat(ctx context.Context, hostUID, eid, eventName string) (string, error)
	AddParticipant(ctx context.Context, cid, uid string) error
}

// EventService owns the event lifecycle: creation, participation and the
// event-to-chat cascade.
type EventService struct {
	store    Store
	profiles ProfileDirectory
	chats    ChatRoster
	Now      func() time.Time
}

func NewEventService(store Store, profiles ProfileDirectory, chats ChatRoster) *EventService {
	return &EventService{
		store:    store,
		profiles: profiles,
		chats:    chats,
		Now:      time.Now,
	}
}

// CreateEventInput carries the fields the host submits. IsPublic is a plain
// boolean: false means a private event, not a missing field.
type CreateEventInput struct {
	AllowedPeople int
	EventName     string
	EventType     string
	IsPublic      bool
	Location      string
	StartingTime  time.Time
}

func (in *CreateEventInput) validate(now time.Time) error {
	in.EventName = strings.TrimSpace(in.EventName)
	in.EventType = strings.TrimSpace(in.EventType)
	in.Location = strings.TrimSpace(in.Location)

	if in.EventName == "" {
		return fmt.Errorf("%w: eventName is required", domain.ErrInvalidEvent)
	}
	if in.EventType == "" {
		return fmt.Errorf("%w: eventType is required", domain.ErrInvalidEvent)
	}
	if in.Location == "" {
		return fmt.Errorf("%w: location is required", domain.ErrInvalidEvent)
	}
	if in.AllowedPeople < domain.MinAllowedPeople {
		return fmt.Errorf("%w: allowedPeople must be at least %d", domain.ErrInvalidEvent, domain.MinAllowedPeople)
	}
	if !in.StartingTime.After(now) {
		return fmt.Errorf("%w: startingTime must be in the future", domain.ErrInvalidEvent)
	}
	return nil
}

// Create inserts the event, enrolls the host as its first joined participant
// and provisions the event chat, then back-fills the chat id onto the event.
// A failure after the insert leaves a partially provisioned event; there is no
// rollback, the reconcile pass picks those up later.
func (s *EventService) Create(ctx context.Context, hostUID string, in CreateEventInput) (string, error) {
	now := s.Now()
	if err := in.validate(now); err != nil {
		return "", err
	}

	if _, err := s.profiles.Get(ctx, hostUID); err != nil {
		return "", err
	}

	eid, err := s.store.Create(ctx, domain.Event{
		EventName:     in.EventName,
		EventType:     in.EventType,
		IsPublic:      in.IsPublic,
		Location:      in.Location,
		StartingTime:  in.StartingTime,
		AllowedPeople: in.AllowedPeople,
		HostUID:       hostUID,
		CID:           "",
		CreatedAt:     now,
	})
	if err != nil {
		return "", err
	}

	if err := s.AddParticipant(ctx, eid, hostUID, domain.StatusJoined); err != nil {
		return "", fmt.Errorf("enroll host in event %s: %w", eid, err)
	}

	cid, err := s.chats.ProvisionEventChat(ctx, hostUID, eid, in.EventName)
	if err != nil {
		return "", fmt.Errorf("provision chat for event %s: %w", eid, err)
	}

	if err := s.store.AttachChat(ctx, eid, cid); err != nil {
		return "", err
	}

	return eid, nil
}

// AddParticipant upserts the roster entry and the user's event mirror, then
// routes the user into the event chat so chat membership tracks event
// membership. While the event's chat is still being provisioned the chat step
// is skipped; the host is added to the chat by provisioning itself.
func (s *EventService) AddParticipant(ctx context.Context, eid, uid, status string) error {
	if !domain.ValidStatus(status) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	ev, err := s.store.Get(ctx, eid)
	if err != nil {
		return err
	}
	prof, err := s.profiles.Get(ctx, uid)
	if err != nil {
		return err
	}

	err = s.store.PutParticipant(ctx, eid, domain.Participant{
		Username: prof.Username,
		UID:      uid,
		Status:   status,
	})
	if err != nil {
		return err
	}

	mirror := domain.Mirror{Event: *ev, Status: status}
	mirror.EID = eid
	if err := s.store.MirrorForUser(ctx, uid, mirror); err != nil {
		return err
	}

	if ev.CID == "" {
		log.Printf("[info] operation=add_participant eid=%s uid=%s message=chat not provisioned yet, skipping chat join", eid, uid)
		return nil
	}
	return s.chats.AddParticipant(ctx, ev.CID, uid)
}

// Get returns the canonical event document.
func (s *EventService) Get(ctx context.Context, eid string) (*domain.Event, error) {
	return s.store.Get(ctx, eid)
}

// Participants returns the event roster.
func (s *EventService) Participants(ctx context.Context, eid string) ([]domain.Participant, error) {
	if _, err := s.store.Get(ctx, eid); err != nil {
		return nil, err
	}
	return s.store.Participants(ctx, eid)
}

// ListPublicUpcoming returns public events starting after now, soonest first.
func (s *EventService) ListPublicUpcoming(ctx context.Context, limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.store.ListPublicUpcoming(ctx, s.Now(), limit)
}

// ListUserEvents reads the user's denormalized event mirror.
func (s *EventService) ListUserEvents(ctx context.Context, uid string) ([]domain.Mirror, error) {
	return s.store.UserMirrors(ctx, uid)
}

// RefreshMirrors re-projects the canonical event document into every
// participant's mirror entry. This is the defined repair path for mirror
// divergence after an event patch.
func (s *EventService) RefreshMirrors(ctx context.Context, eid string) (int, error) {
	ev, err := s.store.Get(ctx, eid)
	if err != nil {
		return 0, err
	}

	parts, err := s.store.Participants(ctx, eid)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, p := range parts {
		mirror := domain.Mirror{Event: *ev, Status: p.Status}
		mirror.EID = eid
		if err := s.store.MirrorForUser(ctx, p.UID, mirror); err != nil {
			return refreshed, fmt.Errorf("refresh mirror for %s: %w", p.UID, err)
		}
		refreshed++
	}
	return refreshed, nil
}
