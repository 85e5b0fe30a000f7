package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/the3dsandwich/csci3100-grp31/internal/chats/domain"
	eventdomain "github.com/the3dsandwich/csci3100-grp31/internal/events/domain"
	profiledomain "github.com/the3dsandwich/csci3100-grp31/internal/profiles/domain"
)

// Store is the slice of chat persistence this service needs.
type Store interface {
	Create(ctx context.Context, ch domain.Chat) (string, error)
	SetSelfID(ctx context.Context, cid string) error
	Get(ctx context.Context, cid string) (*domain.Chat, error)
	PutParticipant(ctx context.Context, cid string, p domain.Participant) error
	GetParticipant(ctx context.Context, cid, uid string) (*domain.Participant, error)
	Participants(ctx context.Context, cid string) ([]domain.Participant, error)
	AppendMessage(ctx context.Context, cid string, m domain.Message) (string, error)
	Messages(ctx context.Context, cid string, limit int) ([]domain.Message, error)
	MessagesSince(ctx context.Context, cid string, after time.Time) ([]domain.Message, error)
	MirrorForUser(ctx context.Context, uid string, ch domain.Chat) error
	UserMirrors(ctx context.Context, uid string) ([]domain.Chat, error)
}

// ProfileDirectory resolves uids to profiles.
type ProfileDirectory interface {
	Get(ctx context.Context, uid string) (*profiledomain.UserProfile, error)
}

// EventSource reads the canonical event document during chat provisioning.
type EventSource interface {
	Get(ctx context.Context, eid string) (*eventdomain.Event, error)
}

// IconResolver maps an event category to a display icon; empty string means
// the catalog has no entry for it.
type IconResolver interface {
	IconFor(ctx context.Context, eventType string) (string, error)
}

// ChatService owns chat provisioning, membership and messaging.
type ChatService struct {
	store    Store
	profiles ProfileDirectory
	events   EventSource
	icons    IconResolver
	Now      func() time.Time
}

func NewChatService(store Store, profiles ProfileDirectory, events EventSource, icons IconResolver) *ChatService {
	return &ChatService{
		store:    store,
		profiles: profiles,
		events:   events,
		icons:    icons,
		Now:      time.Now,
	}
}

// ProvisionEventChat creates the chat room for an event, back-fills the chat's
// own id and enrolls the host. Returns the generated cid.
func (s *ChatService) ProvisionEventChat(ctx context.Context, hostUID, eid, eventName string) (string, error) {
	eventName = strings.TrimSpace(eventName)
	if eid == "" || eventName == "" {
		return "", fmt.Errorf("%w: eid and eventName are required", eventdomain.ErrInvalidEvent)
	}

	if _, err := s.profiles.Get(ctx, hostUID); err != nil {
		return "", err
	}

	ev, err := s.events.Get(ctx, eid)
	if err != nil {
		return "", err
	}

	icon := domain.DefaultIcon
	if resolved, err := s.icons.IconFor(ctx, ev.EventType); err != nil {
		log.Printf("[error] operation=provision_event_chat eid=%s error=icon lookup failed: %v", eid, err)
	} else if resolved != "" {
		icon = resolved
	}

	cid, err := s.store.Create(ctx, domain.Chat{
		Type:  domain.TypeEvent,
		Title: eventName,
		EID:   eid,
		Icon:  icon,
	})
	if err != nil {
		return "", err
	}

	if err := s.store.SetSelfID(ctx, cid); err != nil {
		return "", err
	}

	if err := s.AddParticipant(ctx, cid, hostUID); err != nil {
		return "", fmt.Errorf("enroll host in chat %s: %w", cid, err)
	}

	return cid, nil
}

// AddParticipant upserts the roster entry and the user's chat mirror.
// Calling it again for the same pair is a harmless overwrite.
func (s *ChatService) AddParticipant(ctx context.Context, cid, uid string) error {
	ch, err := s.store.Get(ctx, cid)
	if err != nil {
		return err
	}
	prof, err := s.profiles.Get(ctx, uid)
	if err != nil {
		return err
	}

	err = s.store.PutParticipant(ctx, cid, domain.Participant{
		Username: prof.Username,
		UID:      uid,
	})
	if err != nil {
		return err
	}

	ch.CID = cid
	return s.store.MirrorForUser(ctx, uid, *ch)
}

// SendMessage appends a message after verifying the sender actually belongs
// to the room. Membership is checked against the store, not against anything
// the caller claims.
func (s *ChatService) SendMessage(ctx context.Context, cid, senderUID, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.ErrEmptyMessage
	}

	if _, err := s.store.Get(ctx, cid); err != nil {
		return "", err
	}

	member, err := s.store.GetParticipant(ctx, cid, senderUID)
	if err != nil {
		return "", err
	}
	if member == nil {
		return "", domain.ErrNotParticipant
	}

	return s.store.AppendMessage(ctx, cid, domain.Message{
		Text:      text,
		CreatedAt: s.Now(),
		Sender:    domain.Sender{UID: senderUID},
	})
}

// Get returns the canonical chat document.
func (s *ChatService) Get(ctx context.Context, cid string) (*domain.Chat, error) {
	return s.store.Get(ctx, cid)
}

// Participants returns the chat roster.
func (s *ChatService) Participants(ctx context.Context, cid string) ([]domain.Participant, error) {
	if _, err := s.store.Get(ctx, cid); err != nil {
		return nil, err
	}
	return s.store.Participants(ctx, cid)
}

// Messages returns up to limit messages in timestamp order. Only participants
// may read a room's history.
func (s *ChatService) Messages(ctx context.Context, cid, readerUID string, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	if err := s.requireParticipant(ctx, cid, readerUID); err != nil {
		return nil, err
	}
	return s.store.Messages(ctx, cid, limit)
}

// MessagesSince returns messages strictly after the given instant; it feeds
// the polling stream handler.
func (s *ChatService) MessagesSince(ctx context.Context, cid, readerUID string, after time.Time) ([]domain.Message, error) {
	if err := s.requireParticipant(ctx, cid, readerUID); err != nil {
		return nil, err
	}
	return s.store.MessagesSince(ctx, cid, after)
}

// ListUserChats reads the user's denormalized chat mirror.
func (s *ChatService) ListUserChats(ctx context.Context, uid string) ([]domain.Chat, error) {
	return s.store.UserMirrors(ctx, uid)
}

func (s *ChatService) requireParticipant(ctx context.Context, cid, uid string) error {
	if _, err := s.store.Get(ctx, cid); err != nil {
		return err
	}
	member, err := s.store.GetParticipant(ctx, cid, uid)
	if err != nil {
		return err
	}
	if member == nil {
		return domain.ErrNotParticipant
	}
	return nil
}
