package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/the3dsandwich/csci3100-grp31/internal/chats/domain"
)

const (
	collectionChat        = "chat"
	collectionUserProfile = "user_profile"
	subcolParticipants    = "participants"
	subcolMessages        = "messages"
	subcolUserChatMirrors = "chats"
)

// Repo provides Firestore persistence for chat rooms, rosters, messages and
// the per-user chat mirrors.
type Repo struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) doc(cid string) *firestore.DocumentRef {
	return r.client.Collection(collectionChat).Doc(cid)
}

// Create inserts the chat with a store-generated id and returns that id.
func (r *Repo) Create(ctx context.Context, ch domain.Chat) (string, error) {
	ref, _, err := r.client.Collection(collectionChat).Add(ctx, ch)
	if err != nil {
		return "", fmt.Errorf("create chat: %w", err)
	}
	return ref.ID, nil
}

// SetSelfID back-fills the chat document with its own generated id.
func (r *Repo) SetSelfID(ctx context.Context, cid string) error {
	_, err := r.doc(cid).Update(ctx, []firestore.Update{
		{Path: "cid", Value: cid},
	})
	if status.Code(err) == codes.NotFound {
		return domain.ErrChatNotFound
	}
	if err != nil {
		return fmt.Errorf("set chat id: %w", err)
	}
	return nil
}

// Get point-reads a chat by cid.
func (r *Repo) Get(ctx context.Context, cid string) (*domain.Chat, error) {
	snap, err := r.doc(cid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, domain.ErrChatNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get chat: %w", err)
	}

	var ch domain.Chat
	if err := snap.DataTo(&ch); err != nil {
		return nil, fmt.Errorf("decode chat: %w", err)
	}
	ch.CID = snap.Ref.ID
	return &ch, nil
}

// PutParticipant upserts a roster entry keyed by the participant's uid.
func (r *Repo) PutParticipant(ctx context.Context, cid string, p domain.Participant) error {
	_, err := r.doc(cid).Collection(subcolParticipants).Doc(p.UID).Set(ctx, p)
	if err != nil {
		return fmt.Errorf("put chat participant: %w", err)
	}
	return nil
}

// GetParticipant point-reads a roster entry; (nil, nil) when absent.
func (r *Repo) GetParticipant(ctx context.Context, cid, uid string) (*domain.Participant, error) {
	snap, err := r.doc(cid).Collection(subcolParticipants).Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chat participant: %w", err)
	}

	var p domain.Participant
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decode chat participant: %w", err)
	}
	return &p, nil
}

// Participants lists the chat roster.
func (r *Repo) Participants(ctx context.Context, cid string) ([]domain.Participant, error) {
	iter := r.doc(cid).Collection(subcolParticipants).Documents(ctx)
	defer iter.Stop()

	out := make([]domain.Participant, 0, 8)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list chat participants: %w", err)
		}
		var p domain.Participant
		if err := snap.DataTo(&p); err != nil {
			return nil, fmt.Errorf("decode chat participant: %w", err)
		}
		out = append(out, p)
	}
	return out, nil
}

// AppendMessage appends a message and returns its generated id. Ordering
// beyond the created_at timestamp is up to the store.
func (r *Repo) AppendMessage(ctx context.Context, cid string, m domain.Message) (string, error) {
	ref, _, err := r.doc(cid).Collection(subcolMessages).Add(ctx, m)
	if err != nil {
		return "", fmt.Errorf("append chat message: %w", err)
	}
	return ref.ID, nil
}

// Messages lists up to limit messages in timestamp order.
func (r *Repo) Messages(ctx context.Context, cid string, limit int) ([]domain.Message, error) {
	q := r.doc(cid).Collection(subcolMessages).
		OrderBy("created_at", firestore.Asc).
		Limit(limit)
	return r.queryMessages(ctx, q, "list chat messages")
}

// MessagesSince lists messages strictly after the given instant, oldest first.
func (r *Repo) MessagesSince(ctx context.Context, cid string, after time.Time) ([]domain.Message, error) {
	q := r.doc(cid).Collection(subcolMessages).
		Where("created_at", ">", after).
		OrderBy("created_at", firestore.Asc)
	return r.queryMessages(ctx, q, "list chat messages since")
}

func (r *Repo) queryMessages(ctx context.Context, q firestore.Query, op string) ([]domain.Message, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	out := make([]domain.Message, 0, 32)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		var m domain.Message
		if err := snap.DataTo(&m); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
		m.ID = snap.Ref.ID
		out = append(out, m)
	}
	return out, nil
}

// MirrorForUser upserts the denormalized chat copy under the user's profile.
func (r *Repo) MirrorForUser(ctx context.Context, uid string, ch domain.Chat) error {
	ref := r.client.Collection(collectionUserProfile).Doc(uid).
		Collection(subcolUserChatMirrors).Doc(ch.CID)
	if _, err := ref.Set(ctx, ch); err != nil {
		return fmt.Errorf("mirror chat for user: %w", err)
	}
	return nil
}

// UserMirrors lists the user's chat mirror entries.
func (r *Repo) UserMirrors(ctx context.Context, uid string) ([]domain.Chat, error) {
	iter := r.client.Collection(collectionUserProfile).Doc(uid).
		Collection(subcolUserChatMirrors).Documents(ctx)
	defer iter.Stop()

	out := make([]domain.Chat, 0, 8)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list user chat mirrors: %w", err)
		}
		var ch domain.Chat
		if err := snap.DataTo(&ch); err != nil {
			return nil, fmt.Errorf("decode user chat mirror: %w", err)
		}
		ch.CID = snap.Ref.ID
		out = append(out, ch)
	}
	return out, nil
}
