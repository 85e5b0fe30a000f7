package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/the3dsandwich/csci3100-grp31/internal/events/domain"
)

const (
	collectionEvent        = "event"
	collectionUserProfile  = "user_profile"
	subcolParticipants     = "participants"
	subcolUserEventMirrors = "events"
)

// Repo provides Firestore persistence for events, their participant rosters
// and the per-user event mirrors.
type Repo struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) doc(eid string) *firestore.DocumentRef {
	return r.client.Collection(collectionEvent).Doc(eid)
}

// Create inserts the event with a store-generated id and returns that id.
// The cid field is written empty on purpose: chat provisioning back-fills it,
// and the repair job queries for the empty value.
func (r *Repo) Create(ctx context.Context, e domain.Event) (string, error) {
	ref, _, err := r.client.Collection(collectionEvent).Add(ctx, e)
	if err != nil {
		return "", fmt.Errorf("create event: %w", err)
	}
	return ref.ID, nil
}

// Get point-reads an event. The eid is taken from the document key, so it is
// correct even before the back-fill patch lands.
func (r *Repo) Get(ctx context.Context, eid string) (*domain.Event, error) {
	snap, err := r.doc(eid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	var e domain.Event
	if err := snap.DataTo(&e); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	e.EID = snap.Ref.ID
	return &e, nil
}

// AttachChat back-fills the event with its chat id and its own id.
func (r *Repo) AttachChat(ctx context.Context, eid, cid string) error {
	_, err := r.doc(eid).Update(ctx, []firestore.Update{
		{Path: "cid", Value: cid},
		{Path: "eid", Value: eid},
	})
	if status.Code(err) == codes.NotFound {
		return domain.ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("attach chat to event: %w", err)
	}
	return nil
}

// PutParticipant upserts a roster entry keyed by the participant's uid.
func (r *Repo) PutParticipant(ctx context.Context, eid string, p domain.Participant) error {
	_, err := r.doc(eid).Collection(subcolParticipants).Doc(p.UID).Set(ctx, p)
	if err != nil {
		return fmt.Errorf("put event participant: %w", err)
	}
	return nil
}

// Participants lists the event's roster.
func (r *Repo) Participants(ctx context.Context, eid string) ([]domain.Participant, error) {
	iter := r.doc(eid).Collection(subcolParticipants).Documents(ctx)
	defer iter.Stop()

	out := make([]domain.Participant, 0, 8)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list event participants: %w", err)
		}
		var p domain.Participant
		if err := snap.DataTo(&p); err != nil {
			return nil, fmt.Errorf("decode event participant: %w", err)
		}
		out = append(out, p)
	}
	return out, nil
}

// MirrorForUser upserts the denormalized event copy under the user's profile.
func (r *Repo) MirrorForUser(ctx context.Context, uid string, m domain.Mirror) error {
	ref := r.client.Collection(collectionUserProfile).Doc(uid).
		Collection(subcolUserEventMirrors).Doc(m.EID)
	if _, err := ref.Set(ctx, m); err != nil {
		return fmt.Errorf("mirror event for user: %w", err)
	}
	return nil
}

// UserMirrors lists the user's event mirror entries.
func (r *Repo) UserMirrors(ctx context.Context, uid string) ([]domain.Mirror, error) {
	iter := r.client.Collection(collectionUserProfile).Doc(uid).
		Collection(subcolUserEventMirrors).Documents(ctx)
	defer iter.Stop()

	out := make([]domain.Mirror, 0, 8)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list user event mirrors: %w", err)
		}
		var m domain.Mirror
		if err := snap.DataTo(&m); err != nil {
			return nil, fmt.Errorf("decode user event mirror: %w", err)
		}
		m.EID = snap.Ref.ID
		out = append(out, m)
	}
	return out, nil
}

// ListPublicUpcoming returns public events that start after now, soonest first.
func (r *Repo) ListPublicUpcoming(ctx context.Context, now time.Time, limit int) ([]domain.Event, error) {
	q := r.client.Collection(collectionEvent).
		Where("isPublic", "==", true).
		Where("startingTime", ">", now).
		OrderBy("startingTime", firestore.Asc).
		Limit(limit)

	return r.queryEvents(ctx, q, "list public upcoming events")
}

// ListUnprovisioned returns events whose chat back-fill never landed and that
// are old enough to be outside the normal provisioning window.
func (r *Repo) ListUnprovisioned(ctx context.Context, olderThan time.Time) ([]domain.Event, error) {
	q := r.client.Collection(collectionEvent).
		Where("cid", "==", "").
		Where("created_at", "<", olderThan)

	return r.queryEvents(ctx, q, "list unprovisioned events")
}

func (r *Repo) queryEvents(ctx context.Context, q firestore.Query, op string) ([]domain.Event, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	out := make([]domain.Event, 0, 16)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		var e domain.Event
		if err := snap.DataTo(&e); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
		e.EID = snap.Ref.ID
		out = append(out, e)
	}
	return out, nil
}
