package eventtypes

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const collectionEventTypes = "event_types"

// EventType is a catalog entry: a category value, its display label and the
// icon rendered for event chats of that category.
type EventType struct {
	Value string `firestore:"value" json:"value"`
	Label string `firestore:"label" json:"label"`
	Icon  string `firestore:"icon" json:"icon"`
}

// Repo reads the event-type catalog from Firestore.
type Repo struct {
	client *firestore.Client
}

func NewRepo(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

// List returns the whole catalog.
func (r *Repo) List(ctx context.Context) ([]EventType, error) {
	iter := r.client.Collection(collectionEventTypes).Documents(ctx)
	defer iter.Stop()

	out := make([]EventType, 0, 16)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list event types: %w", err)
		}
		var et EventType
		if err := snap.DataTo(&et); err != nil {
			return nil, fmt.Errorf("decode event type: %w", err)
		}
		out = append(out, et)
	}
	return out, nil
}

// IconFor resolves the icon for a category value; empty string when the
// catalog has no entry. When duplicates exist the last one wins, matching
// how the catalog has always been read.
func (r *Repo) IconFor(ctx context.Context, value string) (string, error) {
	iter := r.client.Collection(collectionEventTypes).
		Where("value", "==", value).
		Documents(ctx)
	defer iter.Stop()

	icon := ""
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return "", fmt.Errorf("lookup event type icon: %w", err)
		}
		var et EventType
		if err := snap.DataTo(&et); err != nil {
			return "", fmt.Errorf("decode event type: %w", err)
		}
		icon = et.Icon
	}
	return icon, nil
}
