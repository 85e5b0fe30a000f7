package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/the3dsandwich/csci3100-grp31/internal/profiles/domain"
)

const collectionUserProfile = "user_profile"

// Repo provides Firestore persistence for user profiles.
type Repo struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) doc(uid string) *firestore.DocumentRef {
	return r.client.Collection(collectionUserProfile).Doc(uid)
}

// Create writes a new profile document. Returns domain.ErrProfileExists when
// a document for the uid is already present, leaving it untouched.
func (r *Repo) Create(ctx context.Context, p domain.UserProfile) error {
	_, err := r.doc(p.UID).Create(ctx, p)
	if status.Code(err) == codes.AlreadyExists {
		return domain.ErrProfileExists
	}
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// Get point-reads a profile by uid.
func (r *Repo) Get(ctx context.Context, uid string) (*domain.UserProfile, error) {
	snap, err := r.doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var p domain.UserProfile
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	p.UID = snap.Ref.ID
	return &p, nil
}

// Patch merges the given fields into an existing profile document.
func (r *Repo) Patch(ctx context.Context, uid string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	_, err := r.doc(uid).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return domain.ErrProfileNotFound
	}
	if err != nil {
		return fmt.Errorf("patch profile: %w", err)
	}
	return nil
}
