package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/the3dsandwich/csci3100-grp31/internal/profiles/domain"
)

// Store is the slice of the profile collection this service needs.
type Store interface {
	Create(ctx context.Context, p domain.UserProfile) error
	Get(ctx context.Context, uid string) (*domain.UserProfile, error)
	Patch(ctx context.Context, uid string, fields map[string]interface{}) error
}

// ProfileService handles account bootstrap and profile edits.
type ProfileService struct {
	store Store
}

func NewProfileService(store Store) *ProfileService {
	return &ProfileService{store: store}
}

// EnsureAccount creates the placeholder profile for a newly authenticated
// identity. Safe to call on every login: an existing profile is left exactly
// as it is, so a later username edit is never clobbered.
func (s *ProfileService) EnsureAccount(ctx context.Context, uid string) error {
	if strings.TrimSpace(uid) == "" {
		return fmt.Errorf("%w: missing uid", domain.ErrInvalidProfile)
	}

	err := s.store.Create(ctx, domain.NewDefaultProfile(uid))
	if errors.Is(err, domain.ErrProfileExists) {
		return nil
	}
	return err
}

// Get returns the profile for uid.
func (s *ProfileService) Get(ctx context.Context, uid string) (*domain.UserProfile, error) {
	return s.store.Get(ctx, uid)
}

// UpdateInput carries the editable profile fields. Nil pointers mean
// "leave unchanged".
type UpdateInput struct {
	Username         *string  `json:"username"`
	University       *string  `json:"university"`
	Description      *string  `json:"description"`
	InterestedSports []string `json:"interested_sports"`
}

// Update patches the caller's own profile. The uid comes from the verified
// token, so ownership is implicit.
func (s *ProfileService) Update(ctx context.Context, uid string, in UpdateInput) error {
	if _, err := s.store.Get(ctx, uid); err != nil {
		return err
	}

	fields := make(map[string]interface{})
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return fmt.Errorf("%w: username must not be empty", domain.ErrInvalidProfile)
		}
		fields["username"] = username
	}
	if in.University != nil {
		fields["university"] = strings.TrimSpace(*in.University)
	}
	if in.Description != nil {
		fields["description"] = strings.TrimSpace(*in.Description)
	}
	if in.InterestedSports != nil {
		fields["interested_sports"] = in.InterestedSports
	}

	if len(fields) == 0 {
		return fmt.Errorf("%w: no fields to update", domain.ErrInvalidProfile)
	}

	return s.store.Patch(ctx, uid, fields)
}

// SetProfileImage records the durable URL of a freshly uploaded profile image.
func (s *ProfileService) SetProfileImage(ctx context.Context, uid, src string) error {
	if strings.TrimSpace(src) == "" {
		return fmt.Errorf("%w: missing image url", domain.ErrInvalidProfile)
	}
	return s.store.Patch(ctx, uid, map[string]interface{}{"profileImageSrc": src})
}
