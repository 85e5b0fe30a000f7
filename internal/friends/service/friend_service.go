package service

import (
	"context"
	"fmt"
	"time"

	"github.com/the3dsandwich/csci3100-grp31/internal/friends/domain"
)

// FriendService owns the request/accept/withdraw/unfriend transitions over
// the mirrored friend graph. Every pair mutation runs inside one store
// transaction, so the two mirror locations can never half-change.
type FriendService struct {
	store domain.Store
	Now   func() time.Time
}

func NewFriendService(store domain.Store) *FriendService {
	return &FriendService{
		store: store,
		Now:   time.Now,
	}
}

// SendRequest records uid's outbound request to targetUID in both mirror
// locations. A pending request in the same direction or an existing
// friendship blocks a new one.
func (s *FriendService) SendRequest(ctx context.Context, uid, targetUID string) error {
	if uid == targetUID {
		return domain.ErrSelfRequest
	}

	now := s.Now()
	return s.store.Update(ctx, func(tx domain.Tx) error {
		me, them, err := requireProfiles(tx, uid, targetUID)
		if err != nil {
			return err
		}

		pending, err := tx.SentRequest(uid, targetUID)
		if err != nil {
			return err
		}
		if pending != nil {
			return domain.ErrRequestExists
		}

		friend, err := tx.Friend(uid, targetUID)
		if err != nil {
			return err
		}
		if friend != nil {
			return domain.ErrAlreadyFriends
		}

		if err := tx.PutSentRequest(uid, targetUID, domain.Edge{
			Username: them.Username,
			UID:      them.UID,
			Time:     now,
		}); err != nil {
			return err
		}
		return tx.PutReceivedRequest(targetUID, uid, domain.Edge{
			Username: me.Username,
			UID:      me.UID,
			Time:     now,
		})
	})
}

// AcceptRequest turns the pending request from requesterUID into a symmetric
// friendship: both request mirrors are deleted and both friend-list entries
// written in one transaction. Stale half-edges from earlier partial failures
// are cleaned up the same way, each mirror handled by presence.
func (s *FriendService) AcceptRequest(ctx context.Context, uid, requesterUID string) error {
	if uid == requesterUID {
		return domain.ErrSelfRequest
	}

	now := s.Now()
	return s.store.Update(ctx, func(tx domain.Tx) error {
		me, them, err := requireProfiles(tx, uid, requesterUID)
		if err != nil {
			return err
		}

		received, err := tx.ReceivedRequest(uid, requesterUID)
		if err != nil {
			return err
		}
		sent, err := tx.SentRequest(requesterUID, uid)
		if err != nil {
			return err
		}
		if received == nil && sent == nil {
			return domain.ErrNoRequest
		}

		if received != nil {
			if err := tx.DeleteReceivedRequest(uid, requesterUID); err != nil {
				return err
			}
			if err := tx.PutFriend(uid, requesterUID, domain.Edge{
				Username: them.Username,
				UID:      them.UID,
				Time:     now,
			}); err != nil {
				return err
			}
		}

		if sent != nil {
			if err := tx.DeleteSentRequest(requesterUID, uid); err != nil {
				return err
			}
			if err := tx.PutFriend(requesterUID, uid, domain.Edge{
				Username: me.Username,
				UID:      me.UID,
				Time:     now,
			}); err != nil {
				return err
			}
		}

		return nil
	})
}

// WithdrawRequest takes back uid's outbound request to targetUID. Absent
// records are a silent no-op.
func (s *FriendService) WithdrawRequest(ctx context.Context, uid, targetUID string) error {
	if uid == targetUID {
		return domain.ErrSelfRequest
	}

	return s.store.Update(ctx, func(tx domain.Tx) error {
		if _, _, err := requireProfiles(tx, uid, targetUID); err != nil {
			return err
		}
		if err := tx.DeleteSentRequest(uid, targetUID); err != nil {
			return err
		}
		return tx.DeleteReceivedRequest(targetUID, uid)
	})
}

// Unfriend removes the symmetric friendship. Removing one that does not
// exist is a silent no-op.
func (s *FriendService) Unfriend(ctx context.Context, uid, targetUID string) error {
	if uid == targetUID {
		return domain.ErrSelfRequest
	}

	return s.store.Update(ctx, func(tx domain.Tx) error {
		if _, _, err := requireProfiles(tx, uid, targetUID); err != nil {
			return err
		}
		if err := tx.DeleteFriend(uid, targetUID); err != nil {
			return err
		}
		return tx.DeleteFriend(targetUID, uid)
	})
}

// Overview returns the caller's full relationship state.
func (s *FriendService) Overview(ctx context.Context, uid string) (*domain.Overview, error) {
	friends, err := s.store.Friends(ctx, uid)
	if err != nil {
		return nil, err
	}
	sent, err := s.store.Sent(ctx, uid)
	if err != nil {
		return nil, err
	}
	received, err := s.store.Received(ctx, uid)
	if err != nil {
		return nil, err
	}

	return &domain.Overview{
		Friends:  friends,
		Sent:     sent,
		Received: received,
	}, nil
}

// requireProfiles reads both profiles up front; transactions demand all
// reads before the first write anyway.
func requireProfiles(tx domain.Tx, aUID, bUID string) (*domain.Profile, *domain.Profile, error) {
	a, err := tx.Profile(aUID)
	if err != nil {
		return nil, nil, err
	}
	if a == nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, aUID)
	}

	b, err := tx.Profile(bUID)
	if err != nil {
		return nil, nil, err
	}
	if b == nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, bUID)
	}

	return a, b, nil
}
