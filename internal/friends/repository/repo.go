package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/the3dsandwich/csci3100-grp31/internal/friends/domain"
)

const (
	collectionUserProfile = "user_profile"
	subcolSentRequests    = "sent_friend_requests"
	subcolRecvRequests    = "received_friend_requests"
	subcolFriendList      = "friend_list"
)

// Repo persists the friend graph in the user_profile subcollections, with
// every pair mutation wrapped in a Firestore transaction.
type Repo struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) profileDoc(uid string) *firestore.DocumentRef {
	return r.client.Collection(collectionUserProfile).Doc(uid)
}

// Update runs fn inside a single Firestore transaction, so the mirrored
// request and friend-list records for a pair change together or not at all.
func (r *Repo) Update(ctx context.Context, fn func(tx domain.Tx) error) error {
	return r.client.RunTransaction(ctx, func(ctx context.Context, t *firestore.Transaction) error {
		return fn(&fsTx{repo: r, t: t})
	})
}

func (r *Repo) Friends(ctx context.Context, uid string) ([]domain.Edge, error) {
	return r.listEdges(ctx, uid, subcolFriendList)
}

func (r *Repo) Sent(ctx context.Context, uid string) ([]domain.Edge, error) {
	return r.listEdges(ctx, uid, subcolSentRequests)
}

func (r *Repo) Received(ctx context.Context, uid string) ([]domain.Edge, error) {
	return r.listEdges(ctx, uid, subcolRecvRequests)
}

func (r *Repo) listEdges(ctx context.Context, uid, subcol string) ([]domain.Edge, error) {
	iter := r.profileDoc(uid).Collection(subcol).Documents(ctx)
	defer iter.Stop()

	out := make([]domain.Edge, 0, 8)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", subcol, err)
		}
		var e domain.Edge
		if err := snap.DataTo(&e); err != nil {
			return nil, fmt.Errorf("decode %s entry: %w", subcol, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// fsTx adapts a Firestore transaction to the domain.Tx contract.
type fsTx struct {
	repo *Repo
	t    *firestore.Transaction
}

func (x *fsTx) edgeDoc(ownerUID, subcol, otherUID string) *firestore.DocumentRef {
	return x.repo.profileDoc(ownerUID).Collection(subcol).Doc(otherUID)
}

func (x *fsTx) Profile(uid string) (*domain.Profile, error) {
	snap, err := x.t.Get(x.repo.profileDoc(uid))
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tx get profile: %w", err)
	}

	var p struct {
		UID      string `firestore:"uid"`
		Username string `firestore:"username"`
	}
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("tx decode profile: %w", err)
	}
	return &domain.Profile{UID: snap.Ref.ID, Username: p.Username}, nil
}

func (x *fsTx) getEdge(ownerUID, subcol, otherUID string) (*domain.Edge, error) {
	snap, err := x.t.Get(x.edgeDoc(ownerUID, subcol, otherUID))
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tx get %s edge: %w", subcol, err)
	}

	var e domain.Edge
	if err := snap.DataTo(&e); err != nil {
		return nil, fmt.Errorf("tx decode %s edge: %w", subcol, err)
	}
	return &e, nil
}

func (x *fsTx) SentRequest(ownerUID, targetUID string) (*domain.Edge, error) {
	return x.getEdge(ownerUID, subcolSentRequests, targetUID)
}

func (x *fsTx) ReceivedRequest(ownerUID, senderUID string) (*domain.Edge, error) {
	return x.getEdge(ownerUID, subcolRecvRequests, senderUID)
}

func (x *fsTx) Friend(ownerUID, otherUID string) (*domain.Edge, error) {
	return x.getEdge(ownerUID, subcolFriendList, otherUID)
}

func (x *fsTx) PutSentRequest(ownerUID, targetUID string, e domain.Edge) error {
	return x.t.Set(x.edgeDoc(ownerUID, subcolSentRequests, targetUID), e)
}

func (x *fsTx) PutReceivedRequest(ownerUID, senderUID string, e domain.Edge) error {
	return x.t.Set(x.edgeDoc(ownerUID, subcolRecvRequests, senderUID), e)
}

func (x *fsTx) PutFriend(ownerUID, otherUID string, e domain.Edge) error {
	return x.t.Set(x.edgeDoc(ownerUID, subcolFriendList, otherUID), e)
}

func (x *fsTx) DeleteSentRequest(ownerUID, targetUID string) error {
	return x.t.Delete(x.edgeDoc(ownerUID, subcolSentRequests, targetUID))
}

func (x *fsTx) DeleteReceivedRequest(ownerUID, senderUID string) error {
	return x.t.Delete(x.edgeDoc(ownerUID, subcolRecvRequests, senderUID))
}

func (x *fsTx) DeleteFriend(ownerUID, otherUID string) error {
	return x.t.Delete(x.edgeDoc(ownerUID, subcolFriendList, otherUID))
}
