package domain

import "context"

// Tx is one atomic view of the friend graph. Implementations back it with the
// store's transaction primitive, so every mutation of a pair's mirrored
// records either lands completely or not at all.
//
// All reads must happen before the first write within a single Update call;
// the Firestore implementation rejects the reverse order.
type Tx interface {
	// Profile returns the minimal profile for uid, or (nil, nil) when no such
	// user exists.
	Profile(uid string) (*Profile, error)

	// SentRequest returns owner's outbound request to target, (nil, nil) when absent.
	SentRequest(ownerUID, targetUID string) (*Edge, error)
	// ReceivedRequest returns owner's inbound request from sender, (nil, nil) when absent.
	ReceivedRequest(ownerUID, senderUID string) (*Edge, error)
	// Friend returns owner's friend-list entry for other, (nil, nil) when absent.
	Friend(ownerUID, otherUID string) (*Edge, error)

	PutSentRequest(ownerUID, targetUID string, e Edge) error
	PutReceivedRequest(ownerUID, senderUID string, e Edge) error
	PutFriend(ownerUID, otherUID string, e Edge) error

	// Deletes are delete-if-exists: removing an absent record is not an error.
	DeleteSentRequest(ownerUID, targetUID string) error
	DeleteReceivedRequest(ownerUID, senderUID string) error
	DeleteFriend(ownerUID, otherUID string) error
}

// Store persists the friend graph.
type Store interface {
	// Update runs fn inside a single transaction.
	Update(ctx context.Context, fn func(tx Tx) error) error

	Friends(ctx context.Context, uid string) ([]Edge, error)
	Sent(ctx context.Context, uid string) ([]Edge, error)
	Received(ctx context.Context, uid string) ([]Edge, error)
}
