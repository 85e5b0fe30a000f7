package domain

import "time"

// TypeEvent marks a chat room provisioned for an event.
const TypeEvent = "event"

// DefaultIcon is used when the event-type catalog has no icon for a category.
const DefaultIcon = "fab fa-dev"

// Chat is the canonical chat-room document. CID is self-referential and
// back-filled right after creation.
type Chat struct {
	CID   string `firestore:"cid" json:"cid"`
	Type  string `firestore:"type" json:"type"`
	Title string `firestore:"title" json:"title"`
	EID   string `firestore:"eid" json:"eid"`
	Icon  string `firestore:"icon" json:"icon"`
}

// Participant is an entry in a chat's participants subcollection, keyed by uid.
type Participant struct {
	Username string `firestore:"username" json:"username"`
	UID      string `firestore:"uid" json:"uid"`
}

// Sender identifies the author of a message.
type Sender struct {
	UID string `firestore:"uid" json:"uid"`
}

// Message is an append-only chat message.
type Message struct {
	ID        string    `firestore:"-" json:"id"`
	Text      string    `firestore:"text" json:"text"`
	CreatedAt time.Time `firestore:"created_at" json:"created_at"`
	Sender    Sender    `firestore:"sender" json:"sender"`
}
