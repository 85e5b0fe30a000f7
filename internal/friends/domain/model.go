package domain

import "time"

// Edge is one half of a mirrored relationship record: a sent/received request
// or a friend-list entry, keyed under the owner by the counterpart's uid.
// The payload always describes the counterpart.
type Edge struct {
	Username string    `firestore:"username" json:"username"`
	UID      string    `firestore:"uid" json:"uid"`
	Time     time.Time `firestore:"time" json:"time"`
}

// Profile is the minimal view of a user the friend graph needs.
type Profile struct {
	UID      string
	Username string
}

// Overview is the full relationship state around one user.
type Overview struct {
	Friends  []Edge `json:"friends"`
	Sent     []Edge `json:"sent_friend_requests"`
	Received []Edge `json:"received_friend_requests"`
}
