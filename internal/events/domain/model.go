package domain

import "time"

// Participant status values. Re-adding a participant with the other status
// overwrites the previous entry, which is how interested/joined switching works.
const (
	StatusJoined     = "joined"
	StatusInterested = "interested"
)

// MinAllowedPeople is the smallest sensible capacity: the host plus one guest.
const MinAllowedPeople = 2

// Event is the canonical event document. CID stays empty between event
// creation and chat provisioning; readers must tolerate that window.
type Event struct {
	EID           string    `firestore:"eid" json:"eid"`
	EventName     string    `firestore:"eventName" json:"eventName"`
	EventType     string    `firestore:"eventType" json:"eventType"`
	IsPublic      bool      `firestore:"isPublic" json:"isPublic"`
	Location      string    `firestore:"location" json:"location"`
	StartingTime  time.Time `firestore:"startingTime" json:"startingTime"`
	AllowedPeople int       `firestore:"allowedPeople" json:"allowedPeople"`
	HostUID       string    `firestore:"hostUid" json:"hostUid"`
	CID           string    `firestore:"cid" json:"cid"`
	CreatedAt     time.Time `firestore:"created_at" json:"created_at"`
}

// Participant is an entry in an event's participants subcollection, keyed by uid.
type Participant struct {
	Username string `firestore:"username" json:"username"`
	UID      string `firestore:"uid" json:"uid"`
	Status   string `firestore:"status" json:"status"`
}

// Mirror is the denormalized copy of an event kept under the participant's own
// profile document. It can transiently diverge from the canonical Event.
type Mirror struct {
	Event
	Status string `firestore:"status" json:"status"`
}

// ValidStatus reports whether s is one of the two participant statuses.
func ValidStatus(s string) bool {
	return s == StatusJoined || s == StatusInterested
}
