package domain

// DefaultUsername is the placeholder given to freshly-bootstrapped accounts.
const DefaultUsername = "Lil Potato"

// UserProfile is the canonical per-identity document. The uid is the Firebase
// Auth identifier and doubles as the document key; it never changes.
type UserProfile struct {
	UID              string   `firestore:"uid" json:"uid"`
	Username         string   `firestore:"username" json:"username"`
	University       string   `firestore:"university" json:"university"`
	Description      string   `firestore:"description" json:"description"`
	InterestedSports []string `firestore:"interested_sports" json:"interested_sports"`
	ProfileImageSrc  string   `firestore:"profileImageSrc" json:"profileImageSrc,omitempty"`
}

// NewDefaultProfile returns the placeholder profile written at first login.
func NewDefaultProfile(uid string) UserProfile {
	return UserProfile{
		UID:              uid,
		Username:         DefaultUsername,
		University:       "",
		Description:      "",
		InterestedSports: []string{},
	}
}
