package models

// Document is a single Firestore document as read by the tools
type Document struct {
	ID   string                 `json:"id"`
	Data map[string]interface{} `json:"data"`
}

// UserRecord is the subset of a Firebase Auth user the tools care about
type UserRecord struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	PhotoURL string `json:"photo_url"` // Empty when the user has no profile photo
}

// Field names shared between the tools and the alumni collections
const (
	FieldEmail    = "email"
	FieldPhotoURL = "photoURL"
)
