package student

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionCleared is the sentinel written into the refresh-token slot on logout.
// It can never equal a real signed token, so a logged-out record is
// distinguishable from one that never logged in (empty slot).
const SessionCleared = "cleared"

// Student is the persisted identity record: profile, credential, and the single
// session slot.
//
// IMPORTANT: PasswordHash and RefreshToken are server-side only. They must
// never be serialized to clients; use View for anything that leaves the store.
type Student struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FullName     string             `bson:"fullname"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	FeesPaid     bool               `bson:"fees_status"`

	// RefreshToken is the single session slot: set on login, overwritten with
	// SessionCleared on logout. A new login silently supersedes the previous
	// session's refresh token.
	RefreshToken string `bson:"refreshToken,omitempty"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// View is the client-facing shape of a student record. It carries no
// credential or session material.
type View struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullname"`
	Email     string    `json:"email"`
	FeesPaid  bool      `json:"feesPaid"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// View returns the sanitized client-facing projection of the record.
func (s Student) View() View {
	return View{
		ID:        s.ID.Hex(),
		FullName:  s.FullName,
		Email:     s.Email,
		FeesPaid:  s.FeesPaid,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ValidID reports whether s is a well-formed record identifier.
func ValidID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}
