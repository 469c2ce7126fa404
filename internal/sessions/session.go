package sessions

import "time"

// Session is one issued sign-in, anonymous or credentialed. Sessions are
// persisted so sign-out can revoke a token server-side.
type Session struct {
	Token     string    `bson:"_id,omitempty" json:"token"`
	UID       string    `bson:"uid" json:"uid"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	Anonymous bool      `bson:"anonymous" json:"anonymous"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
