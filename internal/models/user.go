package models

import "time"

// User is a credentialed account. Visitors browsing anonymously never get a
// User record; only email/password sign-in reads this collection.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	UID          string    `bson:"uid" json:"uid"` // stable identity id, compared against the permanent admin uid
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
