package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// User represents an account document in the `users` collection.
//
// Fields:
//
//	ID           – document identifier, assigned by the store on insert.
//	Username     – unique login name (a unique index enforces this).
//	PasswordHash – bcrypt hash of the password; the plaintext is never stored.
//	Name         – optional display name.
//
// PasswordHash is serialized into API responses because the reference
// behavior of this service returns the stored document verbatim on
// registration.  See DESIGN.md before changing the tag.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"passwordHash" json:"passwordHash"`
	Name         string             `bson:"name,omitempty" json:"name"`
}
