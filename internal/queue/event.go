// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// Event kinds published on the account.events queue.
const (
	EventUserRegistered = "user.registered"
	EventUserDeleted    = "user.deleted"
)

// AccountEvent is published when an account is created or deleted.  It
// contains enough information for downstream consumers to log or notify
// without querying the primary store.  The password hash is deliberately
// absent.
type AccountEvent struct {
	Kind       string `json:"kind"`
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	OccurredAt string `json:"occurred_at"`
}
