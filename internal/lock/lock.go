// Package lock serialises mutations of a single pledge.
//
// Two implementations exist: Local for a single process and Redis for a
// fleet of engine instances sharing one database.
package lock

import "context"

// Locker grants exclusive access to a key until the returned unlock func runs.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// PledgeKey is the lock key used for every mutation of one pledge.
func PledgeKey(pledgeID string) string {
	return "pledge-lock:" + pledgeID
}
