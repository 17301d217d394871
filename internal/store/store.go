// Package store holds what the storage backends share: the not-found sentinel,
// the connection state machine and the Monitor that drives it.
//
// Backends live in their own packages:
//
//	internal/mongostore  # MongoDB (default, MONGO_URL)
//	internal/database    # gorm + sqlite (STORE_DRIVER=sqlite)
package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a queried document does not exist.
var ErrNotFound = errors.New("not found")

// ConnState mirrors the lifecycle of a store connection.
type ConnState int32

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateReady
	StateDisconnecting
)

func (s ConnState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateDisconnecting:
		return "disconnecting"
	default:
		return fmt.Sprintf("ConnState(%d)", int32(s))
	}
}
