package core

import "errors"

var (
	// ErrSessionExists is returned by Store.Create when the id is taken.
	ErrSessionExists = errors.New("session already exists")
	// ErrUnknownSession is returned when a publish references an id that
	// was never created.
	ErrUnknownSession = errors.New("unknown session")
)

// Drop reasons, used as log fields and metric labels when an inbound
// event is discarded without effect.
const (
	DropReasonMalformed      = "malformed"
	DropReasonUnknownSession = "unknown_session"
	DropReasonUnknownType    = "unknown_type"
)
