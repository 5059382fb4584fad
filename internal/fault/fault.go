package fault

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("resource not found")
)

// Kind classifies how a failed remote operation is recovered.
type Kind int

const (
	// Transport covers network and server errors on any fetch or save. The
	// local state is untouched and the operation may be retried.
	Transport Kind = iota
	// Conflict means the remote object already exists or was modified; local
	// state is overwritten with the server's version and nothing is retried
	// automatically.
	Conflict
	// PartialData marks one of several parallel page-load fetches failing;
	// the session continues degraded with whatever data loaded.
	PartialData
)

// Fault is the typed failure payload carried by completion events. No plain
// error crosses a component boundary.
type Fault struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", f.kindString(), f.Message, f.Err)
	}
	return fmt.Sprintf("[%s] %s", f.kindString(), f.Message)
}

// Unwrap allows errors.Is and errors.As to work.
func (f *Fault) Unwrap() error {
	return f.Err
}

func (f *Fault) kindString() string {
	switch f.Kind {
	case Transport:
		return "TransportFailure"
	case Conflict:
		return "ConflictFailure"
	case PartialData:
		return "PartialDataFailure"
	default:
		return "UnknownFailure"
	}
}

// NewTransport wraps a network or server error.
func NewTransport(msg string, err error) error {
	return &Fault{Kind: Transport, Message: msg, Err: err}
}

// NewConflict marks a save rejected because the object already exists.
func NewConflict(msg string, err error) error {
	return &Fault{Kind: Conflict, Message: msg, Err: err}
}

// NewPartialData marks a non-fatal page-load fetch failure.
func NewPartialData(msg string, err error) error {
	return &Fault{Kind: PartialData, Message: msg, Err: err}
}

// IsConflict checks whether an error is a conflict failure.
func IsConflict(err error) bool {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind == Conflict
	}
	return false
}

// IsTransport checks whether an error is a transport failure.
func IsTransport(err error) bool {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind == Transport
	}
	return false
}
