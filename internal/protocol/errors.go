package protocol

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrShortHeader        = errors.New("protocol: short header")
	ErrTruncated          = errors.New("protocol: truncated data")
	ErrBodyLength         = errors.New("protocol: body length mismatch")
	ErrNegativeBodyLength = errors.New("protocol: negative body length")
	ErrBodyTooLarge       = errors.New("protocol: body too large")
	ErrUnexpectedCommand  = errors.New("protocol: unexpected response command")
	ErrStatus             = errors.New("protocol: server reported failure")
)

// Kind classifies an Error.
type Kind uint8

const (
	KindGeneric Kind = iota
	KindProtocol
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindProtocol:
		return "protocol"
	case KindTransport:
		return "transport"
	default:
		return "generic"
	}
}

// Error is the single error type surfaced by the codec and its frame helpers.
// Status and Endpoint are optional; use the accessors to tell unset from zero.
type Error struct {
	Kind Kind
	Op   string
	Err  error

	status    uint8
	hasStatus bool
	endpoint  string
	hasAddr   bool
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Op != "" {
		b.WriteString(" ")
		b.WriteString(e.Op)
	}
	if e.hasAddr {
		fmt.Fprintf(&b, " [%s]", e.endpoint)
	}
	if e.hasStatus {
		fmt.Fprintf(&b, " status=%d", e.status)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the raw server status byte, if one was attached.
func (e *Error) Status() (uint8, bool) { return e.status, e.hasStatus }

// Endpoint returns the remote endpoint for transport errors, if known.
func (e *Error) Endpoint() (string, bool) { return e.endpoint, e.hasAddr }

// ProtocolError reports a violated framing invariant.
func ProtocolError(op string, err error) *Error {
	return &Error{Kind: KindProtocol, Op: op, Err: err}
}

// TransportError wraps a lower-layer connectivity failure. The endpoint is
// attached verbatim; an empty endpoint is treated as unknown.
func TransportError(endpoint string, err error) *Error {
	e := &Error{Kind: KindTransport, Op: "transport", Err: err}
	if endpoint != "" {
		e.endpoint = endpoint
		e.hasAddr = true
	}
	return e
}

// StatusError is a generic failure carrying the server status byte for cmd.
func StatusError(cmd Command, status uint8) *Error {
	return &Error{
		Kind:      KindGeneric,
		Op:        cmd.String(),
		Err:       ErrStatus,
		status:    status,
		hasStatus: true,
	}
}

// IsKind reports whether any *Error in err's chain has the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}

func truncated(op string, need, have int) *Error {
	return ProtocolError(op, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, need, have))
}
