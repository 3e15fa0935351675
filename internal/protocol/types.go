package protocol

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the fixed wire size of a frame header.
const HeaderSize = 10

// Common field widths.
const (
	GroupNameWidth     = 16
	FileExtensionWidth = 6
	IPAddressWidth     = 16
	TrackerIPWidth     = 15
)

// Header is the fixed frame header: body length, command, status.
type Header struct {
	BodyLength int64
	Command    Command
	Status     uint8
}

// Bytes returns the 10-byte wire form of h.
func (h Header) Bytes() []byte {
	buf := make([]byte, HeaderSize)
	binary.BigEndian.PutUint64(buf[0:8], uint64(h.BodyLength))
	buf[8] = byte(h.Command)
	buf[9] = h.Status
	return buf
}

// ParseHeader reads a header starting at offset. Command and status are not
// validated; any byte value is structurally legal.
func ParseHeader(buf []byte, offset int) (Header, error) {
	if offset < 0 || len(buf)-offset < HeaderSize {
		have := len(buf) - offset
		if offset < 0 || have < 0 {
			have = 0
		}
		return Header{}, ProtocolError("header", fmt.Errorf("%w: need %d bytes, have %d", ErrShortHeader, HeaderSize, have))
	}
	b := buf[offset : offset+HeaderSize]
	return Header{
		BodyLength: int64(binary.BigEndian.Uint64(b[0:8])),
		Command:    Command(b[8]),
		Status:     b[9],
	}, nil
}

// IsSuccess reports whether the server status is zero.
func (h Header) IsSuccess() bool {
	return h.Status == 0
}

// Request is a command that can encode its own body.
type Request interface {
	Command() Command
	EncodeBody() []byte
}

// Response populates itself from a frame. Decode clears any earlier contents
// first; the body is only parsed when the header reports success.
type Response interface {
	Decode(h Header, body []byte) error
	IsSuccess() bool
}

// result carries the header every response keeps for IsSuccess.
type result struct {
	Header Header
}

func (r *result) IsSuccess() bool {
	return r.Header.IsSuccess()
}

// begin records h and reports whether the body should be parsed.
func (r *result) begin(h Header) bool {
	r.Header = h
	return h.IsSuccess()
}
