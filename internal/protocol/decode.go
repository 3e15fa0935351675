package protocol

import "fmt"

// DecodeResponse checks body against h and hands both to resp. A nonzero
// status is not an error: resp reports it through IsSuccess and the body
// is not parsed. A nil body is treated as empty.
func DecodeResponse(h Header, body []byte, resp Response) error {
	if h.BodyLength < 0 {
		return ProtocolError("decode", fmt.Errorf("%w: %d", ErrNegativeBodyLength, h.BodyLength))
	}
	if int64(len(body)) != h.BodyLength && !(len(body) == 0 && !h.IsSuccess()) {
		return ProtocolError("decode", fmt.Errorf("%w: header=%d body=%d", ErrBodyLength, h.BodyLength, len(body)))
	}
	return resp.Decode(h, body)
}

// DecodeFrame parses the header at the start of frame and decodes the rest
// into resp.
func DecodeFrame(frame []byte, resp Response) (Header, error) {
	h, err := ParseHeader(frame, 0)
	if err != nil {
		return Header{}, err
	}
	return h, DecodeResponse(h, frame[HeaderSize:], resp)
}

// Escalate converts a failed status into an error carrying the status byte.
func Escalate(h Header, cmd Command) error {
	if h.IsSuccess() {
		return nil
	}
	return StatusError(cmd, h.Status)
}
