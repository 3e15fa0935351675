package frame

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/danmuck/fdfswire/internal/observability"
	"github.com/danmuck/fdfswire/internal/protocol"
	logs "github.com/danmuck/smplog"
)

// Frame is one complete wire message.
type Frame struct {
	Header protocol.Header
	Body   []byte
}

// Limits constrains frame decode memory use.
type Limits struct {
	MaxBodyBytes int64
}

func DefaultLimits() Limits {
	return Limits{
		MaxBodyBytes: 64 * 1024 * 1024,
	}
}

// CheckHeader rejects headers whose body length cannot be read safely.
func (l Limits) CheckHeader(h protocol.Header) error {
	if h.BodyLength < 0 {
		return protocol.ProtocolError("frame", fmt.Errorf("%w: %d", protocol.ErrNegativeBodyLength, h.BodyLength))
	}
	if l.MaxBodyBytes > 0 && h.BodyLength > l.MaxBodyBytes {
		return protocol.ProtocolError("frame", fmt.Errorf("%w: %d > %d", protocol.ErrBodyTooLarge, h.BodyLength, l.MaxBodyBytes))
	}
	return nil
}

// ReadFrame reads exactly one header and then exactly BodyLength bytes.
// Stream failures are returned as-is; framing failures are protocol errors.
func ReadFrame(r io.Reader, limits Limits) (Frame, error) {
	var fixed [protocol.HeaderSize]byte
	if n, err := io.ReadFull(r, fixed[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Frame{}, protocol.ProtocolError("frame", fmt.Errorf("%w: read %d of %d bytes", protocol.ErrShortHeader, n, protocol.HeaderSize))
		}
		return Frame{}, err
	}

	h, err := protocol.ParseHeader(fixed[:], 0)
	if err != nil {
		return Frame{}, err
	}
	if err := limits.CheckHeader(h); err != nil {
		return Frame{}, err
	}

	body := make([]byte, h.BodyLength)
	if h.BodyLength > 0 {
		if n, err := io.ReadFull(r, body); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
				return Frame{}, protocol.ProtocolError("frame", fmt.Errorf("%w: read %d of %d body bytes", protocol.ErrTruncated, n, h.BodyLength))
			}
			return Frame{}, err
		}
	}

	observability.RecordFrame(observability.DirectionIn, h.Command.String(), protocol.HeaderSize+len(body))
	logs.Debugf("frame: read cmd=%s status=%d body=%d", h.Command, h.Status, h.BodyLength)
	return Frame{Header: h, Body: body}, nil
}

// WriteRequest encodes req and writes the whole frame.
func WriteRequest(w io.Writer, req protocol.Request) error {
	out := protocol.EncodeRequest(req)
	if _, err := w.Write(out); err != nil {
		return err
	}
	observability.RecordFrame(observability.DirectionOut, req.Command().String(), len(out))
	logs.Debugf("frame: wrote cmd=%s body=%d", req.Command(), len(out)-protocol.HeaderSize)
	return nil
}

// ErrNoContent is returned by WriteUpload when size > 0 and content is nil.
var ErrNoContent = errors.New("frame: upload content reader is nil")

// WriteUpload streams an upload of size bytes read from content. Exactly
// size bytes are copied. Arguments are checked before anything is written;
// once the prefix is out, any error leaves a partial frame on w and the
// stream must be discarded. A content reader that ends early yields a
// protocol error wrapping both ErrTruncated and the reader's io.EOF.
func WriteUpload(w io.Writer, storePathIndex uint8, ext string, size int64, content io.Reader) error {
	if size < 0 {
		return fail(protocol.ProtocolError("frame", fmt.Errorf("%w: upload size %d", protocol.ErrNegativeBodyLength, size)))
	}
	if size > 0 && content == nil {
		return ErrNoContent
	}
	prefix := protocol.UploadFilePrefix(storePathIndex, ext, size)
	if _, err := w.Write(prefix); err != nil {
		return err
	}
	if size > 0 {
		n, err := io.CopyN(w, content, size)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fail(protocol.ProtocolError("frame", fmt.Errorf("%w: copied %d of %d content bytes: %w", protocol.ErrTruncated, n, size, err)))
			}
			return fmt.Errorf("frame: upload content: %w", err)
		}
	}
	observability.RecordFrame(observability.DirectionOut, protocol.UploadFile.String(), len(prefix)+int(size))
	logs.Debugf("frame: streamed cmd=%s content=%d", protocol.UploadFile, size)
	return nil
}

// Exchange writes req, reads one reply frame, and decodes it into resp.
//
// When rw is a net.Conn the context deadline is applied to it and stream
// failures come back as transport errors carrying the remote address.
// A nonzero reply status is reported through resp, not as an error.
func Exchange(ctx context.Context, rw io.ReadWriter, req protocol.Request, resp protocol.Response, limits Limits) (protocol.Header, error) {
	if err := ctx.Err(); err != nil {
		return protocol.Header{}, err
	}
	endpoint := ""
	if conn, ok := rw.(net.Conn); ok {
		if addr := conn.RemoteAddr(); addr != nil {
			endpoint = addr.String()
		}
		if deadline, ok := ctx.Deadline(); ok {
			if err := conn.SetDeadline(deadline); err != nil {
				return protocol.Header{}, fail(protocol.TransportError(endpoint, err))
			}
		}
	}

	if err := WriteRequest(rw, req); err != nil {
		return protocol.Header{}, fail(protocol.TransportError(endpoint, err))
	}

	f, err := ReadFrame(rw, limits)
	if err != nil {
		var perr *protocol.Error
		if !errors.As(err, &perr) {
			err = protocol.TransportError(endpoint, err)
		}
		return protocol.Header{}, fail(err)
	}
	if f.Header.Command != protocol.Resp {
		return f.Header, fail(protocol.ProtocolError("exchange", fmt.Errorf("%w: got %s, want %s", protocol.ErrUnexpectedCommand, f.Header.Command, protocol.Resp)))
	}

	if err := protocol.DecodeResponse(f.Header, f.Body, resp); err != nil {
		return f.Header, fail(err)
	}
	if !f.Header.IsSuccess() {
		observability.RecordStatusFailure(req.Command().String(), f.Header.Status)
		logs.Debugf("frame: %s returned status=%d", req.Command(), f.Header.Status)
	}
	return f.Header, nil
}

func fail(err error) error {
	var perr *protocol.Error
	if errors.As(err, &perr) {
		observability.RecordError(perr.Kind.String())
		logs.Warnf("frame: %v", err)
	}
	return err
}
