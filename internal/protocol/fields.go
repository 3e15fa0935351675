package protocol

import (
	"bytes"
	"encoding/binary"
)

// Int32Bytes returns v as 4 big-endian bytes.
func Int32Bytes(v int32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(v))
	return buf
}

// Int64Bytes returns v as 8 big-endian bytes.
func Int64Bytes(v int64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(v))
	return buf
}

// Int32At reads a big-endian int32 at offset.
func Int32At(buf []byte, offset int) (int32, error) {
	if err := need("int32", buf, offset, 4); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf[offset : offset+4])), nil
}

// Int64At reads a big-endian int64 at offset.
func Int64At(buf []byte, offset int) (int64, error) {
	if err := need("int64", buf, offset, 8); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf[offset : offset+8])), nil
}

// PutFixedString copies s into dst left-justified. Bytes past len(dst) are
// dropped; unused bytes of dst are zeroed.
func PutFixedString(dst []byte, s string) {
	n := copy(dst, s)
	clear(dst[n:])
}

// FixedString reads a width-byte text field at offset and strips trailing
// zero bytes.
func FixedString(buf []byte, offset, width int) (string, error) {
	if err := need("text", buf, offset, width); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf[offset:offset+width], "\x00")), nil
}

func need(op string, buf []byte, offset, width int) error {
	if offset < 0 || width < 0 || len(buf)-offset < width {
		have := len(buf) - offset
		if offset < 0 || have < 0 {
			have = 0
		}
		return truncated(op, width, have)
	}
	return nil
}

// fieldWriter appends body fields in wire order. The body length is whatever
// was appended, so headers built from it cannot drift.
type fieldWriter struct {
	buf []byte
}

func newFieldWriter(size int) *fieldWriter {
	return &fieldWriter{buf: make([]byte, 0, size)}
}

func (w *fieldWriter) uint8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *fieldWriter) int64(v int64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, uint64(v))
}

func (w *fieldWriter) text(s string, width int) {
	start := len(w.buf)
	w.buf = append(w.buf, make([]byte, width)...)
	PutFixedString(w.buf[start:], s)
}

func (w *fieldWriter) raw(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *fieldWriter) bytes() []byte {
	return w.buf
}

// fieldReader walks a response body. The first failure sticks; later reads
// return zero values and err reports it.
type fieldReader struct {
	op  string
	buf []byte
	off int
	err error
}

func newFieldReader(op string, body []byte) *fieldReader {
	return &fieldReader{op: op, buf: body}
}

func (r *fieldReader) take(width int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.buf)-r.off < width {
		r.err = truncated(r.op, r.off+width, len(r.buf))
		return nil
	}
	b := r.buf[r.off : r.off+width]
	r.off += width
	return b
}

func (r *fieldReader) uint8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *fieldReader) int64() int64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return int64(binary.BigEndian.Uint64(b))
}

func (r *fieldReader) text(width int) string {
	b := r.take(width)
	if b == nil {
		return ""
	}
	return string(bytes.TrimRight(b, "\x00"))
}

// rest consumes every remaining byte. The result is a copy.
func (r *fieldReader) rest() []byte {
	if r.err != nil {
		return nil
	}
	out := make([]byte, len(r.buf)-r.off)
	copy(out, r.buf[r.off:])
	r.off = len(r.buf)
	return out
}

func (r *fieldReader) restString() string {
	return string(r.rest())
}
