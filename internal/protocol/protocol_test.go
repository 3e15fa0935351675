package protocol

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/danmuck/fdfswire/internal/testutil/testlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt32RoundTrip(t *testing.T) {
	testlog.Start(t)
	for _, v := range []int32{0, 1, -1, 255, -256, math.MaxInt32, math.MinInt32} {
		b := Int32Bytes(v)
		require.Len(t, b, 4)
		got, err := Int32At(b, 0)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestInt64RoundTrip(t *testing.T) {
	testlog.Start(t)
	for _, v := range []int64{0, 1, -1, 1 << 40, math.MaxInt64, math.MinInt64} {
		b := Int64Bytes(v)
		require.Len(t, b, 8)
		got, err := Int64At(b, 0)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestNumericBytesAreBigEndian(t *testing.T) {
	testlog.Start(t)
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, Int32Bytes(-1))
	assert.Equal(t, bytes.Repeat([]byte{0xff}, 8), Int64Bytes(-1))
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, Int32Bytes(0x01020304))
	assert.Equal(t, []byte{0x80, 0, 0, 0, 0, 0, 0, 0}, Int64Bytes(math.MinInt64))
}

func TestNumericAtOffset(t *testing.T) {
	testlog.Start(t)
	buf := append([]byte{0xaa, 0xbb}, Int64Bytes(42)...)
	got, err := Int64At(buf, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)
}

func TestNumericShortBuffer(t *testing.T) {
	testlog.Start(t)
	_, err := Int64At(make([]byte, 9), 2)
	require.ErrorIs(t, err, ErrTruncated)
	assert.True(t, IsKind(err, KindProtocol))

	_, err = Int32At(make([]byte, 4), -1)
	require.ErrorIs(t, err, ErrTruncated)

	_, err = Int32At(make([]byte, 4), 10)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestFixedStringPadAndTruncate(t *testing.T) {
	testlog.Start(t)
	dst := bytes.Repeat([]byte{0xee}, FileExtensionWidth)
	PutFixedString(dst, "jpg")
	assert.Equal(t, []byte{'j', 'p', 'g', 0, 0, 0}, dst)

	PutFixedString(dst, "verylongext")
	assert.Equal(t, []byte("verylo"), dst)

	got, err := FixedString([]byte{'a', 'b', 0, 0}, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, "ab", got)

	_, err = FixedString([]byte{'a'}, 0, 4)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestHeaderRoundTrip(t *testing.T) {
	testlog.Start(t)
	tests := []struct {
		name string
		h    Header
	}{
		{"zero", Header{}},
		{"upload", Header{BodyLength: 19, Command: UploadFile}},
		{"failure status", Header{BodyLength: 0, Command: Resp, Status: 2}},
		{"max body", Header{BodyLength: math.MaxInt64, Command: 255, Status: 255}},
		{"unregistered command", Header{BodyLength: 7, Command: 200, Status: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.h.Bytes()
			require.Len(t, b, HeaderSize)
			got, err := ParseHeader(b, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.h, got)
		})
	}
}

func TestHeaderZeroBodyLengthIsEncoded(t *testing.T) {
	testlog.Start(t)
	b := Header{Command: ActiveTest}.Bytes()
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0, byte(ActiveTest), 0}, b)
}

func TestParseHeaderAtOffset(t *testing.T) {
	testlog.Start(t)
	want := Header{BodyLength: 300, Command: QueryFileInfo, Status: 0}
	prefix := []byte{0xde, 0xad, 0xbe}
	buf := append(append([]byte{}, prefix...), want.Bytes()...)

	got, err := ParseHeader(buf, len(prefix))
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe}, buf[:3])
}

func TestParseHeaderShort(t *testing.T) {
	testlog.Start(t)
	_, err := ParseHeader(make([]byte, 9), 0)
	require.ErrorIs(t, err, ErrShortHeader)
	assert.True(t, IsKind(err, KindProtocol))

	_, err = ParseHeader(make([]byte, 12), 3)
	require.ErrorIs(t, err, ErrShortHeader)

	_, err = ParseHeader(make([]byte, 12), -1)
	require.ErrorIs(t, err, ErrShortHeader)
}

func TestRegistry(t *testing.T) {
	testlog.Start(t)
	assert.Equal(t, Command(11), UploadFile)
	assert.True(t, UploadFile.Known())
	assert.False(t, Command(250).Known())
	assert.Equal(t, "upload_file", UploadFile.String())
	assert.Equal(t, "command(250)", Command(250).String())

	c, ok := LookupCommand("download_file")
	assert.True(t, ok)
	assert.Equal(t, DownloadFile, c)

	all := Commands()
	assert.Len(t, all, len(commandNames))
	for i := 1; i < len(all); i++ {
		assert.Less(t, uint8(all[i-1]), uint8(all[i]))
	}
}

type rogueRequest struct{}

func (rogueRequest) Command() Command   { return 250 }
func (rogueRequest) EncodeBody() []byte { return nil }

func TestEncodeUnregisteredCommandPanics(t *testing.T) {
	testlog.Start(t)
	assert.Panics(t, func() { EncodeRequest(rogueRequest{}) })
}

func TestDecodeResponseBodyLengthMismatch(t *testing.T) {
	testlog.Start(t)
	h := Header{BodyLength: 20, Command: Resp}
	err := DecodeResponse(h, make([]byte, 18), &UploadFileResponse{})
	require.ErrorIs(t, err, ErrBodyLength)
	assert.True(t, IsKind(err, KindProtocol))
}

func TestDecodeFrame(t *testing.T) {
	testlog.Start(t)
	body := groupField("group2")
	body = append(body, "M01/AB/CD/x.png"...)
	frame := append(Header{BodyLength: int64(len(body)), Command: Resp}.Bytes(), body...)

	var resp UploadFileResponse
	h, err := DecodeFrame(frame, &resp)
	require.NoError(t, err)
	assert.Equal(t, Resp, h.Command)
	assert.Equal(t, "group2/M01/AB/CD/x.png", resp.FileID())

	_, err = DecodeFrame(frame[:5], &resp)
	require.ErrorIs(t, err, ErrShortHeader)
}

func TestEscalate(t *testing.T) {
	testlog.Start(t)
	assert.NoError(t, Escalate(Header{Command: Resp}, UploadFile))

	err := Escalate(Header{Command: Resp, Status: 28}, UploadFile)
	require.ErrorIs(t, err, ErrStatus)
	assert.True(t, IsKind(err, KindGeneric))

	var perr *Error
	require.True(t, errors.As(err, &perr))
	status, ok := perr.Status()
	assert.True(t, ok)
	assert.Equal(t, uint8(28), status)
	_, ok = perr.Endpoint()
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "upload_file")
}

func TestTransportErrorPassesEndpointThrough(t *testing.T) {
	testlog.Start(t)
	cause := errors.New("connection reset by peer")
	err := TransportError("10.0.0.7:23000", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsKind(err, KindTransport))
	endpoint, ok := err.Endpoint()
	assert.True(t, ok)
	assert.Equal(t, "10.0.0.7:23000", endpoint)
	_, ok = err.Status()
	assert.False(t, ok)

	_, ok = TransportError("", cause).Endpoint()
	assert.False(t, ok)
}

func groupField(name string) []byte {
	b := make([]byte, GroupNameWidth)
	copy(b, name)
	return b
}
