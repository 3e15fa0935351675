package protocol

// EncodeRequest returns the complete frame for req: header followed by body.
// The header's body length is taken from the encoded body. It panics if
// req reports an unregistered command.
func EncodeRequest(req Request) []byte {
	cmd := MustKnown(req.Command())
	body := req.EncodeBody()
	head := Header{BodyLength: int64(len(body)), Command: cmd}

	out := make([]byte, 0, HeaderSize+len(body))
	out = append(out, head.Bytes()...)
	out = append(out, body...)
	return out
}

// RequestHeader returns the header EncodeRequest would emit for a body of
// the given length. Streaming senders use it to write the header before a
// trailing payload they do not hold in memory.
func RequestHeader(cmd Command, bodyLength int64) Header {
	return Header{BodyLength: bodyLength, Command: MustKnown(cmd)}
}
