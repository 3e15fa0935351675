package protocol

// FileRef addresses a stored file. On the wire it is the group name padded
// to 16 bytes followed by the file name, which runs to the end of the body.
type FileRef struct {
	GroupName string
	FileName  string
}

func (f FileRef) size() int {
	return GroupNameWidth + len(f.FileName)
}

func (f FileRef) write(w *fieldWriter) {
	w.text(f.GroupName, GroupNameWidth)
	w.raw([]byte(f.FileName))
}

// DeleteFileRequest removes a stored file.
type DeleteFileRequest struct {
	FileRef
}

func (r *DeleteFileRequest) Command() Command { return DeleteFile }

func (r *DeleteFileRequest) EncodeBody() []byte {
	w := newFieldWriter(r.size())
	r.write(w)
	return w.bytes()
}

// StatusResponse is the reply to commands whose success body is empty.
// Any bytes the server does send are ignored.
type StatusResponse struct {
	result
}

func (r *StatusResponse) Decode(h Header, _ []byte) error {
	*r = StatusResponse{}
	r.begin(h)
	return nil
}
