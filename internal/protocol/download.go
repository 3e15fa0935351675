package protocol

// DownloadFileRequest fetches ByteCount bytes of a file starting at Offset.
// A ByteCount of zero reads to the end of the file.
//
// Body: offset (8) | byte count (8) | group name (16) | file name (rest).
type DownloadFileRequest struct {
	Offset    int64
	ByteCount int64
	FileRef
}

func (r *DownloadFileRequest) Command() Command { return DownloadFile }

func (r *DownloadFileRequest) EncodeBody() []byte {
	w := newFieldWriter(8 + 8 + r.size())
	w.int64(r.Offset)
	w.int64(r.ByteCount)
	r.write(w)
	return w.bytes()
}

// DownloadFileResponse holds the requested file bytes.
type DownloadFileResponse struct {
	result
	Content []byte
}

func (r *DownloadFileResponse) Decode(h Header, body []byte) error {
	*r = DownloadFileResponse{}
	if !r.begin(h) {
		return nil
	}
	fr := newFieldReader("download_file", body)
	r.Content = fr.rest()
	return fr.err
}
