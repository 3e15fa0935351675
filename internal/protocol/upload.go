package protocol

import "strings"

// UploadFileRequest stores FileContent on a storage server.
//
// Body: store path index (1) | content length (8) | extension (6) | content.
type UploadFileRequest struct {
	StorePathIndex uint8
	FileContent    []byte
	// FileExtension is written without a leading dot, e.g. "jpg". Longer
	// values are cut to FileExtensionWidth bytes.
	FileExtension string
}

func (r *UploadFileRequest) Command() Command { return UploadFile }

func (r *UploadFileRequest) EncodeBody() []byte {
	w := newFieldWriter(uploadFixedLen + len(r.FileContent))
	writeUploadFixed(w, r.StorePathIndex, r.FileExtension, int64(len(r.FileContent)))
	w.raw(r.FileContent)
	return w.bytes()
}

const uploadFixedLen = 1 + 8 + FileExtensionWidth

func writeUploadFixed(w *fieldWriter, storePathIndex uint8, ext string, size int64) {
	w.uint8(storePathIndex)
	w.int64(size)
	w.text(ext, FileExtensionWidth)
}

// UploadFilePrefix returns the header and fixed body fields of an upload
// whose content, size bytes long, the caller streams separately.
func UploadFilePrefix(storePathIndex uint8, ext string, size int64) []byte {
	head := RequestHeader(UploadFile, uploadFixedLen+size)
	w := newFieldWriter(HeaderSize + uploadFixedLen)
	w.raw(head.Bytes())
	writeUploadFixed(w, storePathIndex, ext, size)
	return w.bytes()
}

// UploadFileResponse names the stored file.
//
// Body: group name (16) | remote file name (rest).
type UploadFileResponse struct {
	result
	GroupName string
	FileName  string
}

func (r *UploadFileResponse) Decode(h Header, body []byte) error {
	*r = UploadFileResponse{}
	if !r.begin(h) {
		return nil
	}
	fr := newFieldReader("upload_file", body)
	r.GroupName = fr.text(GroupNameWidth)
	r.FileName = fr.restString()
	return fr.err
}

// FileID returns "group/name", the form callers persist.
func (r *UploadFileResponse) FileID() string {
	return r.GroupName + "/" + r.FileName
}

// SplitFileID splits a "group/name" file id at its first slash.
func SplitFileID(id string) (group, name string, ok bool) {
	group, name, ok = strings.Cut(id, "/")
	if !ok || group == "" || name == "" {
		return "", "", false
	}
	return group, name, true
}
