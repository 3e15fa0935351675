package protocol

import "time"

// QueryFileInfoRequest asks a storage server for a file's attributes.
type QueryFileInfoRequest struct {
	FileRef
}

func (r *QueryFileInfoRequest) Command() Command { return QueryFileInfo }

func (r *QueryFileInfoRequest) EncodeBody() []byte {
	w := newFieldWriter(r.size())
	r.write(w)
	return w.bytes()
}

// QueryFileInfoResponse carries the stored file's attributes.
//
// Body: size (8) | create timestamp (8) | crc32 (8) | source ip (16).
type QueryFileInfoResponse struct {
	result
	FileSize   int64
	CreateTime time.Time
	CRC32      uint32
	SourceIP   string
}

func (r *QueryFileInfoResponse) Decode(h Header, body []byte) error {
	*r = QueryFileInfoResponse{}
	if !r.begin(h) {
		return nil
	}
	fr := newFieldReader("query_file_info", body)
	r.FileSize = fr.int64()
	created := fr.int64()
	r.CRC32 = uint32(fr.int64())
	r.SourceIP = fr.text(IPAddressWidth)
	fr.rest()
	if fr.err != nil {
		return fr.err
	}
	r.CreateTime = time.Unix(created, 0).UTC()
	return nil
}
