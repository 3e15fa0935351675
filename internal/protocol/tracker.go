package protocol

import (
	"net"
	"strconv"
)

// StorageServer is a storage node address handed out by a tracker.
type StorageServer struct {
	GroupName string
	IP        string
	Port      int64
	// StorePathIndex is only reported by store queries.
	StorePathIndex uint8
}

// Addr returns host:port suitable for net.Dial.
func (s StorageServer) Addr() string {
	return net.JoinHostPort(s.IP, strconv.FormatInt(s.Port, 10))
}

// QueryStoreRequest asks a tracker where to upload. An empty GroupName lets
// the tracker choose the group.
type QueryStoreRequest struct {
	GroupName string
}

func (r *QueryStoreRequest) Command() Command {
	if r.GroupName == "" {
		return TrackerQueryStoreWithoutGroupOne
	}
	return TrackerQueryStoreWithGroupOne
}

func (r *QueryStoreRequest) EncodeBody() []byte {
	if r.GroupName == "" {
		return []byte{}
	}
	w := newFieldWriter(GroupNameWidth)
	w.text(r.GroupName, GroupNameWidth)
	return w.bytes()
}

// QueryStoreResponse is the tracker's choice of storage server.
//
// Body: group name (16) | ip (15) | port (8) | store path index (1).
type QueryStoreResponse struct {
	result
	StorageServer
}

func (r *QueryStoreResponse) Decode(h Header, body []byte) error {
	*r = QueryStoreResponse{}
	if !r.begin(h) {
		return nil
	}
	fr := newFieldReader("tracker_query_store", body)
	r.GroupName = fr.text(GroupNameWidth)
	r.IP = fr.text(TrackerIPWidth)
	r.Port = fr.int64()
	r.StorePathIndex = fr.uint8()
	fr.rest()
	return fr.err
}

// QueryFetchRequest asks a tracker which storage server holds a file. With
// Update set it asks for the server that accepts modifications instead.
type QueryFetchRequest struct {
	FileRef
	Update bool
}

func (r *QueryFetchRequest) Command() Command {
	if r.Update {
		return TrackerQueryUpdate
	}
	return TrackerQueryFetchOne
}

func (r *QueryFetchRequest) EncodeBody() []byte {
	w := newFieldWriter(r.size())
	r.write(w)
	return w.bytes()
}

// QueryFetchResponse names the storage server for a fetch or update query.
//
// Body: group name (16) | ip (15) | port (8).
type QueryFetchResponse struct {
	result
	StorageServer
}

func (r *QueryFetchResponse) Decode(h Header, body []byte) error {
	*r = QueryFetchResponse{}
	if !r.begin(h) {
		return nil
	}
	fr := newFieldReader("tracker_query_fetch", body)
	r.GroupName = fr.text(GroupNameWidth)
	r.IP = fr.text(TrackerIPWidth)
	r.Port = fr.int64()
	fr.rest()
	return fr.err
}
