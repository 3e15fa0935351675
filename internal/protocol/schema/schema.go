package schema

import (
	"fmt"
	"strings"

	"github.com/danmuck/fdfswire/internal/protocol"
	logs "github.com/danmuck/smplog"
)

// Field is one body field. Width 0 marks the trailing field, which takes
// whatever the header's body length leaves.
type Field struct {
	Name  string
	Width int
}

// Layout is the wire shape of one command's request and success response.
type Layout struct {
	Command  protocol.Command
	Request  []Field
	Response []Field
}

var (
	group    = Field{"group_name", protocol.GroupNameWidth}
	fileName = Field{"file_name", 0}
	tracker  = []Field{group, {"ip", protocol.TrackerIPWidth}, {"port", 8}}
)

var layouts = map[protocol.Command]Layout{
	protocol.UploadFile: {
		Request: []Field{
			{"store_path_index", 1},
			{"file_size", 8},
			{"file_ext", protocol.FileExtensionWidth},
			{"file_content", 0},
		},
		Response: []Field{group, fileName},
	},
	protocol.DeleteFile: {
		Request: []Field{group, fileName},
	},
	protocol.DownloadFile: {
		Request:  []Field{{"offset", 8}, {"byte_count", 8}, group, fileName},
		Response: []Field{{"file_content", 0}},
	},
	protocol.QueryFileInfo: {
		Request: []Field{group, fileName},
		Response: []Field{
			{"file_size", 8},
			{"create_timestamp", 8},
			{"crc32", 8},
			{"source_ip", protocol.IPAddressWidth},
		},
	},
	protocol.TrackerQueryStoreWithoutGroupOne: {
		Response: append(tracker[:len(tracker):len(tracker)], Field{"store_path_index", 1}),
	},
	protocol.TrackerQueryStoreWithGroupOne: {
		Request:  []Field{group},
		Response: append(tracker[:len(tracker):len(tracker)], Field{"store_path_index", 1}),
	},
	protocol.TrackerQueryFetchOne: {
		Request:  []Field{group, fileName},
		Response: tracker,
	},
	protocol.TrackerQueryUpdate: {
		Request:  []Field{group, fileName},
		Response: tracker,
	},
	protocol.ActiveTest: {},
	protocol.Quit:       {},
}

func init() {
	for cmd, l := range layouts {
		l.Command = cmd
		layouts[cmd] = l
	}
}

// Lookup returns the layout for cmd.
func Lookup(cmd protocol.Command) (Layout, bool) {
	l, ok := layouts[cmd]
	return l, ok
}

// FixedLen sums the widths of the fixed fields.
func FixedLen(fields []Field) int {
	n := 0
	for _, f := range fields {
		n += f.Width
	}
	return n
}

// Trailing reports whether fields end in a variable-length field.
func Trailing(fields []Field) bool {
	return len(fields) > 0 && fields[len(fields)-1].Width == 0
}

type ValidationError struct {
	Command protocol.Command
	Reason  string
	Err     error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("schema: command=%s: %s", e.Command, e.Reason)
}

func (e ValidationError) Unwrap() error { return e.Err }

// CheckResponse verifies that a reply to cmd is long enough to hold every
// fixed response field. Failed replies are not checked.
func CheckResponse(cmd protocol.Command, h protocol.Header) error {
	if !h.IsSuccess() {
		return nil
	}
	l, ok := layouts[cmd]
	if !ok {
		logs.Warnf("schema.CheckResponse unknown command=%s", cmd)
		return protocol.ProtocolError("schema", ValidationError{Command: cmd, Reason: "no layout"})
	}
	need := FixedLen(l.Response)
	if h.BodyLength < int64(need) {
		logs.Debugf("schema.CheckResponse short body command=%s body=%d need=%d", cmd, h.BodyLength, need)
		return protocol.ProtocolError("schema", ValidationError{
			Command: cmd,
			Reason:  fmt.Sprintf("body length %d below fixed fields %d", h.BodyLength, need),
			Err:     protocol.ErrTruncated,
		})
	}
	return nil
}

// Describe renders fields as "name(width) | ...", with "*" for the trailing
// field.
func Describe(fields []Field) string {
	if len(fields) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		if f.Width == 0 {
			parts[i] = f.Name + "(*)"
			continue
		}
		parts[i] = fmt.Sprintf("%s(%d)", f.Name, f.Width)
	}
	return strings.Join(parts, " | ")
}
