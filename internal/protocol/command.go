package protocol

import (
	"fmt"
	"slices"
)

// Command is the one-byte operation code carried in every header.
type Command uint8

// Registered command codes. Append only; existing values never change.
const (
	UploadFile    Command = 11
	DeleteFile    Command = 12
	DownloadFile  Command = 14
	QueryFileInfo Command = 22

	Quit Command = 82

	Resp                             Command = 100
	TrackerQueryStoreWithoutGroupOne Command = 101
	TrackerQueryFetchOne             Command = 102
	TrackerQueryUpdate               Command = 103
	TrackerQueryStoreWithGroupOne    Command = 104
	ActiveTest                       Command = 111
)

var commandNames = map[Command]string{
	UploadFile:                       "upload_file",
	DeleteFile:                       "delete_file",
	DownloadFile:                     "download_file",
	QueryFileInfo:                    "query_file_info",
	Quit:                             "quit",
	Resp:                             "resp",
	TrackerQueryStoreWithoutGroupOne: "tracker_query_store_without_group_one",
	TrackerQueryFetchOne:             "tracker_query_fetch_one",
	TrackerQueryUpdate:               "tracker_query_update",
	TrackerQueryStoreWithGroupOne:    "tracker_query_store_with_group_one",
	ActiveTest:                       "active_test",
}

// Known reports whether c is in the registry.
func (c Command) Known() bool {
	_, ok := commandNames[c]
	return ok
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", uint8(c))
}

// MustKnown panics if c is not registered. Sending an unregistered command is
// a programming error, not a runtime condition.
func MustKnown(c Command) Command {
	if !c.Known() {
		panic(fmt.Sprintf("protocol: unregistered command %d", uint8(c)))
	}
	return c
}

// LookupCommand resolves a registry name to its code.
func LookupCommand(name string) (Command, bool) {
	for c, n := range commandNames {
		if n == name {
			return c, true
		}
	}
	return 0, false
}

// Commands returns every registered code in ascending order.
func Commands() []Command {
	out := make([]Command, 0, len(commandNames))
	for c := range commandNames {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}
