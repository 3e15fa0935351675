package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/danmuck/fdfswire/internal/config"
	"github.com/danmuck/fdfswire/internal/logging"
	"github.com/danmuck/fdfswire/internal/observability"
	"github.com/danmuck/fdfswire/internal/protocol"
	"github.com/danmuck/fdfswire/internal/protocol/frame"
	"github.com/danmuck/fdfswire/internal/protocol/schema"
	logs "github.com/danmuck/smplog"
)

const usage = `usage: fdfsframe <command> [flags]

commands:
  upload   encode an upload_file request frame for a local file as hex
  decode   decode a hex response frame for a given request command
  layout   print the wire layout of every command
  probe    send active_test and a store query to a tracker
  config   write a default config file`

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	switch args[0] {
	case "upload":
		return runUpload(args[1:], stdout)
	case "decode":
		return runDecode(args[1:], stdout)
	case "layout":
		return runLayout(stdout)
	case "probe":
		return runProbe(args[1:], stdout)
	case "config":
		return runConfig(args[1:])
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func runUpload(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	path := fs.String("file", "", "file to upload")
	ext := fs.String("ext", "", "file extension without dot (defaults to the file's)")
	index := fs.Uint("index", 0, "store path index")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return errors.New("upload: -file is required")
	}
	if *index > 255 {
		return fmt.Errorf("upload: store path index %d out of range", *index)
	}
	content, err := os.ReadFile(*path)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	extension := *ext
	if extension == "" {
		if i := strings.LastIndexByte(*path, '.'); i >= 0 {
			extension = (*path)[i+1:]
		}
	}

	var out bytes.Buffer
	req := &protocol.UploadFileRequest{
		StorePathIndex: uint8(*index),
		FileContent:    content,
		FileExtension:  extension,
	}
	if err := frame.WriteRequest(&out, req); err != nil {
		return err
	}
	logs.Infof("upload: %d byte frame for %s", out.Len(), *path)
	_, err = fmt.Fprintln(stdout, hex.EncodeToString(out.Bytes()))
	return err
}

func responseFor(cmd protocol.Command) (protocol.Response, error) {
	switch cmd {
	case protocol.UploadFile:
		return &protocol.UploadFileResponse{}, nil
	case protocol.DownloadFile:
		return &protocol.DownloadFileResponse{}, nil
	case protocol.QueryFileInfo:
		return &protocol.QueryFileInfoResponse{}, nil
	case protocol.TrackerQueryStoreWithoutGroupOne, protocol.TrackerQueryStoreWithGroupOne:
		return &protocol.QueryStoreResponse{}, nil
	case protocol.TrackerQueryFetchOne, protocol.TrackerQueryUpdate:
		return &protocol.QueryFetchResponse{}, nil
	case protocol.DeleteFile, protocol.ActiveTest:
		return &protocol.StatusResponse{}, nil
	default:
		return nil, fmt.Errorf("no response decoder for %s", cmd)
	}
}

func responseFields(resp protocol.Response) map[string]any {
	switch r := resp.(type) {
	case *protocol.UploadFileResponse:
		return map[string]any{"group_name": r.GroupName, "file_name": r.FileName}
	case *protocol.DownloadFileResponse:
		return map[string]any{"content_length": len(r.Content)}
	case *protocol.QueryFileInfoResponse:
		return map[string]any{
			"file_size":   r.FileSize,
			"create_time": r.CreateTime,
			"crc32":       r.CRC32,
			"source_ip":   r.SourceIP,
		}
	case *protocol.QueryStoreResponse:
		return map[string]any{"group_name": r.GroupName, "addr": r.Addr(), "store_path_index": r.StorePathIndex}
	case *protocol.QueryFetchResponse:
		return map[string]any{"group_name": r.GroupName, "addr": r.Addr()}
	default:
		return nil
	}
}

func runDecode(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	cmdName := fs.String("cmd", "upload_file", "request command the frame answers")
	raw := fs.String("hex", "", "response frame as hex")
	pretty := fs.Bool("pretty", false, "human readable output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cmd, ok := protocol.LookupCommand(*cmdName)
	if !ok {
		return fmt.Errorf("decode: unknown command %q", *cmdName)
	}
	data, err := hex.DecodeString(strings.TrimSpace(*raw))
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	resp, err := responseFor(cmd)
	if err != nil {
		return err
	}
	h, err := protocol.ParseHeader(data, 0)
	if err != nil {
		return err
	}
	if err := schema.CheckResponse(cmd, h); err != nil {
		return err
	}
	if err := protocol.DecodeResponse(h, data[protocol.HeaderSize:], resp); err != nil {
		return err
	}

	logger := observability.InitFrameLogger(stdout, "fdfsframe", *pretty)
	ev := observability.FrameEvent{
		Direction:  observability.DirectionIn,
		Command:    cmd.String(),
		Status:     h.Status,
		BodyLength: h.BodyLength,
	}
	if resp.IsSuccess() {
		ev.Fields = responseFields(resp)
	}
	observability.LogFrame(logger, ev)
	return nil
}

func runLayout(stdout io.Writer) error {
	for _, cmd := range protocol.Commands() {
		l, ok := schema.Lookup(cmd)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(stdout, "%3d %s\n    request:  %s\n    response: %s\n",
			uint8(cmd), cmd, schema.Describe(l.Request), schema.Describe(l.Response)); err != nil {
			return err
		}
	}
	return nil
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runProbe(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("probe", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "config file (defaults apply when empty)")
	addr := fs.String("addr", "", "tracker address, overrides config")
	group := fs.String("group", "", "query a specific group")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	target := cfg.TrackerAddr
	if *addr != "" {
		target = *addr
	}

	conn, err := net.DialTimeout("tcp", target, cfg.DialTimeout)
	if err != nil {
		return protocol.TransportError(target, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.IOTimeout)
	defer cancel()
	limits := cfg.FrameLimits()
	logger := observability.InitFrameLogger(stdout, "fdfsframe", true)

	var alive protocol.StatusResponse
	h, err := frame.Exchange(ctx, conn, protocol.ActiveTestRequest{}, &alive, limits)
	if err != nil {
		return err
	}
	observability.LogFrame(logger, observability.FrameEvent{
		Direction: observability.DirectionIn,
		Command:   protocol.ActiveTest.String(),
		Status:    h.Status,
	})

	req := &protocol.QueryStoreRequest{GroupName: *group}
	var store protocol.QueryStoreResponse
	h, err = frame.Exchange(ctx, conn, req, &store, limits)
	if err != nil {
		return err
	}
	ev := observability.FrameEvent{
		Direction:  observability.DirectionIn,
		Command:    req.Command().String(),
		Status:     h.Status,
		BodyLength: h.BodyLength,
	}
	if store.IsSuccess() {
		ev.Fields = responseFields(&store)
	}
	observability.LogFrame(logger, ev)

	if err := frame.WriteRequest(conn, protocol.QuitRequest{}); err != nil {
		logs.Warnf("probe: quit: %v", err)
	}
	return protocol.Escalate(h, req.Command())
}

func runConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	output := fs.String("output", "fdfswire.toml", "output path")
	force := fs.Bool("force", false, "overwrite an existing file")
	validate := fs.Bool("validate", false, "validate -output instead of writing it")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *validate {
		if _, err := config.Load(*output); err != nil {
			return err
		}
		logs.Infof("validated config at %s", *output)
		return nil
	}
	if err := config.WriteTemplate(*output, *force); err != nil {
		return err
	}
	logs.Infof("wrote config template to %s", *output)
	return nil
}
