package main

import (
	"os"

	"github.com/danmuck/fdfswire/internal/logging"
	logs "github.com/danmuck/smplog"
)

func main() {
	logging.ConfigureRuntime()
	if err := run(os.Args[1:], os.Stdout); err != nil {
		logs.Errorf(err, "fdfsframe")
		os.Exit(1)
	}
}
