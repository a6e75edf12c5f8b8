package persistence

import (
	"os"

	kitlog "github.com/go-kit/log"
)

// logger mirrors the teacher's spacecraft.go SCLogInit: a logfmt logger
// over stdout, tagged with this package's name, used to report I/O
// failures that degrade gracefully rather than abort the run (§7).
var logger = kitlog.With(kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout)), "component", "persistence")
