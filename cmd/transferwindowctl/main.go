// Command transferwindowctl is a headless driver: it loads a saved
// scenario, steps the simulation a fixed number of real-time seconds
// (or until the clock reaches a target time), printing one status line
// per tick via the same logfmt logger the rest of the codebase uses.
// There is no UI here -- this is for scripted regression scenarios
// (see spec.md §8's end-to-end scenarios), grounded in the teacher's
// own flag-driven, subcommand-free main() wiring rather than a cobra
// CLI (considered and rejected, see DESIGN.md).
package main

import (
	"flag"
	"fmt"
	"os"

	kitlog "github.com/go-kit/log"

	"github.com/LordIdra/transfer-window-sub001/internal/persistence"
)

func main() {
	scenario := flag.String("scenario", "", "name of the save under saves/ to load")
	dt := flag.Float64("dt", 1.0, "real-time seconds advanced per tick")
	ticks := flag.Int("ticks", 0, "number of ticks to run (ignored if -until is set)")
	until := flag.Float64("until", 0, "run until the simulation clock reaches this time (0 disables)")
	save := flag.String("save", "", "name to save the final state as under saves/ (empty skips saving)")
	flag.Parse()

	logger := kitlog.With(kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout)), "component", "transferwindowctl")

	if *scenario == "" {
		fmt.Fprintln(os.Stderr, "transferwindowctl: -scenario is required")
		os.Exit(1)
	}

	m, err := persistence.Load(*scenario)
	if err != nil {
		logger.Log("op", "load", "scenario", *scenario, "err", err)
		os.Exit(1)
	}
	logger.Log("op", "load", "scenario", *scenario, "now", m.Now)

	runUntil := *until > 0
	for i := 0; runUntil || i < *ticks; i++ {
		if runUntil && m.Now >= *until {
			break
		}
		m.Tick(*dt)
		logger.Log("op", "tick", "i", i, "now", m.Now, "transient", len(m.Transient))
		for _, ev := range m.Transient {
			logger.Log("op", "event", "kind", ev.Kind, "entity", ev.Entity, "time", ev.Time)
		}
	}

	logger.Log("op", "done", "now", m.Now)

	if *save != "" {
		if err := persistence.Save(m, *save); err != nil {
			logger.Log("op", "save", "name", *save, "err", err)
			os.Exit(1)
		}
		logger.Log("op", "save", "name", *save)
	}
}
