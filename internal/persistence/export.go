package persistence

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/LordIdra/transfer-window-sub001/internal/path"
)

// ExportTrajectoryCSV dumps samples points of p between its start and
// end time to w as CSV, one row per sample: time, position, velocity,
// mass. This is a developer debug export (not a player-facing save),
// grounded in tools.go's PCPGenerator sampling loop and export.go's CSV
// writer, generalized from orbital-elements rows to the Cartesian
// position/velocity this domain's 2-D path model already carries.
func ExportTrajectoryCSV(p *path.Path, samples int, w io.Writer) error {
	if samples < 2 {
		samples = 2
	}
	if len(p.Segments) == 0 {
		return fmt.Errorf("persistence: cannot export an empty path")
	}
	start := p.Segments[0].StartTime()
	end := p.Segments[len(p.Segments)-1].EndTime()

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "x", "y", "vx", "vy", "mass"}); err != nil {
		return fmt.Errorf("persistence: writing CSV header: %w", err)
	}

	step := (end - start) / float64(samples-1)
	for i := 0; i < samples; i++ {
		t := start + step*float64(i)
		if i == samples-1 {
			t = end
		}
		seg, ok := segmentAtTime(p, t)
		if !ok {
			continue
		}
		pos := seg.PositionAtTime(t)
		vel := seg.VelocityAtTime(t)
		row := []string{
			strconv.FormatFloat(t, 'g', -1, 64),
			strconv.FormatFloat(pos.X, 'g', -1, 64),
			strconv.FormatFloat(pos.Y, 'g', -1, 64),
			strconv.FormatFloat(vel.X, 'g', -1, 64),
			strconv.FormatFloat(vel.Y, 'g', -1, 64),
			strconv.FormatFloat(seg.Mass(), 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("persistence: writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// segmentAtTime scans the whole path for t, unlike Path.FutureSegmentAtTime
// which only searches from CurrentIndex forward -- export needs segments
// before the path's present cursor too, since it dumps the full history.
func segmentAtTime(p *path.Path, t float64) (path.Segment, bool) {
	for i := range p.Segments {
		if p.Segments[i].ContainsTime(t) {
			return p.Segments[i], true
		}
	}
	if n := len(p.Segments); n > 0 && t >= p.Segments[n-1].EndTime() {
		return p.Segments[n-1], true
	}
	return path.Segment{}, false
}
