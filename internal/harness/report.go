package harness

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"sync"

	"github.com/vovakirdan/dogfight/internal/core"
)

// Boundary log patterns. External tooling matches these lines verbatim,
// so the format must not change.
var (
	GameLinePattern    = regexp.MustCompile(`^=== GAME (\d+) seed=(-?\d+) ===$`)
	KillLinePattern    = regexp.MustCompile(`^KILL tick=(\d+) side=(p1|p2) cause=([a-z_]+)$`)
	SummaryLinePattern = regexp.MustCompile(`^SUMMARY games=(\d+) oscillation=(\d+) collapse=(\d+) fires_per_game=([0-9.]+) changes_per_game=([0-9.]+)$`)
)

// Reporter writes the boundary log. It is safe for concurrent use and keeps
// the first write error, which Err returns.
type Reporter struct {
	mu  sync.Mutex
	w   io.Writer
	err error
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Game writes the delimiter line of a game followed by its kill lines.
// Games are numbered from 1.
func (r *Reporter) Game(res GameResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.printf("=== GAME %d seed=%d ===\n", res.Index+1, res.Seed)
	for _, k := range res.Kills {
		r.printf("KILL tick=%d side=%s cause=%s\n", k.Tick, k.Victim, k.Cause)
	}
}

// Summary writes one summary line for the games folded in so far.
func (r *Reporter) Summary(s Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.printf("SUMMARY games=%d oscillation=%d collapse=%d fires_per_game=%.2f changes_per_game=%.2f\n",
		s.Games, s.Oscillations, s.Collapses, s.FiresPerGame(), s.ChangesPerGame())
}

// Err returns the first write error, if any.
func (r *Reporter) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Reporter) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

// KillLine is a parsed KILL line.
type KillLine struct {
	Tick  int
	Side  core.PlayerID
	Cause string
}

// SummaryLine is a parsed SUMMARY line.
type SummaryLine struct {
	Games          int
	Oscillations   int
	Collapses      int
	FiresPerGame   float64
	ChangesPerGame float64
}

// ParseKillLine parses a KILL line.
func ParseKillLine(line string) (KillLine, bool) {
	m := KillLinePattern.FindStringSubmatch(line)
	if m == nil {
		return KillLine{}, false
	}
	tick, _ := strconv.Atoi(m[1])
	side := core.Player1
	if m[2] == "p2" {
		side = core.Player2
	}
	return KillLine{Tick: tick, Side: side, Cause: m[3]}, true
}

// ParseSummaryLine parses a SUMMARY line.
func ParseSummaryLine(line string) (SummaryLine, bool) {
	m := SummaryLinePattern.FindStringSubmatch(line)
	if m == nil {
		return SummaryLine{}, false
	}
	var s SummaryLine
	s.Games, _ = strconv.Atoi(m[1])
	s.Oscillations, _ = strconv.Atoi(m[2])
	s.Collapses, _ = strconv.Atoi(m[3])
	s.FiresPerGame, _ = strconv.ParseFloat(m[4], 64)
	s.ChangesPerGame, _ = strconv.ParseFloat(m[5], 64)
	return s, true
}
