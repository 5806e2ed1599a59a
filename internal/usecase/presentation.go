package usecase

import (
	"sort"
	"time"

	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/board"
	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/scoreboard"
)

const (
	DefaultWindowPast   = 4 * 24 * time.Hour
	DefaultWindowFuture = 8 * 24 * time.Hour
)

// Window is an inclusive time range.
type Window struct {
	Start time.Time
	End   time.Time
}

func NewWindow(now time.Time, past, future time.Duration) Window {
	return Window{Start: now.Add(-past), End: now.Add(future)}
}

func (w Window) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(w.Start) && !t.After(w.End)
}

// FilterEventsByWindow keeps events dated inside the window, in input order.
// Events without a parseable date are dropped.
func FilterEventsByWindow(events []scoreboard.Event, window Window) []scoreboard.Event {
	out := make([]scoreboard.Event, 0, len(events))
	for _, event := range events {
		if window.Contains(event.Date) {
			out = append(out, event)
		}
	}
	return out
}

// SortLiveFirst moves tournaments with a live competition ahead of the rest,
// keeping relative order within each group.
func SortLiveFirst(tournaments []board.Tournament) {
	sort.SliceStable(tournaments, func(i, j int) bool {
		return tournaments[i].HasLive() && !tournaments[j].HasLive()
	})
}
