package schedule

import (
	"context"
	"time"

	"git.lost.host/meutraa/rain/internal/game"
)

// Scheduler paces a chart's spawn batches in real time. Only the gaps
// between group start times matter, so an arbitrary start delay can be
// applied without touching the chart itself.
type Scheduler struct {
	groups [][]game.Note
}

func NewScheduler(groups [][]game.Note) *Scheduler {
	return &Scheduler{groups: groups}
}

// Run emits one SpawnNotes action per group on actions, the first after
// delay and each next one after the original inter-group gap, then a
// single EndOfChart. An empty chart terminates immediately. Cancelling
// ctx drops all pending batches without emitting anything further.
func (s *Scheduler) Run(ctx context.Context, delay time.Duration, actions chan<- game.Action) {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	for i, group := range s.groups {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		select {
		case <-ctx.Done():
			return
		case actions <- game.SpawnNotes{Notes: group}:
		}
		if i+1 < len(s.groups) {
			timer.Reset(s.groups[i+1][0].Start - group[0].Start)
		}
	}

	select {
	case <-ctx.Done():
	case actions <- game.EndOfChart{}:
	}
}
