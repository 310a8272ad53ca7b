package schedule

import (
	"container/heap"
	"time"

	"git.lost.host/meutraa/rain/internal/game"
)

// Source priorities break ties between actions scheduled for the same
// instant, so replays are reproducible: spawns land before the tick that
// classifies them, and inputs always see the post-tick state.
const (
	PrioritySpawn = iota
	PriorityTick
	PriorityInput
)

type event struct {
	at       time.Duration
	priority int
	seq      int
	action   game.Action
}

// Timeline is a discrete-event queue of (timestamp, action) pairs drained
// by a single-threaded loop. It replaces wall-clock pacing for replays
// and tests, where determinism matters more than elapsed time.
type Timeline struct {
	events eventHeap
	seq    int
	now    time.Duration
}

func (t *Timeline) Push(at time.Duration, priority int, action game.Action) {
	heap.Push(&t.events, event{at: at, priority: priority, seq: t.seq, action: action})
	t.seq++
}

// PushTicks schedules a fixed-period tick for every step in [from, until).
func (t *Timeline) PushTicks(from, until, period time.Duration) {
	for at := from; at < until; at += period {
		t.Push(at, PriorityTick, game.Tick{})
	}
}

// Next pops the earliest action. The second return is false once the
// timeline is drained.
func (t *Timeline) Next() (game.Action, bool) {
	if t.events.Len() == 0 {
		return nil, false
	}
	ev := heap.Pop(&t.events).(event)
	t.now = ev.at
	return ev.action, true
}

// Now is the timestamp of the last popped action.
func (t *Timeline) Now() time.Duration {
	return t.now
}

// Drain folds every remaining action through the reducer in order.
func (t *Timeline) Drain(s game.State) game.State {
	for {
		action, ok := t.Next()
		if !ok {
			return s
		}
		s = game.Reduce(s, action)
	}
}

type eventHeap []event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(event))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}
