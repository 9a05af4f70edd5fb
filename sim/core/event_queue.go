package core

import (
	"container/heap"
	"time"
)

// SimEventKind tags the variant of a SimEvent.
type SimEventKind int

const (
	EventCastComplete SimEventKind = iota
	EventAutoAttack
	EventPetAttack
	EventAuraTick
	EventAuraExpire
	EventGcdEnd
	EventCooldownReady
	EventEnemyCheck
	EventFinalize
)

func (k SimEventKind) String() string {
	switch k {
	case EventCastComplete:
		return "CastComplete"
	case EventAutoAttack:
		return "AutoAttack"
	case EventPetAttack:
		return "PetAttack"
	case EventAuraTick:
		return "AuraTick"
	case EventAuraExpire:
		return "AuraExpire"
	case EventGcdEnd:
		return "GcdEnd"
	case EventCooldownReady:
		return "CooldownReady"
	case EventEnemyCheck:
		return "EnemyCheck"
	case EventFinalize:
		return "Finalize"
	default:
		return "Unknown"
	}
}

// SimEvent is a tagged record in the event queue. Only the fields
// relevant to Kind are populated; handlers switch on Kind.
type SimEvent struct {
	Kind   SimEventKind
	Spell  SpellId
	Target TargetId
	Unit   UnitId
	Pet    PetId
	Aura   AuraId

	// generation is not set or read by any handler. Stale events are
	// instead recognized by the handlers re-checking live state at
	// dequeue time (e.g. AuraStore.Tick ignores an AuraTick for an aura
	// that has since expired). The queue itself never mutates or cancels
	// a scheduled event.
	generation uint64
}

// queuedEvent is the heap element: (time, insertion sequence, event).
// Ordering is lexicographic on (Time, seq) so that equal timestamps
// fire in insertion (FIFO) order, per spec.
type queuedEvent struct {
	Time  time.Duration
	seq   uint64
	Event SimEvent
}

type eventHeap []queuedEvent

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x any)        { *h = append(*h, x.(queuedEvent)) }
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// EventQueue is a monotonic min-heap priority queue of future
// simulation events. Operations are schedule (O(log n)) and pop_next.
// Cancellation in place is not supported: handlers check validity on
// dequeue instead (spec.md §4.1).
type EventQueue struct {
	heap   eventHeap
	seq    uint64
	lastAt time.Duration
}

func NewEventQueue() *EventQueue {
	q := &EventQueue{}
	heap.Init(&q.heap)
	return q
}

// Schedule enqueues event at the given time. Scheduling in the past
// relative to the last popped time is a programming error: the queue
// never moves time backward for dispatch purposes, but nothing stops a
// handler from scheduling at `now` (coincident events), which is the
// common case.
func (q *EventQueue) Schedule(t time.Duration, event SimEvent) {
	q.seq++
	heap.Push(&q.heap, queuedEvent{Time: t, seq: q.seq, Event: event})
}

// PopNext returns the earliest event, or ok=false if the queue is
// empty. Popping advances the queue's notion of "last popped time";
// PopNext never returns a time earlier than a previously returned one.
func (q *EventQueue) PopNext() (t time.Duration, event SimEvent, ok bool) {
	if q.heap.Len() == 0 {
		return 0, SimEvent{}, false
	}
	item := heap.Pop(&q.heap).(queuedEvent)
	if item.Time < q.lastAt {
		panic("event_queue: time moved backward")
	}
	q.lastAt = item.Time
	return item.Time, item.Event, true
}

// PopBatch pops the next event and every other event sharing its exact
// timestamp, returning them as one slice in FIFO order. This is the
// "batch processing" rule from spec.md §4.1: the driver processes an
// entire coincident batch before advancing the clock, making
// order-sensitive cascades deterministic.
func (q *EventQueue) PopBatch() (t time.Duration, events []SimEvent, ok bool) {
	first, firstEvent, ok := q.PopNext()
	if !ok {
		return 0, nil, false
	}
	events = []SimEvent{firstEvent}
	for q.heap.Len() > 0 && q.heap[0].Time == first {
		item := heap.Pop(&q.heap).(queuedEvent)
		q.lastAt = item.Time
		events = append(events, item.Event)
	}
	return first, events, true
}

func (q *EventQueue) Len() int { return q.heap.Len() }

func (q *EventQueue) Empty() bool { return q.heap.Len() == 0 }
