package motion

const (
	COLLISION_ENTER EventType = iota
	COLLISION_STAY
	COLLISION_EXIT
	ON_RESET
)

// pairKey identifies a mesh pair by name with consistent ordering
type pairKey struct {
	boneA string
	boneB string
}

func makePairKey(boneA, boneB string) pairKey {
	if boneB < boneA {
		boneA, boneB = boneB, boneA
	}
	return pairKey{boneA: boneA, boneB: boneB}
}

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// CollisionEnterEvent is emitted when a pair starts intersecting
type CollisionEnterEvent struct {
	BoneA, BoneB string
	Result       PairResult
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

// CollisionStayEvent is emitted when a pair still intersects
type CollisionStayEvent struct {
	BoneA, BoneB string
	Result       PairResult
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

// CollisionExitEvent is emitted when a pair stopped intersecting
type CollisionExitEvent struct {
	BoneA, BoneB string
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// ResetEvent is emitted after the working set was restored from the originals
type ResetEvent struct {
	Bones int
}

func (e ResetEvent) Type() EventType { return ON_RESET }

// EventListener - callback for events
type EventListener func(event Event)

// Events tracks which pairs collide between successive checks and dispatches events
type Events struct {
	listeners map[EventType][]EventListener
	buffer    []Event

	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 16),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		*e = NewEvents()
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordReport compares the colliding pairs of report with the previous check
func (e *Events) recordReport(report CollisionReport) {
	if e.listeners == nil {
		*e = NewEvents()
	}

	for _, p := range report.Colliding() {
		key := makePairKey(p.BoneA, p.BoneB)
		e.currentActivePairs[key] = true

		if e.previousActivePairs[key] {
			e.buffer = append(e.buffer, CollisionStayEvent{BoneA: key.boneA, BoneB: key.boneB, Result: p})
		} else {
			e.buffer = append(e.buffer, CollisionEnterEvent{BoneA: key.boneA, BoneB: key.boneB, Result: p})
		}
	}

	for key := range e.previousActivePairs {
		if !e.currentActivePairs[key] {
			e.buffer = append(e.buffer, CollisionExitEvent{BoneA: key.boneA, BoneB: key.boneB})
		}
	}

	// Swap for next check and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

// emitReset forgets the active pairs and queues a reset event
func (e *Events) emitReset(bones int) {
	if e.listeners == nil {
		*e = NewEvents()
	}
	clear(e.previousActivePairs)
	e.buffer = append(e.buffer, ResetEvent{Bones: bones})
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}
