package carrot

import "sync"

// EventKind identifies a state machine notification.
type EventKind uint8

const (
	EventGameStart EventKind = iota
	EventGameOver
	EventScoreUpdate
	EventLivesUpdate
	EventHighScoreUpdate
	EventDeath
	EventPickupCollected
	EventObstacleHit
	EventRestartReady
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventGameStart:
		return "gameStart"
	case EventGameOver:
		return "gameOver"
	case EventScoreUpdate:
		return "scoreUpdate"
	case EventLivesUpdate:
		return "livesUpdate"
	case EventHighScoreUpdate:
		return "highScoreUpdate"
	case EventDeath:
		return "death"
	case EventPickupCollected:
		return "pickupCollected"
	case EventObstacleHit:
		return "obstacleHit"
	case EventRestartReady:
		return "restartReady"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers with a copy of the state at emit time.
type Event struct {
	Kind  EventKind
	State GameState
}

// Listener receives events on the simulation goroutine.
// It must not block.
type Listener func(Event)

type subscription struct {
	id uint64
	fn Listener
}

// bus is a per-kind observer list. Listeners run in subscription order and
// may subscribe or cancel from inside a callback.
type bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[EventKind][]subscription
}

func (b *bus) subscribe(kind EventKind, fn Listener) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[EventKind][]subscription)
	}
	b.nextID++
	id := b.nextID
	b.subs[kind] = append(b.subs[kind], subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(kind, id) })
	}
}

func (b *bus) unsubscribe(kind EventKind, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[kind]
	for i, s := range list {
		if s.id == id {
			// Copy so an emit iterating the old slice is unaffected
			b.subs[kind] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

func (b *bus) emit(e Event) {
	b.mu.Lock()
	list := b.subs[e.Kind]
	b.mu.Unlock()

	for _, s := range list {
		s.fn(e)
	}
}
