package game

// EventKind identifies something renderers, audio or persistence may react
// to. The simulation never waits on listeners.
type EventKind int

const (
	EventPlayerShoot EventKind = iota
	EventEnemyShoot
	EventEnemyHit
	EventEnemyDestroyed
	EventEnemyDive
	EventEnemyTransform
	EventEnemyCapture
	EventPlayerHit
	EventPlayerDestroyed
	EventPlayerCaptured
	EventPlayerRespawn
	EventShieldAbsorbed
	EventPowerUpSpawned
	EventPowerUpCollected
	EventAreaAttack
	EventExtraLife
	EventWaveStart
	EventLevelComplete
	EventGameOver
	EventPhaseChange
	EventHighScore
)

var eventNames = [...]string{
	EventPlayerShoot:      "player-shoot",
	EventEnemyShoot:       "enemy-shoot",
	EventEnemyHit:         "enemy-hit",
	EventEnemyDestroyed:   "enemy-destroyed",
	EventEnemyDive:        "enemy-dive",
	EventEnemyTransform:   "enemy-transform",
	EventEnemyCapture:     "enemy-capture",
	EventPlayerHit:        "player-hit",
	EventPlayerDestroyed:  "player-destroyed",
	EventPlayerCaptured:   "player-captured",
	EventPlayerRespawn:    "player-respawn",
	EventShieldAbsorbed:   "shield-absorbed",
	EventPowerUpSpawned:   "powerup-spawned",
	EventPowerUpCollected: "powerup-collected",
	EventAreaAttack:       "area-attack",
	EventExtraLife:        "extra-life",
	EventWaveStart:        "wave-start",
	EventLevelComplete:    "level-complete",
	EventGameOver:         "game-over",
	EventPhaseChange:      "phase-change",
	EventHighScore:        "high-score",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Event is a notification raised during a tick. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind    EventKind
	X, Y    float64
	Tier    EnemyTier
	Boss    bool
	PowerUp PowerUpType
	Points  int
	Wave    int
	Phase   Phase
}

// Listener receives events after the tick that raised them.
type Listener interface {
	HandleEvent(e Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(e Event)

// HandleEvent implements Listener.
func (f ListenerFunc) HandleEvent(e Event) { f(e) }

// EventBus buffers events during a tick and delivers them on Flush. A nil
// bus drops everything, which keeps entities usable on their own in tests.
type EventBus struct {
	pending   []Event
	listeners []Listener
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe adds a listener. Listeners are called in subscription order.
func (b *EventBus) Subscribe(l Listener) {
	if b == nil || l == nil {
		return
	}
	b.listeners = append(b.listeners, l)
}

// Emit queues an event for the next Flush.
func (b *EventBus) Emit(e Event) {
	if b == nil {
		return
	}
	b.pending = append(b.pending, e)
}

// Pending returns the events queued since the last Flush.
func (b *EventBus) Pending() []Event {
	if b == nil {
		return nil
	}
	return b.pending
}

// Flush delivers queued events to every listener and clears the queue.
// Events emitted by a listener during Flush are delivered on the next Flush.
func (b *EventBus) Flush() {
	if b == nil || len(b.pending) == 0 {
		return
	}
	batch := b.pending
	b.pending = nil
	for _, e := range batch {
		for _, l := range b.listeners {
			l.HandleEvent(e)
		}
	}
}
