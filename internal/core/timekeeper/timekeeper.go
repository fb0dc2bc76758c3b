package timekeeper

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"lapwatch/internal/core/ledger"
	"lapwatch/internal/core/model"
)

const defaultTickInterval = 10 * time.Millisecond

// Store persists session snapshots.
type Store interface {
	Save(snapshot model.Snapshot) error
}

// Option customises a TimeKeeper.
type Option func(*TimeKeeper)

// WithClock replaces the system clock.
func WithClock(clock Clock) Option {
	return func(keeper *TimeKeeper) {
		if clock != nil {
			keeper.clock = clock
		}
	}
}

// WithStore persists a snapshot after every state change.
func WithStore(store Store) Option {
	return func(keeper *TimeKeeper) {
		keeper.store = store
	}
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger *log.Logger) Option {
	return func(keeper *TimeKeeper) {
		if logger != nil {
			keeper.logger = logger
		}
	}
}

// TimeKeeper is one stopwatch session: a Tracker and a Ledger driven by a
// periodic tick while running.
type TimeKeeper struct {
	mu        sync.Mutex
	config    model.StopwatchConfig
	clock     Clock
	store     Store
	logger    *log.Logger
	id        string
	tracker   Tracker
	ledger    *ledger.Ledger
	precision model.Precision
	events    []chan Event
	stopCh    chan struct{}
	closed    bool
}

// New creates a stopped TimeKeeper at zero elapsed time.
func New(config model.StopwatchConfig, options ...Option) *TimeKeeper {
	if config.TickInterval <= 0 {
		config.TickInterval = defaultTickInterval
	}

	keeper := &TimeKeeper{
		config:    config,
		clock:     SystemClock{},
		logger:    log.Default(),
		id:        uuid.NewString(),
		ledger:    ledger.New(model.ModeLap),
		precision: model.PrecisionMilliseconds,
	}
	for _, option := range options {
		option(keeper)
	}
	return keeper
}

// Restore loads a persisted snapshot into a stopped keeper. The session
// never resumes running, whatever the snapshot says. Marks that fail
// validation are dropped and reported through the returned error.
func (keeper *TimeKeeper) Restore(snapshot model.Snapshot) error {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	keeper.stopTickerLocked()
	if snapshot.ID != "" {
		keeper.id = snapshot.ID
	}
	keeper.tracker.Restore(snapshot.Elapsed)
	if precision, ok := model.ParsePrecision(string(snapshot.Precision)); ok {
		keeper.precision = precision
	}

	anchor := snapshot.Anchor
	if anchor > keeper.tracker.Elapsed() {
		anchor = keeper.tracker.Elapsed()
	}
	if err := keeper.ledger.Restore(snapshot.Mode, anchor, snapshot.Marks); err != nil {
		keeper.ledger = ledger.New(snapshot.Mode)
		return fmt.Errorf("restore session %s: %w", keeper.id, err)
	}
	return nil
}

// ID returns the session identifier.
func (keeper *TimeKeeper) ID() string {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.id
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	if keeper.closed {
		close(ch)
	} else {
		keeper.events = append(keeper.events, ch)
	}
	keeper.mu.Unlock()
	return ch
}

// Start begins or resumes counting.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.tracker.Running() || keeper.closed {
		return
	}
	now := keeper.clock.Now()
	keeper.tracker.Start(now)
	keeper.startTickerLocked()
	keeper.persistLocked(now)
	keeper.emitStateLocked(now)
}

// Stop freezes elapsed time.
func (keeper *TimeKeeper) Stop() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.tracker.Running() || keeper.closed {
		return
	}
	now := keeper.clock.Now()
	keeper.tracker.Stop(now)
	keeper.stopTickerLocked()
	keeper.persistLocked(now)
	keeper.emitStateLocked(now)
}

// Toggle stops a running keeper and starts a stopped one.
func (keeper *TimeKeeper) Toggle() {
	if keeper.Running() {
		keeper.Stop()
		return
	}
	keeper.Start()
}

// Reset stops the keeper, zeroes elapsed time and clears every mark.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return
	}
	now := keeper.clock.Now()
	keeper.tracker.Reset()
	keeper.ledger.Clear()
	keeper.stopTickerLocked()
	keeper.persistLocked(now)
	keeper.emitLocked(Event{
		Type:      EventReset,
		State:     StateStopped,
		Mode:      keeper.ledger.Mode(),
		Precision: keeper.precision,
		At:        now,
	})
}

// Lap records a mark at the current elapsed time. It reports false when
// the keeper is not running or has been closed.
func (keeper *TimeKeeper) Lap() (model.Mark, bool) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.tracker.Running() || keeper.closed {
		return model.Mark{}, false
	}
	now := keeper.clock.Now()
	elapsed := keeper.tracker.Tick(now)
	mark := keeper.ledger.RecordAt(elapsed, now)
	keeper.persistLocked(now)
	keeper.emitLocked(Event{
		Type:      EventMark,
		State:     StateRunning,
		Elapsed:   elapsed,
		Split:     keeper.ledger.CurrentSplit(elapsed),
		Mark:      mark,
		Mode:      keeper.ledger.Mode(),
		Precision: keeper.precision,
		At:        now,
	})
	return mark, true
}

// ClearMarks removes every mark without touching elapsed time.
func (keeper *TimeKeeper) ClearMarks() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return
	}
	now := keeper.clock.Now()
	keeper.ledger.Clear()
	keeper.persistLocked(now)
	keeper.emitLocked(Event{
		Type:      EventCleared,
		State:     keeper.stateLocked(),
		Elapsed:   keeper.tracker.Sample(now),
		Mode:      keeper.ledger.Mode(),
		Precision: keeper.precision,
		At:        now,
	})
}

// SetMode switches lap/split accounting for future marks.
func (keeper *TimeKeeper) SetMode(mode model.Mode) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !mode.Valid() || mode == keeper.ledger.Mode() || keeper.closed {
		return
	}
	now := keeper.clock.Now()
	keeper.ledger.SetMode(mode, keeper.tracker.Running(), keeper.tracker.Tick(now))
	keeper.persistLocked(now)
	keeper.emitSettingsLocked(now)
}

// SetPrecision changes the display precision.
func (keeper *TimeKeeper) SetPrecision(precision model.Precision) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !precision.Valid() || precision == keeper.precision || keeper.closed {
		return
	}
	now := keeper.clock.Now()
	keeper.precision = precision
	keeper.persistLocked(now)
	keeper.emitSettingsLocked(now)
}

// UpdateConfig applies new runtime configuration, restarting the ticker
// when the keeper is running.
func (keeper *TimeKeeper) UpdateConfig(config model.StopwatchConfig) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if config.TickInterval <= 0 {
		config.TickInterval = defaultTickInterval
	}
	keeper.config = config
	if keeper.tracker.Running() && !keeper.closed {
		keeper.stopTickerLocked()
		keeper.startTickerLocked()
	}
}

// Running reports whether the keeper is counting.
func (keeper *TimeKeeper) Running() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.tracker.Running()
}

// Elapsed returns the current elapsed time.
func (keeper *TimeKeeper) Elapsed() time.Duration {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.tracker.Sample(keeper.clock.Now())
}

// CurrentSplit returns the value of the mark in progress.
func (keeper *TimeKeeper) CurrentSplit() time.Duration {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.ledger.CurrentSplit(keeper.tracker.Sample(keeper.clock.Now()))
}

// Mode returns the accounting mode for the next mark.
func (keeper *TimeKeeper) Mode() model.Mode {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.ledger.Mode()
}

// Precision returns the display precision.
func (keeper *TimeKeeper) Precision() model.Precision {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.precision
}

// Marks returns a copy of the recorded marks.
func (keeper *TimeKeeper) Marks() []model.Mark {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.ledger.Marks()
}

// Statistics aggregates the recorded marks.
func (keeper *TimeKeeper) Statistics() (model.Statistics, bool) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.ledger.Statistics()
}

// BestWorst returns indices of the shortest and longest marks.
func (keeper *TimeKeeper) BestWorst() (best, worst int) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.ledger.BestWorst()
}

// Snapshot returns the persisted form of the session.
func (keeper *TimeKeeper) Snapshot() model.Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.snapshotLocked(keeper.clock.Now())
}

// Close stops the ticker, persists the final state and closes observers.
// Later mutating calls are ignored.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	now := keeper.clock.Now()
	keeper.tracker.Tick(now)
	keeper.stopTickerLocked()
	keeper.persistLocked(now)
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) startTickerLocked() {
	keeper.stopCh = make(chan struct{})
	go keeper.run(keeper.stopCh, keeper.config.TickInterval)
}

func (keeper *TimeKeeper) stopTickerLocked() {
	if keeper.stopCh == nil {
		return
	}
	close(keeper.stopCh)
	keeper.stopCh = nil
}

func (keeper *TimeKeeper) run(stopCh <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			keeper.tick()
		}
	}
}

func (keeper *TimeKeeper) tick() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.tracker.Running() {
		return
	}
	now := keeper.clock.Now()
	elapsed := keeper.tracker.Tick(now)
	keeper.emitLocked(Event{
		Type:      EventProgress,
		State:     StateRunning,
		Elapsed:   elapsed,
		Split:     keeper.ledger.CurrentSplit(elapsed),
		Mode:      keeper.ledger.Mode(),
		Precision: keeper.precision,
		At:        now,
	})
}

func (keeper *TimeKeeper) stateLocked() State {
	if keeper.tracker.Running() {
		return StateRunning
	}
	return StateStopped
}

func (keeper *TimeKeeper) snapshotLocked(now time.Time) model.Snapshot {
	return model.Snapshot{
		ID:        keeper.id,
		Elapsed:   keeper.tracker.Sample(now),
		Anchor:    keeper.ledger.Anchor(),
		Mode:      keeper.ledger.Mode(),
		Precision: keeper.precision,
		Marks:     keeper.ledger.Marks(),
		Running:   keeper.tracker.Running(),
		SavedAt:   now,
	}
}

func (keeper *TimeKeeper) persistLocked(now time.Time) {
	if keeper.store == nil {
		return
	}
	if err := keeper.store.Save(keeper.snapshotLocked(now)); err != nil {
		keeper.logger.Printf("persist session %s: %v", keeper.id, err)
	}
}

func (keeper *TimeKeeper) emitStateLocked(now time.Time) {
	elapsed := keeper.tracker.Sample(now)
	keeper.emitLocked(Event{
		Type:      EventStateChange,
		State:     keeper.stateLocked(),
		Elapsed:   elapsed,
		Split:     keeper.ledger.CurrentSplit(elapsed),
		Mode:      keeper.ledger.Mode(),
		Precision: keeper.precision,
		At:        now,
	})
}

func (keeper *TimeKeeper) emitSettingsLocked(now time.Time) {
	elapsed := keeper.tracker.Sample(now)
	keeper.emitLocked(Event{
		Type:      EventSettings,
		State:     keeper.stateLocked(),
		Elapsed:   elapsed,
		Split:     keeper.ledger.CurrentSplit(elapsed),
		Mode:      keeper.ledger.Mode(),
		Precision: keeper.precision,
		At:        now,
	})
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}
