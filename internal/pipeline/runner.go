package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Default timing for the analysis timeline.
const (
	// DefaultFirstStepDwell is the fixed floor for the opening stage.
	// It applies regardless of backend state so the first step feels
	// substantive even when the job finishes quickly.
	DefaultFirstStepDwell = 10 * time.Second

	// DefaultStepDwell is the minimum hold for every later stage. The
	// gated stage also holds this long after readiness arrives, to avoid
	// a jarring instant-complete flash.
	DefaultStepDwell = 4 * time.Second

	// DefaultPollInterval is how often the gated stage re-checks the
	// backend readiness signal.
	DefaultPollInterval = 300 * time.Millisecond
)

// readinessStepIndex is the stage gated on the backend readiness signal.
// Every stage before it runs on a fixed timer, every stage after it is
// purely cosmetic.
const readinessStepIndex = 1

// Runner drives the five-stage timeline.
//
// A Runner is single-use: Start begins the sequence in a background
// goroutine, Stop tears it down. After Stop returns, no transition callback
// fires again: Stop waits for the driving goroutine to exit, which is what
// lets an owning view discard the Runner without orphaned timers mutating
// its state.
type Runner struct {
	// steps is the fixed stage sequence.
	steps []Step

	// readiness reports whether the backend job has produced its data.
	// Polled by the gated stage; must be safe to call repeatedly.
	readiness func() bool

	firstDwell   time.Duration
	dwell        time.Duration
	pollInterval time.Duration

	// readinessTimeout bounds how long the gated stage polls before
	// advancing anyway. Zero means poll until readiness or teardown.
	readinessTimeout time.Duration

	// onTransition runs after every stage transition and when the
	// timeline finishes. Invoked from the driving goroutine only.
	onTransition func()

	// logger for structured logging.
	logger *slog.Logger

	mu sync.Mutex

	// statuses mirrors steps; exactly one entry is active while running.
	statuses []Status

	// completedAt records when each stage completed; zero until then.
	completedAt []time.Time

	// done is raised only after the final stage completes.
	done bool

	// timedOut is raised when the gated stage advanced on timeout
	// rather than on the readiness signal.
	timedOut bool

	started bool

	stopOnce sync.Once
	stopCh   chan struct{}
	finished chan struct{}
}

// Option configures a Runner.
type Option func(*Runner)

// WithFirstStepDwell sets the fixed floor for the opening stage.
func WithFirstStepDwell(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.firstDwell = d
		}
	}
}

// WithStepDwell sets the minimum hold for every stage after the first.
func WithStepDwell(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.dwell = d
		}
	}
}

// WithPollInterval sets how often the gated stage re-checks readiness.
func WithPollInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.pollInterval = d
		}
	}
}

// WithReadinessTimeout bounds how long the gated stage polls before
// advancing anyway and flagging the run as timed out. Zero (the default)
// polls until readiness arrives or the Runner is stopped.
func WithReadinessTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.readinessTimeout = d
		}
	}
}

// WithTransitionFunc registers fn to run after every stage transition.
// fn is invoked from the driving goroutine; it must not call Stop.
func WithTransitionFunc(fn func()) Option {
	return func(r *Runner) {
		r.onTransition = fn
	}
}

// WithLogger sets a custom logger for the runner.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a Runner over the default steps, polling readiness for
// the gated stage. readiness must be non-nil.
func NewRunner(readiness func() bool, opts ...Option) *Runner {
	r := &Runner{
		steps:        DefaultSteps(),
		readiness:    readiness,
		firstDwell:   DefaultFirstStepDwell,
		dwell:        DefaultStepDwell,
		pollInterval: DefaultPollInterval,
		stopCh:       make(chan struct{}),
		finished:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	r.statuses = make([]Status, len(r.steps))
	r.completedAt = make([]time.Time, len(r.steps))
	for i := range r.statuses {
		r.statuses[i] = StatusPending
	}

	return r
}

// Start begins the timeline in a background goroutine.
// Calling Start more than once has no effect.
func (r *Runner) Start() {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return
	}
	r.started = true
	r.statuses[0] = StatusActive
	r.mu.Unlock()

	r.notifyTransition()
	go r.run()
}

// Stop tears the timeline down: every pending timer and poll is cancelled
// and the driving goroutine has exited by the time Stop returns. Safe to
// call more than once, and safe to call on a Runner that already finished.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
	})

	r.mu.Lock()
	started := r.started
	r.mu.Unlock()
	if started {
		<-r.finished
	}
}

// Run drives the timeline to completion, honoring ctx cancellation.
// Returns nil when the timeline finished, or ctx.Err() when cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.Start()
	select {
	case <-ctx.Done():
		r.Stop()
		return ctx.Err()
	case <-r.finished:
		return nil
	}
}

// Done reports whether every stage has completed.
func (r *Runner) Done() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// TimedOut reports whether the gated stage advanced on timeout instead of
// the readiness signal.
func (r *Runner) TimedOut() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timedOut
}

// States returns a copy of every stage with its current status, in
// execution order.
func (r *Runner) States() []StepState {
	r.mu.Lock()
	defer r.mu.Unlock()
	states := make([]StepState, len(r.steps))
	for i, step := range r.steps {
		states[i] = StepState{Step: step, Status: r.statuses[i]}
	}
	return states
}

// CompletedAt returns when stage i completed, or the zero time if it has
// not completed (or i is out of range).
func (r *Runner) CompletedAt(i int) time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.completedAt) {
		return time.Time{}
	}
	return r.completedAt[i]
}

// run drives the stage sequence. It is the only goroutine that mutates
// statuses after Start, and it exits promptly when stopCh closes.
func (r *Runner) run() {
	defer close(r.finished)

	// Opening stage: fixed floor, no gating.
	if !r.wait(r.firstDwell) {
		return
	}
	r.advance(0)

	// Gated stage: poll the backend signal, then hold the short dwell so
	// an already-ready backend doesn't produce an instant-complete flash.
	if !r.awaitReadiness() {
		return
	}
	if !r.wait(r.dwell) {
		return
	}
	r.advance(readinessStepIndex)

	// Cosmetic stages: unconditional sequential dwells.
	for i := readinessStepIndex + 1; i < len(r.steps); i++ {
		if !r.wait(r.dwell) {
			return
		}
		r.advance(i)
	}

	r.mu.Lock()
	r.done = true
	r.mu.Unlock()

	r.logger.Debug("analysis timeline finished")
	r.notifyTransition()
}

// wait sleeps for d, returning false if the Runner was stopped first.
func (r *Runner) wait(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-r.stopCh:
		return false
	case <-timer.C:
		return true
	}
}

// awaitReadiness polls the readiness signal until it reports true, the
// configured timeout elapses, or the Runner is stopped. Returns false only
// on stop.
func (r *Runner) awaitReadiness() bool {
	if r.readiness() {
		return true
	}

	var timeout <-chan time.Time
	if r.readinessTimeout > 0 {
		t := time.NewTimer(r.readinessTimeout)
		defer t.Stop()
		timeout = t.C
	}

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return false
		case <-timeout:
			r.logger.Warn("analysis readiness signal timed out, advancing timeline",
				"timeout", r.readinessTimeout,
			)
			r.mu.Lock()
			r.timedOut = true
			r.mu.Unlock()
			return true
		case <-ticker.C:
			if r.readiness() {
				return true
			}
		}
	}
}

// advance completes stage i and activates the next stage, if any.
func (r *Runner) advance(i int) {
	r.mu.Lock()
	r.statuses[i] = StatusComplete
	r.completedAt[i] = time.Now()
	if i+1 < len(r.statuses) {
		r.statuses[i+1] = StatusActive
	}
	id := r.steps[i].ID
	r.mu.Unlock()

	r.logger.Debug("timeline stage completed", "stage", id)
	r.notifyTransition()
}

// notifyTransition invokes the transition callback, if registered.
func (r *Runner) notifyTransition() {
	if r.onTransition != nil {
		r.onTransition()
	}
}
