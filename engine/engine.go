package engine

import (
	"context"
	"runtime/debug"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/weedbox/timebank"

	"voyager.com/pokerclient/api"
	"voyager.com/pokerclient/game"
	"voyager.com/pokerclient/util"
	"voyager.com/pokerclient/view"
)

var engineLogger = log.With().Str("logger_name", "engine::engine").Logger()

var (
	ErrNotPolling    = errors.New("engine: not accepting actions in the current state")
	ErrNoFormBinding = errors.New("engine: action form carries no game binding")
)

// State of the view lifecycle. The engine starts Uninitialized, moves to
// Polling after a successful initial fetch, and ends either Stopped (on
// teardown) or Degraded (after an unrecovered fault, cosmetic fallback
// only).
type State int32

const (
	StateUninitialized State = iota
	StatePolling
	StateDegraded
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "UNINITIALIZED"
	case StatePolling:
		return "POLLING"
	case StateDegraded:
		return "DEGRADED"
	case StateStopped:
		return "STOPPED"
	}
	return "UNKNOWN"
}

// GameAPI is the slice of the api client the engine depends on.
type GameAPI interface {
	FetchGame(ctx context.Context, gameID string, modifiedOnly bool) (api.FetchGameResult, error)
	SubmitAction(ctx context.Context, gameID string, input game.PlayerInput) (api.ActionResult, error)
}

// FormInput is the raw content of a submitted action form, both fields
// as entered.
type FormInput struct {
	Action  string
	RaiseTo string
}

type submitMsg struct {
	input    game.PlayerInput
	chResult chan error
}

// Engine drives the view: one goroutine performs the initial fetch,
// then serves poll ticks and action submissions one at a time, so view
// writes never interleave. Snapshots older than the last applied one
// are dropped, which keeps a slow poll response from regressing the
// view after a faster action response.
type Engine struct {
	api  GameAPI
	view view.View
	nav  Navigator

	pollInterval   time.Duration
	fallbackStep   time.Duration
	requestTimeout time.Duration

	chSubmit  chan submitMsg
	chEndLoop chan bool

	tb           *timebank.TimeBank
	state        int32
	lastVersion  uint64
	fallbackSeat int

	crashHandler      func()
	onSnapshotApplied func(*game.Game)

	logger zerolog.Logger
}

type EngineOpt func(*Engine)

func WithPollInterval(d time.Duration) EngineOpt {
	return func(e *Engine) {
		e.pollInterval = d
	}
}

func WithFallbackStep(d time.Duration) EngineOpt {
	return func(e *Engine) {
		e.fallbackStep = d
	}
}

func WithRequestTimeout(d time.Duration) EngineOpt {
	return func(e *Engine) {
		e.requestTimeout = d
	}
}

func WithCrashHandler(fn func()) EngineOpt {
	return func(e *Engine) {
		e.crashHandler = fn
	}
}

func NewEngine(apiClient GameAPI, v view.View, nav Navigator, opts ...EngineOpt) *Engine {
	e := &Engine{
		api:            apiClient,
		view:           v,
		nav:            nav,
		pollInterval:   time.Duration(util.Env.GetPollIntervalMillis()) * time.Millisecond,
		fallbackStep:   time.Duration(util.Env.GetFallbackStepMillis()) * time.Millisecond,
		requestTimeout: 5 * time.Second,
		chSubmit:       make(chan submitMsg, 10),
		chEndLoop:      make(chan bool, 10),
		tb:             timebank.NewTimeBank(),
		fallbackSeat:   0,
		crashHandler:   func() {},
		logger:         engineLogger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OnSnapshotApplied registers a listener called after each snapshot is
// reconciled onto the view.
func (e *Engine) OnSnapshotApplied(fn func(*game.Game)) {
	e.onSnapshotApplied = fn
}

func (e *Engine) State() State {
	return State(atomic.LoadInt32(&e.state))
}

func (e *Engine) setState(s State) {
	atomic.StoreInt32(&e.state, int32(s))
}

func (e *Engine) Run() {
	go e.loop()
}

// Stop tears the engine down deterministically: the poll loop exits and
// any pending fallback step is canceled.
func (e *Engine) Stop() {
	e.tb.Cancel()
	e.chEndLoop <- true
}

// Submit validates and forwards a player action. An unknown action
// variant or a malformed raise amount is an input fault returned here,
// never sent to the server. The call returns once the action round trip
// completed and the returned snapshot (if any) has been reconciled.
func (e *Engine) Submit(input FormInput) error {
	playerInput, err := parseFormInput(input)
	if err != nil {
		return err
	}
	if e.State() != StatePolling {
		return ErrNotPolling
	}
	msg := submitMsg{input: playerInput, chResult: make(chan error, 1)}
	e.chSubmit <- msg
	return <-msg.chResult
}

// parseFormInput maps raw form fields to a PlayerInput. RaiseTo is
// parsed only for Raise and must be a positive integer; any value for
// other actions is dropped from the outgoing body.
func parseFormInput(input FormInput) (game.PlayerInput, error) {
	action := game.Action(input.Action)
	if err := action.Validate(); err != nil {
		return game.PlayerInput{}, err
	}
	playerInput := game.PlayerInput{Action: action}
	if action == game.ActionRaise {
		raiseTo, err := strconv.ParseInt(input.RaiseTo, 10, 64)
		if err != nil || raiseTo <= 0 {
			return game.PlayerInput{}, game.ErrInvalidRaise
		}
		playerInput.RaiseTo = &raiseTo
	}
	return playerInput, nil
}

func (e *Engine) loop() {
	defer func() {
		err := recover()
		if err != nil {
			debug.PrintStack()
			e.logger.Error().
				Msgf("Engine loop returning due to panic: %s\nStack Trace:\n%s", err, string(debug.Stack()))
			e.setState(StateStopped)
			e.crashHandler()
		} else {
			e.logger.Info().Msg("Engine loop returning")
		}
	}()

	if err := e.initialize(); err != nil {
		e.enterDegraded(err)
	}

	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.chEndLoop:
			e.setState(StateStopped)
			return
		case msg := <-e.chSubmit:
			msg.chResult <- e.handleSubmit(msg.input)
		case <-ticker.C:
			if e.State() != StatePolling {
				continue
			}
			if err := e.pollOnce(); err != nil {
				e.logger.Error().Msgf("Poll failed: %s", err.Error())
				util.Metrics.PollError()
				e.enterDegraded(err)
			}
		}
	}
}

// initialize resolves the game id and performs the first fetch. The
// first fetch uses change detection too; a server that has nothing new
// simply leaves the pre-rendered view in place.
func (e *Engine) initialize() error {
	gameID, err := e.nav.GameID()
	if err != nil {
		return err
	}
	e.logger = engineLogger.With().Str("game", gameID).Logger()

	res, err := e.fetch(gameID)
	if err != nil {
		return err
	}
	if res.Failed() {
		return errors.Errorf("initial fetch rejected: %s", res.Err)
	}
	if res.Modified {
		e.applySnapshot(res.Game)
		e.logger.Info().Msg("Game loaded")
	}
	e.setState(StatePolling)
	return nil
}

func (e *Engine) pollOnce() error {
	// Re-resolve each tick; navigation may have moved to another game.
	gameID, err := e.nav.GameID()
	if err != nil {
		return err
	}
	res, err := e.fetch(gameID)
	if err != nil {
		return errors.Wrap(err, "poll fetch")
	}
	if res.Failed() {
		return errors.Errorf("poll rejected: %s", res.Err)
	}
	util.Metrics.PollCompleted()
	if !res.Modified {
		return nil
	}
	util.Metrics.PollModified()
	e.applySnapshot(res.Game)
	return nil
}

func (e *Engine) fetch(gameID string) (api.FetchGameResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), e.requestTimeout)
	defer cancel()
	return e.api.FetchGame(ctx, gameID, true)
}

func (e *Engine) handleSubmit(input game.PlayerInput) error {
	if e.State() != StatePolling {
		return ErrNotPolling
	}

	// Routing data was stamped onto the primary seat's form by the last
	// reconcile.
	binding := e.view.Seat(0).Form()
	if binding.Empty() {
		return ErrNoFormBinding
	}
	input.PlayerID = binding.PlayerID

	ctx, cancel := context.WithTimeout(context.Background(), e.requestTimeout)
	defer cancel()
	res, err := e.api.SubmitAction(ctx, binding.GameID, input)
	if err != nil {
		return errors.Wrap(err, "submit action")
	}
	if res.Failed() {
		util.Metrics.ActionRejected()
		return errors.Errorf("action rejected: %s", res.Err)
	}
	util.Metrics.ActionSubmitted()

	// Reconcile the post-action state immediately, without waiting for
	// the next poll tick.
	e.applySnapshot(res.Game)
	return nil
}

// applySnapshot reconciles the snapshot unless it is older than the last
// applied one. An action response and a poll response can resolve in
// either order; the version guard keeps the older of the two from
// regressing the view.
func (e *Engine) applySnapshot(g *game.Game) {
	if g == nil {
		return
	}
	if g.Version != 0 && e.lastVersion != 0 && g.Version < e.lastVersion {
		e.logger.Warn().
			Msgf("Dropping stale snapshot: version %d < last applied %d", g.Version, e.lastVersion)
		util.Metrics.StaleSnapshotDropped()
		return
	}
	view.Reconcile(e.view, g)
	if g.Version != 0 {
		e.lastVersion = g.Version
	}
	e.fallbackSeat = g.PlayerTurn
	if e.onSnapshotApplied != nil {
		e.onSnapshotApplied(g)
	}
}

// enterDegraded switches to the cosmetic fallback: no further server
// contact, just a timer walking the turn highlight one seat at a time
// until it runs off the end of the table. The view looks alive but is
// no longer authoritative.
func (e *Engine) enterDegraded(cause error) {
	e.logger.Error().Msgf("Entering degraded mode: %s", cause.Error())
	e.setState(StateDegraded)
	e.scheduleFallbackStep()
}

func (e *Engine) scheduleFallbackStep() {
	err := e.tb.NewTask(e.fallbackStep, func(isCancelled bool) {
		if isCancelled {
			return
		}
		if e.advanceHighlight() {
			e.scheduleFallbackStep()
		}
	})
	if err != nil {
		e.logger.Error().Msgf("Failed to schedule fallback step: %s", err.Error())
	}
}

// advanceHighlight moves the active marker to the next seat. Returns
// false when there is no next seat, ending the cycle.
func (e *Engine) advanceHighlight() bool {
	if e.State() != StateDegraded {
		return false
	}
	seats := e.view.Seats()
	if e.fallbackSeat >= 0 && e.fallbackSeat < seats {
		e.view.Seat(e.fallbackSeat).SetActive(false)
	}
	next := e.fallbackSeat + 1
	if next >= seats {
		return false
	}
	e.view.Seat(next).SetActive(true)
	e.fallbackSeat = next
	return true
}
