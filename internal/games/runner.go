package games

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/megahubnet/portal/internal/dependencies/clock"
	"github.com/megahubnet/portal/internal/model"
	"github.com/megahubnet/portal/internal/services/progression"
)

// RewardPolicy maps a finished run's score onto progression rewards.
// Values are configuration, not invariants.
type RewardPolicy struct {
	// CurrencyDivisor: credits awarded = score / CurrencyDivisor
	CurrencyDivisor int
	// FlatExperience is awarded for every completed run
	FlatExperience int
}

// DefaultRewardPolicy returns the stock reward functions
func DefaultRewardPolicy() RewardPolicy {
	return RewardPolicy{
		CurrencyDivisor: 2,
		FlatExperience:  100,
	}
}

// FinishFunc receives the final result after the progression hand-off
type FinishFunc func(model.GameResult)

// run is one active game session
type run struct {
	id       string
	game     Game
	surface  Surface
	onFinish FinishFunc
	cancel   context.CancelFunc
	done     chan struct{}
	finished bool
}

// Runner drives game variants on a fixed-interval scheduler. At most one
// run is active: starting a new game fully stops and detaches the previous
// one first, so two games can never fight over input. On termination the
// result is handed to the progression engine exactly once.
type Runner struct {
	engine *progression.Engine
	clock  clock.Clock
	policy RewardPolicy
	logger *slog.Logger

	mu     sync.Mutex
	active *run
}

// NewRunner creates a Runner bound to the progression engine
func NewRunner(engine *progression.Engine, clk clock.Clock, policy RewardPolicy, logger *slog.Logger) *Runner {
	return &Runner{
		engine: engine,
		clock:  clk,
		policy: policy,
		logger: logger.With(slog.String("component", "games")),
	}
}

// Start begins a new run of the given game on the surface. Any previous
// run is stopped and unbound before the new scheduler starts.
func (r *Runner) Start(ctx context.Context, g Game, surface Surface, onFinish FinishFunc) string {
	r.Stop()

	g.Setup(surface)
	g.Render()

	runCtx, cancel := context.WithCancel(ctx)
	active := &run{
		id:       uuid.New().String(),
		game:     g,
		surface:  surface,
		onFinish: onFinish,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	r.mu.Lock()
	r.active = active
	r.mu.Unlock()

	r.logger.Info("game started",
		slog.String("game", string(g.Descriptor().ID)),
		slog.String("run", active.id))

	go r.loop(runCtx, active)
	return active.id
}

// Stop cancels the active run, if any, without a reward hand-off, and
// waits for its scheduler to exit.
func (r *Runner) Stop() {
	r.mu.Lock()
	active := r.active
	r.active = nil
	r.mu.Unlock()

	if active == nil {
		return
	}
	active.cancel()
	<-active.done
}

// Input forwards an input event to the active run. Events arriving with no
// active run are dropped.
func (r *Runner) Input(ev Input) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil || r.active.finished {
		return
	}
	r.active.game.HandleInput(ev)
}

// Active reports whether a run is in progress
func (r *Runner) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active != nil
}

// ActiveID returns the id of the run in progress, or "" if there is none
func (r *Runner) ActiveID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return ""
	}
	return r.active.id
}

// loop is the fixed-interval scheduler for one run
func (r *Runner) loop(ctx context.Context, active *run) {
	defer close(active.done)

	period := active.game.Descriptor().TickPeriod
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Detach the run so a cancelled context never leaves a
			// zombie behind: Active() must go false and input must stop
			// flowing to a dead game.
			r.mu.Lock()
			active.finished = true
			if r.active == active {
				r.active = nil
			}
			r.mu.Unlock()
			return
		case <-ticker.C:
			if r.step(active, period) {
				return
			}
		}
	}
}

// step runs one scheduler cycle: terminal check, then tick and render.
// Returns true once the run has finished.
func (r *Runner) step(active *run, dt time.Duration) bool {
	r.mu.Lock()
	if active.finished {
		r.mu.Unlock()
		return true
	}
	if active.game.Terminal() {
		active.finished = true
		if r.active == active {
			r.active = nil
		}
		r.mu.Unlock()
		r.finish(active)
		return true
	}
	active.game.Tick(dt)
	active.game.Render()
	r.mu.Unlock()
	return false
}

// finish performs the one-shot progression hand-off and surfaces the
// result to the presentation callback
func (r *Runner) finish(active *run) {
	result := active.game.Result()
	result.RunID = active.id
	result.FinishedAt = r.clock.Now()

	currency := 0
	if r.policy.CurrencyDivisor > 0 {
		currency = result.Score / r.policy.CurrencyDivisor
	}

	ctx := context.Background()
	if currency > 0 {
		if err := r.engine.EarnCurrency(ctx, currency); err != nil {
			r.logger.Warn("reward grant failed", slog.String("error", err.Error()))
		}
	}
	if r.policy.FlatExperience > 0 {
		if err := r.engine.EarnExperience(ctx, r.policy.FlatExperience); err != nil {
			r.logger.Warn("reward grant failed", slog.String("error", err.Error()))
		}
	}

	r.logger.Info("game finished",
		slog.String("game", string(result.GameID)),
		slog.String("run", result.RunID),
		slog.Int("score", result.Score),
		slog.Int("currency_awarded", currency))

	if active.onFinish != nil {
		active.onFinish(result)
	}
}
