package games

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/megahubnet/portal/internal/dependencies/mocks"
	"github.com/megahubnet/portal/internal/model"
	"github.com/megahubnet/portal/internal/services/catalog"
	"github.com/megahubnet/portal/internal/services/progression"
	"github.com/megahubnet/portal/internal/storage/memory"
	"github.com/megahubnet/portal/internal/testutil"
)

// stubGame terminates after a fixed number of ticks
type stubGame struct {
	id        model.GameID
	ticks     int
	tickLimit int
	score     int
	inputs    []Input
}

func (g *stubGame) Descriptor() Descriptor {
	return Descriptor{
		ID:         g.id,
		Name:       "Stub",
		ScoreLabel: "SCORE",
		TickPeriod: 5 * time.Millisecond,
	}
}

func (g *stubGame) Setup(Surface)        { g.ticks = 0 }
func (g *stubGame) Tick(time.Duration)   { g.ticks++ }
func (g *stubGame) HandleInput(ev Input) { g.inputs = append(g.inputs, ev) }
func (g *stubGame) Terminal() bool       { return g.ticks >= g.tickLimit }
func (g *stubGame) Render()              {}

func (g *stubGame) Result() model.GameResult {
	return model.GameResult{
		GameID:     g.id,
		Score:      g.score,
		ScoreLabel: "SCORE",
	}
}

type RunnerSuite struct {
	suite.Suite
	engine *progression.Engine
	runner *Runner
	ctx    context.Context
}

func TestRunnerSuite(t *testing.T) {
	suite.Run(t, new(RunnerSuite))
}

func (s *RunnerSuite) SetupTest() {
	store := memory.New()
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.engine = progression.New(store, catalog.NewDefault(), clk, progression.DefaultConfig(), testutil.NopLogger())
	s.runner = NewRunner(s.engine, clk, DefaultRewardPolicy(), testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *RunnerSuite) TearDownTest() {
	s.runner.Stop()
}

func (s *RunnerSuite) TestRunFinishesAndRewards() {
	var finished atomic.Int32
	var result model.GameResult

	g := &stubGame{id: model.GameSnake, tickLimit: 3, score: 100}
	runID := s.runner.Start(s.ctx, g, NopSurface{W: 20, H: 20}, func(r model.GameResult) {
		result = r
		finished.Add(1)
	})
	s.NotEmpty(runID)

	s.Require().Eventually(func() bool {
		return finished.Load() == 1
	}, time.Second, 5*time.Millisecond)

	s.Equal(runID, result.RunID)
	s.Equal(100, result.Score)

	// score/2 currency on top of the starting balance, flat experience
	p := s.engine.Profile()
	s.Equal(1550, p.Currency)
	s.Equal(100, p.Experience)
}

func (s *RunnerSuite) TestFinishHandedOffExactlyOnce() {
	var finished atomic.Int32

	g := &stubGame{id: model.GameSnake, tickLimit: 1, score: 10}
	s.runner.Start(s.ctx, g, NopSurface{}, func(model.GameResult) {
		finished.Add(1)
	})

	s.Require().Eventually(func() bool {
		return finished.Load() >= 1
	}, time.Second, 5*time.Millisecond)

	// Give the scheduler room to misbehave
	time.Sleep(30 * time.Millisecond)
	s.Equal(int32(1), finished.Load())
}

func (s *RunnerSuite) TestZeroScoreAwardsNoCurrency() {
	var finished atomic.Int32

	g := &stubGame{id: model.GameAim, tickLimit: 1, score: 0}
	s.runner.Start(s.ctx, g, NopSurface{}, func(model.GameResult) {
		finished.Add(1)
	})

	s.Require().Eventually(func() bool {
		return finished.Load() == 1
	}, time.Second, 5*time.Millisecond)

	p := s.engine.Profile()
	s.Equal(1500, p.Currency)
	s.Equal(100, p.Experience)
}

func (s *RunnerSuite) TestStartStopsPreviousRun() {
	first := &stubGame{id: model.GameSnake, tickLimit: 1 << 30}
	second := &stubGame{id: model.GameAim, tickLimit: 1 << 30}

	firstID := s.runner.Start(s.ctx, first, NopSurface{}, nil)
	secondID := s.runner.Start(s.ctx, second, NopSurface{}, nil)

	s.NotEqual(firstID, secondID)
	s.Equal(secondID, s.runner.ActiveID())

	// Input goes only to the new run
	s.runner.Input(Input{Kind: InputClick, X: 1, Y: 1})
	s.Empty(first.inputs)
	s.Len(second.inputs, 1)
}

func (s *RunnerSuite) TestContextCancelDetachesRun() {
	ctx, cancel := context.WithCancel(s.ctx)
	g := &stubGame{id: model.GameSnake, tickLimit: 1 << 30}
	s.runner.Start(ctx, g, NopSurface{}, nil)
	s.Require().True(s.runner.Active())

	cancel()

	// The run must fully unbind: Active goes false and ActiveID clears,
	// so callers polling the runner see the run as gone
	s.Require().Eventually(func() bool {
		return !s.runner.Active()
	}, time.Second, 5*time.Millisecond)
	s.Equal("", s.runner.ActiveID())

	// No reward hand-off for an aborted run
	s.Equal(1500, s.engine.Profile().Currency)
	s.Equal(0, s.engine.Profile().Experience)
}

func (s *RunnerSuite) TestStopWithoutRunIsNoop() {
	s.runner.Stop()
	s.False(s.runner.Active())
}

func (s *RunnerSuite) TestInputWithoutRunDropped() {
	s.NotPanics(func() {
		s.runner.Input(Input{Kind: InputClick, X: 1, Y: 1})
	})
}
