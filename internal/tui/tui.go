package tui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/megahubnet/portal/internal/games"
	"github.com/megahubnet/portal/internal/games/registry"
	"github.com/megahubnet/portal/internal/model"
	"github.com/megahubnet/portal/internal/services/session"
)

// Frame origin on screen, leaving room for the status bar
const (
	originX = 2
	originY = 3
)

// Player renders a game run on a terminal screen. Input events are mapped
// onto the game input model and forwarded through the runner; the frame
// buffer is blitted at the game's own tick rate.
type Player struct {
	screen tcell.Screen
	runner *games.Runner
	bridge *session.Bridge
	deps   registry.Deps
	logger *slog.Logger

	mu       sync.Mutex
	snapshot session.Snapshot
}

// New creates a Player on a fresh terminal screen
func New(runner *games.Runner, bridge *session.Bridge, deps registry.Deps, logger *slog.Logger) (*Player, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()

	return &Player{
		screen: screen,
		runner: runner,
		bridge: bridge,
		deps:   deps,
		logger: logger.With(slog.String("component", "tui")),
	}, nil
}

// Close releases the terminal
func (p *Player) Close() {
	p.screen.Fini()
}

// Run plays one game to completion or until the player quits
func (p *Player) Run(ctx context.Context, id model.GameID) error {
	g, err := registry.New(id, p.deps)
	if err != nil {
		return err
	}

	width, height := registry.FrameSize(id)
	frame := games.NewFrame(width, height)

	unsubscribe := p.bridge.Subscribe(func(snap session.Snapshot) {
		p.mu.Lock()
		p.snapshot = snap
		p.mu.Unlock()
	})
	defer unsubscribe()

	resultCh := make(chan model.GameResult, 1)
	p.runner.Start(ctx, g, frame, func(result model.GameResult) {
		resultCh <- result
	})
	defer p.runner.Stop()

	inputCh := make(chan tcell.Event, 16)
	go p.pollEvents(ctx, inputCh)

	descriptor := g.Descriptor()
	ticker := time.NewTicker(descriptor.TickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case result := <-resultCh:
			p.drawGameOver(descriptor, result)
			p.waitForKey(ctx, inputCh)
			return nil

		case ev := <-inputCh:
			if quit := p.handleEvent(ev); quit {
				return nil
			}

		case <-ticker.C:
			p.draw(descriptor, frame)
		}
	}
}

// pollEvents forwards terminal events until the context ends
func (p *Player) pollEvents(ctx context.Context, out chan<- tcell.Event) {
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// handleEvent maps one terminal event onto game input. Returns true when
// the player asked to quit.
func (p *Player) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyUp:
			p.runner.Input(games.Input{Kind: games.InputDirection, Dir: games.DirUp})
		case tcell.KeyDown:
			p.runner.Input(games.Input{Kind: games.InputDirection, Dir: games.DirDown})
		case tcell.KeyLeft:
			p.runner.Input(games.Input{Kind: games.InputDirection, Dir: games.DirLeft})
		case tcell.KeyRight:
			p.runner.Input(games.Input{Kind: games.InputDirection, Dir: games.DirRight})
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			p.runner.Input(games.Input{Kind: games.InputBackspace})
		case tcell.KeyRune:
			p.runner.Input(games.Input{Kind: games.InputRune, Rune: ev.Rune()})
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			p.runner.Input(games.Input{
				Kind: games.InputClick,
				X:    x - originX,
				Y:    y - originY,
			})
		}

	case *tcell.EventResize:
		p.screen.Sync()
	}
	return false
}

// draw blits the frame and status bar
func (p *Player) draw(descriptor games.Descriptor, frame *games.Frame) {
	p.screen.Clear()

	p.mu.Lock()
	snap := p.snapshot
	p.mu.Unlock()

	accent := tcell.GetColor(descriptor.AccentColor)
	titleStyle := tcell.StyleDefault.Foreground(accent).Bold(true)
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)

	p.drawText(originX, 0, titleStyle, fmt.Sprintf("%s %s", descriptor.Icon, descriptor.Name))
	p.drawText(originX, 1, statusStyle, fmt.Sprintf("%s | Lv %d | %d credits | Esc to quit",
		snap.Nickname, snap.Level, snap.Currency))

	cells := frame.Snapshot()
	for y, row := range cells {
		for x, cell := range row {
			if cell.Ch == 0 {
				continue
			}
			style := tcell.StyleDefault
			if cell.Color != "" {
				style = style.Foreground(tcell.GetColor(cell.Color))
			}
			p.screen.SetContent(originX+x, originY+y, cell.Ch, nil, style)
		}
	}

	p.screen.Show()
}

// drawGameOver shows the final score until a key is pressed
func (p *Player) drawGameOver(descriptor games.Descriptor, result model.GameResult) {
	p.screen.Clear()

	accent := tcell.GetColor(descriptor.AccentColor)
	titleStyle := tcell.StyleDefault.Foreground(accent).Bold(true)

	p.drawText(originX, originY, titleStyle, "GAME OVER")
	p.drawText(originX, originY+2, tcell.StyleDefault,
		fmt.Sprintf("%s: %d", result.ScoreLabel, result.Score))
	p.drawText(originX, originY+4, tcell.StyleDefault.Foreground(tcell.ColorGray),
		"Press any key to exit")

	p.screen.Show()
}

// waitForKey blocks until a key press or context end
func (p *Player) waitForKey(ctx context.Context, inputCh <-chan tcell.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-inputCh:
			if _, ok := ev.(*tcell.EventKey); ok {
				return
			}
		}
	}
}

func (p *Player) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		p.screen.SetContent(x+i, y, r, nil, style)
	}
}
