package main

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"time"

	"git.lost.host/meutraa/rain/internal/audio"
	"git.lost.host/meutraa/rain/internal/config"
	"git.lost.host/meutraa/rain/internal/game"
	"git.lost.host/meutraa/rain/internal/input"
	"git.lost.host/meutraa/rain/internal/render"
	"git.lost.host/meutraa/rain/internal/rng"
	"git.lost.host/meutraa/rain/internal/schedule"
	"git.lost.host/meutraa/rain/internal/score"
	"git.lost.host/meutraa/rain/internal/theme"
	"github.com/eiannone/keyboard"
	"golang.org/x/term"
)

type Program struct {
	Scorer   score.Scorer
	Theme    theme.Theme
	Renderer render.Renderer
	Sampler  *audio.Sampler

	chart     *game.Chart
	audioFile string

	rows, columns int
	hitRow        int
	lanes         [game.NColumns]int
	sideCol       int
}

func (p *Program) Run() error {
	columns, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if nil != err {
		return fmt.Errorf("unable to get terminal size: %w", err)
	}
	p.rows, p.columns = rows, columns
	p.hitRow = rows - int(*config.BarRow)

	mc := columns >> 1
	spacing := int(*config.Spacing)
	p.lanes = [game.NColumns]int{
		mc - spacing*3,
		mc - spacing,
		mc + spacing,
		mc + spacing*3,
	}
	p.sideCol = p.lanes[0] - 36
	if p.sideCol < 2 {
		p.sideCol = 2
	}

	keyChannel, err := keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer keyboard.Close()

	var events chan *input.Event
	if *config.Device != "" {
		events = make(chan *input.Event, 128)
		if err := input.ReadInput(*config.Device, events); nil != err {
			return fmt.Errorf("unable to open input device: %w", err)
		}
	}

	for {
		again, err := p.play(keyChannel, events)
		if nil != err || !again {
			return err
		}
	}
}

func seed() uint64 {
	if *config.Seed != 0 {
		return *config.Seed
	}
	return rng.Hash(uint64(time.Now().UnixNano()))
}

// play runs the chart once from a fresh state. It reports whether a
// restart was requested.
func (p *Program) play(keyChannel <-chan keyboard.KeyEvent, events chan *input.Event) (bool, error) {
	if err := p.Renderer.Init(); nil != err {
		return false, err
	}
	defer p.Renderer.Deinit()

	if err := p.Sampler.Init(p.audioFile, *config.Delay); nil != err {
		// Keep playing without the backing track
		fmt.Fprintln(os.Stderr, err)
	}
	defer p.Sampler.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	actions := make(chan game.Action, 128)
	go schedule.NewScheduler(p.chart.Groups()).Run(ctx, *config.Delay, actions)

	ticker := time.NewTicker(game.TickPeriod)
	defer ticker.Stop()

	var shuffleC <-chan time.Time
	if *config.Shuffle > 0 {
		shuffle := time.NewTicker(*config.Shuffle)
		defer shuffle.Stop()
		shuffleC = shuffle.C
	}

	// Group 0 spawns at wall time start+delay, which is timeline time
	// Notes[0].Start. Recorded inputs share this timeline so a saved run
	// can be replayed against the chart's own timestamps.
	firstStart := p.chart.Notes[0].Start
	epoch := time.Now().Add(*config.Delay).Add(-firstStart)

	runSeed := seed()
	state := game.NewState(runSeed, p.chart)
	inputs := []game.Input{}
	paused := false

	apply := func(a game.Action) {
		prev := state
		state = game.Reduce(prev, a)
		frame := game.Project(prev, state)
		p.draw(frame)
		for _, n := range frame.Attacks {
			p.Sampler.Attack(n)
		}
		for _, id := range frame.Releases {
			p.Sampler.Release(id)
		}
	}

	press := func(column int) {
		inputs = append(inputs, game.Input{Column: column, Press: true, HitTime: time.Since(epoch)})
		apply(game.Press{Column: column})
	}
	release := func(column int) {
		inputs = append(inputs, game.Input{Column: column, HitTime: time.Since(epoch)})
		apply(game.Release{Column: column})
	}

	for !state.GameEnd {
		select {
		case a := <-actions:
			if paused {
				continue
			}
			apply(a)
		case <-ticker.C:
			if paused {
				continue
			}
			apply(game.Tick{})
		case <-shuffleC:
			if paused {
				continue
			}
			apply(game.Randomize{})
		case key := <-keyChannel:
			if key.Key == keyboard.KeyEsc {
				return false, nil
			}
			if key.Key == keyboard.KeySpace {
				paused = !paused
				continue
			}
			if paused {
				continue
			}
			if column := config.KeyColumn(key.Rune); column >= 0 {
				press(column)
			}
		case ev := <-events:
			if ev.Pressed && ev.Code == config.QuitCode {
				return false, nil
			}
			if ev.Pressed && ev.Code == config.PauseCode {
				paused = !paused
				continue
			}
			if paused {
				continue
			}
			column := config.CodeColumn(ev.Code)
			if column < 0 {
				continue
			}
			if ev.Pressed {
				press(column)
			} else if ev.Released {
				release(column)
			}
		}
	}

	// Stop consuming: drop anything still buffered and tear down the
	// producers before the overlay.
	cancel()
	ticker.Stop()
	p.Sampler.Stop()

	p.Scorer.Save(p.chart, &score.Result{
		Score:  state.ScoreGained,
		Combo:  state.NoteCount,
		Seed:   runSeed,
		Inputs: &inputs,
	})

	return p.overlay(state, keyChannel, events)
}

func (p *Program) overlay(state game.State, keyChannel <-chan keyboard.KeyEvent, events chan *input.Event) (bool, error) {
	cen := p.rows >> 1
	mc := p.columns >> 1
	p.Renderer.Fill(cen-1, mc-8, "────────────────")
	p.Renderer.Fill(cen, mc-8, fmt.Sprintf("score %8.1f", state.ScoreGained))
	p.Renderer.Fill(cen+1, mc-8, "r to restart    ")
	p.Renderer.Flush()

	for {
		select {
		case key := <-keyChannel:
			return key.Rune == 'r', nil
		case ev := <-events:
			if !ev.Pressed {
				continue
			}
			// KEY_R
			return ev.Code == 19, nil
		}
	}
}

// Matches the special note color so the bonus pool reads as theirs
var bonusColor = color.RGBA{R: 236, G: 0, B: 106}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (p *Program) isRowInField(row int) bool {
	return row > 0 && row < p.rows
}

// rowFor maps an engine position onto a console row, position 0 at the
// top edge and the boundary on the hit bar.
func (p *Program) rowFor(position int) int {
	return p.hitRow * position / game.Boundary
}

func (p *Program) draw(frame game.Frame) {
	r := p.Renderer

	// clear all existing renders
	for i := range frame.Clear {
		n := &frame.Clear[i]
		lane := p.lanes[n.Column]
		if row := p.rowFor(n.Position); p.isRowInField(row) {
			r.Fill(row, lane, " ")
		}
		if nil == n.Tail {
			continue
		}
		for t := max(n.Tail.TailStart, 0); t <= n.Tail.TailEnd; t++ {
			if row := p.rowFor(t); p.isRowInField(row) {
				r.Fill(row, lane, " ")
			}
		}
	}

	// Render the hit bar
	for i := 0; i < game.NColumns; i++ {
		r.Fill(p.hitRow, p.lanes[i], p.Theme.RenderHitField(i))
	}

	for i := range frame.Draw {
		n := &frame.Draw[i]
		lane := p.lanes[n.Column]
		if nil != n.Tail {
			for t := max(n.Tail.TailStart, 0); t <= n.Tail.TailEnd; t++ {
				if row := p.rowFor(t); p.isRowInField(row) {
					r.Fill(row, lane, p.Theme.RenderTail(n.Tail.Dead))
				}
			}
		}
		if n.Visual {
			if row := p.rowFor(n.Position); p.isRowInField(row) {
				r.Fill(row, lane, p.Theme.RenderNote(n.Column, n.Special))
			}
		}
	}

	// Hit splashes at the bar for everything that just sounded
	for i := range frame.Attacks {
		n := &frame.Attacks[i]
		r.AddDecoration(p.lanes[n.Column], p.hitRow, "*", 24)
	}

	r.Fill(10, p.sideCol, fmt.Sprintf("      Score:  %8.1f", frame.Score))
	r.Fill(11, p.sideCol, fmt.Sprintf(" Multiplier:  x%5.1f", frame.Multiplier))
	r.Fill(12, p.sideCol, fmt.Sprintf("      Combo:  %6v", frame.Combo))
	if frame.Bonus > 0 {
		r.FillColor(13, p.sideCol, bonusColor, fmt.Sprintf("      Bonus:  %6v", frame.Bonus))
		r.FillColor(14, p.sideCol, bonusColor, fmt.Sprintf("   Drain in:  %5.1fs", frame.Countdown))
	} else {
		r.Fill(13, p.sideCol, fmt.Sprintf("      Bonus:  %6v", frame.Bonus))
		r.Fill(14, p.sideCol, "                     ")
	}
	r.Fill(15, p.sideCol, fmt.Sprintf("      Notes:  %6v", p.chart.NoteCount))
	r.Fill(16, p.sideCol, fmt.Sprintf("      Holds:  %6v", p.chart.HoldCount))

	r.Flush()
}
