package main

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/tiltpick/engine"
	"github.com/lixenwraith/tiltpick/particle"
	"github.com/lixenwraith/tiltpick/physics"
	"github.com/lixenwraith/tiltpick/status"
	"github.com/lixenwraith/tiltpick/vmath"
)

// Terminal cell footprint in arena pixels, roughly a 1:2 glyph
const (
	cellW = 8.0
	cellH = 16.0

	hudRows = 1

	// Gravity target per arrow key press, decays once keys stop
	keyTilt = 1.2
)

var (
	backColor = colorful.Color{R: 0.04, G: 0.05, B: 0.09}
	hudStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
)

// Controller is the part of the game the host drives
type Controller interface {
	PointerDown(pos vmath.Vec2)
	PointerMove(pos vmath.Vec2)
	PointerUp(pos vmath.Vec2)
	Resize(a physics.Arena)
	Restart()
	Tilt(target vmath.Vec2)
	Snapshot() engine.Snapshot
}

// Pauser toggles the tick loop
type Pauser interface {
	Pause()
	Resume()
	Paused() bool
}

// host maps terminal events to pointer input and draws snapshots as cells
type host struct {
	screen tcell.Screen
	game   Controller
	clock  Pauser
	reg    *status.Registry

	pressed bool
	stats   bool
}

func newHost(screen tcell.Screen, game Controller, clock Pauser, reg *status.Registry) *host {
	return &host{screen: screen, game: game, clock: clock, reg: reg}
}

// cellCenter returns the arena position of a cell's center
func cellCenter(x, y int) vmath.Vec2 {
	return vmath.V2(float64(x)*cellW+cellW/2, float64(y)*cellH+cellH/2)
}

// arenaFor sizes the arena to the screen minus the HUD
func arenaFor(cols, rows int) physics.Arena {
	return physics.Arena{
		Width:  float64(max(cols, 1)) * cellW,
		Height: float64(max(rows-hudRows, 1)) * cellH,
	}
}

// gridFor returns the smallest screen whose arena covers a
func gridFor(a physics.Arena) (cols, rows int) {
	cols = max(int(math.Ceil(a.Width/cellW)), 1)
	rows = max(int(math.Ceil(a.Height/cellH)), 1) + hudRows
	return cols, rows
}

// newScreen opens the terminal, or an offscreen grid sized to arena when headless
func newScreen(headless bool, arena physics.Arena) (tcell.Screen, error) {
	if !headless {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("create screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return nil, fmt.Errorf("init screen: %w", err)
		}
		return screen, nil
	}

	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		return nil, fmt.Errorf("init headless screen: %w", err)
	}
	sim.SetSize(gridFor(arena))
	return sim, nil
}

// toTcell converts a colorful color to a truecolor cell color
func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// handleEvent applies one terminal event and returns false on quit
func (h *host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			h.game.Tilt(vmath.V2(-keyTilt, 0))
		case tcell.KeyRight:
			h.game.Tilt(vmath.V2(keyTilt, 0))
		case tcell.KeyUp:
			h.game.Tilt(vmath.V2(0, -keyTilt))
		case tcell.KeyDown:
			h.game.Tilt(vmath.V2(0, keyTilt))
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'p':
				if h.clock.Paused() {
					h.clock.Resume()
				} else {
					h.clock.Pause()
				}
			case 'r':
				h.game.Restart()
			case 's':
				h.stats = !h.stats
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		pos := cellCenter(x, y)
		down := ev.Buttons()&tcell.Button1 != 0
		switch {
		case down && !h.pressed:
			h.pressed = true
			h.game.PointerDown(pos)
		case down:
			h.game.PointerMove(pos)
		case h.pressed:
			h.pressed = false
			h.game.PointerUp(pos)
		}

	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.game.Resize(arenaFor(cols, rows))
		h.screen.Sync()
	}
	return true
}

// draw renders the latest snapshot
func (h *host) draw() {
	snap := h.game.Snapshot()
	cols, rows := h.screen.Size()

	h.screen.SetStyle(tcell.StyleDefault.Background(toTcell(backColor)))
	h.screen.Clear()

	for i := range snap.Particles {
		h.drawParticle(&snap.Particles[i], cols, rows-hudRows)
	}
	for i := range snap.Bodies {
		h.drawBody(&snap.Bodies[i], snap.Tick, cols, rows-hudRows)
	}
	h.drawHUD(snap, cols, rows)
	h.screen.Show()
}

func (h *host) drawParticle(p *particle.Particle, cols, rows int) {
	x := int(math.Floor(p.Pos.X / cellW))
	y := int(math.Floor(p.Pos.Y / cellH))
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	c := backColor.BlendRgb(p.Color, vmath.Clamp(p.Life, 0, 1))
	ch := '·'
	if p.Kind == particle.KindBurst {
		ch = '*'
		if p.Scale > 1 {
			ch = '✦'
		}
	}
	h.screen.SetContent(x, y, ch, nil, tcell.StyleDefault.Foreground(toTcell(c)).Background(toTcell(backColor)))
}

// drawBody fills the cells inside the body's squashed ellipse and centers its key
func (h *host) drawBody(b *physics.Body, tick uint64, cols, rows int) {
	r := b.Radius * easeOutBack(b.Spawn)
	if r <= 0 {
		return
	}
	rx := r * (1 + 0.2*b.Squash)
	ry := r * (1 - 0.2*b.Squash)
	center := b.Pos
	center.X += b.Shake * math.Sin(float64(tick)*1.7)

	fill := toTcell(b.Color)
	style := tcell.StyleDefault.Foreground(fill).Background(fill)

	x0 := max(int(math.Floor((center.X-rx)/cellW)), 0)
	x1 := min(int(math.Floor((center.X+rx)/cellW)), cols-1)
	y0 := max(int(math.Floor((center.Y-ry)/cellH)), 0)
	y1 := min(int(math.Floor((center.Y+ry)/cellH)), rows-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c := cellCenter(x, y)
			dx, dy := (c.X-center.X)/rx, (c.Y-center.Y)/ry
			if dx*dx+dy*dy <= 1 {
				h.screen.SetContent(x, y, ' ', nil, style)
			}
		}
	}

	if b.Spawn < 0.5 {
		return
	}
	label := tcell.StyleDefault.Background(fill).Foreground(labelColor(b.Color)).Bold(true)
	cy := int(math.Floor(center.Y / cellH))
	cx := int(math.Floor(center.X/cellW)) - utf8.RuneCountInString(b.Key)/2
	if cy >= 0 && cy < rows {
		drawText(h.screen, cx, cy, cols, b.Key, label)
	}
}

func (h *host) drawHUD(snap engine.Snapshot, cols, rows int) {
	y := rows - hudRows
	for x := 0; x < cols; x++ {
		h.screen.SetContent(x, y, ' ', nil, hudStyle)
	}

	var text string
	switch {
	case snap.Done:
		text = fmt.Sprintf(" All done! %d/%d  [r] play again  [q] quit", snap.Progress, snap.Total)
	default:
		text = fmt.Sprintf(" %s  %d/%d", snap.Prompt, snap.Progress, snap.Total)
	}
	if h.clock.Paused() {
		text += "  [paused]"
	}
	if h.stats && h.reg != nil {
		m := h.reg.Snapshot()
		text += fmt.Sprintf("  g=%.2f ticks=%.0f impacts=%.0f", vmath.V2Mag(snap.Gravity), m[status.TicksTotal], m[status.ImpactsTotal])
	}
	drawText(h.screen, 0, y, cols, text, hudStyle)
}

// drawText writes runes left to right, clipped to cols
func drawText(s tcell.Screen, x, y, cols int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= cols {
			return
		}
		if x >= 0 {
			s.SetContent(x, y, r, nil, style)
		}
		x++
	}
}

// labelColor picks black or white text for contrast against bg
func labelColor(bg colorful.Color) tcell.Color {
	_, _, l := bg.Hcl()
	if l > 0.6 {
		return tcell.ColorBlack
	}
	return tcell.ColorWhite
}

// easeOutBack overshoots slightly before settling at 1
func easeOutBack(t float64) float64 {
	t = vmath.Clamp(t, 0, 1)
	const c1 = 1.70158
	const c3 = c1 + 1
	u := t - 1
	return 1 + c3*u*u*u + c1*u*u
}
