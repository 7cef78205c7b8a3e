package carrot

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/carrot-jump/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar      = '█'
	PlayerDeadChar  = '▄'
	SpikeChar       = '▲'
	CarrotChar      = '▼'
	PlatformChar    = '▀'
	ParticleChar    = '*'
	GroundTopChar   = '═'
	GroundFillChar  = '░'
	HeartFullChar   = '♥'
	HeartEmptyChar  = '♡'
	hudRows         = 1
	splashBlink     = 500 * time.Millisecond
	heartBlink      = 250 * time.Millisecond
	minShakeColumns = 1
)

// viewport maps world units onto screen cells below the HUD.
type viewport struct {
	sx, sy float64
	ox     int // Horizontal shake offset in cells
	top    int
}

func newViewport(dst *core.Screen, snap Snapshot) viewport {
	c := snap.Config.Canvas
	v := viewport{
		sx:  float64(dst.Width()) / c.Width,
		sy:  float64(dst.Height()-hudRows) / c.Height,
		top: hudRows,
	}
	if snap.State.ScreenShake > 0 {
		amp := int(core.Round(snap.Config.Effects.ShakeIntensity * v.sx))
		amp = max(amp, minShakeColumns)
		if snap.Tick%2 == 0 {
			amp = -amp
		}
		v.ox = amp
	}
	return v
}

func (v viewport) col(x float64) int { return int(math.Floor(x*v.sx)) + v.ox }
func (v viewport) row(y float64) int { return int(math.Floor(y*v.sy)) + v.top }

// fill paints a world rectangle, covering at least one cell.
func (v viewport) fill(dst *core.Screen, r core.Rect, ch rune, c core.Color) {
	x0, y0 := v.col(r.X), v.row(r.Y)
	x1 := int(math.Ceil(r.Right()*v.sx)) + v.ox
	y1 := int(math.Ceil(r.Bottom()*v.sy)) + v.top
	w := max(x1-x0, 1)
	h := max(y1-y0, 1)
	dst.DrawRect(x0, y0, w, h, ch, c)
}

// Draw renders a snapshot into dst. World coordinates are scaled to the
// screen so any terminal size shows the whole canvas.
func Draw(dst *core.Screen, snap Snapshot) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() <= hudRows {
		return
	}

	v := newViewport(dst, snap)
	drawGround(dst, v, snap)

	if snap.Phase == PhaseSplash {
		drawSplash(dst, snap)
		return
	}

	for _, p := range snap.Platforms {
		v.fill(dst, p.Rect(), PlatformChar, core.ColorYellow)
	}
	for _, c := range snap.Pickups {
		v.fill(dst, c.Rect(), CarrotChar, core.ColorOrange)
	}
	for _, o := range snap.Obstacles {
		v.fill(dst, o.Rect(), SpikeChar, core.ColorBrightWhite)
	}
	drawPlayer(dst, v, snap)
	for _, p := range snap.Particles {
		dst.SetColored(v.col(p.X), v.row(p.Y), ParticleChar, p.Color)
	}

	drawHUD(dst, snap)

	if snap.Phase == PhaseGameOver {
		drawGameOver(dst, snap)
	}
}

func drawGround(dst *core.Screen, v viewport, snap Snapshot) {
	groundRow := v.row(snap.Config.GroundLine())
	dst.DrawHLine(0, groundRow, dst.Width(), GroundTopChar, core.ColorGreen)
	for y := groundRow + 1; y < dst.Height(); y++ {
		dst.DrawHLine(0, y, dst.Width(), GroundFillChar, core.ColorGray)
	}
}

func drawPlayer(dst *core.Screen, v viewport, snap Snapshot) {
	if !snap.PlayerVisible() {
		return
	}
	ch := PlayerChar
	if snap.Player.Rotation >= snap.Config.Death.FinalRotation/2 && snap.Player.Rotation > 0 {
		ch = PlayerDeadChar
	}
	v.fill(dst, snap.Player.Rect(), ch, core.ColorBrightWhite)
}

func drawHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", snap.DisplayScore()), core.ColorBrightWhite)

	high := fmt.Sprintf("High Score: %d", snap.State.HighScore)
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(high)-1, 0, high, core.ColorBrightYellow)

	x := (dst.Width() - len(snap.Hearts)*2) / 2
	blinkOn := (snap.Now.UnixMilli()/heartBlink.Milliseconds())%2 == 0
	for i, h := range snap.Hearts {
		switch h {
		case HeartFull:
			dst.SetColored(x+i*2, 0, HeartFullChar, core.ColorBrightRed)
		case HeartFlashing:
			if blinkOn {
				dst.SetColored(x+i*2, 0, HeartFullChar, core.ColorBrightRed)
			} else {
				dst.SetColored(x+i*2, 0, HeartEmptyChar, core.ColorGray)
			}
		default:
			dst.SetColored(x+i*2, 0, HeartEmptyChar, core.ColorGray)
		}
	}
}

// boxLine is one line of a centred message box.
type boxLine struct {
	text  string
	color core.Color
}

func drawMessageBox(dst *core.Screen, lines []boxLine, border core.Color) {
	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l.text))
	}
	boxW := width + 6
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, border)
	for i, l := range lines {
		if l.text == "" {
			continue
		}
		dst.DrawTextCentered(boxY+1+i, l.text, l.color)
	}
}

func drawSplash(dst *core.Screen, snap Snapshot) {
	start := "PRESS SPACE TO START"
	elapsed := snap.Now.Sub(snap.State.SplashStartTime)
	if (elapsed/splashBlink)%2 == 1 {
		start = strings.Repeat(" ", utf8.RuneCountInString(start))
	}

	lines := []boxLine{
		{"CARROT JUMP", core.ColorOrange},
		{"", core.ColorDefault},
		{"Jump over the spikes and collect carrots.", core.ColorWhite},
		{"Press SPACE in the air to double jump.", core.ColorWhite},
		{"Every carrot makes the world faster.", core.ColorWhite},
		{"H resets the high score, Q quits.", core.ColorGray},
		{"", core.ColorDefault},
		{start, core.ColorBrightYellow},
		{fmt.Sprintf("High Score: %d", snap.State.HighScore), core.ColorBrightYellow},
	}
	drawMessageBox(dst, lines, core.ColorOrange)
}

func drawGameOver(dst *core.Screen, snap Snapshot) {
	lines := []boxLine{
		{"GAME OVER", core.ColorBrightRed},
		{fmt.Sprintf("Score: %d", snap.DisplayScore()), core.ColorBrightWhite},
	}
	if snap.State.IsNewHighScore {
		lines = append(lines, boxLine{"NEW HIGH SCORE!", core.ColorBrightYellow})
	} else {
		lines = append(lines, boxLine{fmt.Sprintf("High Score: %d", snap.State.HighScore), core.ColorBrightYellow})
	}
	if snap.RestartReady {
		lines = append(lines, boxLine{"Press SPACE to play again", core.ColorWhite})
	} else {
		lines = append(lines, boxLine{"...", core.ColorGray})
	}
	drawMessageBox(dst, lines, core.ColorRed)
}
