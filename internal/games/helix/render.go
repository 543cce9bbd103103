package helix

import (
	"fmt"
	"math"

	"github.com/vovakirdan/helixfall/internal/core"
)

// Visual characters for rendering
const (
	GoodChar     = '='
	BadChar      = '#'
	RetiredChar  = '-'
	PowerupChar  = '♥'
	PowerupDim   = '♡'
	BallChar     = '●'
	BallSquashed = '▬'
)

// unitsPerRow is the world height covered by one terminal row.
const unitsPerRow = 1.5

// Render draws the stack unrolled around the ball: the ball sits in the
// centre column and each column is an angle around the cylinder.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.Snapshot()
	v := newView(dst.Width(), dst.Height())

	for i := range snap.Retired {
		p := &snap.Retired[i]
		row := v.rowFor(snap.Ball.Y, p.Y+snap.Offsets[i])
		v.drawPlatform(dst, p, row, snap.UserRotation, true)
	}
	for i := range snap.Active {
		p := &snap.Active[i]
		row := v.rowFor(snap.Ball.Y, p.Y)
		v.drawPlatform(dst, p, row, snap.UserRotation, false)
		if p.Powerup != nil {
			v.drawPowerup(dst, &snap, p.Powerup, row-1)
		}
	}

	v.drawBall(dst, &snap)
	drawHUD(dst, &snap)

	switch {
	case snap.Paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case snap.Phase == PhaseStarting:
		drawCenteredMessage(dst, "HELIX FALL", "Press SPACE to start")
	case snap.Phase == PhaseCountdown:
		drawCenteredMessage(dst, fmt.Sprintf("%d", snap.CountdownSeconds()), "Get ready")
	}
}

// view maps world coordinates onto the screen.
type view struct {
	width   int
	height  int
	centerX int
	ballRow int
	step    float64 // Radians per column
}

func newView(w, h int) view {
	return view{
		width:   w,
		height:  h,
		centerX: w / 2,
		ballRow: h / 3,
		step:    core.TwoPi / float64(core.Max(w, 1)),
	}
}

// rowFor returns the screen row of world height y, with the ball at ballRow.
func (v view) rowFor(ballY, y float64) int {
	return v.ballRow + int(math.Round((ballY-y)/unitsPerRow))
}

// yawAt returns the angle around the stack shown in column x.
// Angles grow to the left so clockwise turns move the stack right.
func (v view) yawAt(x int) float64 {
	return float64(v.centerX-x) * v.step
}

// columnFor returns the column showing the given yaw.
func (v view) columnFor(yaw float64) int {
	return v.centerX - int(math.Round(core.SignedAngle(yaw)/v.step))
}

func (v view) drawPlatform(dst *core.Screen, p *Platform, row int, userRotation float64, retired bool) {
	if row < 1 || row >= v.height {
		return
	}
	for x := 0; x < v.width; x++ {
		local := core.NormalizeAngle(userRotation - p.Rotation - v.yawAt(x))
		s, ok := sliceAt(p, local)
		if !ok {
			continue
		}
		switch {
		case retired:
			dst.SetColored(x, row, RetiredChar, core.ColorGray)
		case s.Good:
			dst.SetColored(x, row, GoodChar, core.ColorGreen)
		default:
			dst.SetColored(x, row, BadChar, core.ColorRed)
		}
	}
}

func (v view) drawPowerup(dst *core.Screen, snap *Snapshot, pu *Powerup, row int) {
	if row < 1 || row >= v.height {
		return
	}
	x := v.columnFor(powerupYaw(pu, snap.UserRotation))
	glyph, c := powerupLook(snap, pu)
	dst.SetColored(x, row, glyph, c)
}

// powerupLook picks the glyph from the pulse and the colour from the spin:
// the front half of each turn shows the bright face.
func powerupLook(snap *Snapshot, pu *Powerup) (rune, core.Color) {
	glyph := PowerupChar
	if snap.PowerupPulse() < 0.7 {
		glyph = PowerupDim
	}
	c := core.ColorBrightMagenta
	if snap.PowerupSpin(pu) >= math.Pi {
		c = core.ColorPink
	}
	return glyph, c
}

func (v view) drawBall(dst *core.Screen, snap *Snapshot) {
	glyph := BallChar
	if snap.SquishX > 1.1 {
		glyph = BallSquashed
	}
	c := core.ColorBrightBlue
	if snap.Ball.Color == 1 {
		c = core.ColorPink
	}
	dst.SetColored(v.centerX, v.ballRow, glyph, c)
}

func drawHUD(dst *core.Screen, snap *Snapshot) {
	dst.DrawText(1, 0, fmt.Sprintf(" Score: %d ", snap.Score))
	dst.DrawText(14, 0, fmt.Sprintf(" Best: %d ", snap.HighScore))
	lives := fmt.Sprintf(" Lives: %d ", snap.Lives)
	dst.DrawTextColored(dst.Width()-len(lives)-1, 0, lives, core.ColorBrightRed)
}

// sliceAt finds the slice covering a platform-local angle.
func sliceAt(p *Platform, local float64) (Slice, bool) {
	for _, s := range p.Slices {
		if local >= s.Start && local < s.End {
			return s, true
		}
	}
	return Slice{}, false
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
