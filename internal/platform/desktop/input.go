package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/tui-cave/internal/games/cave/sim"
)

// Input is the slice of ebiten's polling API the viewer reads each tick.
type Input interface {
	Pressed(k ebiten.Key) bool
	JustPressed(k ebiten.Key) bool
	MouseJustPressed(b ebiten.MouseButton) bool
	MousePressed(b ebiten.MouseButton) bool
	Cursor() (x, y int)
}

// ebitenInput reads the real keyboard and mouse.
type ebitenInput struct{}

func (ebitenInput) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (ebitenInput) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

func (ebitenInput) MouseJustPressed(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(b)
}

func (ebitenInput) MousePressed(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}

func (ebitenInput) Cursor() (int, int) { return ebiten.CursorPosition() }

// controls are the viewer's own commands, outside the simulation.
type controls struct {
	pause   bool
	restart bool
	quit    bool
}

var levelKeys = [sim.LevelCount]ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3}

// readIntent polls in. Flight keys and the right button act while held;
// everything else fires once per press.
func readIntent(in Input) (sim.Intent, controls) {
	it := sim.Intent{
		Thrust:      in.Pressed(ebiten.KeyW) || in.MousePressed(ebiten.MouseButtonRight),
		Brake:       in.Pressed(ebiten.KeyS),
		RotateLeft:  in.Pressed(ebiten.KeyA),
		RotateRight: in.Pressed(ebiten.KeyD),
		Fire: in.JustPressed(ebiten.KeySpace) || in.JustPressed(ebiten.KeyTab) ||
			in.MouseJustPressed(ebiten.MouseButtonLeft),
		Damp:        in.JustPressed(ebiten.KeyR),
		Stop:        in.JustPressed(ebiten.KeyB),
		ToggleTruce: in.JustPressed(ebiten.KeyT),
		Regenerate:  in.JustPressed(ebiten.KeyG),
	}
	if in.JustPressed(ebiten.KeyArrowLeft) {
		it.NudgeX--
	}
	if in.JustPressed(ebiten.KeyArrowRight) {
		it.NudgeX++
	}
	if in.JustPressed(ebiten.KeyArrowUp) {
		it.NudgeY++
	}
	if in.JustPressed(ebiten.KeyArrowDown) {
		it.NudgeY--
	}
	for n, k := range levelKeys {
		if in.JustPressed(k) {
			it.Level = n + 1
		}
	}

	x, y := in.Cursor()
	it.Aim = toWorld(float64(x), float64(y))
	it.HasAim = true

	c := controls{
		pause:   in.JustPressed(ebiten.KeyP),
		restart: in.JustPressed(ebiten.KeyEnter),
		quit:    in.JustPressed(ebiten.KeyEscape) || in.JustPressed(ebiten.KeyQ),
	}
	return it, c
}
