package halfedge3d

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	bobPeriod    = 5.0
	bobMinHeight = 0.0
	bobMaxHeight = 2.0
	bobMaxPitch  = 15 * math.Pi / 180

	minOrbitDistance = 1.0
	dragScale        = 200.0
)

// Game drives the sandbox: an orbiting camera, bobbing models and models
// swapped in when their files change.
type Game struct {
	cfg      *Config
	scene    *Scene
	renderer *Renderer
	updates  <-chan *Model

	orbitAngle    float64
	orbitDistance float64
	orbitHeight   float64
	elapsed       float64

	// where and how each bobbing model rests, by name
	basePositions map[string]mgl64.Vec3
	baseRotations map[string]mgl64.Quat

	lastX, lastY  int
	dragged       bool
	width, height int
}

// NewGame sets up the scene from cfg. updates may be nil when files are
// not watched.
func NewGame(cfg *Config, models []*Model, updates <-chan *Model) *Game {
	g := &Game{
		cfg:           cfg,
		scene:         NewScene(cfg.NewCamera(), cfg.SceneLight()),
		renderer:      NewRenderer(cfg.RenderOptions()),
		updates:       updates,
		orbitDistance: cfg.Camera.OrbitDistance,
		orbitHeight:   cfg.Camera.OrbitHeight,
		basePositions: make(map[string]mgl64.Vec3),
		baseRotations: make(map[string]mgl64.Quat),
		width:         cfg.Window.Width,
		height:        cfg.Window.Height,
	}
	for _, m := range models {
		g.scene.AddModel(m)
		g.basePositions[m.Name] = m.Transform.Position()
		g.baseRotations[m.Name] = m.Transform.Rotation()
	}
	g.updateCamera()
	return g
}

func (g *Game) Scene() *Scene { return g.scene }

func (g *Game) Update() error {
	if inpututil.IsKeyJustReleased(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.drainUpdates()

	dt := 1 / float64(ebiten.TPS())
	g.handleInput()
	g.step(dt)
	return nil
}

// step advances the camera orbit and the bob animation by dt seconds.
func (g *Game) step(dt float64) {
	g.orbitAngle = math.Mod(g.orbitAngle+dt*g.cfg.Camera.OrbitSpeed, 2*math.Pi)
	g.updateCamera()

	g.elapsed = math.Mod(g.elapsed+dt, bobPeriod*2)
	height, pitch := bobPose(g.elapsed)
	for _, m := range g.scene.Models() {
		if !m.Bob {
			continue
		}
		base := g.basePositions[m.Name]
		m.Transform.SetPosition(mgl64.Vec3{base[0], base[1] + height, base[2]})
		rest, ok := g.baseRotations[m.Name]
		if !ok {
			rest = mgl64.QuatIdent()
		}
		// pitch about the model's own X axis
		m.Transform.SetRotation(rest.Mul(mgl64.QuatRotate(pitch, mgl64.Vec3{1, 0, 0})))
	}
}

// bobPose returns the height offset and pitch of a bobbing model at time
// t. Height cycles once per period; the pitch cycles at half that rate.
func bobPose(t float64) (height, pitch float64) {
	phase := t / bobPeriod * 2 * math.Pi
	heightNorm := (math.Sin(phase) + 1) / 2
	pitchNorm := (math.Sin(phase*0.5) + 1) / 2
	height = bobMinHeight + heightNorm*(bobMaxHeight-bobMinHeight)
	pitch = -bobMaxPitch + pitchNorm*2*bobMaxPitch
	return height, pitch
}

func (g *Game) handleInput() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragged = true
		g.lastX, g.lastY = ebiten.CursorPosition()
	}
	if g.dragged {
		x, y := ebiten.CursorPosition()
		g.orbitAngle += float64(x-g.lastX) / dragScale
		g.orbitHeight += float64(y-g.lastY) / dragScale * g.orbitDistance
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragged = false
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.orbitDistance = math.Max(minOrbitDistance, g.orbitDistance*math.Pow(0.9, wy))
	}
}

func (g *Game) updateCamera() {
	cam := g.scene.Camera()
	pos := mgl64.Vec3{
		math.Cos(g.orbitAngle) * g.orbitDistance,
		g.orbitHeight,
		math.Sin(g.orbitAngle) * g.orbitDistance,
	}
	cam.Transform().SetPosition(pos)
	if _, ok := cam.(*LookAtPerspectiveCamera); ok {
		return
	}
	if rot, ok := LookRotation(pos, mgl64.Vec3{}); ok {
		cam.Transform().SetRotation(rot)
	}
}

// drainUpdates swaps in every model the reloader has finished since the
// last frame.
func (g *Game) drainUpdates() {
	if g.updates == nil {
		return
	}
	for {
		select {
		case m, ok := <-g.updates:
			if !ok {
				g.updates = nil
				return
			}
			if !g.scene.Replace(m) {
				Logger().Warn("reloaded model is not in the scene", "model", m.Name)
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.BackgroundColor())
	g.renderer.Render(NewScreenCanvas(screen, g.cfg.Render.AntiAlias), g.scene)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f  models: %d", ebiten.ActualFPS(), len(g.scene.Models())))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.scene.Camera().SetResolution(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}

// Run opens the window and blocks until the game ends.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.cfg.Window.Width, g.cfg.Window.Height)
	ebiten.SetWindowTitle(g.cfg.Window.Title)
	if g.cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(g)
}
