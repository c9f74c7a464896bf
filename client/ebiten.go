package client

import (
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenImage 把 *ebiten.Image 包成核心可用的 Drawable
type EbitenImage struct {
	Img *ebiten.Image
}

// Size 帧尺寸(像素)
func (i *EbitenImage) Size() (int, int) {
	b := i.Img.Bounds()
	return b.Dx(), b.Dy()
}

// EbitenCanvas 基于 ebiten 的 Canvas 后端
type EbitenCanvas struct {
	Dst *ebiten.Image
}

// DrawImage 按 DrawOptions 绘制;非 EbitenImage 的句柄直接忽略
func (c *EbitenCanvas) DrawImage(src Drawable, opts DrawOptions) {
	ei, ok := src.(*EbitenImage)
	if !ok {
		return
	}
	img := ei.Img
	if opts.SrcW > 0 && opts.SrcH > 0 {
		r := image.Rect(int(opts.SrcX), int(opts.SrcY),
			int(opts.SrcX+opts.SrcW), int(opts.SrcY+opts.SrcH))
		img = img.SubImage(r.Intersect(img.Bounds())).(*ebiten.Image)
	}
	sx, sy := opts.ScaleX, opts.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	op := &ebiten.DrawImageOptions{}
	if opts.Mirror {
		// 先绕自身竖轴翻转再移回原位,保证镜像后位置不变
		w := img.Bounds().Dx()
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(w), 0)
	}
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(opts.DstX, opts.DstY)
	c.Dst.DrawImage(img, op)
}

// FillRect 半透明矩形(标签底等)
func (c *EbitenCanvas) FillRect(x, y, w, h float64, clr color.Color) {
	vector.FillRect(c.Dst, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// DrawText 定宽调试字体(固定白色)
func (c *EbitenCanvas) DrawText(text string, x, y float64) {
	ebitenutil.DebugPrintAt(c.Dst, text, int(x), int(y))
}

// Game ebiten 主循环:排空入站事件 -> 清理特效 -> 捕获输入 -> 按脏标记重绘
// 所有状态写入都在这一个协程里完成,事件之间不会交错
type Game struct {
	session    *Session
	renderer   *Renderer
	sender     *IntentSender
	events     <-chan Event
	background Drawable

	world *ebiten.Image // 世界离屏缓冲,只有标脏时才重画
	viewW int
	viewH int
}

// NewGame 组装主循环
func NewGame(session *Session, renderer *Renderer, sender *IntentSender, events <-chan Event, background Drawable) *Game {
	return &Game{
		session:    session,
		renderer:   renderer,
		sender:     sender,
		events:     events,
		background: background,
	}
}

// Update 每 tick 一次的逻辑推进
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	now := time.Now()

	// 排空入站事件(非阻塞 drain),多条事件只换来一次重绘
drain:
	for {
		select {
		case ev := <-g.events:
			g.session.Apply(ev, now)
		default:
			break drain
		}
	}

	g.session.SweepEffects(now)
	g.handleInput()
	return nil
}

// handleInput 把按键/点击翻译成出站意图
func (g *Game) handleInput() {
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		g.sender.Move(MoveUp)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		g.sender.Move(MoveDown)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.sender.Move(MoveLeft)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.sender.Move(MoveRight)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.sender.Emote(g.session.SelfID, EffectJump)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		wx, wy := g.session.Camera.ScreenToWorld(float64(mx), float64(my))
		g.sender.MoveTo(wx, wy)
	}
}

// Draw 只有会话标脏时才重画离屏缓冲,然后整幅贴到屏幕
func (g *Game) Draw(screen *ebiten.Image) {
	w := screen.Bounds().Dx()
	h := screen.Bounds().Dy()
	if g.world == nil || g.world.Bounds().Dx() != w || g.world.Bounds().Dy() != h {
		g.world = ebiten.NewImage(w, h)
		g.session.MarkDirty()
	}
	if g.session.TakeDirty() {
		g.world.Fill(color.Black)
		cv := &EbitenCanvas{Dst: g.world}
		g.renderer.Frame(cv, g.background, g.session, time.Now())
	}
	screen.DrawImage(g.world, nil)
}

// Layout 窗口尺寸即视口尺寸(1 世界单位 = 1 像素),变化时重设视口
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.viewW || outsideHeight != g.viewH {
		g.viewW = outsideWidth
		g.viewH = outsideHeight
		g.session.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}
