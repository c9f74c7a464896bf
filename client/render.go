package client

import (
	"image/color"
	"math"
	"time"
)

// Drawable 不透明可绘制句柄,就绪的一帧贴图
type Drawable interface {
	Size() (w, h int)
}

// DrawOptions 单次贴图绘制参数
type DrawOptions struct {
	SrcX, SrcY float64 // 源区域左上角
	SrcW, SrcH float64 // 源区域尺寸;SrcW==0 表示整图
	DstX, DstY float64
	ScaleX     float64 // 0 视为 1
	ScaleY     float64
	Mirror     bool // 水平镜像(west 复用 east 帧)
}

// Canvas 渲染后端接口:核心只发出绘制调用,不依赖具体引擎
// ebiten 后端见 ebiten.go,测试用记录型假后端
type Canvas interface {
	DrawImage(src Drawable, opts DrawOptions)
	FillRect(x, y, w, h float64, clr color.Color)
	// DrawText 定宽近似文本,颜色由后端决定(标签统一白字)
	DrawText(text string, x, y float64)
}

// RenderConfig 渲染参数,可经 /debug/config 热调
type RenderConfig struct {
	BaseSize   float64 // 精灵基准宽度(像素),高度按帧宽高比推算
	CullMargin float64 // 视口外剔除余量(像素)
}

// DefaultRenderConfig 默认渲染参数
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		BaseSize:   64,
		CullMargin: 50,
	}
}

const (
	labelCharWidth = 7.0  // 定宽近似:每字符像素宽
	labelHeight    = 16.0 // 标签底高度
	labelPadding   = 4.0
	jumpAmplitude  = 18.0 // 弹跳最高抬升(像素)
)

// Renderer 无状态渲染过程:读取会话快照并向 Canvas 发出绘制调用
// 相对注册表/特效/相机而言只读,自身不持有世界状态
type Renderer struct {
	Cfg     *RenderConfig
	metrics *SessionMetrics
}

// NewRenderer 创建渲染器;metrics 可为 nil
func NewRenderer(cfg *RenderConfig, m *SessionMetrics) *Renderer {
	if cfg == nil {
		cfg = DefaultRenderConfig()
	}
	if m == nil {
		m = &SessionMetrics{}
	}
	return &Renderer{Cfg: cfg, metrics: m}
}

// Frame 渲染一帧:背景区域 -> 各实体精灵 -> 名字标签
func (r *Renderer) Frame(cv Canvas, background Drawable, s *Session, now time.Time) {
	cam := s.Camera
	if background != nil {
		// 背景按 1:1 拷贝可见区域,不做缩放
		cv.DrawImage(background, DrawOptions{
			SrcX: cam.OffsetX,
			SrcY: cam.OffsetY,
			SrcW: cam.ViewportW,
			SrcH: cam.ViewportH,
		})
	}
	for _, p := range s.Registry.All() {
		r.drawPlayer(cv, s, p, now)
	}
	r.metrics.IncFrame()
}

// drawPlayer 绘制单个玩家;资源未就绪时静默跳过,帧还在路上不算错误
func (r *Renderer) drawPlayer(cv Canvas, s *Session, p *Player, now time.Time) {
	sx, sy := s.Camera.WorldToScreen(p.X, p.Y)

	// 粗剔除:带余量落在视口外就不画,只是省事,不影响正确性
	m := r.Cfg.CullMargin
	if sx < -m || sy < -m || sx > s.Camera.ViewportW+m || sy > s.Camera.ViewportH+m {
		r.metrics.IncCulled()
		return
	}

	asset, ok := s.Avatars.Get(p.Avatar)
	if !ok {
		return
	}
	dir := p.Facing
	mirror := false
	if dir == DirWest {
		// west 不存帧:取 east 帧集水平镜像
		dir = DirEast
		mirror = true
	}
	frames := asset.Frames[dir]
	if len(frames) == 0 {
		return
	}
	idx := p.AnimationFrame % len(frames)
	if idx < 0 {
		idx += len(frames) // 服务端不会下发负帧,但渲染循环不赌这个
	}
	frame := frames[idx]
	if frame == nil {
		return // 该帧尚未解码完成
	}
	fw, fh := frame.Size()
	if fw <= 0 || fh <= 0 {
		return
	}

	// 宽度固定为基准尺寸,高度按帧宽高比等比缩放
	w := r.Cfg.BaseSize
	h := w * float64(fh) / float64(fw)

	if eff, ok := s.Effects.Get(p.ID, EffectJump, now); ok {
		sy -= jumpOffset(eff.Fraction(now), eff.Bounces)
	}

	// 以脚底中心为锚点
	dx := sx - w/2
	dy := sy - h
	cv.DrawImage(frame, DrawOptions{
		DstX:   dx,
		DstY:   dy,
		ScaleX: w / float64(fw),
		ScaleY: h / float64(fh),
		Mirror: mirror,
	})
	r.drawLabel(cv, p.Username, sx, dy)
}

// drawLabel 精灵上方的名字标签,半透明底按字符数定宽
func (r *Renderer) drawLabel(cv Canvas, name string, centerX, top float64) {
	if name == "" {
		return
	}
	w := float64(len(name))*labelCharWidth + labelPadding*2
	x := centerX - w/2
	y := top - labelHeight - 2
	cv.FillRect(x, y, w, labelHeight, color.RGBA{0, 0, 0, 128})
	cv.DrawText(name, x+labelPadding, y+2)
}

// jumpOffset 弹跳抬升量:在时长内做 bounces 次 |sin| 振荡
// 起止点为 0,保证特效结束时精灵落回原位
func jumpOffset(frac float64, bounces int) float64 {
	if bounces <= 0 {
		bounces = 1
	}
	return jumpAmplitude * math.Abs(math.Sin(frac*math.Pi*float64(bounces)))
}
