package client

// Camera 视口在世界中的平移变换,由会话独占写入
// 偏移始终被夹取在 [0, max(0, world-viewport)] 内
type Camera struct {
	OffsetX float64
	OffsetY float64

	ViewportW float64
	ViewportH float64
	WorldW    float64
	WorldH    float64
}

// NewCamera 创建相机并完成首次夹取
func NewCamera(worldW, worldH, viewportW, viewportH float64) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
	}
	c.clamp()
	return c
}

// CenterOn 以目标点为中心计算偏移并夹取
// 视口不小于世界尺寸时该轴钉在 0(世界完整可见,不再追求居中)
func (c *Camera) CenterOn(x, y float64) {
	c.OffsetX = x - c.ViewportW/2
	c.OffsetY = y - c.ViewportH/2
	c.clamp()
}

// Resize 视口尺寸变化后重新夹取,重复调用幂等
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.clamp()
}

// WorldToScreen 按当前偏移换算世界坐标
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	return WorldToScreen(wx, wy, c.OffsetX, c.OffsetY)
}

// ScreenToWorld 按当前偏移换算屏幕坐标
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	return ScreenToWorld(sx, sy, c.OffsetX, c.OffsetY)
}

func (c *Camera) clamp() {
	c.OffsetX = clampOffset(c.OffsetX, c.WorldW, c.ViewportW)
	c.OffsetY = clampOffset(c.OffsetY, c.WorldH, c.ViewportH)
}

// clampOffset 单轴夹取;视口为 0 或大于世界时退化为 0,不产生除法或 panic
func clampOffset(offset, world, viewport float64) float64 {
	max := world - viewport
	if max < 0 {
		max = 0
	}
	if offset < 0 {
		return 0
	}
	if offset > max {
		return max
	}
	return offset
}
