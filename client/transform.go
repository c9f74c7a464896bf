package client

// 世界坐标与屏幕坐标的纯函数换算:1 世界单位 = 1 屏幕像素,只做平移
// 保持与 ScreenToWorld 严格互逆,对任意实数输入都有定义

// WorldToScreen 按相机偏移把世界坐标换算为屏幕坐标
func WorldToScreen(wx, wy, offsetX, offsetY float64) (float64, float64) {
	return wx - offsetX, wy - offsetY
}

// ScreenToWorld WorldToScreen 的逆变换
func ScreenToWorld(sx, sy, offsetX, offsetY float64) (float64, float64) {
	return sx + offsetX, sy + offsetY
}
