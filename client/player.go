package client

// 世界为固定尺寸的 2048x2048,坐标系与服务端一致
const (
	WorldWidth  = 2048.0
	WorldHeight = 2048.0
)

// PlayerID 玩家唯一标识(服务端分配的不透明字符串)
type PlayerID string

// Direction 精灵朝向,取值与服务端 facing 字段一致
type Direction string

const (
	DirNorth Direction = "north"
	DirSouth Direction = "south"
	DirEast  Direction = "east"
	DirWest  Direction = "west" // 不单独存帧,绘制时水平镜像 east
)

// Player 服务端权威的玩家状态
// 每次收到该 id 的更新都整体替换(replace-by-id),不做字段级合并
type Player struct {
	ID             PlayerID  `json:"id"`
	Username       string    `json:"username"`
	X              float64   `json:"x"`
	Y              float64   `json:"y"`
	Facing         Direction `json:"facing"`
	Avatar         string    `json:"avatar"`
	AnimationFrame int       `json:"animationFrame"` // 服务端推进的动画帧,客户端只做取模
}

// AvatarAsset 一套头像的定向帧序列
// 身份(名字)创建后不变;帧句柄随解码完成逐个填充,nil 表示尚未就绪
type AvatarAsset struct {
	Name   string
	Frames map[Direction][]Drawable
}

// NewAvatarAsset 创建空帧表的头像条目
func NewAvatarAsset(name string) *AvatarAsset {
	return &AvatarAsset{
		Name:   name,
		Frames: make(map[Direction][]Drawable),
	}
}
