package client

import (
	"encoding/json"
	"math"
	"time"

	"golang.org/x/time/rate"
)

// MoveCommand 方向移动指令
type MoveCommand string

const (
	MoveUp    MoveCommand = "up"
	MoveDown  MoveCommand = "down"
	MoveLeft  MoveCommand = "left"
	MoveRight MoveCommand = "right"
)

// 出站消息的 JSON 结构(WebSocket 文本消息)
// 示例:{"type":"move","command":"up"} 或 {"type":"move","x":120,"y":340}
type moveMessage struct {
	Type    string `json:"type"`
	Command string `json:"command,omitempty"`
	X       *int   `json:"x,omitempty"`
	Y       *int   `json:"y,omitempty"`
}

type emoteMessage struct {
	Type     string `json:"type"`
	EntityID string `json:"entityId"`
	Kind     string `json:"kind"`
}

// Enqueuer 出站消息的去处(由 Transport 实现)
type Enqueuer interface {
	Enqueue(b []byte)
}

// IntentSender 产出本地玩家的出站意图
// 按住方向键会逐帧触发,方向移动经 rate.Limiter 限到约 20/s,与服务端 tick 对齐
type IntentSender struct {
	out     Enqueuer
	limiter *rate.Limiter
	worldW  float64
	worldH  float64
}

// NewIntentSender 创建意图发送器
func NewIntentSender(out Enqueuer, worldW, worldH float64) *IntentSender {
	return &IntentSender{
		out:     out,
		limiter: rate.NewLimiter(rate.Every(50*time.Millisecond), 1),
		worldW:  worldW,
		worldH:  worldH,
	}
}

// Move 按方向移动;超出限速的触发直接丢弃(非阻塞)
func (s *IntentSender) Move(cmd MoveCommand) {
	if !s.limiter.Allow() {
		return
	}
	b, _ := json.Marshal(moveMessage{Type: "move", Command: string(cmd)})
	s.out.Enqueue(b)
}

// MoveTo 点选移动:坐标四舍五入取整,目标在世界边界外时不发送
func (s *IntentSender) MoveTo(wx, wy float64) bool {
	if wx < 0 || wy < 0 || wx > s.worldW || wy > s.worldH {
		return false
	}
	x := int(math.Round(wx))
	y := int(math.Round(wy))
	b, _ := json.Marshal(moveMessage{Type: "move", X: &x, Y: &y})
	s.out.Enqueue(b)
	return true
}

// Emote 本地玩家触发表情
func (s *IntentSender) Emote(id PlayerID, kind EffectKind) {
	if id == "" {
		return // welcome 之前还没有本地身份
	}
	b, _ := json.Marshal(emoteMessage{Type: "emote", EntityID: string(id), Kind: string(kind)})
	s.out.Enqueue(b)
}
