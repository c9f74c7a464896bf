package client

import (
	"encoding/json"
	"fmt"
)

// 入站事件统一为一个封闭的 tagged union,由 Session.Apply 单线程消费
// 服务端推送与资源解码回调都走同一条事件流,保证不会交错应用

// Event 入站事件
type Event interface {
	eventKind() string
}

// AvatarPayload 服务端下发的头像帧数据(base64 PNG),按方向分组
// west 方向不下发,由 east 镜像得到
type AvatarPayload struct {
	Name   string                 `json:"name"`
	Frames map[Direction][]string `json:"frames"`
}

// WelcomeEvent 接入成功后的全量快照
type WelcomeEvent struct {
	SelfID  PlayerID
	Players map[PlayerID]*Player
	Avatars map[string]*AvatarPayload
}

// JoinedEvent 新玩家进入世界
type JoinedEvent struct {
	Player *Player
	Avatar *AvatarPayload
}

// MovedEvent 一批玩家位置/动画更新
type MovedEvent struct {
	Players map[PlayerID]*Player
}

// LeftEvent 玩家离开世界
type LeftEvent struct {
	ID PlayerID
}

// EmoteEvent 某玩家触发表情
type EmoteEvent struct {
	Entity PlayerID
	Kind   EffectKind
}

// AssetReadyEvent 一帧头像贴图解码完成(来自 AssetStore 而非服务端)
type AssetReadyEvent struct {
	Avatar string
	Dir    Direction
	Index  int
	Image  Drawable
}

// UnknownEvent 未识别的事件类型,应用层记录后忽略(前向兼容)
type UnknownEvent struct {
	Type string
}

func (*WelcomeEvent) eventKind() string    { return "welcome" }
func (*JoinedEvent) eventKind() string     { return "entityJoined" }
func (*MovedEvent) eventKind() string      { return "entitiesMoved" }
func (*LeftEvent) eventKind() string       { return "entityLeft" }
func (*EmoteEvent) eventKind() string      { return "emote" }
func (*AssetReadyEvent) eventKind() string { return "assetReady" }
func (e *UnknownEvent) eventKind() string  { return e.Type }

// envelope 入站 JSON 信封:type 区分事件,其余字段按需出现
type envelope struct {
	Type     string                    `json:"type"`
	SelfID   PlayerID                  `json:"selfId"`
	Players  map[PlayerID]*Player      `json:"players"`
	Avatars  map[string]*AvatarPayload `json:"avatars"`
	Player   *Player                   `json:"player"`
	Avatar   *AvatarPayload            `json:"avatar"`
	ID       PlayerID                  `json:"id"`
	EntityID PlayerID                  `json:"entityId"`
	Kind     string                    `json:"kind"`
}

// DecodeEvent 解析一条入站消息
// JSON 非法或缺关键字段时返回错误;type 未识别时返回 UnknownEvent(不是错误)
func DecodeEvent(payload []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	switch env.Type {
	case "welcome":
		if env.SelfID == "" {
			return nil, fmt.Errorf("welcome without selfId")
		}
		return &WelcomeEvent{SelfID: env.SelfID, Players: env.Players, Avatars: env.Avatars}, nil
	case "entityJoined":
		if env.Player == nil {
			return nil, fmt.Errorf("entityJoined without player")
		}
		return &JoinedEvent{Player: env.Player, Avatar: env.Avatar}, nil
	case "entitiesMoved":
		return &MovedEvent{Players: env.Players}, nil
	case "entityLeft":
		if env.ID == "" {
			return nil, fmt.Errorf("entityLeft without id")
		}
		return &LeftEvent{ID: env.ID}, nil
	case "emote":
		if env.EntityID == "" {
			return nil, fmt.Errorf("emote without entityId")
		}
		return &EmoteEvent{Entity: env.EntityID, Kind: EffectKind(env.Kind)}, nil
	default:
		return &UnknownEvent{Type: env.Type}, nil
	}
}
