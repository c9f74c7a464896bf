package client

import (
	"sort"
	"time"
)

// AssetLoader 头像帧解码请求
// 实现方异步解码,结果以 AssetReadyEvent 回到事件流,保持单线程纪律
type AssetLoader interface {
	RequestFrames(p *AvatarPayload)
}

// Session 一次连接的全部客户端状态:注册表、头像表、特效、相机与本地身份
// 显式构造、显式传递,没有进程级单例,便于在测试里并存多个实例
// 所有写入都发生在主循环协程,渲染过程只读
type Session struct {
	Registry *Registry
	Avatars  *AvatarSet
	Effects  *EffectTracker
	Camera   *Camera
	Metrics  *SessionMetrics

	// SelfID 本地受控实体,只是指向注册表的 id,绝不另存一份玩家数据
	SelfID PlayerID

	loader AssetLoader
	dirty  bool
}

// NewSession 创建会话;loader 可为 nil(测试或纯逻辑场景)
func NewSession(worldW, worldH, viewportW, viewportH float64, loader AssetLoader) *Session {
	return &Session{
		Registry: NewRegistry(),
		Avatars:  NewAvatarSet(),
		Effects:  NewEffectTracker(),
		Camera:   NewCamera(worldW, worldH, viewportW, viewportH),
		Metrics:  &SessionMetrics{},
		loader:   loader,
	}
}

// Apply 把一条入站事件原子地套用到会话状态
// 单线程运行到完成,渲染不可能观察到半应用的事件;每次成功应用都标脏
func (s *Session) Apply(ev Event, now time.Time) {
	start := time.Now()
	switch e := ev.(type) {
	case *WelcomeEvent:
		s.applyWelcome(e)
	case *JoinedEvent:
		s.applyJoined(e)
	case *MovedEvent:
		s.applyMoved(e)
	case *LeftEvent:
		s.Registry.Remove(e.ID)
		s.Effects.Drop(e.ID)
	case *EmoteEvent:
		s.Effects.Start(e.Entity, e.Kind, EmoteDuration, now)
	case *AssetReadyEvent:
		s.applyAssetReady(e)
	case *UnknownEvent:
		// 前向兼容:记录后忽略,不动任何状态
		Log.Debugf("ignoring unknown event type %q", e.Type)
		s.Metrics.IncUnknownEvent()
		return
	default:
		Log.Warnf("unhandled event %T", ev)
		return
	}
	s.Metrics.AddApply(time.Since(start).Nanoseconds())
	s.dirty = true
}

// applyWelcome 全量快照:清空后批量重建,并设定本地身份
func (s *Session) applyWelcome(e *WelcomeEvent) {
	s.Registry.Clear()
	s.Avatars.Clear()
	s.Effects = NewEffectTracker()
	s.SelfID = e.SelfID

	for _, id := range sortedPlayerIDs(e.Players) {
		p := e.Players[id]
		if p.ID == "" {
			p.ID = id
		}
		s.Registry.Upsert(p)
	}
	names := make([]string, 0, len(e.Avatars))
	for name := range e.Avatars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.ensureAvatar(e.Avatars[name])
	}
	s.recenter()
	Log.Infof("welcome: self=%s players=%d avatars=%d", e.SelfID, s.Registry.Len(), len(names))
}

func (s *Session) applyJoined(e *JoinedEvent) {
	s.Registry.Upsert(e.Player)
	// 帧载荷缺失也要先建头像条目,后续 assetReady 才有处可放
	if e.Player.Avatar != "" {
		s.Avatars.Ensure(e.Player.Avatar)
	}
	if e.Avatar != nil {
		s.ensureAvatar(e.Avatar)
	}
}

// applyMoved 整体替换每个玩家;未知 id 视作隐式加入
// 本地玩家在其中时顺带重新对准相机(由协调器显式编排,不藏在注册表里)
func (s *Session) applyMoved(e *MovedEvent) {
	selfMoved := false
	for _, id := range sortedPlayerIDs(e.Players) {
		p := e.Players[id]
		if p.ID == "" {
			p.ID = id
		}
		s.Registry.Upsert(p)
		if p.ID == s.SelfID {
			selfMoved = true
		}
	}
	if selfMoved {
		s.recenter()
	}
}

// applyAssetReady 填充一帧句柄
// 头像可能在解码期间已被 welcome 清掉,此时静默丢弃(过期回调容忍)
// 条目可能先于帧载荷建立(entityJoined 未带 avatar 数据),帧位按需扩
func (s *Session) applyAssetReady(e *AssetReadyEvent) {
	a, ok := s.Avatars.Get(e.Avatar)
	if !ok || e.Index < 0 {
		return
	}
	frames := a.Frames[e.Dir]
	for len(frames) <= e.Index {
		frames = append(frames, nil)
	}
	frames[e.Index] = e.Image
	a.Frames[e.Dir] = frames
}

// ensureAvatar 建立头像条目并按载荷长度预留帧位,然后请求解码
// 对已见过的名字只补缺,不重建(身份不变)
func (s *Session) ensureAvatar(p *AvatarPayload) {
	a := s.Avatars.Ensure(p.Name)
	for dir, frames := range p.Frames {
		if len(a.Frames[dir]) == 0 && len(frames) > 0 {
			a.Frames[dir] = make([]Drawable, len(frames))
		}
	}
	if s.loader != nil {
		s.loader.RequestFrames(p)
	}
}

// Resize 视口尺寸变化:重设视口、重新夹取并对准本地玩家;幂等
func (s *Session) Resize(viewportW, viewportH float64) {
	s.Camera.Resize(viewportW, viewportH)
	s.recenter()
	s.dirty = true
}

// SweepEffects 清理到期特效;有条目被移除时标脏触发重绘
// 仍有特效在进行时同样标脏:弹跳偏移随时间变化,必须逐 tick 重绘
func (s *Session) SweepEffects(now time.Time) {
	if n := s.Effects.Sweep(now); n > 0 {
		s.Metrics.AddExpired(n)
		s.dirty = true
	}
	if s.Effects.Len() > 0 {
		s.dirty = true
	}
}

// MarkDirty 外部状态变化(如资源就绪)后请求重绘
func (s *Session) MarkDirty() {
	s.dirty = true
}

// TakeDirty 读取并清除脏标记:每批逻辑更新恰好换来一次渲染
func (s *Session) TakeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}

func (s *Session) recenter() {
	if p, ok := s.Registry.Get(s.SelfID); ok {
		s.Camera.CenterOn(p.X, p.Y)
	}
}

// sortedPlayerIDs 固定批量更新的套用顺序,保证插入顺序可复现
func sortedPlayerIDs(players map[PlayerID]*Player) []PlayerID {
	ids := make([]PlayerID, 0, len(players))
	for id := range players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
