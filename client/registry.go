package client

// Registry 实体注册表:id -> Player,当前世界里"存在什么"的唯一权威
// 每个 id 至多一条;遍历按插入顺序,保证渲染与测试输出确定
type Registry struct {
	players map[PlayerID]*Player
	order   []PlayerID
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{players: make(map[PlayerID]*Player)}
}

// Upsert 按 id 插入或整体替换,O(1);已存在的 id 保持原插入位置
func (r *Registry) Upsert(p *Player) {
	if _, ok := r.players[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.players[p.ID] = p
}

// Remove 移除指定 id,不存在时为 no-op
func (r *Registry) Remove(id PlayerID) {
	if _, ok := r.players[id]; !ok {
		return
	}
	delete(r.players, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get 按 id 查询
func (r *Registry) Get(id PlayerID) (*Player, bool) {
	p, ok := r.players[id]
	return p, ok
}

// All 按插入顺序返回全部玩家
func (r *Registry) All() []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id])
	}
	return out
}

// Len 当前实体数
func (r *Registry) Len() int {
	return len(r.players)
}

// Clear 清空(welcome 全量快照前调用)
func (r *Registry) Clear() {
	r.players = make(map[PlayerID]*Player)
	r.order = nil
}

// AvatarSet 头像资源表:每个名字只创建一次
// 条目身份不变,帧句柄随解码完成逐个就绪
type AvatarSet struct {
	assets map[string]*AvatarAsset
}

// NewAvatarSet 创建空资源表
func NewAvatarSet() *AvatarSet {
	return &AvatarSet{assets: make(map[string]*AvatarAsset)}
}

// Ensure 获取或创建头像条目
func (s *AvatarSet) Ensure(name string) *AvatarAsset {
	a, ok := s.assets[name]
	if !ok {
		a = NewAvatarAsset(name)
		s.assets[name] = a
	}
	return a
}

// Get 按名字查询
func (s *AvatarSet) Get(name string) (*AvatarAsset, bool) {
	a, ok := s.assets[name]
	return a, ok
}

// Clear 清空资源表
func (s *AvatarSet) Clear() {
	s.assets = make(map[string]*AvatarAsset)
}
