package client

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	dialBackoffMin = time.Second
	dialBackoffMax = 5 * time.Second
)

// Transport 维护与服务端的 WebSocket 连接
// 读泵把入站消息解码为事件写入事件通道,写泵从发送队列写出意图
// 核心只消费事件通道,不接触连接本身
type Transport struct {
	url     string
	events  chan<- Event
	send    chan []byte
	metrics *SessionMetrics
}

// NewTransport 创建传输层;events 为会话主循环消费的事件通道
func NewTransport(url string, events chan<- Event, m *SessionMetrics) *Transport {
	if m == nil {
		m = &SessionMetrics{}
	}
	return &Transport{
		url:     url,
		events:  events,
		send:    make(chan []byte, 64),
		metrics: m,
	}
}

// Enqueue 将出站消息压入发送队列(非阻塞,满则丢弃)
// 为了实时性宁可丢意图,也不让主循环被网络背压拖住
func (t *Transport) Enqueue(b []byte) {
	select {
	case t.send <- b:
	default:
		t.metrics.IncIntentDropped()
	}
}

// Run 带退避的连接循环,断开即重连;ctx 取消后退出
// 重连定时器可能在会话已被新 welcome 取代后才触发,这没关系:
// 新连接的 welcome 会整体重建状态
func (t *Transport) Run(ctx context.Context) {
	backoff := dialBackoffMin
	for {
		if ctx.Err() != nil {
			return
		}
		ws, _, err := websocket.DefaultDialer.DialContext(ctx, t.url, nil)
		if err != nil {
			Log.Warnf("dial %s: %v (retry in %v)", t.url, err, backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return
			}
			backoff *= 2
			if backoff > dialBackoffMax {
				backoff = dialBackoffMax
			}
			continue
		}
		backoff = dialBackoffMin
		Log.Infof("connected to %s", t.url)

		done := make(chan struct{})
		go t.writePump(ctx, ws, done)
		t.readPump(ws) // 阻塞直到连接断开
		close(done)
		_ = ws.Close()
	}
}

// readPump 读取服务端推送,解码后注入事件通道
func (t *Transport) readPump(ws *websocket.Conn) {
	ws.SetReadLimit(1 << 20) // 1MB
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := ws.ReadMessage()
		if err != nil {
			Log.Warnf("read: %v", err)
			return
		}
		ev, err := DecodeEvent(payload)
		if err != nil {
			// 坏载荷只计数丢弃,绝不让渲染循环崩掉
			t.metrics.IncDecodeError()
			Log.Warnf("discard payload: %v", err)
			continue
		}
		t.deliver(ev)
	}
}

// deliver 阻塞投递入站事件
// 入站是有序的权威流,丢一条 entityLeft 就是永久幽灵:
// 读泵在独立协程上,通道满时等主循环消化即可,丢弃只留给出站侧
func (t *Transport) deliver(ev Event) {
	t.events <- ev
}

// writePump 独立协程,从发送队列写出并保活
func (t *Transport) writePump(ctx context.Context, ws *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer ws.Close()
	for {
		select {
		case msg := <-t.send:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}
