package main

import (
	"context"
	"flag"
	"net/http"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"worldclient/client"
)

// WorldClient 入口:连接服务端,打开窗口并进入渲染主循环
func main() {
	var (
		serverURL = flag.String("server", "ws://localhost:3000/ws", "game server websocket url")
		logPath   = flag.String("log", "client.log", "log file path")
		debugAddr = flag.String("debug-addr", "127.0.0.1:8081", "debug http listen address, empty to disable")
		worldImg  = flag.String("world", "world.png", "world background image, empty to skip")
		width     = flag.Int("width", 800, "initial window width")
		height    = flag.Int("height", 600, "initial window height")
	)
	flag.Parse()

	// 使用第三方 zap 日志库写入文件(带滚动)
	if err := client.InitLogger(*logPath); err != nil {
		panic(err)
	}
	defer client.SyncLogger()

	// 事件通道是唯一的状态入口:服务端推送与资源解码都从这里回流
	events := make(chan client.Event, 256)

	session := client.NewSession(client.WorldWidth, client.WorldHeight,
		float64(*width), float64(*height), client.NewAssetStore(events))

	transport := client.NewTransport(*serverURL, events, session.Metrics)
	sender := client.NewIntentSender(transport, client.WorldWidth, client.WorldHeight)
	renderer := client.NewRenderer(client.DefaultRenderConfig(), session.Metrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go transport.Run(ctx)

	// 调试与监控接口
	if *debugAddr != "" {
		dbg := &client.DebugServer{Cfg: renderer.Cfg, Metrics: session.Metrics}
		go func() {
			client.Log.Infof("debug http on %s", *debugAddr)
			if err := http.ListenAndServe(*debugAddr, dbg.Routes()); err != nil {
				client.Log.Warnf("debug http: %v", err)
			}
		}()
	}

	// 背景图缺失不致命:渲染器对 nil 背景直接跳过
	var background client.Drawable
	if *worldImg != "" {
		if img, _, err := ebitenutil.NewImageFromFile(*worldImg); err != nil {
			client.Log.Warnf("load world image %s: %v", *worldImg, err)
		} else {
			background = &client.EbitenImage{Img: img}
		}
	}

	game := client.NewGame(session, renderer, sender, events, background)

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("worldclient")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil {
		client.Log.Fatalf("run: %v", err)
	}
	client.Log.Info("shutting down...")
}
