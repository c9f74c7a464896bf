package client

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/png" // 头像帧为 PNG
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/remeh/sizedwaitgroup"
)

// maxDecodeWorkers 同时解码的帧数上限,避免 welcome 一次铺开几百个协程
const maxDecodeWorkers = 4

// AssetStore 异步解码头像帧
// 解码在后台协程进行,结果以 AssetReadyEvent 回流事件通道,
// 状态写入仍然只发生在主循环里
type AssetStore struct {
	events chan<- Event
}

// NewAssetStore 创建资源解码器
func NewAssetStore(events chan<- Event) *AssetStore {
	return &AssetStore{events: events}
}

// RequestFrames 为一套头像帧排队解码,立即返回
// 重复请求无害:就绪事件对已填充的帧位是幂等覆盖
func (s *AssetStore) RequestFrames(p *AvatarPayload) {
	go func() {
		swg := sizedwaitgroup.New(maxDecodeWorkers)
		for dir, frames := range p.Frames {
			for i, data := range frames {
				swg.Add()
				go func(dir Direction, i int, data string) {
					defer swg.Done()
					s.decode(p.Name, dir, i, data)
				}(dir, i, data)
			}
		}
		swg.Wait()
	}()
}

// decode 单帧解码;失败只记日志,帧位保持未就绪,实体届时不绘制
func (s *AssetStore) decode(avatar string, dir Direction, index int, data string) {
	raw, err := decodeFrameData(data)
	if err != nil {
		Log.Warnf("avatar %s %s[%d]: %v", avatar, dir, index, err)
		return
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		Log.Warnf("avatar %s %s[%d]: decode image: %v", avatar, dir, index, err)
		return
	}
	s.events <- &AssetReadyEvent{
		Avatar: avatar,
		Dir:    dir,
		Index:  index,
		Image:  &EbitenImage{Img: ebiten.NewImageFromImage(img)},
	}
}

// decodeFrameData 还原一帧的 PNG 字节
// 服务端下发形如 "data:image/png;base64,...." 的 data URL,也兼容裸 base64
func decodeFrameData(data string) ([]byte, error) {
	if strings.HasPrefix(data, "data:") {
		if i := strings.IndexByte(data, ','); i >= 0 {
			data = data[i+1:]
		}
	}
	return base64.StdEncoding.DecodeString(data)
}
