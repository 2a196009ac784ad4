package imgutil

import (
	"bytes"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"time"
)

// DefaultFrameDelay は1フレームあたりの標準表示時間です。
const DefaultFrameDelay = time.Second

// AssembleLoopingGIF は順序付きのフレーム画像群から無限ループするGIFを組み立てます。
// frames[i] がそのまま i 番目のフレームになります。
// delay が 0 以下の場合は DefaultFrameDelay を使用します。
func AssembleLoopingGIF(frames [][]byte, delay time.Duration) ([]byte, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("フレームが1枚もありません")
	}

	if delay <= 0 {
		delay = DefaultFrameDelay
	}
	// GIF の遅延は 1/100 秒単位
	delayCS := int(delay / (10 * time.Millisecond))
	if delayCS < 1 {
		delayCS = 1
	}

	anim := &gif.GIF{LoopCount: 0} // 0 は無限ループ
	for i, data := range frames {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("フレーム %d のデコードに失敗しました: %w", i, err)
		}

		bounds := img.Bounds()
		paletted := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(paletted, bounds, img, bounds.Min)

		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, delayCS)
	}

	buf := new(bytes.Buffer)
	if err := gif.EncodeAll(buf, anim); err != nil {
		return nil, fmt.Errorf("GIFエンコードに失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}
