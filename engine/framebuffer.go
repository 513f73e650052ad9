package engine

import (
	"errors"
	"math"
)

// Depth 每个像素的字节数（R,G,B,A）
const Depth = 4

// ErrInvalidRadius 半径必须大于 0
var ErrInvalidRadius = errors.New("engine: radius must be positive")

// FrameBuffer 一帧 RGBA 像素缓冲；每个 Tick 新建，移交给输出通道后不再修改
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []byte
}

// NewFrameBuffer 创建全零缓冲，长度 = width*height*4
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*Depth),
	}
}

// At 读取 (x,y) 处像素，越界返回零值
func (fb *FrameBuffer) At(x, y int) Color {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return Color{}
	}
	i := fb.offset(x, y)
	return Color{R: fb.Pix[i], G: fb.Pix[i+1], B: fb.Pix[i+2], A: fb.Pix[i+3]}
}

func (fb *FrameBuffer) offset(x, y int) int {
	return (y*fb.Width + x) * Depth
}

// DrawRect 以混合规则绘制矩形，超出缓冲的部分被裁剪
func (fb *FrameBuffer) DrawRect(x, y, width, height int, c Color) {
	x0, x1 := clampSpan(x, width, fb.Width)
	y0, y1 := clampSpan(y, height, fb.Height)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	for row := y0; row < y1; row++ {
		start := fb.offset(x0, row)
		end := fb.offset(x1, row)
		px := fb.Pix[start:end:end]
		for i := 0; i < len(px); i += Depth {
			a1 := px[i+3]
			px[i] = Blend(px[i], c.R, a1, c.A)
			px[i+1] = Blend(px[i+1], c.G, a1, c.A)
			px[i+2] = Blend(px[i+2], c.B, a1, c.A)
			px[i+3] = 0xff
		}
	}
}

// DrawCircle 以 (cx,cy) 为圆心填充不透明白色圆盘（不做 alpha 混合）
// 每条扫描线的半宽 = round(cos(asin(|i-r|/r)) * r)
func (fb *FrameBuffer) DrawCircle(cx, cy, radius int) error {
	if radius <= 0 {
		return ErrInvalidRadius
	}
	for i := 0; i < 2*radius; i++ {
		row := cy - radius + i
		if row < 0 || row >= fb.Height {
			continue
		}
		half := HalfChord(i, radius)
		x0, x1 := clampSpan(cx-half, 2*half, fb.Width)
		if x0 >= x1 {
			continue
		}
		px := fb.Pix[fb.offset(x0, row):fb.offset(x1, row)]
		for j := range px {
			px[j] = 0xff
		}
	}
	return nil
}

// HalfChord 第 i 条扫描线（0 ≤ i < 2r）的半弦长；asin 参数截断到 [0,1]
func HalfChord(i, radius int) int {
	r := float64(radius)
	arg := math.Min(1, math.Abs(float64(i-radius))/r)
	angle := math.Asin(arg)
	return int(math.Round(math.Cos(angle) * r))
}

// clampSpan 将 [start, start+length) 裁剪到 [0, limit)
func clampSpan(start, length, limit int) (int, int) {
	end := start + length
	if start < 0 {
		start = 0
	}
	if end > limit {
		end = limit
	}
	if end < start {
		end = start
	}
	return start, end
}
