package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidSize 矩形宽高必须大于 0
var ErrInvalidSize = errors.New("engine: sprite size must be positive")

// DefaultSpeed 每单位方向量移动的像素数
const DefaultSpeed = 4

// motion 方向量驱动的位移（Left/Up 减，Right/Down 加）
type motion struct {
	X, Y  int
	Speed int
}

func (m *motion) step(in InputSnapshot) {
	m.X -= int(in.Keys[KeyLeft]) * m.Speed
	m.X += int(in.Keys[KeyRight]) * m.Speed
	m.Y -= int(in.Keys[KeyUp]) * m.Speed
	m.Y += int(in.Keys[KeyDown]) * m.Speed
}

// RectSprite 矩形精灵：左上角位置、尺寸、RGBA 颜色
type RectSprite struct {
	motion
	Width  int
	Height int
	Color  Color
}

// NewRectSprite 创建矩形精灵，拒绝非正尺寸
func NewRectSprite(x, y, width, height int, c Color) (*RectSprite, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("rect %dx%d: %w", width, height, ErrInvalidSize)
	}
	return &RectSprite{
		motion: motion{X: x, Y: y, Speed: DefaultSpeed},
		Width:  width,
		Height: height,
		Color:  c,
	}, nil
}

func (s *RectSprite) Update(in InputSnapshot) { s.step(in) }

func (s *RectSprite) Render(fb *FrameBuffer) {
	fb.DrawRect(s.X, s.Y, s.Width, s.Height, s.Color)
}

// CircleSprite 不透明白色圆形精灵，(X,Y) 为圆心
type CircleSprite struct {
	motion
	Radius int
}

// NewCircleSprite 创建圆形精灵，半径为 0 会导致除零，直接拒绝
func NewCircleSprite(cx, cy, radius int) (*CircleSprite, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("circle r=%d: %w", radius, ErrInvalidRadius)
	}
	return &CircleSprite{
		motion: motion{X: cx, Y: cy, Speed: DefaultSpeed},
		Radius: radius,
	}, nil
}

func (s *CircleSprite) Update(in InputSnapshot) { s.step(in) }

func (s *CircleSprite) Render(fb *FrameBuffer) {
	// 半径已在构造时校验
	_ = fb.DrawCircle(s.X, s.Y, s.Radius)
}

// Cursor 跟随指针位置的方形标记；收到指针坐标之前不绘制
type Cursor struct {
	X, Y    int
	Size    int
	Color   Color
	Visible bool
}

// NewCursor 创建指针标记，size 为边长
func NewCursor(size int, c Color) (*Cursor, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cursor %d: %w", size, ErrInvalidSize)
	}
	return &Cursor{Size: size, Color: c}, nil
}

func (c *Cursor) Update(in InputSnapshot) {
	c.X = int(in.PointerX)
	c.Y = int(in.PointerY)
	c.Visible = in.Pointer
}

func (c *Cursor) Render(fb *FrameBuffer) {
	if !c.Visible {
		return
	}
	half := c.Size / 2
	fb.DrawRect(c.X-half, c.Y-half, c.Size, c.Size, c.Color)
}
