package server

import (
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"ssrarena/engine"
)

// Session 一个 WebSocket 连接对应一个会话：独立的引擎、输入队列与帧输出通道
// 引擎在自己的协程中推进，传输层只通过通道与其交互
type Session struct {
	ID        string
	CreatedAt time.Time

	width  int
	height int

	inbound chan []byte
	out     *engine.Output
	engine  *engine.Engine
	metrics SessionMetrics

	// 最近一帧已写出的像素，只读（移交后不再被修改）
	lastFrame atomic.Pointer[[]byte]
}

// DefaultEntities 新会话的初始实体：半透明红色矩形 + 指针标记
func DefaultEntities() ([]engine.Entity, error) {
	rect, err := engine.NewRectSprite(0, 0, 50, 20, engine.Color{R: 255, A: 127})
	if err != nil {
		return nil, err
	}
	cursor, err := engine.NewCursor(8, engine.Color{R: 255, G: 255, B: 255, A: 160})
	if err != nil {
		return nil, err
	}
	return []engine.Entity{rect, cursor}, nil
}

// NewSession 创建会话并初始化引擎（尚未启动）
func NewSession(cfg Config, entities ...engine.Entity) (*Session, error) {
	if len(entities) == 0 {
		var err error
		if entities, err = DefaultEntities(); err != nil {
			return nil, err
		}
	}
	id := uuid.New().String()
	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		width:     cfg.Width,
		height:    cfg.Height,
		inbound:   make(chan []byte, max(cfg.InboundQueue, 1)),
		out:       engine.NewOutput(cfg.OutboundQueue),
	}
	ecfg := cfg.EngineConfig()
	ecfg.Logger = Log.Named("engine").With("session", id)
	eng, err := engine.New(ecfg, s.inbound, s.out, entities...)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	s.engine = eng
	return s, nil
}

// Start 启动引擎的 Tick 循环
func (s *Session) Start() { s.engine.Start() }

// Close 消费端断开：引擎在下一个 Tick 检测到后退出
func (s *Session) Close() { s.out.Close() }

// Done 引擎循环退出后关闭
func (s *Session) Done() <-chan struct{} { return s.engine.Done() }

// Output 帧输出通道（由写协程消费）
func (s *Session) Output() *engine.Output { return s.out }

// OnInput 入站输入包；不阻塞读协程，队列满时丢弃
func (s *Session) OnInput(p []byte) {
	select {
	case s.inbound <- p:
		s.metrics.IncAccepted()
	default:
		s.metrics.IncChanFullDiscarded()
	}
}

// recordFrame 写协程写出一帧后记录，用于预览
func (s *Session) recordFrame(pix []byte) {
	s.lastFrame.Store(&pix)
	s.metrics.AddFrame(len(pix))
}

// LastFrame 最近一帧的图像视图（非预乘 RGBA）
func (s *Session) LastFrame() (*image.NRGBA, bool) {
	p := s.lastFrame.Load()
	if p == nil {
		return nil, false
	}
	return &image.NRGBA{
		Pix:    *p,
		Stride: s.width * engine.Depth,
		Rect:   image.Rect(0, 0, s.width, s.height),
	}, true
}

// Snapshot 会话状态与指标
func (s *Session) Snapshot() map[string]any {
	return map[string]any{
		"id":        s.ID,
		"created":   s.CreatedAt,
		"state":     s.engine.State().String(),
		"pending":   s.out.Pending(),
		"engine":    s.engine.Metrics().Snapshot(),
		"transport": s.metrics.Snapshot(),
	}
}
