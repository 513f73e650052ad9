package engine

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	// DefaultTickRate 默认每秒 Tick 数（60 TPS ≈ 16.67ms）
	DefaultTickRate = 60
	// DefaultWidth / DefaultHeight 默认帧尺寸
	DefaultWidth  = 800
	DefaultHeight = 600
)

// ErrInvalidConfig 引擎配置非法
var ErrInvalidConfig = errors.New("engine: invalid config")

// Config 引擎构造参数：帧尺寸、Tick 频率，以及可替换的时钟与日志
type Config struct {
	Width    int
	Height   int
	TickRate int

	Clock  Clock              // 为空时使用 RealClock
	Logger *zap.SugaredLogger // 为空时不输出
}

// Validate 校验配置，一次性返回所有问题
func (c Config) Validate() error {
	var err error
	if c.Width <= 0 {
		err = multierr.Append(err, fmt.Errorf("width=%d: %w", c.Width, ErrInvalidConfig))
	}
	if c.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("height=%d: %w", c.Height, ErrInvalidConfig))
	}
	if c.TickRate <= 0 {
		err = multierr.Append(err, fmt.Errorf("tick rate=%d: %w", c.TickRate, ErrInvalidConfig))
	}
	return err
}

// Period 单个 Tick 的时间预算（整数纳秒）
func (c Config) Period() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// State 调度器状态
type State int32

const (
	StateIdle    State = iota // 尚未启动
	StateRunning              // Tick 循环中
	StateStopped              // 输出通道关闭后终止
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "idle"
	}
}

// Engine 固定频率的模拟/渲染循环：
// 读取输入 → 更新实体 → 合成一帧 → 投递到输出通道 → 睡眠补足 Tick 预算
// 实体集合与输入快照只由调度协程访问，无需加锁
type Engine struct {
	cfg    Config
	period time.Duration
	clock  Clock
	log    *zap.SugaredLogger

	in       <-chan []byte
	out      *Output
	entities *EntitySet
	snapshot InputSnapshot
	metrics  Metrics

	state     atomic.Int32
	startOnce sync.Once
	done      chan struct{}

	// 每秒 Tick 统计（仅诊断用）
	windowStart time.Time
	windowTicks int64
}

// New 创建引擎；in 为传输层投递的原始输入包，out 为帧输出通道
func New(cfg Config, in <-chan []byte, out *Output, entities ...Entity) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("nil output: %w", ErrInvalidConfig)
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	return &Engine{
		cfg:      cfg,
		period:   cfg.Period(),
		clock:    cfg.Clock,
		log:      cfg.Logger,
		in:       in,
		out:      out,
		entities: NewEntitySet(entities...),
		done:     make(chan struct{}),
	}, nil
}

// Start 在独立协程中启动 Tick 循环（只生效一次）
func (e *Engine) Start() {
	e.startOnce.Do(func() { go e.loop() })
}

// Run 在当前协程中执行 Tick 循环直到停止；已启动过则立即返回
func (e *Engine) Run() {
	e.startOnce.Do(e.loop)
}

// Done 循环退出后关闭
func (e *Engine) Done() <-chan struct{} { return e.done }

// State 当前调度器状态
func (e *Engine) State() State { return State(e.state.Load()) }

// Metrics 运行指标（可并发读取）
func (e *Engine) Metrics() *Metrics { return &e.metrics }

// Input 当前输入快照；只应在调度协程内或停止后读取
func (e *Engine) Input() InputSnapshot { return e.snapshot }

func (e *Engine) loop() {
	e.state.Store(int32(StateRunning))
	defer func() {
		e.state.Store(int32(StateStopped))
		close(e.done)
	}()
	e.windowStart = e.clock.Now()
	e.log.Infow("engine started", "width", e.cfg.Width, "height", e.cfg.Height, "period", e.period)
	for e.tick() {
	}
	e.log.Infow("engine stopped", "ticks", atomic.LoadInt64(&e.metrics.TickCount))
}

// tick 执行一个完整 Tick；返回 false 表示输出通道已关闭，循环应终止
func (e *Engine) tick() bool {
	start := e.clock.Now()
	if e.out.Closed() {
		return false
	}

	e.drainInputs()
	e.entities.UpdateAll(e.snapshot)

	fb := NewFrameBuffer(e.cfg.Width, e.cfg.Height)
	e.entities.RenderAll(fb)
	// 移交所有权：此后不再修改 fb.Pix
	if !e.out.Send(fb.Pix) {
		return false
	}
	e.metrics.IncFrames()
	e.reportRate(start)

	elapsed := e.clock.Now().Sub(start)
	e.metrics.AddTick(elapsed.Nanoseconds())
	// 超时则不睡眠，直接进入下一 Tick（不追帧）
	if wait := e.period - elapsed; wait > 0 {
		e.clock.Sleep(wait)
	} else {
		e.metrics.IncOverrun()
	}
	return true
}

// drainInputs 非阻塞读取当前排队的全部输入包
func (e *Engine) drainInputs() {
	for {
		select {
		case p, ok := <-e.in:
			if !ok {
				e.in = nil
				return
			}
			vals, err := DecodePacket(p)
			if err != nil {
				e.metrics.IncMalformed()
				e.log.Debugw("discard input packet", "len", len(p), "err", err)
				continue
			}
			e.metrics.IncDecoded()
			e.snapshot.Apply(vals, e.cfg.Width, e.cfg.Height)
		default:
			return
		}
	}
}

// reportRate 滚动一秒窗口统计 TPS
func (e *Engine) reportRate(start time.Time) {
	if start.Sub(e.windowStart) >= time.Second {
		e.metrics.SetTPS(e.windowTicks)
		e.log.Debugf("tps: %d", e.windowTicks)
		e.windowTicks = 0
		e.windowStart = start
	}
	e.windowTicks++
}
