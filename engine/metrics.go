package engine

import "sync/atomic"

// Metrics 记录引擎运行期的关键指标；调度协程写，HTTP 协程读
type Metrics struct {
	TickCount        int64 // 已执行的 Tick 次数
	FramesSent       int64 // 成功投递到输出通道的帧数
	PacketsDecoded   int64 // 成功解码的输入包
	PacketsMalformed int64 // 因长度非法被丢弃的输入包
	Overruns         int64 // 超出 Tick 预算（跳过睡眠）的次数
	TotalTickNs      int64 // Tick 累计耗时（纳秒，不含睡眠）
	LastTPS          int64 // 最近一秒观测到的 Tick 数
}

func (m *Metrics) IncFrames()     { atomic.AddInt64(&m.FramesSent, 1) }
func (m *Metrics) IncDecoded()    { atomic.AddInt64(&m.PacketsDecoded, 1) }
func (m *Metrics) IncMalformed()  { atomic.AddInt64(&m.PacketsMalformed, 1) }
func (m *Metrics) IncOverrun()    { atomic.AddInt64(&m.Overruns, 1) }
func (m *Metrics) SetTPS(n int64) { atomic.StoreInt64(&m.LastTPS, n) }
func (m *Metrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *Metrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":        tick,
		"frames_sent":       atomic.LoadInt64(&m.FramesSent),
		"packets_decoded":   atomic.LoadInt64(&m.PacketsDecoded),
		"packets_malformed": atomic.LoadInt64(&m.PacketsMalformed),
		"overruns":          atomic.LoadInt64(&m.Overruns),
		"tps":               atomic.LoadInt64(&m.LastTPS),
		"avg_tick_ms":       avgMs,
	}
}
