package server

import (
	"sync/atomic"
)

// SessionMetrics 传输层的会话指标（引擎内部指标见 engine.Metrics）
type SessionMetrics struct {
	InputsAccepted    int64 // 进入输入队列的二进制包
	ChanFullDiscarded int64 // 因输入队列满被丢弃的包
	TextIgnored       int64 // 被忽略的文本消息
	FramesWritten     int64 // 写出到 WS 的帧
	BytesWritten      int64 // 写出的帧字节数
}

func (m *SessionMetrics) IncAccepted()          { atomic.AddInt64(&m.InputsAccepted, 1) }
func (m *SessionMetrics) IncChanFullDiscarded() { atomic.AddInt64(&m.ChanFullDiscarded, 1) }
func (m *SessionMetrics) IncTextIgnored()       { atomic.AddInt64(&m.TextIgnored, 1) }
func (m *SessionMetrics) AddFrame(n int) {
	atomic.AddInt64(&m.FramesWritten, 1)
	atomic.AddInt64(&m.BytesWritten, int64(n))
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *SessionMetrics) Snapshot() map[string]any {
	return map[string]any{
		"inputs_accepted":     atomic.LoadInt64(&m.InputsAccepted),
		"chan_full_discarded": atomic.LoadInt64(&m.ChanFullDiscarded),
		"text_ignored":        atomic.LoadInt64(&m.TextIgnored),
		"frames_written":      atomic.LoadInt64(&m.FramesWritten),
		"bytes_written":       atomic.LoadInt64(&m.BytesWritten),
	}
}
