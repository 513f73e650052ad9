package engine

import "sync"

// MessageKind 区分帧数据与关闭信号
type MessageKind uint8

const (
	MessageFrame MessageKind = iota
	MessageClose
)

// Message 输出通道上的元素；Close 信号不携带像素
type Message struct {
	Kind MessageKind
	Pix  []byte
}

// Output 有界的帧输出通道：引擎写入，传输层读取
// 消费端调用 Close 表示“接收端已断开”，这是引擎唯一的停止信号
type Output struct {
	ch        chan Message
	done      chan struct{}
	closeOnce sync.Once
}

// NewOutput 创建容量为 capacity 的输出通道（至少为 1）
func NewOutput(capacity int) *Output {
	if capacity < 1 {
		capacity = 1
	}
	return &Output{
		ch:   make(chan Message, capacity),
		done: make(chan struct{}),
	}
}

// Send 阻塞式投递一帧（背压）：通道满时挂起，直到有空位或消费端关闭
// 返回 false 表示消费端已关闭，帧未投递
func (o *Output) Send(pix []byte) bool {
	return o.push(Message{Kind: MessageFrame, Pix: pix})
}

// SignalClose 传输层请求结束出站会话，与帧数据共用同一通道以保证顺序
func (o *Output) SignalClose() bool {
	return o.push(Message{Kind: MessageClose})
}

func (o *Output) push(m Message) bool {
	if o.Closed() {
		return false
	}
	select {
	case o.ch <- m:
		return true
	case <-o.done:
		return false
	}
}

// Messages 消费端读取的通道
func (o *Output) Messages() <-chan Message { return o.ch }

// Done 消费端关闭后被关闭
func (o *Output) Done() <-chan struct{} { return o.done }

// Close 消费端断开；可重复调用
func (o *Output) Close() {
	o.closeOnce.Do(func() { close(o.done) })
}

// Closed 非阻塞检查消费端是否已断开
func (o *Output) Closed() bool {
	select {
	case <-o.done:
		return true
	default:
		return false
	}
}

// Pending 当前排队中的消息数
func (o *Output) Pending() int { return len(o.ch) }
