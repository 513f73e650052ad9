package engine

import "time"

// Clock 调度器使用的时间源，测试中可替换
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// RealClock 系统时钟
var RealClock Clock = realClock{}
