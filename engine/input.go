package engine

import (
	"encoding/binary"
	"errors"
)

// ErrOddPacket 输入包长度必须为偶数（每两个字节一个 uint16）
var ErrOddPacket = errors.New("engine: odd-length input packet")

// 方向索引，对应 InputSnapshot.Keys
const (
	KeyLeft = iota
	KeyUp
	KeyRight
	KeyDown
)

// 解码后数值序列的位置含义
const (
	idxPointerX = 0
	idxPointerY = 1
	idxKeys     = 2
)

// InputSnapshot 归一化后的输入状态：指针位置 + 四个方向量
// 每个 Tick 由到达的输入包原地更新，缺失字段保持上一次的值
type InputSnapshot struct {
	PointerX uint
	PointerY uint
	Pointer  bool // 是否收到过指针坐标
	Keys     [4]uint
}

// DecodePacket 将二进制输入包按小端序两两分组解码为 uint16 序列
func DecodePacket(p []byte) ([]uint16, error) {
	if len(p)%2 != 0 {
		return nil, ErrOddPacket
	}
	vals := make([]uint16, len(p)/2)
	for i := range vals {
		vals[i] = binary.LittleEndian.Uint16(p[i*2:])
	}
	return vals, nil
}

// Apply 按位置写入解码值；指针坐标裁剪到缓冲尺寸内
func (s *InputSnapshot) Apply(vals []uint16, width, height int) {
	if len(vals) > idxPointerX {
		s.PointerX = clampCoord(vals[idxPointerX], width)
		s.Pointer = true
	}
	if len(vals) > idxPointerY {
		s.PointerY = clampCoord(vals[idxPointerY], height)
	}
	for k := range s.Keys {
		if idx := idxKeys + k; len(vals) > idx {
			s.Keys[k] = uint(vals[idx])
		}
	}
}

func clampCoord(v uint16, limit int) uint {
	if limit <= 0 {
		return 0
	}
	if int(v) >= limit {
		return uint(limit - 1)
	}
	return uint(v)
}
