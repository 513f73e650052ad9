package engine

// Entity 可更新、可绘制的模拟对象
// Update 只读取输入快照修改自身状态；Render 只向缓冲绘制，不观察其他实体
type Entity interface {
	Update(in InputSnapshot)
	Render(fb *FrameBuffer)
}

// EntitySet 按插入顺序保存实体；顺序决定重叠时的覆盖关系
type EntitySet struct {
	items []Entity
}

// NewEntitySet 创建实体集合，nil 实体被忽略
func NewEntitySet(entities ...Entity) *EntitySet {
	s := &EntitySet{items: make([]Entity, 0, len(entities))}
	for _, e := range entities {
		if e != nil {
			s.items = append(s.items, e)
		}
	}
	return s
}

// Len 实体数量
func (s *EntitySet) Len() int { return len(s.items) }

// UpdateAll 依次更新每个实体
func (s *EntitySet) UpdateAll(in InputSnapshot) {
	for _, e := range s.items {
		e.Update(in)
	}
}

// RenderAll 依次绘制，后绘制的实体覆盖先绘制的
func (s *EntitySet) RenderAll(fb *FrameBuffer) {
	for _, e := range s.items {
		e.Render(fb)
	}
}
