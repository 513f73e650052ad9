package server

import (
	"sort"
	"sync"
)

// SessionManager 管理全部在线会话的生命周期
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

var (
	defaultManager *SessionManager
	once           sync.Once
)

// GetSessionManager 单例会话管理器
func GetSessionManager() *SessionManager {
	once.Do(func() {
		defaultManager = NewSessionManager()
	})
	return defaultManager
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session)}
}

func (m *SessionManager) Add(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

func (m *SessionManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// List 按创建时间排序的会话列表
func (m *SessionManager) List() []*Session {
	m.mu.RLock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// CloseAll 关闭所有会话（进程退出时调用）
func (m *SessionManager) CloseAll() {
	for _, s := range m.List() {
		s.Close()
	}
}
