package state

import (
	"sync"
)

// Manager хранит контексты диалогов пользователей в памяти процесса.
// После перезапуска все незавершённые диалоги теряются.
type Manager struct {
	mu       sync.RWMutex
	contexts map[int64]Context // telegramID -> Context
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		contexts: make(map[int64]Context),
	}
}

// Get возвращает копию контекста пользователя (пустой, если его ещё нет)
func (sm *Manager) Get(telegramID int64) Context {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.contexts[telegramID]
}

// Update изменяет контекст пользователя, создавая его при первом обращении.
// Возвращает контекст после изменения.
func (sm *Manager) Update(telegramID int64, fn func(c *Context)) Context {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	c := sm.contexts[telegramID]
	fn(&c)
	sm.contexts[telegramID] = c
	return c
}

// SetPending устанавливает ожидаемое действие, не трогая выборы
func (sm *Manager) SetPending(telegramID int64, action PendingAction) {
	sm.Update(telegramID, func(c *Context) {
		c.Pending = action
	})
}

// Clear удаляет контекст пользователя целиком
func (sm *Manager) Clear(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.contexts, telegramID)
}
