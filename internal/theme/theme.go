package theme

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/phyten/tokenstudio/internal/tokens"
)

var ErrUnknownTheme = errors.New("unknown theme")

// Theme は名前付きで保存されたトークン生成条件を表す。
type Theme struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Spec      tokens.Spec `json:"spec"`
	CreatedAt time.Time   `json:"created_at"`
}

// Manager はテーマの一覧とアクティブなテーマを保持する。
// 複数の goroutine から同時に呼び出してよい。
type Manager struct {
	mu       sync.RWMutex
	themes   map[string]Theme
	active   string
	watchers map[int]func(Theme)
	nextID   int
	logger   *slog.Logger
}

// NewManager は空の Manager を返す。logger が nil の場合はログを破棄する。
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		themes:   make(map[string]Theme),
		watchers: make(map[int]func(Theme)),
		logger:   logger,
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Put はテーマを追加または置き換える。置き換えたテーマがアクティブなら
// ウォッチャーへ通知する。Spec はここで検証される。
func (m *Manager) Put(t Theme) error {
	t.Name = normalizeName(t.Name)
	if t.Name == "" {
		return fmt.Errorf("theme name is empty")
	}
	if _, err := tokens.Build(t.Spec); err != nil {
		return fmt.Errorf("theme %s: %w", t.Name, err)
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	m.mu.Lock()
	_, replaced := m.themes[t.Name]
	m.themes[t.Name] = t
	isActive := m.active == t.Name
	watchers := m.snapshotWatchersLocked()
	m.mu.Unlock()

	m.logger.Debug("theme stored", "name", t.Name, "replaced", replaced)
	if replaced && isActive {
		notify(watchers, t)
	}
	return nil
}

// Get は名前でテーマを返す。
func (m *Manager) Get(name string) (Theme, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.themes[normalizeName(name)]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	return t, nil
}

// List は名前順のテーマ一覧を返す。
func (m *Manager) List() []Theme {
	m.mu.RLock()
	out := make([]Theme, 0, len(m.themes))
	for _, t := range m.themes {
		out = append(out, t)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Remove はテーマを削除する。アクティブなテーマを削除した場合は
// アクティブ状態も解除される。
func (m *Manager) Remove(name string) error {
	key := normalizeName(name)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.themes[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	delete(m.themes, key)
	if m.active == key {
		m.active = ""
	}
	m.logger.Debug("theme removed", "name", key)
	return nil
}

// Activate は指定したテーマをアクティブにし、ウォッチャーへ通知する。
func (m *Manager) Activate(name string) (Theme, error) {
	key := normalizeName(name)
	m.mu.Lock()
	t, ok := m.themes[key]
	if !ok {
		m.mu.Unlock()
		return Theme{}, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	m.active = key
	watchers := m.snapshotWatchersLocked()
	m.mu.Unlock()

	m.logger.Info("theme activated", "name", key)
	notify(watchers, t)
	return t, nil
}

// Active は現在のアクティブテーマを返す。未設定なら false。
func (m *Manager) Active() (Theme, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.active == "" {
		return Theme{}, false
	}
	t, ok := m.themes[m.active]
	return t, ok
}

// Watch はアクティブテーマの変更時に呼ばれる関数を登録し、登録解除用の
// 関数を返す。fn はロックを保持しない状態で呼び出される。
func (m *Manager) Watch(fn func(Theme)) (cancel func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.watchers[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.watchers, id)
			m.mu.Unlock()
		})
	}
}

func (m *Manager) snapshotWatchersLocked() []func(Theme) {
	ids := make([]int, 0, len(m.watchers))
	for id := range m.watchers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(Theme), 0, len(ids))
	for _, id := range ids {
		out = append(out, m.watchers[id])
	}
	return out
}

func notify(watchers []func(Theme), t Theme) {
	for _, fn := range watchers {
		fn(t)
	}
}
