package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Store 会话仓库：只追加，不更新、不删除。
type Store interface {
	// Append 保存一条会话记录。ID 为空时由仓库分配，时间戳为零值时取当前时间，
	// 重复 ID 返回错误。
	Append(ctx context.Context, s Session) (string, error)
	// Get 按 ID 查找，不存在时返回 ErrNotFound。
	Get(ctx context.Context, id string) (Session, error)
	// ListByUser 返回指定用户的会话，按时间戳降序，同刻记录保持写入顺序。
	// 未知用户返回空切片；UserID 为空的会话不参与任何用户查询。
	ListByUser(ctx context.Context, userID string) ([]Session, error)
}

// MemoryStore implements Store with an in-memory map, suitable for MVP.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Session
	order []string // append order, stabilizes timestamp ties
}

// NewMemoryStore bootstraps an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]Session),
	}
}

// Append 保存会话并返回其标识符。
func (s *MemoryStore) Append(_ context.Context, sess Session) (string, error) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.Timestamp.IsZero() {
		sess.Timestamp = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 只追加：与 SQLite 后端的唯一约束保持一致，拒绝重复 ID。
	if _, exists := s.items[sess.ID]; exists {
		return "", fmt.Errorf("insert session: duplicate id %s", sess.ID)
	}
	s.items[sess.ID] = sess
	s.order = append(s.order, sess.ID)

	return sess.ID, nil
}

// Get 按 ID 查找会话。
func (s *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.items[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

// ListByUser 返回用户全部会话，按时间戳降序。
func (s *MemoryStore) ListByUser(_ context.Context, userID string) ([]Session, error) {
	s.mu.RLock()
	matched := make([]Session, 0, 8)
	for _, id := range s.order {
		sess := s.items[id]
		if userID != "" && sess.UserID == userID {
			matched = append(matched, sess)
		}
	}
	s.mu.RUnlock()

	// 稳定排序保证同一时间戳的记录维持写入顺序。
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	return matched, nil
}
