package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/speakit/backend/internal/model/analysis"
	"github.com/zhouzirui/speakit/backend/internal/model/session"

	_ "modernc.org/sqlite"
)

// Store 基于 SQLite 的持久化会话仓库，实现 session.Store。
type Store struct {
	db *sql.DB
}

// Open 打开（或创建）数据库文件并确保表结构存在。
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close 关闭底层数据库连接。
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  seq        INTEGER PRIMARY KEY AUTOINCREMENT,
  id         TEXT NOT NULL UNIQUE,
  user_id    TEXT NOT NULL DEFAULT '',
  ts         INTEGER NOT NULL,
  analysis   TEXT NOT NULL,
  audio_size INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sessions_user_ts ON sessions (user_id, ts DESC);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

// Append 插入一条会话记录。seq 自增列保证同一时间戳的记录维持写入顺序。
func (s *Store) Append(ctx context.Context, sess session.Session) (string, error) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.Timestamp.IsZero() {
		sess.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(sess.Analysis)
	if err != nil {
		return "", fmt.Errorf("marshal analysis: %w", err)
	}

	const stmt = `INSERT INTO sessions (id, user_id, ts, analysis, audio_size) VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, stmt,
		sess.ID,
		sess.UserID,
		sess.Timestamp.UnixMilli(),
		string(payload),
		sess.AudioSizeBytes,
	); err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}

	return sess.ID, nil
}

// Get 按 ID 查找会话。
func (s *Store) Get(ctx context.Context, id string) (session.Session, error) {
	const query = `SELECT id, user_id, ts, analysis, audio_size FROM sessions WHERE id = ?`
	row := s.db.QueryRowContext(ctx, query, id)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Session{}, session.ErrNotFound
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("query session: %w", err)
	}
	return sess, nil
}

// ListByUser 返回用户全部会话，时间戳降序，平局按写入顺序。
func (s *Store) ListByUser(ctx context.Context, userID string) ([]session.Session, error) {
	if userID == "" {
		return []session.Session{}, nil
	}

	const query = `SELECT id, user_id, ts, analysis, audio_size FROM sessions WHERE user_id = ? ORDER BY ts DESC, seq ASC`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]session.Session, 0, 8)
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (session.Session, error) {
	var (
		sess      session.Session
		tsMillis  int64
		rawResult string
	)
	if err := row.Scan(&sess.ID, &sess.UserID, &tsMillis, &rawResult, &sess.AudioSizeBytes); err != nil {
		return session.Session{}, err
	}

	sess.Timestamp = time.UnixMilli(tsMillis).UTC()

	var result analysis.Result
	if err := json.Unmarshal([]byte(rawResult), &result); err != nil {
		return session.Session{}, fmt.Errorf("unmarshal analysis: %w", err)
	}
	sess.Analysis = result
	return sess, nil
}
