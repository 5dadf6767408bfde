package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         text PRIMARY KEY,
	data       jsonb NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`

// PGStore is the Postgres Store backing, for deployments where sessions must
// survive a restart. Per-key exclusion uses a transaction-scoped advisory
// lock on the session id.
type PGStore struct {
	pool   *pgxpool.Pool
	ttl    time.Duration
	logger *slog.Logger
	done   chan struct{}
	wg     sync.WaitGroup
}

func NewPGStore(ctx context.Context, databaseURL string, ttl time.Duration, logger *slog.Logger) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create sessions table: %w", err)
	}

	s := &PGStore{pool: pool, ttl: ttl, logger: logger, done: make(chan struct{})}
	if ttl > 0 {
		s.wg.Add(1)
		go s.sweep()
	}
	return s, nil
}

func (s *PGStore) Get(ctx context.Context, id string) (*Session, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM sessions WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &sess, nil
}

func (s *PGStore) Upsert(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO sessions (id, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		sess.ID, data,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *PGStore) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serializes concurrent turns on the same session across processes.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, id); err != nil {
		return nil, fmt.Errorf("advisory lock: %w", err)
	}

	sess := New(id)
	var data []byte
	err = tx.QueryRow(ctx, `SELECT data FROM sessions WHERE id = $1`, id).Scan(&data)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("select session: %w", err)
	}
	if err == nil {
		if err := json.Unmarshal(data, sess); err != nil {
			return nil, fmt.Errorf("decode session %s: %w", id, err)
		}
	}

	if err := fn(sess); err != nil {
		return nil, err
	}

	sess.UpdatedAt = time.Now().UTC()
	updated, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO sessions (id, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		id, updated,
	); err != nil {
		return nil, fmt.Errorf("upsert session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return sess, nil
}

// Close stops the expiry sweep and releases the pool.
func (s *PGStore) Close() {
	close(s.done)
	s.wg.Wait()
	s.pool.Close()
}

func (s *PGStore) sweep() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE updated_at < $1`, time.Now().UTC().Add(-s.ttl))
			cancel()
			if err != nil {
				s.logger.Warn("session sweep failed", "error", err)
				continue
			}
			if tag.RowsAffected() > 0 {
				s.logger.Debug("sessions expired", "count", tag.RowsAffected())
			}
		}
	}
}
