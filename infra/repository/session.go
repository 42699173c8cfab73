package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// ErrSessionClosed is returned when a session is used after WithSession returned.
var ErrSessionClosed = errors.New("session is closed")

// Session is one transactional unit of work handed to a WithSession callback.
// Callers persist their changes with Commit; anything not committed is rolled back.
type Session struct {
	tx        *gorm.DB
	committed bool
	closed    bool
}

// DB returns the transaction handle bound to this session.
func (s *Session) DB() *gorm.DB {
	return s.tx
}

// Commit makes the session's changes durable. Committing twice is a no-op.
func (s *Session) Commit() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.committed {
		return nil
	}
	if err := s.tx.Commit().Error; err != nil {
		return MapGormErrorToDomain(fmt.Errorf("commit: %w", err))
	}
	s.committed = true
	return nil
}

// Closed reports whether the session has been released.
func (s *Session) Closed() bool {
	return s.closed
}

// SessionFactory scopes a function to a fresh transactional session.
type SessionFactory interface {
	WithSession(ctx context.Context, fn func(*Session) error) error
}

// SessionManager produces scoped sessions from the shared connection pool.
type SessionManager struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewSessionManager creates a SessionManager for the given *gorm.DB.
func NewSessionManager(db *gorm.DB, logger *slog.Logger) *SessionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{db: db, logger: logger.With("component", "session")}
}

// WithSession begins a transaction, runs fn inside it and always releases it.
//
// If fn returns an error the session is rolled back and that same error is
// returned; a failing rollback is only logged. If fn panics the session is
// rolled back and the panic resumes. A session fn did not commit is discarded.
func (m *SessionManager) WithSession(ctx context.Context, fn func(*Session) error) error {
	tx := m.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		m.logger.Error("Failed to begin session", "error", tx.Error)
		return fmt.Errorf("begin session: %w", tx.Error)
	}
	s := &Session{tx: tx}

	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("Session rollback because of panic", "panic", r)
			m.release(s)
			panic(r)
		}
	}()

	if err := fn(s); err != nil {
		m.logger.Error("Session rollback because of error", "error", err)
		m.release(s)
		return err
	}
	m.release(s)
	return nil
}

func (m *SessionManager) release(s *Session) {
	if s.closed {
		return
	}
	s.closed = true
	if s.committed {
		return
	}
	if err := s.tx.Rollback().Error; err != nil {
		m.logger.Error("Failed to rollback session", "error", err)
	}
}
