package dialog

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/smartcounter/internal/i18n"
)

type Store interface {
	Get(ctx context.Context, chatID int64) (*Item, error)
	Set(ctx context.Context, chatID int64, lang i18n.Language) error
	Reset(ctx context.Context, chatID int64) error
}

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Get(ctx context.Context, chatID int64) (*Item, error) {
	row := r.pool.QueryRow(ctx, `SELECT lang FROM chat_prefs WHERE chat_id = $1`, chatID)
	var lang string
	if err := row.Scan(&lang); err != nil {
		// если строки нет — язык по умолчанию
		if errors.Is(err, pgx.ErrNoRows) {
			return &Item{ChatID: chatID, Lang: i18n.LangEN}, nil
		}
		return nil, err
	}
	return &Item{ChatID: chatID, Lang: i18n.Parse(lang)}, nil
}

func (r *Repo) Set(ctx context.Context, chatID int64, lang i18n.Language) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO chat_prefs (chat_id, lang, updated_at)
		VALUES ($1,$2,now())
		ON CONFLICT (chat_id) DO UPDATE SET
		  lang=$2, updated_at=now()
	`, chatID, string(lang))
	return err
}

func (r *Repo) Reset(ctx context.Context, chatID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM chat_prefs WHERE chat_id = $1`, chatID)
	return err
}

// MemoryRepo — если Postgres не настроен, язык живёт до перезапуска.
type MemoryRepo struct {
	mu    sync.RWMutex
	langs map[int64]i18n.Language
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{langs: map[int64]i18n.Language{}}
}

func (m *MemoryRepo) Get(_ context.Context, chatID int64) (*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lang, ok := m.langs[chatID]
	if !ok {
		lang = i18n.LangEN
	}
	return &Item{ChatID: chatID, Lang: lang}, nil
}

func (m *MemoryRepo) Set(_ context.Context, chatID int64, lang i18n.Language) error {
	m.mu.Lock()
	m.langs[chatID] = lang
	m.mu.Unlock()
	return nil
}

func (m *MemoryRepo) Reset(_ context.Context, chatID int64) error {
	m.mu.Lock()
	delete(m.langs, chatID)
	m.mu.Unlock()
	return nil
}
