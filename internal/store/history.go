package store

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/DaanHessen/ragterm/internal/api"
)

// Entry is one answered query.
type Entry struct {
	ID             uuid.UUID
	Query          string
	Answer         string
	Sections       []string
	DocumentsUsed  int
	ProcessingTime float64
	MaxSections    *int
	MaxDocs        *int
	ServerTS       string
	CreatedAt      time.Time
}

// NewEntry builds an entry from a request and its response.
func NewEntry(req api.QueryRequest, resp api.QueryResponse) Entry {
	return Entry{
		ID:             uuid.New(),
		Query:          req.Query,
		Answer:         resp.Answer,
		Sections:       resp.Sections,
		DocumentsUsed:  resp.DocumentsUsed,
		ProcessingTime: resp.ProcessingTime,
		MaxSections:    req.MaxSections,
		MaxDocs:        req.MaxDocs,
		ServerTS:       resp.Timestamp,
		CreatedAt:      time.Now().UTC(),
	}
}

// History is what the UI needs from a history backend.
type History interface {
	Insert(ctx context.Context, e Entry) error
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
	Get(ctx context.Context, id uuid.UUID) (Entry, error)
	Clear(ctx context.Context) error
}

// historyRow maps the query_history table.
type historyRow struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Query          string
	Answer         string
	Sections       []byte `gorm:"type:jsonb"`
	DocumentsUsed  int
	ProcessingTime float64
	MaxSections    *int
	MaxDocs        *int
	ServerTS       string `gorm:"column:server_ts"`
	CreatedAt      time.Time
}

func (historyRow) TableName() string { return "query_history" }

func toRow(e Entry) (historyRow, error) {
	sections := e.Sections
	if sections == nil {
		sections = []string{}
	}
	b, err := json.Marshal(sections)
	if err != nil {
		return historyRow{}, errors.Wrap(err, "encode sections")
	}
	return historyRow{
		ID:             e.ID,
		Query:          e.Query,
		Answer:         e.Answer,
		Sections:       b,
		DocumentsUsed:  e.DocumentsUsed,
		ProcessingTime: e.ProcessingTime,
		MaxSections:    e.MaxSections,
		MaxDocs:        e.MaxDocs,
		ServerTS:       e.ServerTS,
		CreatedAt:      e.CreatedAt,
	}, nil
}

func (r historyRow) entry() Entry {
	var sections []string
	if len(r.Sections) > 0 {
		if err := json.Unmarshal(r.Sections, &sections); err != nil {
			log.Printf("history %s: unreadable sections column: %v", r.ID, err)
		}
	}
	return Entry{
		ID:             r.ID,
		Query:          r.Query,
		Answer:         r.Answer,
		Sections:       sections,
		DocumentsUsed:  r.DocumentsUsed,
		ProcessingTime: r.ProcessingTime,
		MaxSections:    r.MaxSections,
		MaxDocs:        r.MaxDocs,
		ServerTS:       r.ServerTS,
		CreatedAt:      r.CreatedAt,
	}
}

// HistoryRepo stores entries in Postgres.
type HistoryRepo struct{ db *DB }

func NewHistoryRepo(db *DB) *HistoryRepo { return &HistoryRepo{db: db} }

func (h *HistoryRepo) Insert(ctx context.Context, e Entry) error {
	row, err := toRow(e)
	if err != nil {
		return err
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return errors.Wrap(h.db.gorm.WithContext(ctx).Create(&row).Error, "insert history")
}

// ListRecent returns up to limit entries, newest first.
func (h *HistoryRepo) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	var rows []historyRow
	q := h.db.gorm.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list history")
	}
	out := make([]Entry, len(rows))
	for i, r := range rows {
		out[i] = r.entry()
	}
	return out, nil
}

func (h *HistoryRepo) Get(ctx context.Context, id uuid.UUID) (Entry, error) {
	var row historyRow
	err := h.db.gorm.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, errors.Wrap(err, "get history")
	}
	return row.entry(), nil
}

func (h *HistoryRepo) Clear(ctx context.Context) error {
	return h.db.WithTx(ctx, func(tx *gorm.DB) error {
		return errors.Wrap(tx.Exec(`DELETE FROM query_history`).Error, "clear history")
	})
}

// MemoryHistory keeps entries for the lifetime of the process. It is used
// when no database is configured.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryHistory() *MemoryHistory { return &MemoryHistory{} }

func (m *MemoryHistory) Insert(_ context.Context, e Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	m.mu.Lock()
	m.entries = append(m.entries, e)
	m.mu.Unlock()
	return nil
}

func (m *MemoryHistory) ListRecent(_ context.Context, limit int) ([]Entry, error) {
	m.mu.Lock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	m.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryHistory) Get(_ context.Context, id uuid.UUID) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

func (m *MemoryHistory) Clear(context.Context) error {
	m.mu.Lock()
	m.entries = nil
	m.mu.Unlock()
	return nil
}
