package audit

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/clinicadev/clinic-api/internal/models"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Filter selects audit rows. From and To bound created_at inclusively.
type Filter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time

	Page  int
	Limit int
}

// Normalize clamps paging to sane values.
func (f Filter) Normalize() Filter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > MaxPageSize {
		f.Limit = DefaultPageSize
	}
	return f
}

func (f Filter) offset() int {
	return (f.Page - 1) * f.Limit
}

// Reader lists recorded events, newest first.
type Reader interface {
	List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}

// ======================================================
// GORM
// ======================================================

func (l *Logger) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	f = f.Normalize()

	q := l.db.WithContext(ctx).Model(&models.AuditLog{})
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	err := q.Order("created_at DESC").Order("id DESC").
		Limit(f.Limit).
		Offset(f.offset()).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// ======================================================
// MEMORY
// ======================================================

// MemorySink keeps events in process memory.
type MemorySink struct {
	mu   sync.Mutex
	rows []models.AuditLog
	now  func() time.Time
}

func NewMemorySink() *MemorySink {
	return &MemorySink{now: time.Now}
}

func (m *MemorySink) Log(_ context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row := toRow(ev)
	row.ID = uint(len(m.rows) + 1)
	row.CreatedAt = m.now()
	m.rows = append(m.rows, *row)
	return nil
}

func (m *MemorySink) List(_ context.Context, f Filter) ([]models.AuditLog, int64, error) {
	f = f.Normalize()

	m.mu.Lock()
	var matched []models.AuditLog
	for _, row := range m.rows {
		if f.Action != "" && row.Action != f.Action {
			continue
		}
		if f.Entity != "" && row.Entity != f.Entity {
			continue
		}
		if f.From != nil && row.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && row.CreatedAt.After(*f.To) {
			continue
		}
		matched = append(matched, row)
	}
	m.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	start := min(f.offset(), len(matched))
	end := min(start+f.Limit, len(matched))
	return matched[start:end], total, nil
}

var (
	_ Reader = (*Logger)(nil)
	_ Reader = (*MemorySink)(nil)
	_ Sink   = (*MemorySink)(nil)
)
