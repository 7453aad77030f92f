package staterepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/pg"
	"go.uber.org/zap"
)

// Cache kinds persisted in the entity_cache table.
const (
	KindStaffName    = "staff_name"
	KindCustomerName = "customer_name"
	KindBookingStaff = "booking_staff"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

// GetCursor returns the persisted sync cursor, or zero time when no run has
// completed yet.
func (r *Repository) GetCursor(ctx context.Context) (time.Time, error) {
	query := `
        SELECT cursor_ts
        FROM sync_state
        WHERE id = 1
    `
	row := r.db.QueryRow(ctx, query)

	var cursor time.Time
	err := row.Scan(&cursor)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		zap.L().Error("can't read sync cursor", zap.Error(err))
		return time.Time{}, err
	}
	return cursor, nil
}

func (r *Repository) SetCursor(ctx context.Context, cursor time.Time) error {
	query := `
        INSERT INTO sync_state (id, cursor_ts)
        VALUES (1, $1)
        ON CONFLICT (id) DO UPDATE SET cursor_ts = EXCLUDED.cursor_ts
    `
	_, err := r.db.Exec(ctx, query, cursor)
	if err != nil {
		zap.L().Error("can't advance sync cursor", zap.Error(err))
		return err
	}
	return nil
}

// LoadCache reads one full cache kind into memory. Called once per run.
func (r *Repository) LoadCache(ctx context.Context, kind string) (map[string]string, error) {
	query := `
        SELECT key, value
        FROM entity_cache
        WHERE kind = $1
    `
	rows, err := r.db.Query(ctx, query, kind)
	if err != nil {
		zap.L().Error("can't load entity cache", zap.String("kind", kind), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			zap.L().Error("can't scan cache entry", zap.String("kind", kind), zap.Error(err))
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}

// SaveCache writes the run's new entries back. Existing keys are overwritten;
// keys absent from entries are untouched.
func (r *Repository) SaveCache(ctx context.Context, kind string, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	query := `
        INSERT INTO entity_cache (kind, key, value)
        VALUES ($1, $2, $3)
        ON CONFLICT (kind, key) DO UPDATE SET value = EXCLUDED.value
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		for key, value := range entries {
			if _, err := r.db.Exec(ctx, query, kind, key, value); err != nil {
				zap.L().Error("can't save cache entry", zap.String("kind", kind), zap.Error(err))
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// Reset clears the sync cursor and every cache kind together, forcing the
// next run to treat the full lookback window as new.
func (r *Repository) Reset(ctx context.Context) error {
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := r.db.Exec(ctx, `DELETE FROM entity_cache`); err != nil {
			zap.L().Error("can't clear entity cache", zap.Error(err))
			return err
		}
		if _, err := r.db.Exec(ctx, `DELETE FROM sync_state`); err != nil {
			zap.L().Error("can't clear sync cursor", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}
