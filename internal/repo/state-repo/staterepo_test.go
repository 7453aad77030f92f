package staterepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/pg"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

func passthroughTx(m *pg.MockTXManager) {
	m.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()
}

func TestRepository_GetCursor(t *testing.T) {
	repo, mock, _ := NewMock(t)
	query := regexp.QuoteMeta("SELECT cursor_ts")
	cursor := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    time.Time
	}{
		{
			name: "Cursor exists",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"cursor_ts"}).AddRow(cursor)
				mock.ExpectQuery(query).WillReturnRows(rows)
			},
			expectErr: false,
			result:    cursor,
		},
		{
			name: "No cursor yet",
			mockSetup: func() {
				mock.ExpectQuery(query).WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    time.Time{},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetCursor(context.Background())
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_SetCursor(t *testing.T) {
	repo, mock, _ := NewMock(t)
	query := regexp.QuoteMeta("INSERT INTO sync_state")
	cursor := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Cursor upserted", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(cursor).WillReturnResult(pgxmock.NewResult("INSERT", 1))
		assert.NoError(t, repo.SetCursor(context.Background(), cursor))
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(cursor).WillReturnError(errors.New("database error"))
		assert.Error(t, repo.SetCursor(context.Background(), cursor))
	})
}

func TestRepository_LoadCache(t *testing.T) {
	repo, mock, _ := NewMock(t)
	query := regexp.QuoteMeta("FROM entity_cache")

	t.Run("Entries loaded", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"key", "value"}).
			AddRow("TM-1", "Alex Petrov").
			AddRow("TM-2", "")
		mock.ExpectQuery(query).WithArgs(KindStaffName).WillReturnRows(rows)

		result, err := repo.LoadCache(context.Background(), KindStaffName)
		assert.NoError(t, err)
		assert.Equal(t, map[string]string{"TM-1": "Alex Petrov", "TM-2": ""}, result)
	})

	t.Run("Empty cache", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(KindCustomerName).
			WillReturnRows(pgxmock.NewRows([]string{"key", "value"}))

		result, err := repo.LoadCache(context.Background(), KindCustomerName)
		assert.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(KindStaffName).WillReturnError(errors.New("database error"))

		result, err := repo.LoadCache(context.Background(), KindStaffName)
		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestRepository_SaveCache(t *testing.T) {
	query := regexp.QuoteMeta("INSERT INTO entity_cache")

	t.Run("Entries saved in one transaction", func(t *testing.T) {
		repo, mock, txManager := NewMock(t)
		passthroughTx(txManager)
		mock.ExpectExec(query).WithArgs(KindStaffName, "TM-1", "Alex Petrov").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.SaveCache(context.Background(), KindStaffName, map[string]string{"TM-1": "Alex Petrov"})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty entries are a no-op", func(t *testing.T) {
		repo, mock, _ := NewMock(t)
		err := repo.SaveCache(context.Background(), KindStaffName, nil)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		repo, mock, txManager := NewMock(t)
		passthroughTx(txManager)
		mock.ExpectExec(query).WithArgs(KindStaffName, "TM-1", "Alex Petrov").
			WillReturnError(errors.New("database error"))

		err := repo.SaveCache(context.Background(), KindStaffName, map[string]string{"TM-1": "Alex Petrov"})
		assert.Error(t, err)
	})
}

func TestRepository_Reset(t *testing.T) {
	t.Run("Cursor and caches cleared together", func(t *testing.T) {
		repo, mock, txManager := NewMock(t)
		passthroughTx(txManager)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM entity_cache")).
			WillReturnResult(pgxmock.NewResult("DELETE", 3))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sync_state")).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, repo.Reset(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		repo, mock, txManager := NewMock(t)
		passthroughTx(txManager)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM entity_cache")).
			WillReturnError(errors.New("database error"))

		assert.Error(t, repo.Reset(context.Background()))
	})
}
