package tasks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/focusflow/focusflow/internal/common"
	"github.com/focusflow/focusflow/internal/dbx"
	"github.com/focusflow/focusflow/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
// The full task document is stored as JSON beside indexed key columns, so the
// table stays stable while the model grows (subtasks, location reminders).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save upserts a task by (account, id). On conflict the stored document and
// the indexed columns are replaced with the new state.
func (r *SQLiteRepository) Save(ctx context.Context, account string, task *models.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to encode task: %w", err)
	}

	query := `INSERT INTO tasks (account, id, project_id, completed, data)
			values (?, ?, ?, ?, ?)
			ON CONFLICT(account, id) DO UPDATE SET project_id = excluded.project_id,
				completed = excluded.completed,
				data = excluded.data
	`
	_, err = r.db.ExecContext(ctx, query, account, task.ID, task.ProjectID, task.Completed, string(data))
	if err != nil {
		return fmt.Errorf("failed to upsert task: %w", err)
	}
	return nil
}

// SaveAll upserts a batch of tasks. When bound to a plain database handle
// the writes run in one transaction; when already inside a transaction they
// join it.
func (r *SQLiteRepository) SaveAll(ctx context.Context, account string, items []models.Task) error {
	db, ok := r.db.(*sql.DB)
	if !ok {
		return r.saveAll(ctx, r, account, items)
	}
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return r.saveAll(ctx, NewSQLiteRepository(tx), account, items)
	})
}

func (r *SQLiteRepository) saveAll(ctx context.Context, repo *SQLiteRepository, account string, items []models.Task) error {
	for i := range items {
		if err := repo.Save(ctx, account, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetAll lists every stored task of the account. Order is unspecified.
func (r *SQLiteRepository) GetAll(ctx context.Context, account string) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, `select data from tasks where account=?`, account)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	result := []models.Task{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var item models.Task
		if err := json.Unmarshal([]byte(data), &item); err != nil {
			return nil, fmt.Errorf("failed to decode task: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns a single task or common.ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, account, id string) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, `select data from tasks where account=? and id=?`, account, id)

	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select task: %w", err)
	}

	task := &models.Task{}
	if err := json.Unmarshal([]byte(data), task); err != nil {
		return nil, fmt.Errorf("failed to decode task: %w", err)
	}
	return task, nil
}

// Delete removes a task by id. An absent id is not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, account, id string) error {
	_, err := r.db.ExecContext(ctx, `delete from tasks where account=? and id=?`, account, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
