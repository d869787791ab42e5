package vault

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/focusflow/focusflow/internal/dbx"
	"github.com/focusflow/focusflow/internal/models"
)

// SQLiteRepository implements Repository using a DBTX. Media payloads live
// inside the JSON document; vault rows can be large.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save upserts a vault item by (account, id).
func (r *SQLiteRepository) Save(ctx context.Context, account string, item *models.VaultItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode vault item: %w", err)
	}

	query := `INSERT INTO vault (account, id, data) values (?, ?, ?)
			ON CONFLICT(account, id) DO UPDATE SET data = excluded.data`
	if _, err := r.db.ExecContext(ctx, query, account, item.ID, data); err != nil {
		return fmt.Errorf("failed to upsert vault item: %w", err)
	}
	return nil
}

// SaveAll upserts a batch of items in one transaction when bound to a plain
// database handle.
func (r *SQLiteRepository) SaveAll(ctx context.Context, account string, items []models.VaultItem) error {
	db, ok := r.db.(*sql.DB)
	if !ok {
		return r.saveAll(ctx, r, account, items)
	}
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return r.saveAll(ctx, NewSQLiteRepository(tx), account, items)
	})
}

func (r *SQLiteRepository) saveAll(ctx context.Context, repo *SQLiteRepository, account string, items []models.VaultItem) error {
	for i := range items {
		if err := repo.Save(ctx, account, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetAll lists every stored item of the account. Order is unspecified.
func (r *SQLiteRepository) GetAll(ctx context.Context, account string) ([]models.VaultItem, error) {
	rows, err := r.db.QueryContext(ctx, `select data from vault where account=?`, account)
	if err != nil {
		return nil, fmt.Errorf("failed to select vault items: %w", err)
	}
	defer rows.Close()

	result := []models.VaultItem{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var item models.VaultItem
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, fmt.Errorf("failed to decode vault item: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes an item by id. An absent id is not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, account, id string) error {
	if _, err := r.db.ExecContext(ctx, `delete from vault where account=? and id=?`, account, id); err != nil {
		return fmt.Errorf("failed to delete vault item: %w", err)
	}
	return nil
}
