package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"invare-backend/internal/domain"
	"invare-backend/internal/repository"

	"github.com/lib/pq"
)

type modificationRepository struct {
	db *sql.DB
}

func NewModificationRepository(db *sql.DB) repository.ModificationRepository {
	return &modificationRepository{db: db}
}

const modificationColumns = `id, title, description, priority, project_id, user_id, status, COALESCE(extra_payment_amount, 0), cost_accepted, attached_files, created_on, updated_on`

func scanModification(row interface{ Scan(...interface{}) error }) (*domain.Modification, error) {
	m := &domain.Modification{}
	var filesJSON []byte
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.Priority, &m.ProjectID, &m.UserID,
		&m.Status, &m.ExtraPaymentAmount, &m.CostAccepted, &filesJSON, &m.CreatedOn, &m.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if len(filesJSON) > 0 {
		if err := json.Unmarshal(filesJSON, &m.AttachedFiles); err != nil {
			return nil, fmt.Errorf("decode attached files: %w", err)
		}
	}
	return m, nil
}

func (r *modificationRepository) Create(ctx context.Context, m *domain.Modification) error {
	filesJSON, err := json.Marshal(m.AttachedFiles)
	if err != nil {
		return fmt.Errorf("encode attached files: %w", err)
	}
	query := `INSERT INTO modifications (title, description, priority, project_id, user_id, status, extra_payment_amount, cost_accepted, attached_files, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, 0), $8, $9, $10, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query, m.Title, m.Description, m.Priority, m.ProjectID,
		m.UserID, m.Status, m.ExtraPaymentAmount, m.CostAccepted, filesJSON, time.Now()).Scan(&m.ID)
}

func (r *modificationRepository) GetByID(ctx context.Context, id int32) (*domain.Modification, error) {
	query := `SELECT ` + modificationColumns + ` FROM modifications WHERE id = $1`
	return scanModification(r.db.QueryRowContext(ctx, query, id))
}

func (r *modificationRepository) ListByIDs(ctx context.Context, ids []int32) ([]domain.Modification, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + modificationColumns + ` FROM modifications WHERE id = ANY($1) ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mods []domain.Modification
	for rows.Next() {
		m, err := scanModification(rows)
		if err != nil {
			return nil, err
		}
		mods = append(mods, *m)
	}
	return mods, rows.Err()
}

func (r *modificationRepository) Update(ctx context.Context, m *domain.Modification) error {
	filesJSON, err := json.Marshal(m.AttachedFiles)
	if err != nil {
		return fmt.Errorf("encode attached files: %w", err)
	}
	query := `UPDATE modifications SET title=$1, description=$2, priority=$3, project_id=$4, user_id=$5,
	          status=$6, extra_payment_amount=NULLIF($7, 0), cost_accepted=$8, attached_files=$9, updated_on=$10 WHERE id=$11`
	_, err = r.db.ExecContext(ctx, query, m.Title, m.Description, m.Priority, m.ProjectID, m.UserID,
		m.Status, m.ExtraPaymentAmount, m.CostAccepted, filesJSON, time.Now(), m.ID)
	return err
}

func (r *modificationRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM modifications WHERE id = $1`, id)
	return err
}

func (r *modificationRepository) DeleteByProject(ctx context.Context, projectID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM modifications WHERE project_id = $1`, projectID)
	return err
}
