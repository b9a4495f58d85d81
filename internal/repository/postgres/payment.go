package postgres

import (
	"context"
	"database/sql"
	"time"

	"invare-backend/internal/domain"
	"invare-backend/internal/repository"

	"github.com/lib/pq"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, title_en, title_ar, COALESCE(description_en, ''), COALESCE(description_ar, ''), project_id, user_id, amount, due_date, status, created_on, updated_on`

func scanPayment(row interface{ Scan(...interface{}) error }) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := row.Scan(&p.ID, &p.Title.En, &p.Title.Ar, &p.Description.En, &p.Description.Ar,
		&p.ProjectID, &p.UserID, &p.Amount, &p.DueDate, &p.Status, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (title_en, title_ar, description_en, description_ar, project_id, user_id, amount, due_date, status, created_on, updated_on)
	          VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.Title.En, p.Title.Ar, p.Description.En, p.Description.Ar,
		p.ProjectID, p.UserID, p.Amount, p.DueDate, p.Status, time.Now()).Scan(&p.ID)
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.db.QueryRowContext(ctx, query, id))
}

func (r *paymentRepository) ListByIDs(ctx context.Context, ids []int32) ([]domain.Payment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = ANY($1) ORDER BY due_date`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	query := `UPDATE payments SET title_en=$1, title_ar=$2, description_en=NULLIF($3, ''), description_ar=NULLIF($4, ''),
	          project_id=$5, user_id=$6, amount=$7, due_date=$8, status=$9, updated_on=$10 WHERE id=$11`
	_, err := r.db.ExecContext(ctx, query, p.Title.En, p.Title.Ar, p.Description.En, p.Description.Ar,
		p.ProjectID, p.UserID, p.Amount, p.DueDate, p.Status, time.Now(), p.ID)
	return err
}

func (r *paymentRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	return err
}

func (r *paymentRepository) DeleteByProject(ctx context.Context, projectID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE project_id = $1`, projectID)
	return err
}
