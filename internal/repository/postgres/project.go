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

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

const projectColumns = `id, name_en, name_ar, description_en, description_ar, COALESCE(logo, ''), user_id, total_cost, phases, start_date, progress, progress_type, active_modification_id, payments, modifications, employees, COALESCE(whatsapp_group_link, ''), COALESCE(portal_code, ''), COALESCE(project_url, ''), created_on, updated_on`

func scanProject(row interface{ Scan(...interface{}) error }) (*domain.Project, error) {
	p := &domain.Project{}
	var phasesJSON []byte
	var startDate sql.NullTime
	var activeModID sql.NullInt32
	err := row.Scan(&p.ID, &p.Name.En, &p.Name.Ar, &p.Description.En, &p.Description.Ar,
		&p.Logo, &p.UserID, &p.TotalCost, &phasesJSON, &startDate, &p.Progress,
		&p.ProgressType, &activeModID, pq.Array(&p.PaymentIDs), pq.Array(&p.ModificationIDs),
		pq.Array(&p.EmployeeIDs), &p.WhatsappGroupLink, &p.PortalCode, &p.ProjectURL,
		&p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if len(phasesJSON) > 0 {
		if err := json.Unmarshal(phasesJSON, &p.Phases); err != nil {
			return nil, fmt.Errorf("decode phases: %w", err)
		}
	}
	if startDate.Valid {
		t := startDate.Time
		p.StartDate = &t
	}
	if activeModID.Valid {
		id := activeModID.Int32
		p.ActiveModificationID = &id
	}
	return p, nil
}

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	phasesJSON, err := json.Marshal(p.Phases)
	if err != nil {
		return fmt.Errorf("encode phases: %w", err)
	}
	query := `INSERT INTO projects (name_en, name_ar, description_en, description_ar, logo, user_id, total_cost, phases, start_date, progress, progress_type, payments, modifications, employees, whatsapp_group_link, project_url, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12, $13, $14, NULLIF($15, ''), NULLIF($16, ''), $17, $17) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		p.Name.En, p.Name.Ar, p.Description.En, p.Description.Ar, p.Logo,
		p.UserID, p.TotalCost, phasesJSON, p.StartDate, p.Progress, p.ProgressType,
		pq.Array(p.PaymentIDs), pq.Array(p.ModificationIDs), pq.Array(p.EmployeeIDs),
		p.WhatsappGroupLink, p.ProjectURL, time.Now()).Scan(&p.ID)
}

func (r *projectRepository) GetByID(ctx context.Context, id int32) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return scanProject(r.db.QueryRowContext(ctx, query, id))
}

func (r *projectRepository) GetByPortalCode(ctx context.Context, code string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE portal_code = $1`
	return scanProject(r.db.QueryRowContext(ctx, query, code))
}

func (r *projectRepository) Update(ctx context.Context, p *domain.Project) error {
	phasesJSON, err := json.Marshal(p.Phases)
	if err != nil {
		return fmt.Errorf("encode phases: %w", err)
	}
	query := `UPDATE projects SET name_en=$1, name_ar=$2, description_en=$3, description_ar=$4,
	          logo=NULLIF($5, ''), user_id=$6, total_cost=$7, phases=$8, start_date=$9, progress=$10,
	          progress_type=$11, active_modification_id=$12, employees=$13, whatsapp_group_link=NULLIF($14, ''),
	          portal_code=NULLIF($15, ''), project_url=NULLIF($16, ''), updated_on=$17
	          WHERE id=$18`
	var activeModID interface{}
	if p.ActiveModificationID != nil {
		activeModID = *p.ActiveModificationID
	}
	_, err = r.db.ExecContext(ctx, query,
		p.Name.En, p.Name.Ar, p.Description.En, p.Description.Ar, p.Logo,
		p.UserID, p.TotalCost, phasesJSON, p.StartDate, p.Progress, p.ProgressType,
		activeModID, pq.Array(p.EmployeeIDs), p.WhatsappGroupLink,
		p.PortalCode, p.ProjectURL, time.Now(), p.ID)
	return err
}

func (r *projectRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

func (r *projectRepository) List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, int32, error) {
	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	where := ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != 0 {
		where += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, filter.UserID)
		argIdx++
	}
	if filter.EmployeeID != 0 {
		where += fmt.Sprintf(" AND $%d = ANY(employees)", argIdx)
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.Search != "" {
		clause := fmt.Sprintf("name_en ILIKE $%d OR name_ar ILIKE $%d", argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
		if len(filter.OwnerIDs) > 0 {
			clause += fmt.Sprintf(" OR user_id = ANY($%d)", argIdx)
			args = append(args, pq.Array(filter.OwnerIDs))
			argIdx++
		}
		where += " AND (" + clause + ")"
	}

	var count int32
	countQuery := `SELECT count(*) FROM projects` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + projectColumns + ` FROM projects` + where +
		fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, *p)
	}
	return projects, count, rows.Err()
}

func (r *projectRepository) PortalCodeExists(ctx context.Context, code string, excludeID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM projects WHERE portal_code = $1 AND id <> $2)`
	err := r.db.QueryRowContext(ctx, query, code, excludeID).Scan(&exists)
	return exists, err
}

func (r *projectRepository) AddPayment(ctx context.Context, projectID, paymentID int32) error {
	query := `UPDATE projects SET payments = array_append(payments, $2), updated_on = $3 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, projectID, paymentID, time.Now())
	return err
}

func (r *projectRepository) RemovePayment(ctx context.Context, projectID, paymentID int32) error {
	query := `UPDATE projects SET payments = array_remove(payments, $2), updated_on = $3 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, projectID, paymentID, time.Now())
	return err
}

func (r *projectRepository) AddModification(ctx context.Context, projectID, modificationID int32) error {
	query := `UPDATE projects SET modifications = array_append(modifications, $2), updated_on = $3 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, projectID, modificationID, time.Now())
	return err
}

func (r *projectRepository) RemoveModification(ctx context.Context, projectID, modificationID int32) error {
	query := `UPDATE projects SET modifications = array_remove(modifications, $2), updated_on = $3 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, projectID, modificationID, time.Now())
	return err
}
