package postgres

import (
	"context"
	"database/sql"
	"time"

	"invare-backend/internal/domain"
	"invare-backend/internal/repository"
)

type projectFileRepository struct {
	db *sql.DB
}

func NewProjectFileRepository(db *sql.DB) repository.ProjectFileRepository {
	return &projectFileRepository{db: db}
}

const projectFileColumns = `id, project_id, user_id, file_url, file_name, file_type, COALESCE(file_size, 0), uploaded_by, created_on, updated_on`

func scanProjectFile(row interface{ Scan(...interface{}) error }) (*domain.ProjectFile, error) {
	f := &domain.ProjectFile{}
	err := row.Scan(&f.ID, &f.ProjectID, &f.UserID, &f.FileURL, &f.FileName, &f.FileType,
		&f.FileSize, &f.UploadedBy, &f.CreatedOn, &f.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *projectFileRepository) Create(ctx context.Context, f *domain.ProjectFile) error {
	query := `INSERT INTO project_files (project_id, user_id, file_url, file_name, file_type, file_size, uploaded_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, NULLIF($6, 0), $7, $8, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, f.ProjectID, f.UserID, f.FileURL, f.FileName,
		f.FileType, f.FileSize, f.UploadedBy, time.Now()).Scan(&f.ID)
}

func (r *projectFileRepository) GetByID(ctx context.Context, id int32) (*domain.ProjectFile, error) {
	query := `SELECT ` + projectFileColumns + ` FROM project_files WHERE id = $1`
	return scanProjectFile(r.db.QueryRowContext(ctx, query, id))
}

func (r *projectFileRepository) ListByProject(ctx context.Context, projectID int32, uploadedBy domain.FileUploadedBy) ([]domain.ProjectFile, error) {
	query := `SELECT ` + projectFileColumns + ` FROM project_files WHERE project_id = $1`
	args := []interface{}{projectID}
	if uploadedBy != "" {
		query += ` AND uploaded_by = $2`
		args = append(args, uploadedBy)
	}
	query += ` ORDER BY created_on DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []domain.ProjectFile
	for rows.Next() {
		f, err := scanProjectFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	return files, rows.Err()
}

func (r *projectFileRepository) Update(ctx context.Context, f *domain.ProjectFile) error {
	query := `UPDATE project_files SET file_url=$1, file_name=$2, file_type=$3, file_size=NULLIF($4, 0), uploaded_by=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, f.FileURL, f.FileName, f.FileType, f.FileSize, f.UploadedBy, time.Now(), f.ID)
	return err
}

func (r *projectFileRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM project_files WHERE id = $1`, id)
	return err
}
