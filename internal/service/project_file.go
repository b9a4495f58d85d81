package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"invare-backend/internal/apperr"
	"invare-backend/internal/domain"
	"invare-backend/internal/repository"
)

type projectFileService struct {
	fileRepo    repository.ProjectFileRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

func NewProjectFileService(fileRepo repository.ProjectFileRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository) ProjectFileService {
	return &projectFileService{fileRepo: fileRepo, projectRepo: projectRepo, userRepo: userRepo}
}

func (s *projectFileService) CreateFile(ctx context.Context, actor *Actor, projectID int32, in CreateProjectFileInput) (*domain.ProjectFile, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("project not found")
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	if actor != nil {
		if err := authorizeProjectAccess(*actor, project); err != nil {
			return nil, err
		}
	}
	if in.FileURL == "" || in.FileName == "" {
		return nil, apperr.BadRequest("file url and name are required")
	}

	// The side of the exchange follows from who uploads, not from the
	// request body. Portal uploads without a token count as the owning
	// client's.
	uploaderID := project.UserID
	uploadedBy := domain.FileUploadedByClient
	if actor != nil {
		uploaderID = actor.ID
		if actor.IsStaff() {
			uploadedBy = domain.FileUploadedByCompany
		}
	}
	if uploaderID == 0 {
		return nil, apperr.BadRequest("cannot determine the uploading user")
	}

	file := &domain.ProjectFile{
		ProjectID:  project.ID,
		UserID:     uploaderID,
		FileURL:    in.FileURL,
		FileName:   in.FileName,
		FileType:   in.FileType,
		FileSize:   in.FileSize,
		UploadedBy: uploadedBy,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		return nil, fmt.Errorf("create project file: %w", err)
	}
	return file, nil
}

func (s *projectFileService) ListFiles(ctx context.Context, actor *Actor, projectID int32, uploadedBy domain.FileUploadedBy) ([]domain.ProjectFile, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("project not found")
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	// Anonymous portal visitors may list; authenticated actors must be
	// allowed on the project.
	if actor != nil {
		if err := authorizeProjectAccess(*actor, project); err != nil {
			return nil, err
		}
	}

	files, err := s.fileRepo.ListByProject(ctx, projectID, uploadedBy)
	if err != nil {
		return nil, fmt.Errorf("list project files: %w", err)
	}
	for i := range files {
		uploader, err := s.userRepo.GetByID(ctx, files[i].UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, fmt.Errorf("get uploader: %w", err)
		}
		files[i].Uploader = uploader
	}
	return files, nil
}

func (s *projectFileService) UpdateFile(ctx context.Context, actor Actor, fileID int32, in UpdateProjectFileInput) (*domain.ProjectFile, error) {
	file, err := s.getOwnedFile(ctx, actor, fileID)
	if err != nil {
		return nil, err
	}

	if in.FileURL != nil {
		if *in.FileURL == "" {
			return nil, apperr.BadRequest("file url cannot be empty")
		}
		file.FileURL = *in.FileURL
	}
	if in.FileName != nil {
		if *in.FileName == "" {
			return nil, apperr.BadRequest("file name cannot be empty")
		}
		file.FileName = *in.FileName
	}
	if in.FileType != nil {
		file.FileType = *in.FileType
	}
	if in.FileSize != nil {
		file.FileSize = *in.FileSize
	}

	if err := s.fileRepo.Update(ctx, file); err != nil {
		return nil, fmt.Errorf("update project file: %w", err)
	}
	return file, nil
}

func (s *projectFileService) DeleteFile(ctx context.Context, actor Actor, fileID int32) error {
	if _, err := s.getOwnedFile(ctx, actor, fileID); err != nil {
		return err
	}
	if err := s.fileRepo.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("delete project file: %w", err)
	}
	return nil
}

// getOwnedFile fetches the file and checks the actor may modify it: admins
// always, otherwise only the user who uploaded it.
func (s *projectFileService) getOwnedFile(ctx context.Context, actor Actor, fileID int32) (*domain.ProjectFile, error) {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("file not found")
		}
		return nil, fmt.Errorf("get project file: %w", err)
	}
	if !actor.IsAdmin() && actor.ID != file.UserID {
		return nil, apperr.Forbidden("you cannot modify this file")
	}
	return file, nil
}
