package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huddleapp/huddle/internal/domain"
	"github.com/huddleapp/huddle/internal/repository"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrFileNotFound     = errors.New("file not found")
)

type ResourceService struct {
	guard        *Guard
	resourceRepo repository.ResourceRepository
	fileRepo     repository.FileRepository
}

func NewResourceService(guard *Guard, resourceRepo repository.ResourceRepository, fileRepo repository.FileRepository) *ResourceService {
	return &ResourceService{guard: guard, resourceRepo: resourceRepo, fileRepo: fileRepo}
}

type UploadResourceInput struct {
	Name        string
	Description *string
	FileType    string
	ContentType string
	Data        []byte
}

// Upload stores the blob first, then the resource row pointing at it. Any
// workspace member may upload.
func (s *ResourceService) Upload(ctx context.Context, userID, workspaceID uuid.UUID, input UploadResourceInput) (*domain.Resource, error) {
	member, err := s.guard.RequireMember(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}

	f := &domain.File{
		ID:          uuid.New(),
		ContentType: input.ContentType,
		Size:        int64(len(input.Data)),
		Data:        input.Data,
		CreatedAt:   time.Now(),
	}
	if err := s.fileRepo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("storing file: %w", err)
	}

	res := &domain.Resource{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		UploaderID:  member.ID,
		Name:        input.Name,
		Description: input.Description,
		FileID:      f.ID,
		FileType:    input.FileType,
		CreatedAt:   time.Now(),
	}
	if err := s.resourceRepo.Create(ctx, res); err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	res.URL = fileURL(f.ID)
	return res, nil
}

// List requires membership. Unlike most reads this one fails hard: callers
// outside the workspace get ErrNotMember, not an empty slice.
func (s *ResourceService) List(ctx context.Context, userID, workspaceID uuid.UUID) ([]domain.Resource, error) {
	if _, err := s.guard.RequireMember(ctx, userID, workspaceID); err != nil {
		return nil, err
	}

	resources, err := s.resourceRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if resources == nil {
		resources = []domain.Resource{}
	}
	for i := range resources {
		resources[i].URL = fileURL(resources[i].FileID)
	}
	return resources, nil
}

func (s *ResourceService) GetByID(ctx context.Context, userID, resourceID uuid.UUID) (*domain.Resource, error) {
	res, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}

	caller, err := s.guard.Member(ctx, userID, res.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, nil
	}

	res.URL = fileURL(res.FileID)
	return res, nil
}

// Remove deletes the blob before the resource row, so a half-finished delete
// leaves a dangling row rather than an orphaned blob.
func (s *ResourceService) Remove(ctx context.Context, userID, resourceID uuid.UUID) error {
	res, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		return err
	}
	if res == nil {
		return ErrResourceNotFound
	}

	if _, err := s.guard.RequireMember(ctx, userID, res.WorkspaceID); err != nil {
		return err
	}

	if err := s.fileRepo.Delete(ctx, res.FileID); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	return s.resourceRepo.Delete(ctx, resourceID)
}

// UploadFile stores a standalone blob and returns its id, for callers that
// attach files to messages rather than workspace resources.
func (s *ResourceService) UploadFile(ctx context.Context, contentType string, data []byte) (*domain.File, error) {
	f := &domain.File{
		ID:          uuid.New(),
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
		CreatedAt:   time.Now(),
	}
	if err := s.fileRepo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("storing file: %w", err)
	}
	return f, nil
}

// DownloadFile returns a stored blob. File ids are unguessable, so downloads
// are not membership-gated beyond authentication.
func (s *ResourceService) DownloadFile(ctx context.Context, fileID uuid.UUID) (*domain.File, error) {
	f, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFileNotFound
	}
	return f, nil
}

func fileURL(id uuid.UUID) string {
	return "/api/v1/files/" + id.String()
}
