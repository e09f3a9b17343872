package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/superdevstar50/empowerfresh-challenge/internal/etl"
	"github.com/superdevstar50/empowerfresh-challenge/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormJobStore implements etl.JobStore over the import_jobs table. File
// entries live as a jsonb blob; a job row is only ever written by the single
// worker driving it, so read-patch-write on the blob is safe.
type GormJobStore struct {
	db *gorm.DB
}

// NewGormJobStore creates the job persistence adapter.
func NewGormJobStore(db *gorm.DB) *GormJobStore {
	return &GormJobStore{db: db}
}

func (s *GormJobStore) CreateJob(ctx context.Context, files []etl.FileInput) (*etl.Job, error) {
	entries := make([]etl.JobFile, len(files))
	for i, f := range files {
		entries[i] = etl.JobFile{
			Filename:     f.Filename,
			Status:       etl.StatusPending,
			Path:         f.Path,
			CustomerID:   f.CustomerID,
			TypeOverride: f.TypeOverride,
		}
	}
	blob, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("marshal job files: %w", err)
	}

	job := models.ImportJob{
		ID:     uuid.NewString(),
		Status: string(etl.StatusPending),
		Files:  datatypes.JSON(blob),
	}
	if err := s.db.WithContext(ctx).Create(&job).Error; err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	return &etl.Job{
		ID:        job.ID,
		Status:    etl.StatusPending,
		Files:     sanitizeFiles(entries),
		CreatedAt: job.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (s *GormJobStore) GetJob(ctx context.Context, id string) (*etl.Job, error) {
	var row models.ImportJob
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return toJob(&row)
}

func (s *GormJobStore) GetJobForProcessing(ctx context.Context, id string) ([]etl.JobFile, error) {
	var row models.ImportJob
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	var files []etl.JobFile
	if err := json.Unmarshal(row.Files, &files); err != nil {
		return nil, fmt.Errorf("unmarshal job files: %w", err)
	}
	return files, nil
}

func (s *GormJobStore) UpdateJobStatus(ctx context.Context, id string, status etl.JobStatus) error {
	return s.db.WithContext(ctx).
		Model(&models.ImportJob{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

func (s *GormJobStore) UpdateFileStatus(ctx context.Context, id, filename string, status etl.JobStatus, result *etl.Result) error {
	var row models.ImportJob
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return err
	}

	var files []etl.JobFile
	if err := json.Unmarshal(row.Files, &files); err != nil {
		return fmt.Errorf("unmarshal job files: %w", err)
	}
	for i := range files {
		if files[i].Filename != filename {
			continue
		}
		files[i].Status = status
		if result != nil {
			files[i].Result = result
		}
	}
	blob, err := json.Marshal(files)
	if err != nil {
		return fmt.Errorf("marshal job files: %w", err)
	}

	updates := map[string]interface{}{"files": datatypes.JSON(blob)}
	// The first file entering processing drags the job out of pending.
	if status == etl.StatusProcessing {
		updates["status"] = string(etl.StatusProcessing)
	}
	return s.db.WithContext(ctx).
		Model(&models.ImportJob{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (s *GormJobStore) CompleteJob(ctx context.Context, id string, summary *etl.Summary) error {
	blob, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	return s.db.WithContext(ctx).
		Model(&models.ImportJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  string(etl.StatusCompleted),
			"summary": datatypes.JSON(blob),
		}).Error
}

func (s *GormJobStore) FailJob(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Model(&models.ImportJob{}).
		Where("id = ?", id).
		Update("status", string(etl.StatusFailed)).Error
}

func (s *GormJobStore) ListJobs(ctx context.Context, limit int) ([]*etl.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.ImportJob
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	jobs := make([]*etl.Job, 0, len(rows))
	for i := range rows {
		job, err := toJob(&rows[i])
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// toJob converts a stored row to the API shape, stripping worker inputs
// from the file entries.
func toJob(row *models.ImportJob) (*etl.Job, error) {
	var files []etl.JobFile
	if err := json.Unmarshal(row.Files, &files); err != nil {
		return nil, fmt.Errorf("unmarshal job files: %w", err)
	}

	job := &etl.Job{
		ID:        row.ID,
		Status:    etl.JobStatus(row.Status),
		Files:     sanitizeFiles(files),
		CreatedAt: row.CreatedAt.UTC().Format(time.RFC3339),
	}
	if len(row.Summary) > 0 {
		var summary etl.Summary
		if err := json.Unmarshal(row.Summary, &summary); err != nil {
			return nil, fmt.Errorf("unmarshal job summary: %w", err)
		}
		job.Summary = &summary
	}
	return job, nil
}

func sanitizeFiles(files []etl.JobFile) []etl.JobFile {
	sanitized := make([]etl.JobFile, len(files))
	for i, f := range files {
		sanitized[i] = etl.JobFile{
			Filename: f.Filename,
			Status:   f.Status,
			Result:   f.Result,
		}
	}
	return sanitized
}
