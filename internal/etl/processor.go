package etl

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// ReadFileFunc reads a file's raw content. Injectable for tests; defaults
// to os.ReadFile.
type ReadFileFunc func(path string) ([]byte, error)

// Processor drives a job through the pipeline one file at a time.
//
// Job state machine: pending -> processing -> {completed, failed}. Each file
// follows the same transitions; a failed file never fails the job. The only
// unrecoverable path is an error escaping the per-file boundary (job record
// unreadable, job store writes failing), which marks the job failed with no
// summary.
type Processor struct {
	jobs     JobStore
	pipeline *Pipeline
	readFile ReadFileFunc
	delay    time.Duration
	log      *zap.Logger
}

// NewProcessor creates a processor. delay is the pause between files, a
// throttle bounding load on the database rather than a backoff.
func NewProcessor(jobs JobStore, pipeline *Pipeline, delay time.Duration, log *zap.Logger) *Processor {
	return &Processor{
		jobs:     jobs,
		pipeline: pipeline,
		readFile: os.ReadFile,
		delay:    delay,
		log:      log,
	}
}

// ProcessJob runs every file of the job strictly in sequence, then persists
// the aggregated summary and marks the job completed.
func (p *Processor) ProcessJob(ctx context.Context, jobID string) error {
	files, err := p.jobs.GetJobForProcessing(ctx, jobID)
	if err != nil {
		p.log.Error("job load failed", zap.String("job", jobID), zap.Error(err))
		_ = p.jobs.FailJob(ctx, jobID)
		return fmt.Errorf("load job %s: %w", jobID, err)
	}

	results := make([]*Result, 0, len(files))
	for _, file := range files {
		result, status := p.processFile(ctx, jobID, file)
		results = append(results, result)

		if err := p.jobs.UpdateFileStatus(ctx, jobID, file.Filename, status, result); err != nil {
			p.log.Error("file status update failed", zap.String("job", jobID), zap.Error(err))
			_ = p.jobs.FailJob(ctx, jobID)
			return fmt.Errorf("update file status for job %s: %w", jobID, err)
		}

		// Throttle between files to bound load on the database.
		time.Sleep(p.delay)
	}

	summary := Summarize(results)
	if err := p.jobs.CompleteJob(ctx, jobID, summary); err != nil {
		p.log.Error("job completion failed", zap.String("job", jobID), zap.Error(err))
		_ = p.jobs.FailJob(ctx, jobID)
		return fmt.Errorf("complete job %s: %w", jobID, err)
	}

	p.log.Info("job completed",
		zap.String("job", jobID),
		zap.Int("filesProcessed", summary.FilesProcessed),
		zap.Int("totalInserted", summary.TotalInserted),
		zap.Int("totalErrors", summary.TotalErrors))
	return nil
}

// processFile handles one file end to end and always produces a result plus
// the terminal status for the file. Failures short of the job store itself
// become a synthetic error result; they fail the file, never the job.
func (p *Processor) processFile(ctx context.Context, jobID string, file JobFile) (*Result, JobStatus) {
	if file.Path == "" || file.CustomerID == 0 {
		return p.failedResult(file.Filename, "Missing path or customer"), StatusFailed
	}

	if err := p.jobs.UpdateFileStatus(ctx, jobID, file.Filename, StatusProcessing, nil); err != nil {
		return p.failedResult(file.Filename, fmt.Sprintf("Failed: %v", err)), StatusFailed
	}

	content, err := p.readFile(file.Path)
	if err != nil {
		p.log.Error("file read failed", zap.String("file", file.Filename), zap.Error(err))
		return p.failedResult(file.Filename, fmt.Sprintf("Failed: %v", err)), StatusFailed
	}

	pre, err := Preprocess(string(content))
	if err != nil {
		p.log.Error("preprocess failed", zap.String("file", file.Filename), zap.Error(err))
		return p.failedResult(file.Filename, fmt.Sprintf("Failed: %v", err)), StatusFailed
	}

	fileType := file.TypeOverride
	if fileType == "" {
		fileType = DetectFileType(pre.Headers).FileType
	}

	p.log.Info("processing file",
		zap.String("job", jobID),
		zap.String("file", file.Filename),
		zap.Uint("customer", file.CustomerID),
		zap.String("type", string(fileType)))

	result := p.pipeline.Run(ctx, pre, fileType, file.CustomerID)
	result.Filename = file.Filename
	return result, StatusCompleted
}

func (p *Processor) failedResult(filename, message string) *Result {
	result := NewResult(FileTypeUnknown)
	result.Errors = 1
	result.Messages = append(result.Messages, message)
	result.Filename = filename
	return result
}
