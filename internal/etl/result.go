package etl

// FileType is the semantic type of a row-set, classified from its headers.
type FileType string

const (
	FileTypeProduct FileType = "product"
	FileTypePrice   FileType = "price"
	FileTypeSale    FileType = "sale"
	FileTypeUnknown FileType = "unknown"
)

// Confidence indicates how certain a classification is.
type Confidence string

const (
	ConfidenceHigh Confidence = "high"
	ConfidenceLow  Confidence = "low"
)

// JobStatus is the closed set of states for jobs and their files.
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Row holds one record's cleaned values keyed by canonical column name.
// Absent fields are simply missing keys.
type Row map[string]string

// Result is the per-file outcome of an import. Failures inside an importer
// are accumulated here as counters and messages, never raised.
type Result struct {
	FileType          FileType `json:"fileType"`
	Inserted          int      `json:"inserted"`
	Updated           int      `json:"updated"`
	Skipped           int      `json:"skipped"`
	DuplicatesSkipped int      `json:"duplicatesSkipped"`
	Errors            int      `json:"errors"`
	StoreCodesFound   []string `json:"storeCodesFound"`
	Messages          []string `json:"messages"`
	Filename          string   `json:"filename,omitempty"`
}

// NewResult creates an empty result for the given file type.
func NewResult(fileType FileType) *Result {
	return &Result{
		FileType:        fileType,
		StoreCodesFound: []string{},
		Messages:        []string{},
	}
}

// Summary aggregates every per-file result of a job.
type Summary struct {
	TotalInserted          int       `json:"totalInserted"`
	TotalUpdated           int       `json:"totalUpdated"`
	TotalSkipped           int       `json:"totalSkipped"`
	TotalDuplicatesSkipped int       `json:"totalDuplicatesSkipped"`
	TotalErrors            int       `json:"totalErrors"`
	FilesProcessed         int       `json:"filesProcessed"`
	Results                []*Result `json:"results"`
}

// Summarize folds per-file results into a job-level summary.
func Summarize(results []*Result) *Summary {
	summary := &Summary{
		FilesProcessed: len(results),
		Results:        results,
	}
	for _, r := range results {
		summary.TotalInserted += r.Inserted
		summary.TotalUpdated += r.Updated
		summary.TotalSkipped += r.Skipped
		summary.TotalDuplicatesSkipped += r.DuplicatesSkipped
		summary.TotalErrors += r.Errors
	}
	return summary
}

// FileInput describes one file submitted for import.
type FileInput struct {
	Path         string   `json:"path"`
	Filename     string   `json:"filename"`
	CustomerID   uint     `json:"customerId"`
	TypeOverride FileType `json:"typeOverride,omitempty"`
}

// JobFile is one file entry stored on a job. Path, CustomerID and
// TypeOverride are worker inputs; the job API strips them from responses.
type JobFile struct {
	Filename     string    `json:"filename"`
	Status       JobStatus `json:"status"`
	Result       *Result   `json:"result,omitempty"`
	Path         string    `json:"path,omitempty"`
	CustomerID   uint      `json:"customerId,omitempty"`
	TypeOverride FileType  `json:"typeOverride,omitempty"`
}

// Job is a multi-file import run.
type Job struct {
	ID        string    `json:"id"`
	Status    JobStatus `json:"status"`
	Files     []JobFile `json:"files"`
	Summary   *Summary  `json:"summary,omitempty"`
	CreatedAt string    `json:"createdAt"`
}
