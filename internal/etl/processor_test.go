package etl

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestProcessor(jobs JobStore, ds Datastore, read ReadFileFunc) *Processor {
	p := NewProcessor(jobs, NewPipeline(ds, zap.NewNop()), 0, zap.NewNop())
	if read != nil {
		p.readFile = read
	}
	return p
}

func TestProcessJobMixedOutcome(t *testing.T) {
	ds := newFakeDatastore()
	jobs := newFakeJobStore([]JobFile{
		{Filename: "missing.csv", Status: StatusPending, Path: "/does/not/exist.csv", CustomerID: 1},
		{Filename: "products.csv", Status: StatusPending, Path: "/tmp/products.csv", CustomerID: 1},
	})

	contents := map[string]string{
		"/tmp/products.csv": "UPC,Description,Department\n" +
			"0001,fuji apple,PRODUCE\n" +
			"0002,sourdough,BAKERY\n" +
			"0003,whole milk,DAIRY\n",
	}
	read := func(path string) ([]byte, error) {
		if content, ok := contents[path]; ok {
			return []byte(content), nil
		}
		return nil, fmt.Errorf("open %s: no such file", path)
	}

	p := newTestProcessor(jobs, ds, read)
	require.NoError(t, p.ProcessJob(context.Background(), "job-1"))

	assert.Equal(t, StatusCompleted, jobs.jobStatus)
	assert.Equal(t, StatusFailed, jobs.fileStatus("missing.csv"))
	assert.Equal(t, StatusCompleted, jobs.fileStatus("products.csv"))

	require.NotNil(t, jobs.summary)
	assert.Equal(t, 2, jobs.summary.FilesProcessed)
	assert.Equal(t, 1, jobs.summary.TotalErrors)
	assert.Equal(t, 3, jobs.summary.TotalInserted)
}

func TestProcessJobMissingInputs(t *testing.T) {
	ds := newFakeDatastore()
	jobs := newFakeJobStore([]JobFile{
		{Filename: "no-customer.csv", Status: StatusPending, Path: "/tmp/x.csv"},
	})

	p := newTestProcessor(jobs, ds, func(string) ([]byte, error) {
		t.Fatal("file should not be read when inputs are missing")
		return nil, nil
	})
	require.NoError(t, p.ProcessJob(context.Background(), "job-1"))

	assert.Equal(t, StatusCompleted, jobs.jobStatus)
	assert.Equal(t, StatusFailed, jobs.fileStatus("no-customer.csv"))
	require.NotNil(t, jobs.summary)
	assert.Equal(t, 1, jobs.summary.TotalErrors)
}

func TestProcessJobTypeOverride(t *testing.T) {
	ds := newFakeDatastore()
	jobs := newFakeJobStore([]JobFile{
		{Filename: "odd.csv", Status: StatusPending, Path: "/tmp/odd.csv", CustomerID: 1, TypeOverride: FileTypeProduct},
	})

	// Headers alone would classify as unknown; the override bypasses
	// detection entirely.
	read := func(string) ([]byte, error) {
		return []byte("UPC,Description\n0001,apples\n"), nil
	}

	p := newTestProcessor(jobs, ds, read)
	require.NoError(t, p.ProcessJob(context.Background(), "job-1"))

	require.NotNil(t, jobs.summary)
	require.Len(t, jobs.summary.Results, 1)
	assert.Equal(t, FileTypeProduct, jobs.summary.Results[0].FileType)
	assert.Equal(t, 1, jobs.summary.TotalInserted)
}

func TestProcessJobFileTransitions(t *testing.T) {
	ds := newFakeDatastore()
	jobs := newFakeJobStore([]JobFile{
		{Filename: "products.csv", Status: StatusPending, Path: "/tmp/p.csv", CustomerID: 1},
	})
	read := func(string) ([]byte, error) {
		return []byte("UPC,Description,Department\n0001,apples,PRODUCE\n"), nil
	}

	p := newTestProcessor(jobs, ds, read)
	require.NoError(t, p.ProcessJob(context.Background(), "job-1"))

	// Statuses only ever move forward: processing then completed.
	assert.Equal(t, []JobStatus{StatusProcessing, StatusCompleted}, jobs.transitions["products.csv"])
}

func TestProcessJobFatalOnLoadFailure(t *testing.T) {
	ds := newFakeDatastore()
	jobs := newFakeJobStore(nil)
	jobs.getErr = errors.New("record not found")

	p := newTestProcessor(jobs, ds, nil)
	err := p.ProcessJob(context.Background(), "job-1")

	require.Error(t, err)
	assert.Equal(t, StatusFailed, jobs.jobStatus)
	assert.Nil(t, jobs.summary)
}

func TestProcessJobFatalOnCompleteFailure(t *testing.T) {
	ds := newFakeDatastore()
	jobs := newFakeJobStore([]JobFile{
		{Filename: "p.csv", Status: StatusPending, Path: "/tmp/p.csv", CustomerID: 1},
	})
	jobs.completeErr = errors.New("write failed")
	read := func(string) ([]byte, error) {
		return []byte("UPC,Description,Department\n0001,apples,PRODUCE\n"), nil
	}

	p := newTestProcessor(jobs, ds, read)
	err := p.ProcessJob(context.Background(), "job-1")

	require.Error(t, err)
	assert.Equal(t, StatusFailed, jobs.jobStatus)
}

func TestSummarize(t *testing.T) {
	a := NewResult(FileTypeProduct)
	a.Inserted, a.Updated, a.Errors = 3, 1, 0
	b := NewResult(FileTypePrice)
	b.Inserted, b.DuplicatesSkipped, b.Errors = 2, 4, 1

	summary := Summarize([]*Result{a, b})
	assert.Equal(t, 5, summary.TotalInserted)
	assert.Equal(t, 1, summary.TotalUpdated)
	assert.Equal(t, 4, summary.TotalDuplicatesSkipped)
	assert.Equal(t, 1, summary.TotalErrors)
	assert.Equal(t, 2, summary.FilesProcessed)
}
