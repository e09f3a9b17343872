package etl

import "context"

// StoreRef identifies a resolved store.
type StoreRef struct {
	ID   uint
	Code string
}

// ProductRecord is the pipeline's view of a product row to persist.
type ProductRecord struct {
	CustomerID  uint
	UpcPlu      string
	Description *string
	Department  *string
	Category    *string
	UnitSize    *string
	PackSize    *string
	Metadata    map[string]string
}

// PriceRecord is an append-only pricing event to persist.
type PriceRecord struct {
	StoreID   uint
	UpcPlu    string
	Price     *float64
	PriceType *string
	StartDate *string
	EndDate   *string
	Metadata  map[string]string
}

// PriceKey is the natural key of a stored price, used for duplicate checks.
type PriceKey struct {
	StoreID   uint
	UpcPlu    string
	PriceType *string
	StartDate *string
}

// SaleRecord is an append-only sales event to persist.
type SaleRecord struct {
	StoreID   uint
	UpcPlu    string
	SaleTime  *string
	UnitPrice *float64
	UnitsSold *float64
	TotalSale *float64
	Metadata  map[string]string
}

// SaleKey is the natural key of a stored sale, used for duplicate checks.
type SaleKey struct {
	StoreID   uint
	UpcPlu    string
	SaleTime  *string
	TotalSale *float64
}

// Datastore is the storage contract the pipeline consumes. Implementations
// live outside the core; per-row create/update semantics are all the
// pipeline relies on for safety.
type Datastore interface {
	// FindStoresByCodes returns the stores already known for the given
	// (customer, code) pairs.
	FindStoresByCodes(ctx context.Context, customerID uint, codes []string) ([]StoreRef, error)
	// FindOrCreateStore resolves a store, creating it with Name defaulted
	// to the code when it does not exist yet.
	FindOrCreateStore(ctx context.Context, customerID uint, code string) (StoreRef, error)

	// FindProductIDs maps existing UPCs to product IDs for a customer.
	FindProductIDs(ctx context.Context, customerID uint, upcs []string) (map[string]uint, error)
	// UpdateProduct updates the descriptive fields of an existing product.
	UpdateProduct(ctx context.Context, rec ProductRecord) error
	// CreateProducts batch-creates new products, returning how many rows
	// were written.
	CreateProducts(ctx context.Context, recs []ProductRecord) (int, error)

	// ListPriceKeys returns the natural keys of all prices stored for the
	// given stores.
	ListPriceKeys(ctx context.Context, storeIDs []uint) ([]PriceKey, error)
	// CreatePrices batch-appends pricing events.
	CreatePrices(ctx context.Context, recs []PriceRecord) (int, error)

	// ListSaleKeys returns the natural keys of all sales stored for the
	// given stores.
	ListSaleKeys(ctx context.Context, storeIDs []uint) ([]SaleKey, error)
	// CreateSales batch-appends sales events.
	CreateSales(ctx context.Context, recs []SaleRecord) (int, error)
}

// JobStore is the job persistence contract consumed by the orchestrator and
// the HTTP layer.
type JobStore interface {
	// CreateJob stores a new pending job for the given files.
	CreateJob(ctx context.Context, files []FileInput) (*Job, error)
	// GetJob returns a job with worker inputs stripped from file entries.
	GetJob(ctx context.Context, id string) (*Job, error)
	// GetJobForProcessing returns the raw file entries including worker
	// inputs (path, customer, type override).
	GetJobForProcessing(ctx context.Context, id string) ([]JobFile, error)
	// UpdateJobStatus transitions the job itself.
	UpdateJobStatus(ctx context.Context, id string, status JobStatus) error
	// UpdateFileStatus transitions one file entry and optionally attaches
	// its result. Moving a file to processing also moves the job to
	// processing.
	UpdateFileStatus(ctx context.Context, id, filename string, status JobStatus, result *Result) error
	// CompleteJob marks the job completed with its summary.
	CompleteJob(ctx context.Context, id string, summary *Summary) error
	// FailJob marks the job failed. No summary is written.
	FailJob(ctx context.Context, id string) error
	// ListJobs returns the most recent jobs, newest first.
	ListJobs(ctx context.Context, limit int) ([]*Job, error)
}
