package etl

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// fakeDatastore is an in-memory Datastore for exercising the importers.
type fakeDatastore struct {
	mu sync.Mutex

	nextStoreID   uint
	stores        map[string]StoreRef // customerID:code
	storesCreated int

	nextProductID uint
	productIDs    map[string]uint // customerID:upc
	products      map[string]ProductRecord

	prices []PriceRecord
	sales  []SaleRecord

	findStoresErr     error
	findProductsErr   error
	updateProductErr  error
	createProductsErr error
	createPricesErr   error
	createSalesErr    error
}

func newFakeDatastore() *fakeDatastore {
	return &fakeDatastore{
		stores:     map[string]StoreRef{},
		productIDs: map[string]uint{},
		products:   map[string]ProductRecord{},
	}
}

func storeKey(customerID uint, code string) string {
	return fmt.Sprintf("%d:%s", customerID, code)
}

func (f *fakeDatastore) FindStoresByCodes(ctx context.Context, customerID uint, codes []string) ([]StoreRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findStoresErr != nil {
		return nil, f.findStoresErr
	}
	refs := []StoreRef{}
	for _, code := range codes {
		if ref, ok := f.stores[storeKey(customerID, code)]; ok {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

func (f *fakeDatastore) FindOrCreateStore(ctx context.Context, customerID uint, code string) (StoreRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := storeKey(customerID, code)
	if ref, ok := f.stores[key]; ok {
		return ref, nil
	}
	f.nextStoreID++
	ref := StoreRef{ID: f.nextStoreID, Code: code}
	f.stores[key] = ref
	f.storesCreated++
	return ref, nil
}

func (f *fakeDatastore) FindProductIDs(ctx context.Context, customerID uint, upcs []string) (map[string]uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findProductsErr != nil {
		return nil, f.findProductsErr
	}
	ids := map[string]uint{}
	for _, upc := range upcs {
		if id, ok := f.productIDs[storeKey(customerID, upc)]; ok {
			ids[upc] = id
		}
	}
	return ids, nil
}

func (f *fakeDatastore) UpdateProduct(ctx context.Context, rec ProductRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateProductErr != nil {
		return f.updateProductErr
	}
	key := storeKey(rec.CustomerID, rec.UpcPlu)
	if _, ok := f.productIDs[key]; !ok {
		return errors.New("product not found")
	}
	f.products[key] = rec
	return nil
}

func (f *fakeDatastore) CreateProducts(ctx context.Context, recs []ProductRecord) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createProductsErr != nil {
		return 0, f.createProductsErr
	}
	for _, rec := range recs {
		key := storeKey(rec.CustomerID, rec.UpcPlu)
		f.nextProductID++
		f.productIDs[key] = f.nextProductID
		f.products[key] = rec
	}
	return len(recs), nil
}

func (f *fakeDatastore) ListPriceKeys(ctx context.Context, storeIDs []uint) ([]PriceKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := map[uint]struct{}{}
	for _, id := range storeIDs {
		ids[id] = struct{}{}
	}
	keys := []PriceKey{}
	for _, p := range f.prices {
		if _, ok := ids[p.StoreID]; ok {
			keys = append(keys, PriceKey{StoreID: p.StoreID, UpcPlu: p.UpcPlu, PriceType: p.PriceType, StartDate: p.StartDate})
		}
	}
	return keys, nil
}

func (f *fakeDatastore) CreatePrices(ctx context.Context, recs []PriceRecord) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createPricesErr != nil {
		return 0, f.createPricesErr
	}
	f.prices = append(f.prices, recs...)
	return len(recs), nil
}

func (f *fakeDatastore) ListSaleKeys(ctx context.Context, storeIDs []uint) ([]SaleKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := map[uint]struct{}{}
	for _, id := range storeIDs {
		ids[id] = struct{}{}
	}
	keys := []SaleKey{}
	for _, s := range f.sales {
		if _, ok := ids[s.StoreID]; ok {
			keys = append(keys, SaleKey{StoreID: s.StoreID, UpcPlu: s.UpcPlu, SaleTime: s.SaleTime, TotalSale: s.TotalSale})
		}
	}
	return keys, nil
}

func (f *fakeDatastore) CreateSales(ctx context.Context, recs []SaleRecord) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createSalesErr != nil {
		return 0, f.createSalesErr
	}
	f.sales = append(f.sales, recs...)
	return len(recs), nil
}

// fakeJobStore is an in-memory JobStore for orchestrator tests.
type fakeJobStore struct {
	mu sync.Mutex

	files       []JobFile
	jobStatus   JobStatus
	summary     *Summary
	transitions map[string][]JobStatus

	getErr        error
	updateFileErr error
	completeErr   error
}

func newFakeJobStore(files []JobFile) *fakeJobStore {
	return &fakeJobStore{
		files:       files,
		jobStatus:   StatusPending,
		transitions: map[string][]JobStatus{},
	}
}

func (f *fakeJobStore) CreateJob(ctx context.Context, files []FileInput) (*Job, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeJobStore) GetJob(ctx context.Context, id string) (*Job, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeJobStore) GetJobForProcessing(ctx context.Context, id string) ([]JobFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.files, nil
}

func (f *fakeJobStore) UpdateJobStatus(ctx context.Context, id string, status JobStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobStatus = status
	return nil
}

func (f *fakeJobStore) UpdateFileStatus(ctx context.Context, id, filename string, status JobStatus, result *Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateFileErr != nil {
		return f.updateFileErr
	}
	f.transitions[filename] = append(f.transitions[filename], status)
	for i := range f.files {
		if f.files[i].Filename != filename {
			continue
		}
		f.files[i].Status = status
		if result != nil {
			f.files[i].Result = result
		}
	}
	if status == StatusProcessing {
		f.jobStatus = StatusProcessing
	}
	return nil
}

func (f *fakeJobStore) CompleteJob(ctx context.Context, id string, summary *Summary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.completeErr != nil {
		return f.completeErr
	}
	f.jobStatus = StatusCompleted
	f.summary = summary
	return nil
}

func (f *fakeJobStore) FailJob(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobStatus = StatusFailed
	return nil
}

func (f *fakeJobStore) ListJobs(ctx context.Context, limit int) ([]*Job, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeJobStore) fileStatus(filename string) JobStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, file := range f.files {
		if file.Filename == filename {
			return file.Status
		}
	}
	return ""
}
