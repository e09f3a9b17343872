package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/superdevstar50/empowerfresh-challenge/internal/etl"
	"github.com/superdevstar50/empowerfresh-challenge/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormStore implements etl.Datastore on top of GORM/PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates the storage adapter for the import pipeline.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// UpsertCustomerByName returns the customer with the given name, creating it
// when missing. Customers are unique by name.
func (s *GormStore) UpsertCustomerByName(ctx context.Context, name string) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.WithContext(ctx).
		Where(models.Customer{Name: name}).
		FirstOrCreate(&customer).Error
	if err != nil {
		return nil, fmt.Errorf("upsert customer %q: %w", name, err)
	}
	return &customer, nil
}

func (s *GormStore) FindStoresByCodes(ctx context.Context, customerID uint, codes []string) ([]etl.StoreRef, error) {
	var stores []models.Store
	err := s.db.WithContext(ctx).
		Where("customer_id = ? AND store_code IN ?", customerID, codes).
		Find(&stores).Error
	if err != nil {
		return nil, err
	}
	refs := make([]etl.StoreRef, len(stores))
	for i, st := range stores {
		refs[i] = etl.StoreRef{ID: st.ID, Code: st.StoreCode}
	}
	return refs, nil
}

func (s *GormStore) FindOrCreateStore(ctx context.Context, customerID uint, code string) (etl.StoreRef, error) {
	store := models.Store{}
	err := s.db.WithContext(ctx).
		Where(models.Store{CustomerID: customerID, StoreCode: code}).
		Attrs(models.Store{Name: code}).
		FirstOrCreate(&store).Error
	if err != nil {
		return etl.StoreRef{}, err
	}
	return etl.StoreRef{ID: store.ID, Code: store.StoreCode}, nil
}

func (s *GormStore) FindProductIDs(ctx context.Context, customerID uint, upcs []string) (map[string]uint, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Select("id", "upc_plu").
		Where("customer_id = ? AND upc_plu IN ?", customerID, upcs).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	ids := make(map[string]uint, len(products))
	for _, p := range products {
		ids[p.UpcPlu] = p.ID
	}
	return ids, nil
}

func (s *GormStore) UpdateProduct(ctx context.Context, rec etl.ProductRecord) error {
	metadata, err := metadataJSON(rec.Metadata)
	if err != nil {
		return err
	}
	// A map keeps nil pointers writing NULL, so a re-import can clear a
	// field the vendor stopped sending.
	return s.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("customer_id = ? AND upc_plu = ?", rec.CustomerID, rec.UpcPlu).
		Updates(map[string]interface{}{
			"description": rec.Description,
			"department":  rec.Department,
			"category":    rec.Category,
			"unit_size":   rec.UnitSize,
			"pack_size":   rec.PackSize,
			"metadata":    metadata,
		}).Error
}

func (s *GormStore) CreateProducts(ctx context.Context, recs []etl.ProductRecord) (int, error) {
	products := make([]models.Product, 0, len(recs))
	for _, rec := range recs {
		metadata, err := metadataJSON(rec.Metadata)
		if err != nil {
			return 0, err
		}
		products = append(products, models.Product{
			CustomerID:  rec.CustomerID,
			UpcPlu:      rec.UpcPlu,
			Description: rec.Description,
			Department:  rec.Department,
			Category:    rec.Category,
			UnitSize:    rec.UnitSize,
			PackSize:    rec.PackSize,
			Metadata:    metadata,
		})
	}
	if err := s.db.WithContext(ctx).CreateInBatches(&products, 500).Error; err != nil {
		return 0, err
	}
	return len(products), nil
}

func (s *GormStore) ListPriceKeys(ctx context.Context, storeIDs []uint) ([]etl.PriceKey, error) {
	var prices []models.Price
	err := s.db.WithContext(ctx).
		Select("store_id", "upc_plu", "price_type", "start_date").
		Where("store_id IN ?", storeIDs).
		Find(&prices).Error
	if err != nil {
		return nil, err
	}
	keys := make([]etl.PriceKey, len(prices))
	for i, p := range prices {
		keys[i] = etl.PriceKey{
			StoreID:   p.StoreID,
			UpcPlu:    p.UpcPlu,
			PriceType: p.PriceType,
			StartDate: p.StartDate,
		}
	}
	return keys, nil
}

func (s *GormStore) CreatePrices(ctx context.Context, recs []etl.PriceRecord) (int, error) {
	prices := make([]models.Price, 0, len(recs))
	for _, rec := range recs {
		metadata, err := metadataJSON(rec.Metadata)
		if err != nil {
			return 0, err
		}
		prices = append(prices, models.Price{
			StoreID:   rec.StoreID,
			UpcPlu:    rec.UpcPlu,
			Price:     rec.Price,
			PriceType: rec.PriceType,
			StartDate: rec.StartDate,
			EndDate:   rec.EndDate,
			Metadata:  metadata,
		})
	}
	if err := s.db.WithContext(ctx).CreateInBatches(&prices, 500).Error; err != nil {
		return 0, err
	}
	return len(prices), nil
}

func (s *GormStore) ListSaleKeys(ctx context.Context, storeIDs []uint) ([]etl.SaleKey, error) {
	var sales []models.Sale
	err := s.db.WithContext(ctx).
		Select("store_id", "upc_plu", "sale_time", "total_sale").
		Where("store_id IN ?", storeIDs).
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	keys := make([]etl.SaleKey, len(sales))
	for i, sl := range sales {
		keys[i] = etl.SaleKey{
			StoreID:   sl.StoreID,
			UpcPlu:    sl.UpcPlu,
			SaleTime:  sl.SaleTime,
			TotalSale: sl.TotalSale,
		}
	}
	return keys, nil
}

func (s *GormStore) CreateSales(ctx context.Context, recs []etl.SaleRecord) (int, error) {
	sales := make([]models.Sale, 0, len(recs))
	for _, rec := range recs {
		metadata, err := metadataJSON(rec.Metadata)
		if err != nil {
			return 0, err
		}
		sales = append(sales, models.Sale{
			StoreID:   rec.StoreID,
			UpcPlu:    rec.UpcPlu,
			SaleTime:  rec.SaleTime,
			UnitPrice: rec.UnitPrice,
			UnitsSold: rec.UnitsSold,
			TotalSale: rec.TotalSale,
			Metadata:  metadata,
		})
	}
	if err := s.db.WithContext(ctx).CreateInBatches(&sales, 500).Error; err != nil {
		return 0, err
	}
	return len(sales), nil
}

func metadataJSON(metadata map[string]string) (datatypes.JSON, error) {
	if metadata == nil {
		metadata = map[string]string{}
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	return datatypes.JSON(raw), nil
}
