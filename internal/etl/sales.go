package etl

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var saleKeyFields = map[string]struct{}{
	"store":      {},
	"upc_plu":    {},
	"sale_time":  {},
	"unit_price": {},
	"units_sold": {},
	"total_sale": {},
}

// saleDedupKey builds the natural key of a sales event: store, UPC,
// normalized sale timestamp, total sale amount.
func saleDedupKey(storeID uint, upcPlu string, saleTime *string, totalSale *float64) string {
	return fmt.Sprintf("%d:%s:%s:%s", storeID, upcPlu, deref(saleTime), floatKey(totalSale))
}

func floatKey(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// importSales appends sales events with the same store-resolution and
// duplicate policy as prices.
func (p *Pipeline) importSales(ctx context.Context, rows []Row, customerID uint) *Result {
	result := NewResult(FileTypeSale)

	storeMap, codesFound, err := resolveStores(ctx, p.ds, customerID, rows)
	if err != nil {
		result.Errors += len(rows)
		msg := fmt.Sprintf("Store resolution failed: %v", err)
		result.Messages = append(result.Messages, msg)
		p.log.Error("sale import: store resolution failed", zap.Error(err))
		return result
	}
	result.StoreCodesFound = codesFound

	existingKeys, err := p.loadSaleKeys(ctx, storeMap)
	if err != nil {
		result.Errors += len(rows)
		msg := fmt.Sprintf("Sale lookup failed: %v", err)
		result.Messages = append(result.Messages, msg)
		p.log.Error("sale import: existing key lookup failed", zap.Error(err))
		return result
	}

	seenKeys := map[string]struct{}{}
	toCreate := []SaleRecord{}
	for _, row := range rows {
		if IsInvalidUPC(row["upc_plu"]) {
			result.Skipped++
			continue
		}

		storeCode := strings.TrimSpace(row["store"])
		storeID, ok := storeMap[storeCode]
		if storeCode == "" || !ok {
			result.Skipped++
			continue
		}

		upcPlu := strings.TrimSpace(row["upc_plu"])
		saleTime := timestampField(row, "sale_time")
		totalSale := floatField(row, "total_sale")
		key := saleDedupKey(storeID, upcPlu, saleTime, totalSale)

		if _, dup := seenKeys[key]; dup {
			result.DuplicatesSkipped++
			continue
		}
		if _, dup := existingKeys[key]; dup {
			result.DuplicatesSkipped++
			continue
		}
		seenKeys[key] = struct{}{}

		// Price type rides along as metadata on sale rows; normalize its
		// casing the same way the price importer does.
		if priceType, ok := row["price_type"]; ok {
			row["price_type"] = strings.ToUpper(strings.TrimSpace(priceType))
		}

		toCreate = append(toCreate, SaleRecord{
			StoreID:   storeID,
			UpcPlu:    upcPlu,
			SaleTime:  saleTime,
			UnitPrice: floatField(row, "unit_price"),
			UnitsSold: floatField(row, "units_sold"),
			TotalSale: totalSale,
			Metadata:  extractMetadata(row, saleKeyFields),
		})
	}

	if len(toCreate) > 0 {
		created, err := p.ds.CreateSales(ctx, toCreate)
		if err != nil {
			result.Errors += len(toCreate)
			msg := fmt.Sprintf("Bulk sale insert failed: %v", err)
			result.Messages = append(result.Messages, msg)
			p.log.Error("sale import: bulk insert failed", zap.Error(err))
		} else {
			result.Inserted = created
		}
	}

	p.log.Info("sale import completed",
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped),
		zap.Int("duplicatesSkipped", result.DuplicatesSkipped),
		zap.Int("errors", result.Errors))
	return result
}

func (p *Pipeline) loadSaleKeys(ctx context.Context, storeMap map[string]uint) (map[string]struct{}, error) {
	keys := map[string]struct{}{}
	if len(storeMap) == 0 {
		return keys, nil
	}
	existing, err := p.ds.ListSaleKeys(ctx, storeIDs(storeMap))
	if err != nil {
		return nil, err
	}
	for _, k := range existing {
		keys[saleDedupKey(k.StoreID, k.UpcPlu, k.SaleTime, k.TotalSale)] = struct{}{}
	}
	return keys, nil
}

func timestampField(row Row, key string) *string {
	if value, ok := row[key]; ok {
		normalized := NormalizeTimestamp(value)
		return &normalized
	}
	return nil
}
