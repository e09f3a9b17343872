package etl

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var priceKeyFields = map[string]struct{}{
	"store":      {},
	"upc_plu":    {},
	"price":      {},
	"price_type": {},
	"start_date": {},
	"end_date":   {},
}

// priceDedupKey builds the natural key of a pricing event: store, UPC,
// normalized uppercase price type, start date.
func priceDedupKey(storeID uint, upcPlu string, priceType, startDate *string) string {
	return fmt.Sprintf("%d:%s:%s:%s", storeID, upcPlu, deref(priceType), deref(startDate))
}

// importPrices appends pricing events. Price changes are new records, never
// edits, so a row whose natural key was seen earlier in this run or already
// exists in storage is dropped as a duplicate.
func (p *Pipeline) importPrices(ctx context.Context, rows []Row, customerID uint) *Result {
	result := NewResult(FileTypePrice)

	storeMap, codesFound, err := resolveStores(ctx, p.ds, customerID, rows)
	if err != nil {
		result.Errors += len(rows)
		msg := fmt.Sprintf("Store resolution failed: %v", err)
		result.Messages = append(result.Messages, msg)
		p.log.Error("price import: store resolution failed", zap.Error(err))
		return result
	}
	result.StoreCodesFound = codesFound

	existingKeys, err := p.loadPriceKeys(ctx, storeMap)
	if err != nil {
		result.Errors += len(rows)
		msg := fmt.Sprintf("Price lookup failed: %v", err)
		result.Messages = append(result.Messages, msg)
		p.log.Error("price import: existing key lookup failed", zap.Error(err))
		return result
	}

	seenKeys := map[string]struct{}{}
	toCreate := []PriceRecord{}
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
		priceType := upperCased(row, "price_type")
		startDate := optional(row, "start_date")
		key := priceDedupKey(storeID, upcPlu, priceType, startDate)

		if _, dup := seenKeys[key]; dup {
			result.DuplicatesSkipped++
			continue
		}
		if _, dup := existingKeys[key]; dup {
			result.DuplicatesSkipped++
			continue
		}
		seenKeys[key] = struct{}{}

		toCreate = append(toCreate, PriceRecord{
			StoreID:   storeID,
			UpcPlu:    upcPlu,
			Price:     floatField(row, "price"),
			PriceType: priceType,
			StartDate: startDate,
			EndDate:   optional(row, "end_date"),
			Metadata:  extractMetadata(row, priceKeyFields),
		})
	}

	if len(toCreate) > 0 {
		created, err := p.ds.CreatePrices(ctx, toCreate)
		if err != nil {
			result.Errors += len(toCreate)
			msg := fmt.Sprintf("Bulk price insert failed: %v", err)
			result.Messages = append(result.Messages, msg)
			p.log.Error("price import: bulk insert failed", zap.Error(err))
		} else {
			result.Inserted = created
		}
	}

	p.log.Info("price import completed",
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped),
		zap.Int("duplicatesSkipped", result.DuplicatesSkipped),
		zap.Int("errors", result.Errors))
	return result
}

func (p *Pipeline) loadPriceKeys(ctx context.Context, storeMap map[string]uint) (map[string]struct{}, error) {
	keys := map[string]struct{}{}
	if len(storeMap) == 0 {
		return keys, nil
	}
	existing, err := p.ds.ListPriceKeys(ctx, storeIDs(storeMap))
	if err != nil {
		return nil, err
	}
	for _, k := range existing {
		keys[priceDedupKey(k.StoreID, k.UpcPlu, k.PriceType, k.StartDate)] = struct{}{}
	}
	return keys, nil
}

func storeIDs(storeMap map[string]uint) []uint {
	ids := make([]uint, 0, len(storeMap))
	for _, id := range storeMap {
		ids = append(ids, id)
	}
	return ids
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func upperCased(row Row, key string) *string {
	if value, ok := row[key]; ok {
		upper := strings.ToUpper(strings.TrimSpace(value))
		return &upper
	}
	return nil
}

func floatField(row Row, key string) *float64 {
	if value, ok := row[key]; ok {
		return ToFloat(value)
	}
	return nil
}
