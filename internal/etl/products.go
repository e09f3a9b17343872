package etl

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var productKeyFields = map[string]struct{}{
	"upc_plu":     {},
	"description": {},
	"department":  {},
	"category":    {},
	"unit_size":   {},
	"pack_size":   {},
}

// importProducts upserts catalog rows for a customer. Rows with an invalid
// UPC are skipped; existing products are updated in place, new ones are
// batch-created. Nothing here escapes as an error: failures become counters
// and messages on the result.
func (p *Pipeline) importProducts(ctx context.Context, rows []Row, customerID uint) *Result {
	result := NewResult(FileTypeProduct)
	result.StoreCodesFound = collectStoreCodes(rows)

	type validRow struct {
		upcPlu string
		row    Row
	}
	valid := []validRow{}
	for _, row := range rows {
		if IsInvalidUPC(row["upc_plu"]) {
			result.Skipped++
			continue
		}
		valid = append(valid, validRow{upcPlu: strings.TrimSpace(row["upc_plu"]), row: row})
	}
	if len(valid) == 0 {
		return result
	}

	upcs := make([]string, len(valid))
	for i, v := range valid {
		upcs[i] = v.upcPlu
	}
	existing, err := p.ds.FindProductIDs(ctx, customerID, upcs)
	if err != nil {
		result.Errors += len(valid)
		msg := fmt.Sprintf("Product lookup failed: %v", err)
		result.Messages = append(result.Messages, msg)
		p.log.Error("product import: lookup failed", zap.Error(err))
		return result
	}

	toCreate := []ProductRecord{}
	for _, v := range valid {
		rec := ProductRecord{
			CustomerID:  customerID,
			UpcPlu:      v.upcPlu,
			Description: titleCased(v.row, "description"),
			Department:  lowerCased(v.row, "department"),
			Category:    lowerCased(v.row, "category"),
			UnitSize:    optional(v.row, "unit_size"),
			PackSize:    optional(v.row, "pack_size"),
			Metadata:    extractMetadata(v.row, productKeyFields),
		}

		if _, ok := existing[v.upcPlu]; ok {
			if err := p.ds.UpdateProduct(ctx, rec); err != nil {
				result.Errors++
				msg := fmt.Sprintf("Product error (upc=%s): %v", v.upcPlu, err)
				result.Messages = append(result.Messages, msg)
				p.log.Error("product import: update failed", zap.String("upc", v.upcPlu), zap.Error(err))
				continue
			}
			result.Updated++
		} else {
			toCreate = append(toCreate, rec)
		}
	}

	if len(toCreate) > 0 {
		created, err := p.ds.CreateProducts(ctx, toCreate)
		if err != nil {
			result.Errors += len(toCreate)
			msg := fmt.Sprintf("Bulk product insert failed: %v", err)
			result.Messages = append(result.Messages, msg)
			p.log.Error("product import: bulk insert failed", zap.Error(err))
		} else {
			result.Inserted += created
		}
	}

	p.log.Info("product import completed",
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", result.Errors))
	return result
}

func titleCased(row Row, key string) *string {
	if value, ok := row[key]; ok {
		cased := ToTitleCase(value)
		return &cased
	}
	return nil
}

func lowerCased(row Row, key string) *string {
	if value, ok := row[key]; ok {
		lowered := strings.ToLower(value)
		return &lowered
	}
	return nil
}
