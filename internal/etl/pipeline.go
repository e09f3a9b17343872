package etl

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Pipeline routes preprocessed row-sets to the type-specific importers.
type Pipeline struct {
	ds  Datastore
	log *zap.Logger
}

// NewPipeline creates a pipeline over the given datastore.
func NewPipeline(ds Datastore, log *zap.Logger) *Pipeline {
	return &Pipeline{ds: ds, log: log}
}

// Run dispatches a classified row-set to the matching importer. An unknown
// classification never attempts partial interpretation: every row counts as
// skipped.
func (p *Pipeline) Run(ctx context.Context, pre *PreprocessResult, fileType FileType, customerID uint) *Result {
	switch fileType {
	case FileTypeProduct:
		return p.importProducts(ctx, pre.Rows, customerID)
	case FileTypePrice:
		return p.importPrices(ctx, pre.Rows, customerID)
	case FileTypeSale:
		return p.importSales(ctx, pre.Rows, customerID)
	default:
		result := NewResult(FileTypeUnknown)
		result.Skipped = len(pre.Rows)
		result.Messages = append(result.Messages, "Unknown file type, cannot process")
		return result
	}
}

// optional returns a pointer to the row's value for key, or nil if absent.
func optional(row Row, key string) *string {
	if value, ok := row[key]; ok {
		return &value
	}
	return nil
}

// extractMetadata folds every column outside the importer's own field set
// into the metadata bag, preserving unrecognized vendor columns.
func extractMetadata(row Row, keyFields map[string]struct{}) map[string]string {
	metadata := map[string]string{}
	for key, value := range row {
		if _, ok := keyFields[key]; !ok {
			metadata[key] = value
		}
	}
	return metadata
}

// collectStoreCodes lists the distinct non-empty store codes in a batch.
func collectStoreCodes(rows []Row) []string {
	seen := map[string]struct{}{}
	codes := []string{}
	for _, row := range rows {
		code := strings.TrimSpace(row["store"])
		if code == "" {
			continue
		}
		if _, ok := seen[code]; !ok {
			seen[code] = struct{}{}
			codes = append(codes, code)
		}
	}
	return codes
}
