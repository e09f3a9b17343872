package etl

import "testing"

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		name       string
		headers    []string
		wantType   FileType
		confidence Confidence
	}{
		{"sale by units sold", []string{"sale_time", "units_sold"}, FileTypeSale, ConfidenceHigh},
		{"sale by total", []string{"sale_time", "total_sale"}, FileTypeSale, ConfidenceHigh},
		{"price", []string{"price", "price_type", "start_date"}, FileTypePrice, ConfidenceHigh},
		{"price by end date", []string{"price", "price_type", "end_date"}, FileTypePrice, ConfidenceHigh},
		{"product", []string{"upc_plu", "description", "department"}, FileTypeProduct, ConfidenceHigh},
		{"product by category", []string{"upc_plu", "description", "category"}, FileTypeProduct, ConfidenceHigh},
		{"empty", []string{}, FileTypeUnknown, ConfidenceLow},
		{"sale time alone", []string{"sale_time"}, FileTypeUnknown, ConfidenceLow},
		{"price without window", []string{"price", "price_type"}, FileTypeUnknown, ConfidenceLow},
		// Precedence: sale wins when both rules would match
		{"sale beats price", []string{"sale_time", "units_sold", "price", "price_type", "start_date"}, FileTypeSale, ConfidenceHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectFileType(tt.headers)
			if got.FileType != tt.wantType || got.Confidence != tt.confidence {
				t.Errorf("DetectFileType(%v) = %v/%v, want %v/%v",
					tt.headers, got.FileType, got.Confidence, tt.wantType, tt.confidence)
			}
		})
	}
}
