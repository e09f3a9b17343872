package etl

// Detection is the outcome of classifying a row-set from its headers.
type Detection struct {
	FileType   FileType   `json:"fileType"`
	Confidence Confidence `json:"confidence"`
}

// DetectFileType classifies a file purely from the set of canonical headers
// present, checked in order of specificity: sale > price > product. Data
// rows are never consulted, so garbage rows cannot sway the result.
func DetectFileType(headers []string) Detection {
	h := make(map[string]struct{}, len(headers))
	for _, header := range headers {
		h[header] = struct{}{}
	}
	has := func(name string) bool {
		_, ok := h[name]
		return ok
	}

	if has("sale_time") && (has("units_sold") || has("total_sale")) {
		return Detection{FileType: FileTypeSale, Confidence: ConfidenceHigh}
	}

	if has("price") && has("price_type") && (has("start_date") || has("end_date")) {
		return Detection{FileType: FileTypePrice, Confidence: ConfidenceHigh}
	}

	if has("upc_plu") && has("description") && (has("department") || has("category")) {
		return Detection{FileType: FileTypeProduct, Confidence: ConfidenceHigh}
	}

	return Detection{FileType: FileTypeUnknown, Confidence: ConfidenceLow}
}
