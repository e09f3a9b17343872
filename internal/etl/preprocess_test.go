package etl

import "testing"

func TestPreprocess(t *testing.T) {
	raw := "----,----,----\n" +
		"UPC,Description,Department\n" +
		"0001,Fuji Apple,PRODUCE\n" +
		"0002,NULL,Bakery\n" +
		"================\n" +
		"0003,Sourdough\n"

	pre, err := Preprocess(raw)
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	wantHeaders := []string{"upc_plu", "description", "department"}
	if len(pre.Headers) != len(wantHeaders) {
		t.Fatalf("got %d headers, want %d", len(pre.Headers), len(wantHeaders))
	}
	for i, h := range wantHeaders {
		if pre.Headers[i] != h {
			t.Errorf("header[%d] = %q, want %q", i, pre.Headers[i], h)
		}
	}

	if len(pre.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(pre.Rows))
	}

	if pre.Rows[0]["upc_plu"] != "0001" || pre.Rows[0]["description"] != "Fuji Apple" {
		t.Errorf("row 0 not cleaned as expected: %v", pre.Rows[0])
	}

	// Placeholder null collapses to absence
	if _, ok := pre.Rows[1]["description"]; ok {
		t.Errorf("row 1 description should be absent, got %v", pre.Rows[1])
	}

	// Short rows tolerate missing trailing fields
	if _, ok := pre.Rows[2]["department"]; ok {
		t.Errorf("row 2 department should be absent, got %v", pre.Rows[2])
	}
	if pre.Rows[2]["description"] != "Sourdough" {
		t.Errorf("row 2 description = %q, want Sourdough", pre.Rows[2]["description"])
	}
}

func TestPreprocessEmpty(t *testing.T) {
	pre, err := Preprocess("")
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if len(pre.Headers) != 0 || len(pre.Rows) != 0 {
		t.Errorf("expected empty result, got headers=%v rows=%v", pre.Headers, pre.Rows)
	}
}

func TestPreprocessCRLF(t *testing.T) {
	pre, err := Preprocess("Store,Price\r\n001,$1.99\r\n")
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if len(pre.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(pre.Rows))
	}
	if pre.Rows[0]["store"] != "001" || pre.Rows[0]["price"] != "$1.99" {
		t.Errorf("unexpected row: %v", pre.Rows[0])
	}
}
