package vectorstore

import (
	"testing"

	"github.com/qdrant/go-client/qdrant"
)

func TestParseQdrantURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantHost string
		wantPort int
	}{
		{"default port", "http://localhost:6333", "localhost", 6334},
		{"custom port", "http://qdrant.internal:7000", "qdrant.internal", 7001},
		{"no port", "http://localhost", "localhost", 6334},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, port, err := parseQdrantURL(tt.url)
			if err != nil {
				t.Fatalf("parseQdrantURL(%q) error = %v", tt.url, err)
			}
			if host != tt.wantHost {
				t.Errorf("host = %q, want %q", host, tt.wantHost)
			}
			if port != tt.wantPort {
				t.Errorf("port = %d, want %d", port, tt.wantPort)
			}
		})
	}
}

func TestBuildFilter(t *testing.T) {
	if f := buildFilter(nil); f != nil {
		t.Error("buildFilter(nil) should return nil")
	}

	f := buildFilter(map[string]any{"doc_id": "nutrition-v1", "chunk_index": 3})
	if f == nil {
		t.Fatal("buildFilter() returned nil for non-empty filters")
	}
	if len(f.Must) != 2 {
		t.Errorf("filter conditions = %d, want 2", len(f.Must))
	}

	// Unsupported value types are skipped rather than failing the search.
	if f := buildFilter(map[string]any{"weird": []string{"x"}}); f != nil {
		t.Error("buildFilter() with only unsupported types should return nil")
	}
}

func TestConvertValue(t *testing.T) {
	tests := []struct {
		name  string
		value *qdrant.Value
		want  any
	}{
		{"string", qdrant.NewValueString("nutrition-v1"), "nutrition-v1"},
		{"integer", qdrant.NewValueInt(42), int64(42)},
		{"double", qdrant.NewValueDouble(0.5), 0.5},
		{"bool", qdrant.NewValueBool(true), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertValue(tt.value); got != tt.want {
				t.Errorf("convertValue() = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestConvertPayloadToMap(t *testing.T) {
	payload := map[string]*qdrant.Value{
		"content": qdrant.NewValueString("Water-soluble vitamins include vitamin C."),
		"page":    qdrant.NewValueInt(123),
		"nil":     nil,
	}

	meta := convertPayloadToMap(payload)
	if meta["content"] != "Water-soluble vitamins include vitamin C." {
		t.Errorf("content = %v", meta["content"])
	}
	if meta["page"] != int64(123) {
		t.Errorf("page = %v (%T), want int64(123)", meta["page"], meta["page"])
	}
	if _, ok := meta["nil"]; ok {
		t.Error("nil values should be dropped")
	}
}
