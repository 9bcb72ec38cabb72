package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Katapios/lazybones/internal/store"
)

func sampleData() []store.Report {
	return []store.Report{
		{
			ID:        2,
			Date:      time.Date(2025, 3, 15, 19, 0, 0, 0, time.UTC),
			Content:   "good momentum",
			GoodItems: []string{"ran", "read"},
			BadItems:  []string{"slept in"},
			GoodCount: 2,
			BadCount:  1,
			Published: true,
		},
		{
			ID:        1,
			Date:      time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
			Checklist: []string{"morning run", "write"},
			Draft:     false,
		},
	}
}

// ============================================================
// CSV export
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ToCSV(sampleData(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][2] != "Kind" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][2] != "report" || rows[2][2] != "plan" {
		t.Fatalf("kinds = %q, %q", rows[1][2], rows[2][2])
	}
	if rows[1][5] != "ran; read" {
		t.Fatalf("good items column = %q", rows[1][5])
	}
	if rows[1][8] != "true" {
		t.Fatalf("published column = %q", rows[1][8])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	f, _ := os.Open(path)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("empty export should still write the header, got:\n%s", data)
	}
}

// ============================================================
// JSON export
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ToJSON(sampleData(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got jsonExport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Count != 2 || len(got.Reports) != 2 {
		t.Fatalf("count = %d, reports = %d", got.Count, len(got.Reports))
	}
	if got.Reports[0].ID != 2 || got.Reports[0].GoodCount != 2 {
		t.Fatalf("first report = %+v", got.Reports[0])
	}
	if len(got.Reports[1].Checklist) != 2 {
		t.Fatalf("checklist = %v", got.Reports[1].Checklist)
	}
	if _, err := time.Parse(time.RFC3339, got.ExportedAt); err != nil {
		t.Fatalf("exported_at not RFC3339: %q", got.ExportedAt)
	}
}
