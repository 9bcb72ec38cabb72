package export

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Katapios/lazybones/internal/store"
)

type jsonExport struct {
	ExportedAt string       `json:"exported_at"`
	Count      int          `json:"count"`
	Reports    []jsonReport `json:"reports"`
}

type jsonReport struct {
	ID        int64    `json:"id"`
	Date      string   `json:"date"`
	Content   string   `json:"content,omitempty"`
	Checklist []string `json:"checklist,omitempty"`
	GoodItems []string `json:"good_items,omitempty"`
	BadItems  []string `json:"bad_items,omitempty"`
	GoodCount int      `json:"good_count"`
	BadCount  int      `json:"bad_count"`
	Published bool     `json:"published"`
	Draft     bool     `json:"draft"`
}

func ToJSON(reports []store.Report, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(reports),
	}

	for _, r := range reports {
		export.Reports = append(export.Reports, jsonReport{
			ID:        r.ID,
			Date:      r.Date.Local().Format(time.RFC3339),
			Content:   r.Content,
			Checklist: r.Checklist,
			GoodItems: r.GoodItems,
			BadItems:  r.BadItems,
			GoodCount: r.GoodCount,
			BadCount:  r.BadCount,
			Published: r.Published,
			Draft:     r.Draft,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

func joinItems(items []string) string {
	return strings.Join(items, "; ")
}
