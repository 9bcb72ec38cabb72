package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/Katapios/lazybones/internal/store"
)

func ToCSV(reports []store.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Date", "Kind", "Good", "Bad", "Good Items", "Bad Items", "Checklist", "Published", "Draft"}); err != nil {
		return err
	}

	for _, r := range reports {
		kind := "report"
		if r.IsPlan() {
			kind = "plan"
		}

		row := []string{
			fmt.Sprintf("%d", r.ID),
			r.Date.Local().Format(time.RFC3339),
			kind,
			fmt.Sprintf("%d", r.GoodCount),
			fmt.Sprintf("%d", r.BadCount),
			joinItems(r.GoodItems),
			joinItems(r.BadItems),
			joinItems(r.Checklist),
			fmt.Sprintf("%t", r.Published),
			fmt.Sprintf("%t", r.Draft),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
