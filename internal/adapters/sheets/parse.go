package sheets

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"middlebro/internal/domain"
)

// parseDirectory decodes the CSV export into business records.
//
// Expected header: id, name, city, services, then one column per weekday the
// sheet tracks (lowercase Romanian names, e.g. "joi"). The services cell and
// each weekday cell hold comma-separated values. Unknown columns are
// ignored so the sheet can grow extra fields without breaking the relay.
func parseDirectory(r io.Reader) ([]domain.BusinessRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are handled per-row below

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := map[string]int{}
	var dayCols []string
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		cols[name] = i
		if domain.IsWeekday(name) {
			dayCols = append(dayCols, name)
		}
	}
	for _, required := range []string{"id", "name", "city", "services"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("sheet header missing %q column", required)
		}
	}

	var out []domain.BusinessRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// one mangled row should not take the directory down
			log.Warn().Int("line", line).Err(err).Msg("skipping unreadable sheet row")
			continue
		}
		rec, err := parseRow(row, cols, dayCols)
		if err != nil {
			log.Warn().Int("line", line).Err(err).Msg("skipping malformed sheet row")
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseRow(row []string, cols map[string]int, dayCols []string) (domain.BusinessRecord, error) {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := domain.BusinessRecord{
		ID:       cell("id"),
		Name:     cell("name"),
		City:     cell("city"),
		Services: splitList(cell("services")),
	}
	if rec.ID == "" || rec.Name == "" || rec.City == "" || len(rec.Services) == 0 {
		return domain.BusinessRecord{}, fmt.Errorf("missing required fields (id=%q)", rec.ID)
	}

	rec.Availability = map[string][]string{}
	for _, day := range dayCols {
		if hours := splitList(cell(day)); len(hours) > 0 {
			rec.Availability[day] = hours
		}
	}
	return rec, nil
}

// splitList splits a comma-separated cell, trimming whitespace and dropping
// empties.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
