package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"desa/app"
)

// httpClient is the shared HTTP client with timeout
var httpClient = &http.Client{Timeout: 15 * time.Second}

// FetchFeed pulls the published CSV once and parses it into spots.
func FetchFeed(url string) ([]*Spot, error) {
	start := time.Now()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Desa/1.0")

	rsp, err := httpClient.Do(req)
	if err != nil {
		app.RecordFetch("sheet", url, 0, time.Since(start), err)
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer rsp.Body.Close()

	if rsp.StatusCode != http.StatusOK {
		err := fmt.Errorf("feed returned status %d", rsp.StatusCode)
		app.RecordFetch("sheet", url, rsp.StatusCode, time.Since(start), err)
		return nil, err
	}

	spots, err := ParseCSV(rsp.Body)
	app.RecordFetch("sheet", url, rsp.StatusCode, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	return spots, nil
}

// ParseCSV reads header-row CSV into spots. The first row defines the field
// names; rows are kept as loose maps so unknown columns survive. Ragged or
// blank rows are skipped, not surfaced.
func ParseCSV(r io.Reader) ([]*Spot, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // sheets pad rows inconsistently
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var spots []*Spot
	for _, record := range records[1:] {
		row := map[string]string{}
		for i, val := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = val
		}

		spot := NewSpot(row)
		if spot.Empty() {
			continue
		}
		spots = append(spots, spot)
	}

	return spots, nil
}
