package netexport

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// outputRecord pins the serialized field names for both CSV and JSON output.
type outputRecord struct {
	ASN         int    `json:"asn"`
	NetworkType string `json:"network_type"`
	NetworkName string `json:"network_name"`
}

// csvHeader is the fixed column set of the CSV extract.
var csvHeader = []string{"asn", "network_type", "network_name"}

// WriteCSV writes networks to a CSV file with the fixed header
// asn,network_type,network_name. Intermediate directories are created
// automatically.
func WriteCSV(path string, networks []Network) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, n := range networks {
		row := []string{
			strconv.Itoa(n.ASN),
			n.Type,
			n.Name,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// WriteJSON writes networks as an indented JSON array of objects with the
// same three fields as the CSV extract.
func WriteJSON(path string, networks []Network) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("json: create output dir: %w", err)
	}

	out := make([]outputRecord, 0, len(networks))
	for _, n := range networks {
		out = append(out, outputRecord{
			ASN:         n.ASN,
			NetworkType: n.Type,
			NetworkName: n.Name,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("json: marshal records: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("json: write file %q: %w", path, err)
	}

	return nil
}
