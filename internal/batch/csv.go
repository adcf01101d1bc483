// Package batch validates the shipping addresses of a CSV export and writes an
// annotated copy.
package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Input columns
const (
	ColumnStreet = "Shipping Street"
	ColumnCity   = "Shipping City"
	ColumnZip    = "Shipping Zip"
)

// OutputHeader is the header of the annotated CSV
var OutputHeader = []string{
	ColumnStreet,
	ColumnCity,
	ColumnZip,
	"House Number",
	"Road",
	"Unit",
	"Postcode",
	"Building",
	"Validation",
	"Property Type",
}

// Record is one shipping address read from the input
type Record struct {
	Line   int
	Street string
	City   string
	Zip    string
}

// Blank reports whether the row has neither street nor zip
func (r Record) Blank() bool {
	return r.Street == "" && r.Zip == ""
}

// RawAddress is the address string validated for the row
func (r Record) RawAddress() string {
	return fmt.Sprintf("%s, %s %s", r.Street, r.City, r.Zip)
}

// Seed carries the separate columns into the validation context
func (r Record) Seed() map[string]any {
	return map[string]any{"street": r.Street, "city": r.City, "postal": r.Zip}
}

// ReadRecords reads every row of a CSV with the shipping columns. Zip codes lose
// any leading apostrophe added by spreadsheet exports.
func ReadRecords(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	var missing []string
	for _, col := range []string{ColumnStreet, ColumnCity, ColumnZip} {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	field := func(row []string, col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		records = append(records, Record{
			Line:   line,
			Street: field(row, ColumnStreet),
			City:   field(row, ColumnCity),
			Zip:    strings.TrimLeft(field(row, ColumnZip), "'"),
		})
	}
	return records, nil
}

// WriteResults writes the header and one line per result
func WriteResults(w io.Writer, results []Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(OutputHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, res := range results {
		p := res.Context.ParsedOrEmpty()
		line := []string{
			res.Record.Street,
			res.Record.City,
			res.Record.Zip,
			p.BlockNumber,
			p.StreetName,
			p.UnitNumber,
			p.PostalCode,
			p.BuildingName,
			string(res.Context.Status),
			res.PropertyType(),
		}
		if err := writer.Write(line); err != nil {
			return fmt.Errorf("failed to write record for line %d: %w", res.Record.Line, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
