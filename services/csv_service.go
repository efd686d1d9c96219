package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/selector"
	"github.com/jackc/pgx/v5"
)

// ErrInvalidCSV wraps every CSV validation failure.
var ErrInvalidCSV = errors.New("invalid product CSV")

// ProductCSVHeader is the column order written by export. Import accepts the
// columns in any order.
var ProductCSVHeader = []string{
	"id", "series", "technology", "duty", "ip", "actions", "applications",
	"material", "connector_type", "features", "flagship", "description",
	"image", "link", "voltage", "amperage", "certifications", "circuitry",
	"part_number",
}

var requiredCSVColumns = []string{"id", "technology", "duty", "applications"}

// listSeparator joins list cells (actions, applications, features, certifications).
const listSeparator = ";"

// CSVRowError points at one bad cell. Line is 1-based and counts the header.
type CSVRowError struct {
	Line    int    `json:"line"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

// CSVImportError collects every row error of a file.
type CSVImportError struct {
	Errors []CSVRowError
}

func (e *CSVImportError) Error() string {
	if len(e.Errors) == 0 {
		return ErrInvalidCSV.Error()
	}
	first := e.Errors[0]
	return fmt.Sprintf("%s: line %d: %s (%d errors)", ErrInvalidCSV, first.Line, first.Message, len(e.Errors))
}

func (e *CSVImportError) Unwrap() error { return ErrInvalidCSV }

// ParseProductsCSV reads a catalog CSV. Either every row is valid and the
// products are returned in file order, or a *CSVImportError lists the problems.
func ParseProductsCSV(r io.Reader) ([]models.Product, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &CSVImportError{Errors: []CSVRowError{{Line: 1, Message: "file is empty"}}}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}

	columns, headerErrs := mapHeader(header)
	if len(headerErrs) > 0 {
		return nil, &CSVImportError{Errors: headerErrs}
	}

	var (
		products = make([]models.Product, 0)
		rowErrs  []CSVRowError
		seen     = make(map[string]int)
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				rowErrs = append(rowErrs, CSVRowError{Line: pe.StartLine, Message: pe.Err.Error()})
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
		}
		line, _ := reader.FieldPos(0)
		if len(record) != len(header) {
			rowErrs = append(rowErrs, CSVRowError{
				Line:    line,
				Message: fmt.Sprintf("expected %d fields, got %d", len(header), len(record)),
			})
			continue
		}

		p, errs := parseProductRow(line, columns, record)
		if prev, dup := seen[p.ID]; dup && p.ID != "" {
			errs = append(errs, CSVRowError{Line: line, Column: "id", Message: fmt.Sprintf("duplicate id %q (first on line %d)", p.ID, prev)})
		}
		if len(errs) > 0 {
			rowErrs = append(rowErrs, errs...)
			continue
		}
		seen[p.ID] = line
		products = append(products, p)
	}

	if len(rowErrs) > 0 {
		return nil, &CSVImportError{Errors: rowErrs}
	}
	return products, nil
}

func mapHeader(header []string) (map[string]int, []CSVRowError) {
	known := make(map[string]bool, len(ProductCSVHeader))
	for _, h := range ProductCSVHeader {
		known[h] = true
	}

	columns := make(map[string]int, len(header))
	var errs []CSVRowError
	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff")))
		if !known[name] {
			errs = append(errs, CSVRowError{Line: 1, Column: raw, Message: "unknown column"})
			continue
		}
		if _, dup := columns[name]; dup {
			errs = append(errs, CSVRowError{Line: 1, Column: name, Message: "duplicate column"})
			continue
		}
		columns[name] = i
	}
	for _, req := range requiredCSVColumns {
		if _, ok := columns[req]; !ok {
			errs = append(errs, CSVRowError{Line: 1, Column: req, Message: "required column missing"})
		}
	}
	return columns, errs
}

func parseProductRow(line int, columns map[string]int, record []string) (models.Product, []CSVRowError) {
	cell := func(name string) string {
		if i, ok := columns[name]; ok {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	var errs []CSVRowError
	fail := func(column, msg string) {
		errs = append(errs, CSVRowError{Line: line, Column: column, Message: msg})
	}

	p := models.Product{
		ID:             cell("id"),
		Series:         cell("series"),
		Technology:     cell("technology"),
		Duty:           cell("duty"),
		IP:             cell("ip"),
		Actions:        splitListCell(cell("actions")),
		Applications:   splitListCell(cell("applications")),
		Material:       cell("material"),
		Features:       splitListCell(cell("features")),
		Description:    cell("description"),
		Image:          cell("image"),
		Link:           cell("link"),
		Voltage:        cell("voltage"),
		Amperage:       cell("amperage"),
		Certifications: splitListCell(cell("certifications")),
		Circuitry:      cell("circuitry"),
		PartNumber:     cell("part_number"),
	}
	if c := cell("connector_type"); c != "" {
		p.ConnectorType = &c
	}
	flagship, ok := parseBool(cell("flagship"))
	if !ok {
		fail("flagship", fmt.Sprintf("invalid boolean %q", cell("flagship")))
	}
	p.Flagship = flagship
	p.Normalize()

	if p.ID == "" {
		fail("id", "id is required")
	} else if len(p.ID) > 64 {
		fail("id", "id longer than 64 characters")
	}
	switch p.Technology {
	case selector.TechElectrical, selector.TechPneumatic, selector.TechWireless:
	default:
		fail("technology", fmt.Sprintf("unknown technology %q", cell("technology")))
	}
	switch p.Duty {
	case selector.DutyHeavy, selector.DutyMedium, selector.DutyLight:
	default:
		fail("duty", fmt.Sprintf("unknown duty %q", cell("duty")))
	}
	if len(p.Applications) == 0 {
		fail("applications", "at least one application is required")
	}
	return p, errs
}

func splitListCell(s string) models.StringList {
	out := make(models.StringList, 0)
	for _, part := range strings.Split(s, listSeparator) {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "", "false", "0", "no", "n":
		return false, true
	case "true", "1", "yes", "y":
		return true, true
	}
	return false, false
}

// WriteProductsCSV writes products with ProductCSVHeader. Its output
// round-trips through ParseProductsCSV.
func WriteProductsCSV(w io.Writer, products []models.Product) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ProductCSVHeader); err != nil {
		return err
	}
	for _, p := range products {
		connector := ""
		if p.ConnectorType != nil {
			connector = *p.ConnectorType
		}
		flagship := "false"
		if p.Flagship {
			flagship = "true"
		}
		if err := writer.Write([]string{
			p.ID, p.Series, p.Technology, p.Duty, p.IP,
			strings.Join(p.Actions, listSeparator),
			strings.Join(p.Applications, listSeparator),
			p.Material, connector,
			strings.Join(p.Features, listSeparator),
			flagship, p.Description, p.Image, p.Link, p.Voltage, p.Amperage,
			strings.Join(p.Certifications, listSeparator),
			p.Circuitry, p.PartNumber,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ════════════════════════════════════════════════════════════
// Bulk import (pgx)
// ════════════════════════════════════════════════════════════

// ImportMode decides what happens to products missing from the file.
type ImportMode string

const (
	// ImportMerge upserts the file and keeps other products.
	ImportMerge ImportMode = "merge"
	// ImportReplace makes the file the whole catalog.
	ImportReplace ImportMode = "replace"
)

// ParseImportMode defaults to merge.
func ParseImportMode(s string) (ImportMode, bool) {
	switch ImportMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ImportMerge:
		return ImportMerge, true
	case ImportReplace:
		return ImportReplace, true
	}
	return "", false
}

type ImportResult struct {
	Mode     ImportMode `json:"mode"`
	Imported int        `json:"imported"`
	Deleted  int64      `json:"deleted"`
}

// clock_timestamp keeps file order as catalog order; an existing row keeps its
// position and, when the file has no image, its uploaded image.
const upsertProductSQL = `
INSERT INTO products (
	id, series, technology, duty, ip, actions, applications, material,
	connector_type, features, flagship, description, image, link, voltage,
	amperage, certifications, circuitry, part_number, created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8,
	$9, $10::jsonb, $11, $12, $13, $14, $15,
	$16, $17::jsonb, $18, $19, clock_timestamp(), clock_timestamp()
)
ON CONFLICT (id) DO UPDATE SET
	series = EXCLUDED.series,
	technology = EXCLUDED.technology,
	duty = EXCLUDED.duty,
	ip = EXCLUDED.ip,
	actions = EXCLUDED.actions,
	applications = EXCLUDED.applications,
	material = EXCLUDED.material,
	connector_type = EXCLUDED.connector_type,
	features = EXCLUDED.features,
	flagship = EXCLUDED.flagship,
	description = EXCLUDED.description,
	image = COALESCE(NULLIF(EXCLUDED.image, ''), products.image),
	link = EXCLUDED.link,
	voltage = EXCLUDED.voltage,
	amperage = EXCLUDED.amperage,
	certifications = EXCLUDED.certifications,
	circuitry = EXCLUDED.circuitry,
	part_number = EXCLUDED.part_number,
	updated_at = clock_timestamp()`

// ImportProducts writes products in one transaction. Nothing is written if
// any row fails.
func ImportProducts(ctx context.Context, products []models.Product, mode ImportMode) (ImportResult, error) {
	result := ImportResult{Mode: mode}
	if config.CmsDB == nil {
		return result, ErrCatalogUnavailable
	}

	tx, err := config.CmsDB.Begin(ctx)
	if err != nil {
		return result, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	if mode == ImportReplace {
		tag, err := tx.Exec(ctx, "DELETE FROM products")
		if err != nil {
			return result, fmt.Errorf("clear products: %w", err)
		}
		result.Deleted = tag.RowsAffected()
	}

	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(upsertProductSQL, productArgs(p)...)
	}
	br := tx.SendBatch(ctx, batch)
	for _, p := range products {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return result, fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
	}
	if err := br.Close(); err != nil {
		return result, fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return result, fmt.Errorf("commit import: %w", err)
	}

	result.Imported = len(products)
	InvalidateCatalog(ctx)
	config.Log.Infof("[catalog.import] %s: %d upserted, %d deleted", mode, result.Imported, result.Deleted)
	return result, nil
}

func productArgs(p models.Product) []any {
	return []any{
		p.ID, p.Series, p.Technology, p.Duty, p.IP,
		jsonList(p.Actions), jsonList(p.Applications), p.Material,
		p.ConnectorType, jsonList(p.Features), p.Flagship, p.Description,
		p.Image, p.Link, p.Voltage, p.Amperage, jsonList(p.Certifications),
		p.Circuitry, p.PartNumber,
	}
}

func jsonList(l models.StringList) string {
	if l == nil {
		return "[]"
	}
	data, _ := json.Marshal([]string(l))
	return string(data)
}
