package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"greencart/internal/domain"

	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates products by name.
//
// Expected headers: name, description, category, price, offerPrice, image,
// inStock. A row with an empty name continues the previous product and may
// carry an extra description line and/or image.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

type csvRow struct {
	Name        string
	Description []string
	Category    string
	Price       string
	OfferPrice  string
	Images      []string
	InStock     string
}

// Run parses CSV rows and upserts products, returning how many were written.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("missing name column")
	}

	var (
		current  *csvRow
		imported int
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row := parseRow(record, index)
		if row == nil {
			continue
		}

		if row.Name != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		if current != nil {
			current.Description = append(current.Description, row.Description...)
			current.Images = append(current.Images, row.Images...)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if row.Category == "" || row.Price == "" {
		return fmt.Errorf("invalid product row (missing required fields) for %q", row.Name)
	}
	price, err := decimal.NewFromString(row.Price)
	if err != nil || !price.IsPositive() {
		return fmt.Errorf("invalid price for %q: %s", row.Name, row.Price)
	}
	offer := price
	if row.OfferPrice != "" {
		offer, err = decimal.NewFromString(row.OfferPrice)
		if err != nil || !offer.IsPositive() || offer.GreaterThan(price) {
			return fmt.Errorf("invalid offer price for %q: %s", row.Name, row.OfferPrice)
		}
	}
	inStock := true
	if row.InStock != "" {
		if inStock, err = strconv.ParseBool(row.InStock); err != nil {
			return fmt.Errorf("invalid inStock for %q: %s", row.Name, row.InStock)
		}
	}

	p := domain.Product{
		Name:        row.Name,
		Description: row.Description,
		Category:    row.Category,
		Price:       price.Round(2),
		OfferPrice:  offer.Round(2),
		Image:       row.Images,
		InStock:     inStock,
	}

	if _, err := i.productRepo.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert product %q: %w", row.Name, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	name := pick(record, index, "name")
	desc := pick(record, index, "description")
	image := pick(record, index, "image")

	if name == "" && desc == "" && image == "" {
		return nil
	}

	row := &csvRow{
		Name:       name,
		Category:   pick(record, index, "category"),
		Price:      pick(record, index, "price"),
		OfferPrice: pick(record, index, "offerPrice"),
		InStock:    pick(record, index, "inStock"),
	}
	if desc != "" {
		row.Description = []string{desc}
	}
	if image != "" {
		row.Images = []string{image}
	}
	return row
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
