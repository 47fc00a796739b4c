package catalog

import (
	"io"
	"strings"

	"storefront/models"

	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{"ID", "Slug", "Name", "Description", "Price", "Images", "CreatedAt", "UpdatedAt"}

// WriteXLSX writes products as a single "Products" sheet.
func WriteXLSX(w io.Writer, products []models.Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return err
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetString(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID.Hex())
		row.AddCell().SetString(p.Slug)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Description)
		price, _ := p.Price.Float64()
		row.AddCell().SetFloatWithFormat(price, "#,##0.00")
		row.AddCell().SetString(strings.Join(p.Images, ","))
		row.AddCell().SetString(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	return file.Write(w)
}
