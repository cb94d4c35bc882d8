package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ibumus/warung-backend/config"
	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/internal/app/repository"
	"github.com/ibumus/warung-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports the menu from an XLSX workbook with the columns:
// category | name | description | price | image_url | is_popular
// Categories are created on first sight, in workbook order.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(db.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	menuRepo := repository.NewMenuItemRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	rows, err := readMenuRows(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total menu items to import: %d\n", len(rows))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	categories := make(map[string]uint)
	imported := 0
	for _, row := range rows {
		categoryID, ok := categories[row.category]
		if !ok {
			category := &model.Category{
				Name:         row.category,
				DisplayOrder: len(categories),
			}
			if err := categoryRepo.Create(category); err != nil {
				log.Fatalf("Failed to create category %q: %v", row.category, err)
			}
			categoryID = category.ID
			categories[row.category] = categoryID
		}

		item := &model.MenuItem{
			CategoryID:  categoryID,
			Name:        row.name,
			Description: row.description,
			Price:       row.price,
			ImageURL:    row.imageURL,
			IsAvailable: true,
			IsPopular:   row.isPopular,
		}
		if err := menuRepo.Create(item); err != nil {
			log.Fatalf("Failed to create menu item %q: %v", row.name, err)
		}
		imported++
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Categories created: %d, menu items imported: %d\n", len(categories), imported)
}

type menuRow struct {
	category    string
	name        string
	description string
	price       float64
	imageURL    string
	isPopular   bool
}

func readMenuRows(filePath string) ([]menuRow, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("workbook has no data rows")
	}

	var result []menuRow
	for i, row := range rows[1:] { // skip header
		if len(row) < 4 {
			fmt.Printf("Skipping row %d: not enough columns\n", i+2)
			continue
		}

		category := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		if category == "" || name == "" {
			fmt.Printf("Skipping row %d: missing category or name\n", i+2)
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil || price <= 0 {
			fmt.Printf("Skipping row %d: invalid price %q\n", i+2, row[3])
			continue
		}

		r := menuRow{
			category: category,
			name:     name,
			price:    price,
		}
		if len(row) > 2 {
			r.description = strings.TrimSpace(row[2])
		}
		if len(row) > 4 {
			r.imageURL = strings.TrimSpace(row[4])
		}
		if len(row) > 5 {
			popular := strings.ToLower(strings.TrimSpace(row[5]))
			r.isPopular = popular == "true" || popular == "yes" || popular == "1"
		}
		result = append(result, r)
	}

	return result, nil
}
