package catalog

import (
	"context"
	"fmt"

	"github.com/lamuse/classtee-backend/pkg/db/models"
	"github.com/lamuse/classtee-backend/pkg/enums"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository reads and seeds the catalog tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// LoadAll returns every product with its variants in display order.
func (r *Repository) LoadAll(ctx context.Context) ([]*Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		Order("sort_order ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	products := make([]*Product, 0, len(rows))
	for _, row := range rows {
		p, err := fromModel(row)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// Upsert writes products and replaces their variant rows.
func (r *Repository) Upsert(ctx context.Context, products []*Product) error {
	tx := r.db.WithContext(ctx)
	for i, p := range products {
		row := toModel(p, i)
		variants := row.Variants
		row.Variants = nil

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "image", "category", "base_price", "price", "colors", "sizes", "sort_order"}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
		if err := tx.Where("product_id = ?", p.ID).Delete(&models.ProductVariant{}).Error; err != nil {
			return fmt.Errorf("clear variants of %s: %w", p.ID, err)
		}
		if len(variants) == 0 {
			continue
		}
		if err := tx.Create(&variants).Error; err != nil {
			return fmt.Errorf("insert variants of %s: %w", p.ID, err)
		}
	}
	return nil
}

func toModel(p *Product, order int) models.Product {
	variants := make([]models.ProductVariant, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, models.ProductVariant{
			ProductID: p.ID,
			Color:     v.Color,
			Size:      v.Size,
			Stock:     v.Stock,
		})
	}
	return models.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Category:    p.Category.String(),
		BasePrice:   p.BasePrice,
		Price:       p.Price,
		Colors:      append([]string(nil), p.Colors...),
		Sizes:       append([]string(nil), p.Sizes...),
		SortOrder:   order,
		Variants:    variants,
	}
}

func fromModel(row models.Product) (*Product, error) {
	category, err := enums.ParseProductCategory(row.Category)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", row.ID, err)
	}
	variants := make([]Variant, 0, len(row.Variants))
	for _, v := range row.Variants {
		variants = append(variants, Variant{Color: v.Color, Size: v.Size, Stock: v.Stock})
	}
	return New(Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Image:       row.Image,
		Category:    category,
		BasePrice:   row.BasePrice,
		Price:       row.Price,
		Colors:      row.Colors,
		Sizes:       row.Sizes,
		Variants:    variants,
	})
}
