package models

import (
	"time"

	"github.com/lib/pq"
)

// Product is a catalog row. Colors and sizes keep their display order.
type Product struct {
	ID          string         `gorm:"column:id;primaryKey"`
	Name        string         `gorm:"column:name"`
	Description string         `gorm:"column:description"`
	Image       string         `gorm:"column:image"`
	Category    string         `gorm:"column:category"`
	BasePrice   int64          `gorm:"column:base_price"`
	Price       int64          `gorm:"column:price"`
	Colors      pq.StringArray `gorm:"column:colors;type:text"`
	Sizes       pq.StringArray `gorm:"column:sizes;type:text"`
	SortOrder   int            `gorm:"column:sort_order"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`

	Variants []ProductVariant `gorm:"foreignKey:ProductID;references:ID"`
}

func (Product) TableName() string { return "products" }

// ProductVariant holds the stock of one color/size cell.
type ProductVariant struct {
	ProductID string `gorm:"column:product_id;primaryKey"`
	Color     string `gorm:"column:color;primaryKey"`
	Size      string `gorm:"column:size;primaryKey"`
	Stock     int    `gorm:"column:stock"`
}

func (ProductVariant) TableName() string { return "product_variants" }
