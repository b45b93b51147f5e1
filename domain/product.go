package domain

import (
	"time"
)

// ProductStatus is the curation state of a product. A product starts
// pending and moves exactly once to approved or rejected.
type ProductStatus string

const (
	ProductPending  ProductStatus = "pending"
	ProductApproved ProductStatus = "approved"
	ProductRejected ProductStatus = "rejected"
)

// Product categories are a closed set with a fixed curator-point value
// each, see business/points.
const (
	CategoryEbook       = "ebook"
	CategoryEcourse     = "ecourse"
	CategoryResepMasaka = "resep_masakan"
	CategoryJasaDesign  = "jasa_design"
	CategorySoftware    = "software"
)

func ValidCategories() []string {
	return []string{
		CategoryEbook,
		CategoryEcourse,
		CategoryResepMasaka,
		CategoryJasaDesign,
		CategorySoftware,
	}
}

func IsValidCategory(category string) bool {
	for _, c := range ValidCategories() {
		if c == category {
			return true
		}
	}
	return false
}

type Product struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	SellerID     uint          `gorm:"column:seller_id;not null;index" json:"seller_id"`
	ProductName  string        `gorm:"column:product_name;type:text;not null" json:"product_name"`
	Description  string        `gorm:"column:description;type:text" json:"description"`
	Category     string        `gorm:"column:category;type:text;not null" json:"category"`
	Price        float64       `gorm:"column:price;type:numeric" json:"price"`
	Stock        int           `gorm:"column:stock;default:0" json:"stock"`
	Status       ProductStatus `gorm:"column:status;type:text;default:pending" json:"status"`
	ReviewScore  *float64      `gorm:"column:review_score;type:numeric" json:"review_score"`
	ThumbnailURL string        `gorm:"column:thumbnail_url;type:text" json:"thumbnail_url"`
	ContentURL   string        `gorm:"column:content_url;type:text" json:"content_url"`
	CreatedAt    time.Time     `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
