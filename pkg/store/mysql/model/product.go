package model

import "time"

// Product MySQL model for products table
type Product struct {
	ID            string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Name          string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Slug          string    `gorm:"column:slug;type:varchar(255);not null;uniqueIndex:idx_product_slug" json:"slug"`
	CategoryID    int64     `gorm:"column:category_id;not null;index:idx_product_category" json:"category_id"`
	SubcategoryID *int64    `gorm:"column:subcategory_id;index:idx_product_subcategory" json:"subcategory_id"`
	Price         float64   `gorm:"column:price;type:decimal(12,2);not null;default:0" json:"price"`
	Stock         int       `gorm:"column:stock;not null;default:0" json:"stock"`
	Description   string    `gorm:"column:description;type:text" json:"description"`
	ImageURL      string    `gorm:"column:image_url;type:varchar(512)" json:"image_url"`
	Status        string    `gorm:"column:status;type:varchar(50);not null;default:active;index:idx_product_status" json:"status"` // active, inactive, deleted
	CreatedAt     time.Time `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3);index:idx_product_created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"updated_at"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}
