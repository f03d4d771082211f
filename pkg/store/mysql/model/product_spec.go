package model

import "time"

// ProductSpec MySQL model for product_specifications table. Exactly one of
// the four typed columns is populated per row, matching the owning template's
// data type; the application boundary converts through a tagged union so the
// invariant is enforced structurally, not by convention.
type ProductSpec struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID    string    `gorm:"column:product_id;type:varchar(36);not null;uniqueIndex:idx_spec_product_template;index:idx_spec_product" json:"product_id"`
	TemplateID   int64     `gorm:"column:template_id;not null;uniqueIndex:idx_spec_product_template;index:idx_spec_template" json:"template_id"`
	ValueEnum    *string   `gorm:"column:value_enum;type:varchar(255)" json:"value_enum"`
	ValueNumber  *float64  `gorm:"column:value_number" json:"value_number"`
	ValueText    *string   `gorm:"column:value_text;type:text" json:"value_text"`
	ValueBoolean *bool     `gorm:"column:value_boolean" json:"value_boolean"`
	Unit         string    `gorm:"column:unit;type:varchar(50)" json:"unit"`
	Value        string    `gorm:"column:value;type:varchar(255);not null" json:"value"` // denormalized display string
	DisplayOrder int       `gorm:"column:display_order;not null;default:0" json:"display_order"`
	CreatedAt    time.Time `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"updated_at"`
}

// TableName specifies the table name for ProductSpec
func (ProductSpec) TableName() string {
	return "product_specifications"
}
