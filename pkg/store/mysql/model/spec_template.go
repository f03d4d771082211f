package model

import "time"

// SpecTemplate MySQL model for specification_templates table. One row defines
// one named attribute of a category's products.
type SpecTemplate struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID         int64           `gorm:"column:category_id;not null;uniqueIndex:idx_template_category_name;index:idx_template_category" json:"category_id"`
	Name               string          `gorm:"column:name;type:varchar(100);not null;uniqueIndex:idx_template_category_name" json:"name"`
	DisplayName        string          `gorm:"column:display_name;type:varchar(255);not null" json:"display_name"`
	DataType           string          `gorm:"column:data_type;type:varchar(50);not null" json:"data_type"`
	IsRequired         bool            `gorm:"column:is_required;not null;default:false" json:"is_required"`
	IsCompatibilityKey bool            `gorm:"column:is_compatibility_key;not null;default:false;index:idx_compat_key" json:"is_compatibility_key"`
	IsFilterable       bool            `gorm:"column:is_filterable;not null;default:false" json:"is_filterable"`
	EnumSource         string          `gorm:"column:enum_source;type:varchar(100)" json:"enum_source"`
	EnumValues         JSONStringArray `gorm:"column:enum_values;type:json" json:"enum_values"`
	ValidationRules    JSONMap         `gorm:"column:validation_rules;type:json" json:"validation_rules"`
	DisplayOrder       int             `gorm:"column:display_order;not null;default:0" json:"display_order"`
	CreatedAt          time.Time       `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"updated_at"`
}

// TableName specifies the table name for SpecTemplate
func (SpecTemplate) TableName() string {
	return "specification_templates"
}
