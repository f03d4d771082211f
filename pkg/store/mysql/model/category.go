package model

import "time"

// Category MySQL model for categories table. Categories form a tree: a
// subcategory carries its parent's id and inherits its PC component
// semantics, but is an independent rule-reference target.
type Category struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ParentID        *int64    `gorm:"column:parent_id;index:idx_parent" json:"parent_id"`
	Name            string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Slug            string    `gorm:"column:slug;type:varchar(255);not null;uniqueIndex:idx_category_slug" json:"slug"`
	IsPCComponent   bool      `gorm:"column:is_pc_component;not null;default:false;index:idx_pc_component" json:"is_pc_component"`
	PCComponentType string    `gorm:"column:pc_component_type;type:varchar(50)" json:"pc_component_type"` // cpu, motherboard, memory, psu, case, cooling
	PCDisplayOrder  int       `gorm:"column:pc_display_order;not null;default:0" json:"pc_display_order"`
	DisplayOrder    int       `gorm:"column:display_order;not null;default:0" json:"display_order"`
	CreatedAt       time.Time `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"updated_at"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}
