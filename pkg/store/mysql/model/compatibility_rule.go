package model

import "time"

// CompatibilityRule MySQL model for compatibility_rules table. Rules are
// authored by administrators and read-only to the evaluator.
type CompatibilityRule struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                string    `gorm:"column:name;type:varchar(255)" json:"name"`
	PrimaryCategoryID   int64     `gorm:"column:primary_category_id;not null;index:idx_rule_primary" json:"primary_category_id"`
	SecondaryCategoryID int64     `gorm:"column:secondary_category_id;not null;index:idx_rule_secondary" json:"secondary_category_id"`
	PrimaryTemplateID   int64     `gorm:"column:primary_specification_template_id;not null" json:"primary_specification_template_id"`
	SecondaryTemplateID int64     `gorm:"column:secondary_specification_template_id;not null" json:"secondary_specification_template_id"`
	RuleType            string    `gorm:"column:rule_type;type:varchar(50);not null" json:"rule_type"` // exact_match, range, value_set
	Params              JSONMap   `gorm:"column:params;type:json" json:"params"`
	Severity            string    `gorm:"column:severity;type:varchar(20);not null;default:error" json:"severity"`
	Message             string    `gorm:"column:message;type:varchar(512)" json:"message"`
	IsActive            bool      `gorm:"column:is_active;not null;default:true;index:idx_rule_active" json:"is_active"`
	CreatedAt           time.Time `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"updated_at"`
}

// TableName specifies the table name for CompatibilityRule
func (CompatibilityRule) TableName() string {
	return "compatibility_rules"
}
