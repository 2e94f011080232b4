package models

import "time"

// Category is a node in the self-referencing catalog tree. Hierarchy reads
// (level, ancestors, descendants) are computed by internal/categories rather
// than stored here, so they can never drift from the parent links.
type Category struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;not null;uniqueIndex"`
	Description *string   `gorm:"column:description"`
	ParentID    *int64    `gorm:"column:parent_id"`
	Parent      *Category `gorm:"foreignKey:ParentID"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true"`
	SortOrder   int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Category) TableName() string {
	return "categories"
}
