package model

// Card is a single item on a column. Description is nullable and stays untouched
// on title-only updates.
type Card struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	ColumnID    int64   `gorm:"not null;index" json:"column_id"`
	UserID      int64   `gorm:"not null;index" json:"user_id"`
	Title       string  `gorm:"type:varchar(255);not null" json:"title"`
	Description *string `json:"description"`
}
