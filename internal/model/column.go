package model

type Column struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title  string `gorm:"not null" json:"title"`
	UserID int64  `gorm:"not null;index" json:"user_id"`
}
