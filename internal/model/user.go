package model

type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	// Password holds the bcrypt hash, never the plaintext.
	Password string `gorm:"not null" json:"password"`
}
