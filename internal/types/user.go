package types

import (
	"time"
)

// User identity comes from the OAuth provider; ID is the external subject.
// Rows are upserted on every login.
type User struct {
	ID          string    `gorm:"primaryKey;column:id" json:"id"`
	Email       string    `gorm:"index;column:email" json:"email"`
	Name        string    `gorm:"column:name" json:"name"`
	Picture     string    `gorm:"column:picture" json:"picture"`
	IsAdmin     bool      `gorm:"not null;default:false;column:is_admin" json:"is_admin"`
	LastLoginAt time.Time `gorm:"column:last_login_at" json:"last_login_at"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }
