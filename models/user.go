package models

import (
	"strings"
	"time"
)

const UserTable = "inv_users"

// User 账号。密码只存 bcrypt 哈希，永不序列化。
type User struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"_id"`
	FullName     string    `gorm:"size:255;not null" json:"fullName"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	CreatedOn    time.Time `gorm:"autoCreateTime" json:"createdOn"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return UserTable }

// UserProfile is the non-secret view of a user. It is also the claim payload
// carried by access tokens.
type UserProfile struct {
	ID        string    `json:"_id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedOn time.Time `json:"createdOn"`
}

func (u *User) Profile() UserProfile {
	return UserProfile{ID: u.ID, FullName: u.FullName, Email: u.Email, CreatedOn: u.CreatedOn}
}

// NormalizeEmail is applied before every lookup and insert so the unique
// index compares addresses case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
