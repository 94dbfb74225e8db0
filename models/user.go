package models

import "time"

// UserRole type for account roles
type UserRole string

const (
	RoleOwner    UserRole = "owner"
	RoleCustomer UserRole = "customer"
)

// User represents users table. Session issuance lives in front of this
// service; the row exists so the actor identity carried on requests and
// stock movements resolves to a real account.
type User struct {
	UserID       uint      `gorm:"primaryKey;column:user_id" json:"user_id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);not null;unique" json:"email"`
	Phone        *string   `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Address      *string   `gorm:"type:text" json:"address,omitempty"`
	PasswordHash string    `gorm:"type:varchar(255);not null;column:password_hash" json:"-"`
	Role         UserRole  `gorm:"type:varchar(10);not null;default:'customer'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// IsOwner reports whether the account may use the back-office surface.
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}
