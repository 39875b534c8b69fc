package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleBuyer      UserRole = "buyer"
	RoleSeller     UserRole = "seller"
	RoleWholesaler UserRole = "wholesaler"
	RoleAdmin      UserRole = "admin"
)

type User struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	FullName         string         `gorm:"not null" json:"full_name"`
	Email            string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone            string         `gorm:"not null" json:"phone"`
	Password         string         `gorm:"not null" json:"-"`
	Role             UserRole       `gorm:"type:varchar(20);default:'buyer'" json:"role"`
	Avatar           string         `gorm:"type:text" json:"avatar,omitempty"`
	AvatarPublicID   string         `gorm:"type:text" json:"avatar_public_id,omitempty"`
	Company          string         `gorm:"type:varchar(255)" json:"company,omitempty"`
	AccountName      string         `gorm:"type:varchar(255)" json:"account_name,omitempty"`
	AccountNumber    string         `gorm:"type:varchar(50)" json:"account_number,omitempty"`
	BankCode         string         `gorm:"type:varchar(20)" json:"bank_code,omitempty"`
	RecipientCode    string         `gorm:"type:varchar(100)" json:"-"`
	IsEmailVerified  bool           `gorm:"default:false" json:"is_email_verified"`
	IsSuspended      bool           `gorm:"default:false" json:"is_suspended"`
	SuspendedAt      *time.Time     `json:"suspended_at,omitempty"`
	SuspendReason    string         `gorm:"type:text" json:"suspend_reason,omitempty"`
	OTP              string         `gorm:"index" json:"-"`
	OTPExpiry        *time.Time     `json:"-"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to set default role
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleBuyer
	}
	return nil
}

// IsAdmin checks if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsWholesaler checks if user may claim bounties
func (u *User) IsWholesaler() bool {
	return u.Role == RoleWholesaler || u.Role == RoleAdmin
}

// CanPerformAction checks if user can perform actions
func (u *User) CanPerformAction() bool {
	return !u.IsSuspended && u.IsEmailVerified
}

type PendingUser struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"not null" json:"phone"`
	Password  string    `gorm:"not null" json:"-"`
	Role      UserRole  `gorm:"type:varchar(20);default:'buyer'" json:"role"`
	OTP       string    `gorm:"not null" json:"-"`
	OTPExpiry time.Time `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (PendingUser) TableName() string {
	return "pending_users"
}
