package domain

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	FullName        string `gorm:"column:full_name;not null" json:"full_name"`
	Email           string `gorm:"column:email;unique;not null" json:"email"`
	IsVerified      bool   `gorm:"column:is_verified;default:false" json:"is_verified"`
	Password        string `gorm:"column:password;not null" json:"-"`
	Role            Role   `gorm:"column:role;default:client" json:"role"`
	SellerPoints    int    `gorm:"column:seller_points;default:0" json:"seller_points"`
	CuratorPoints   int    `gorm:"column:curator_points;default:0" json:"curator_points"`
	CuratorApproved bool   `gorm:"column:curator_approved;default:false" json:"curator_approved"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// CanCurate reports whether the user may score products. A curator must be
// approved by an admin first; admin can always curate.
func (u User) CanCurate() bool {
	if u.Role == RoleAdmin {
		return true
	}
	return u.Role == RoleCurator && u.CuratorApproved
}
