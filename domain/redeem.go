package domain

import "time"

// RedeemProduct is a catalog item purchasable with curator points.
type RedeemProduct struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"column:name;type:text;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	PointCost   int       `gorm:"column:point_cost;not null" json:"point_cost"`
	Stock       int       `gorm:"column:stock;default:0" json:"stock"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (RedeemProduct) TableName() string {
	return "redeem_products"
}

// Redemption records a curator spending points on a redeemable item.
type Redemption struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	RedeemProductID uint      `gorm:"column:redeem_product_id;not null" json:"redeem_product_id"`
	PointsSpent     int       `gorm:"column:points_spent;not null" json:"points_spent"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Redemption) TableName() string {
	return "redemptions"
}
