package domain

import "time"

type Order struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderCode   string    `gorm:"column:order_code;type:text;unique;not null" json:"order_code"`
	UserID      uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	ProductID   uint      `gorm:"column:product_id;not null" json:"product_id"`
	Quantity    int       `gorm:"column:quantity;not null" json:"quantity"`
	PriceEach   float64   `gorm:"column:price_each;type:numeric" json:"price_each"`
	Subtotal    float64   `gorm:"column:subtotal;type:numeric" json:"subtotal"`
	OrderStatus string    `gorm:"column:order_status;type:text" json:"order_status"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}
