package model

import "time"

type OrderStatus string

// ステータスは作成時に固定。遷移はスコープ外。
const OrderStatusPendingPayment OrderStatus = "PENDING_PAYMENT"

// 注文ヘッダ。作成後は不変。
// OrderNumberは（作成時刻, ユーザーID）から決定的に生成する。
type Order struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64       `gorm:"not null;index" json:"user_id"`
	OrderNumber string      `gorm:"type:varchar(64);not null;uniqueIndex" json:"order_number"`
	TotalAmount float64     `gorm:"not null" json:"total_amount"`
	Status      OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt   time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
}
