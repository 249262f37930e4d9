package model

// 商品カタログ。起動時にシードされる読み取り専用の参照データ。
// Priceは注文時にスナップショットされる（後から変えても過去の注文は不変）。
type Product struct {
	ID    int64   `gorm:"primaryKey" json:"id"`
	Name  string  `gorm:"type:varchar(255);not null" json:"name"`
	Price float64 `gorm:"not null" json:"price"`
}
