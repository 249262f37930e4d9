package db

import (
	"app/internal/config"
	"app/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect はDBに接続して *gorm.DB を返す。
// DATABASE_URL があれば Postgres、無ければ SQLite ファイル。
func Connect(cfg config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		// ユニーク違反を gorm.ErrDuplicatedKey に寄せる
		TranslateError: true,
	}

	if cfg.DatabaseURL != "" {
		return gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	}

	return gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
}

// Migrate はスキーマを作成・更新する。
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	)
}

// 初回起動時に投入するカタログ。価格はスナップショットの元データ。
var seedProducts = []model.Product{
	{ID: 101, Name: "Test Product", Price: 9.99},
	{ID: 102, Name: "Flagship Phone X1", Price: 3999},
	{ID: 103, Name: "Smart Watch S2", Price: 899},
	{ID: 104, Name: "Ultrabook Pro", Price: 5999},
	{ID: 105, Name: "5G Phone Pro Max", Price: 5299},
	{ID: 106, Name: "Phone Lite", Price: 1999},
	{ID: 107, Name: "Tablet Pro 12.9", Price: 6799},
	{ID: 108, Name: "Android Tablet Air", Price: 2499},
	{ID: 109, Name: "Gaming Laptop RTX 4060", Price: 8999},
	{ID: 110, Name: "Fitness Band Pro", Price: 399},
	{ID: 111, Name: "Smart Speaker Echo", Price: 599},
	{ID: 112, Name: "Smart Lock Pro", Price: 1299},
	{ID: 113, Name: "Smart Camera 4K", Price: 399},
	{ID: 114, Name: "Wireless Charger", Price: 199},
	{ID: 115, Name: "Bluetooth Earbuds", Price: 1299},
}

// SeedProducts は商品カタログを冪等に投入する。既にあるIDは触らない。
func SeedProducts(gormDB *gorm.DB) error {
	for _, p := range seedProducts {
		seed := p
		if err := gormDB.Where("id = ?", seed.ID).FirstOrCreate(&seed).Error; err != nil {
			return err
		}
	}
	return nil
}
