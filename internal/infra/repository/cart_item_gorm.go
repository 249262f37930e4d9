package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type CartItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

// カート明細を一覧取得
func (r *CartItemGormRepository) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	var items []model.CartItem
	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}
	return items, nil
}

// 同一商品は数量加算。deltaは負も可。
// 加算後が0以下なら行を削除する（0や負の数量は保存しない）。
func (r *CartItemGormRepository) AddQuantity(ctx context.Context, cartID int64, productID int64, delta int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.CartItem
		err := tx.
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			First(&item).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			if delta <= 0 {
				// 存在しない行のデクリメントは何もしない
				return nil
			}
			return tx.Create(&model.CartItem{
				CartID:    cartID,
				ProductID: productID,
				Quantity:  delta,
			}).Error
		}
		if err != nil {
			return err
		}

		newQty := item.Quantity + delta
		if newQty <= 0 {
			return tx.Where("id = ?", item.ID).Delete(&model.CartItem{}).Error
		}

		return tx.Model(&model.CartItem{}).
			Where("id = ?", item.ID).
			Update("quantity", newQty).Error
	})
}

// (cart, product)の行を削除。無くてもエラーにしない。
func (r *CartItemGormRepository) DeleteByProduct(ctx context.Context, cartID int64, productID int64) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&model.CartItem{}).Error
}
