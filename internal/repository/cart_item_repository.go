package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	// 同一商品は数量加算。deltaは負も可（デクリメント）。
	// 加算後の数量が0以下になったら行を削除する。
	AddQuantity(ctx context.Context, cartID int64, productID int64, delta int64) error
	// (cart, product)の行を削除。無くてもエラーにしない。
	DeleteByProduct(ctx context.Context, cartID int64, productID int64) error
}
