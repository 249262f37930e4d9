package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	// ユーザーのカートを取得し、無ければ作成する。
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)
	// ユーザーのカートを取得する。無ければ ErrNotFound。
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)
}
