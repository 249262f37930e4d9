package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

// 重複（email/phoneのユニーク違反）を統一
var ErrConflict = errors.New("conflict")

// 保存・取得を約束
type UserRepository interface {
	// 新規ユーザー作成。email/phone重複は ErrConflict。
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	// メールまたは電話番号からユーザーを1件取得する。
	FindByIdentifier(ctx context.Context, identifier string) (*model.User, error)
}
