package validator

import (
	"context"
	"regexp"
	"strings"

	"github.com/ozgunabanoz/shopping-site-project/internal/repository"
	"github.com/ozgunabanoz/shopping-site-project/internal/usecase"
)

type authValidator struct {
	users repository.UserRepository
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" {
		return usecase.ErrValidation
	}

	// email形式
	if !isEmailLike(email) {
		return usecase.ErrValidation
	}

	// パスワード最低文字数（8）
	if len(password) < 8 {
		return usecase.ErrValidation
	}

	// email重複チェック（DBが必要）
	u, err := v.users.FindByEmail(ctx, email)
	if err == nil && u != nil {
		return usecase.ErrConflict
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return usecase.ErrValidation
	}

	if !isEmailLike(email) {
		return usecase.ErrValidation
	}

	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	re := regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	return re.MatchString(s)
}
