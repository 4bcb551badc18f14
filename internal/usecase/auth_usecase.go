package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/ozgunabanoz/shopping-site-project/internal/config"
	"github.com/ozgunabanoz/shopping-site-project/internal/domain/model"
	"github.com/ozgunabanoz/shopping-site-project/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	//400 入力不足
	ErrValidation = errors.New("validation error")
	//401 認証失敗
	ErrUnauthorized = errors.New("unauthorized")
	//409 email重複
	ErrConflict = errors.New("conflict")
	//400 リセットトークンが無効
	ErrInvalidResetToken = errors.New("invalid reset token")
	//500
	ErrInternal = errors.New("internal error")
)

// セッショントークンの有効期限
const sessionTokenTTL = 24 * time.Hour

// リセットトークンの有効期限
const resetTokenTTL = 1 * time.Hour

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, email string, password string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

// ResetTokenStore はパスワードリセットトークンの置き場（TTL付き）。
type ResetTokenStore interface {
	Save(ctx context.Context, token string, userID int64, ttl time.Duration) error
	// トークンを1回だけ消費する。無ければ repository.ErrNotFound。
	Consume(ctx context.Context, token string) (int64, error)
}

// Mailer はリセットメール送信の境界。
type Mailer interface {
	SendPasswordReset(to string, resetURL string) error
}

type UserDTO struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type SessionTokenDTO struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

type AuthRegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginResponse struct {
	User  UserDTO         `json:"user"`
	Token SessionTokenDTO `json:"token"`
}

type AuthUsecase struct {
	cfg        config.Config
	users      repository.UserRepository
	resetStore ResetTokenStore
	mailer     Mailer
	validator  AuthValidator
}

func NewAuthUsecase(
	cfg config.Config,
	users repository.UserRepository,
	resetStore ResetTokenStore,
	mailer Mailer,
	validator AuthValidator,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:        cfg,
		users:      users,
		resetStore: resetStore,
		mailer:     mailer,
		validator:  validator,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, req AuthRegisterRequest) (*UserDTO, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, req.Email, req.Password); err != nil {
		return nil, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrInternal
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(pwHash),
	}

	//保存（email重複はvalidator＋unique制約で弾く）
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		//DB障害などを409にしない
		return nil, ErrInternal
	}

	return &UserDTO{ID: user.ID, Email: user.Email}, nil
}

func (u *AuthUsecase) Login(ctx context.Context, req AuthLoginRequest) (*AuthLoginResponse, error) {
	if err := u.validator.ValidateLogin(ctx, req.Email, req.Password); err != nil {
		return nil, err
	}

	user, err := u.users.FindByEmail(ctx, req.Email)
	if err != nil || user == nil {
		return nil, ErrUnauthorized
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrUnauthorized
	}

	//last_login更新
	now := time.Now()
	user.LastLoginAt = &now
	_ = u.users.Update(ctx, user)

	token, err := u.issueSessionToken(user, now)
	if err != nil {
		return nil, ErrInternal
	}

	return &AuthLoginResponse{
		User: UserDTO{ID: user.ID, Email: user.Email},
		Token: SessionTokenDTO{
			Token:     token,
			ExpiresIn: int(sessionTokenTTL.Seconds()),
		},
	}, nil
}

// RequestPasswordReset はリセットメールを送る。
// ユーザーが存在しない場合も同じ応答にする（emailの存在を漏らさない）。
func (u *AuthUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return ErrInternal
	}
	if user == nil {
		return nil
	}

	token := uuid.NewString()
	if err := u.resetStore.Save(ctx, token, user.ID, resetTokenTTL); err != nil {
		return ErrInternal
	}

	resetURL := u.cfg.BaseURL + "/auth/reset/confirm?token=" + token
	if err := u.mailer.SendPasswordReset(user.Email, resetURL); err != nil {
		return ErrInternal
	}

	return nil
}

func (u *AuthUsecase) ConfirmPasswordReset(ctx context.Context, token string, newPassword string) error {
	if token == "" || len(newPassword) < 8 {
		return ErrValidation
	}

	//トークンは1回だけ使える
	userID, err := u.resetStore.Consume(ctx, token)
	if err == repository.ErrNotFound {
		return ErrInvalidResetToken
	}
	if err != nil {
		return ErrInternal
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrInternal
	}

	if err := u.users.UpdatePassword(ctx, userID, string(pwHash)); err != nil {
		return ErrInternal
	}

	return nil
}

// HS256のセッショントークンを発行。
func (u *AuthUsecase) issueSessionToken(user *model.User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(sessionTokenTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(u.cfg.JWTSecret))
}
