package validator_test

import (
	"context"
	"testing"

	"github.com/ozgunabanoz/shopping-site-project/internal/domain/model"
	"github.com/ozgunabanoz/shopping-site-project/internal/usecase"
	"github.com/ozgunabanoz/shopping-site-project/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) Create(ctx context.Context, user *model.User) error {
	panic("not used in validator tests")
}

func (m *userRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) FindByID(ctx context.Context, id int64) (*model.User, error) {
	panic("not used in validator tests")
}

func (m *userRepoMock) Update(ctx context.Context, user *model.User) error {
	panic("not used in validator tests")
}

func (m *userRepoMock) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	panic("not used in validator tests")
}

func TestValidateRegister(t *testing.T) {
	users := new(userRepoMock)
	users.On("FindByEmail", mock.Anything, "new@example.com").Return((*model.User)(nil), nil)
	users.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{ID: 1, Email: "taken@example.com"}, nil)

	v := validator.NewAuthValidator(users)

	assert.NoError(t, v.ValidateRegister(context.Background(), "new@example.com", "password123"))

	//email重複
	assert.ErrorIs(t, v.ValidateRegister(context.Background(), "taken@example.com", "password123"), usecase.ErrConflict)

	//形式・必須・最低文字数
	assert.ErrorIs(t, v.ValidateRegister(context.Background(), "", "password123"), usecase.ErrValidation)
	assert.ErrorIs(t, v.ValidateRegister(context.Background(), "not-an-email", "password123"), usecase.ErrValidation)
	assert.ErrorIs(t, v.ValidateRegister(context.Background(), "new@example.com", "short"), usecase.ErrValidation)
}

func TestValidateLogin(t *testing.T) {
	v := validator.NewAuthValidator(new(userRepoMock))

	assert.NoError(t, v.ValidateLogin(context.Background(), "buyer@example.com", "password123"))
	assert.ErrorIs(t, v.ValidateLogin(context.Background(), "", "password123"), usecase.ErrValidation)
	assert.ErrorIs(t, v.ValidateLogin(context.Background(), "buyer@example.com", ""), usecase.ErrValidation)
	assert.ErrorIs(t, v.ValidateLogin(context.Background(), "bad email", "password123"), usecase.ErrValidation)
}
