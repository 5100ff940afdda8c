package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/MikeRez0/ypcheckout/internal/adapter/auth"
	"github.com/MikeRez0/ypcheckout/internal/adapter/config"
	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/MikeRez0/ypcheckout/internal/core/port/mock"
	"github.com/MikeRez0/ypcheckout/internal/core/service"
	"github.com/MikeRez0/ypcheckout/internal/core/utils"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type prepareMocks func(repo *mock.MockRepository)

func TestService_UserRegister(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	type userRegisterTest struct {
		name      string
		user      domain.User
		mock      prepareMocks
		expError  error
		expResult *domain.User
	}

	user := domain.User{
		Login: "test",
		ID:    1,
	}

	tests := []userRegisterTest{
		{
			name: "Register good",
			user: domain.User{Login: user.Login, Password: "test"},
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), user.Login).Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, u *domain.User) (*domain.User, error) {
						assert.NoError(t, utils.ComparePassword("test", u.Password))
						return &user, nil
					})
			},
			expError:  nil,
			expResult: &user,
		},
		{
			name: "Register already exists",
			user: domain.User{Login: user.Login, Password: "test"},
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), user.Login).Return(&user, nil)
			},
			expError:  domain.ErrConflictingData,
			expResult: nil,
		},
		{
			name: "Register lost race on unique login",
			user: domain.User{Login: user.Login, Password: "test"},
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), user.Login).Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil, domain.ErrConflictingData)
			},
			expError:  domain.ErrConflictingData,
			expResult: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			test.mock(repo)

			s, err := service.NewService(repo, ts, logger)
			assert.NoError(t, err)

			result, err := s.RegisterUser(context.Background(), &test.user)

			assert.Equal(t, test.expResult, result)
			assert.Equal(t, test.expError, err)
		})
	}
}

func TestService_UserLogin(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	type userLoginTest struct {
		name     string
		user     domain.User
		mock     prepareMocks
		expError error
	}

	hashedPass, _ := utils.HashPassword("test")
	user := domain.User{
		Login:    "test",
		Password: hashedPass,
		ID:       1,
	}

	tests := []userLoginTest{
		{
			name: "Login good",
			user: domain.User{Login: user.Login, Password: "test", ID: 1},
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), user.Login).Return(&user, nil)
			},
			expError: nil,
		},
		{
			name: "Password bad",
			user: domain.User{Login: user.Login, Password: "hacker"},
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), user.Login).Return(&user, nil)
			},
			expError: domain.ErrInvalidCredentials,
		},
		{
			name: "Login bad",
			user: domain.User{Login: "hacker", Password: "test"},
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), "hacker").Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrInvalidCredentials,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts, err := auth.New(&config.Auth{TokenTTL: time.Hour})
			assert.NoError(t, err)

			test.mock(repo)

			s, err := service.NewService(repo, ts, logger)
			assert.NoError(t, err)

			token, err := s.LoginUser(context.Background(), test.user.Login, test.user.Password)
			assert.Equal(t, test.expError, err)

			if token != "" {
				payload, err := ts.VerifyToken(token)
				assert.NoError(t, err)
				assert.Equal(t, payload.UserID, test.user.ID)
			}
		})
	}
}

func TestService_ListProducts(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger := zap.NewNop()

	tests := []struct {
		name      string
		page      uint64
		limit     uint64
		expLimit  uint64
		expOffset uint64
	}{
		{name: "Defaults", page: 0, limit: 0, expLimit: 20, expOffset: 0},
		{name: "Third page", page: 3, limit: 10, expLimit: 10, expOffset: 20},
		{name: "Limit capped", page: 2, limit: 1000, expLimit: 100, expOffset: 100},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			repo.EXPECT().ListProducts(gomock.Any(), "mug", test.expLimit, test.expOffset).
				Return([]*domain.Product{product(1, "10")}, nil)

			s, err := service.NewService(repo, mock.NewMockTokenService(mockCtrl), logger)
			require.NoError(t, err)

			list, err := s.ListProducts(context.Background(), "mug", test.page, test.limit)
			assert.NoError(t, err)
			assert.Len(t, list, 1)
		})
	}
}

func TestService_GetOrderByNumber(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger := zap.NewNop()
	order := pendingOrder(7, "100")

	tests := []struct {
		name     string
		number   string
		userID   uint64
		mock     prepareMocks
		expError error
	}{
		{
			name:   "Own order",
			number: order.Number,
			userID: 7,
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ReadOrderByNumber(gomock.Any(), order.Number).Return(order, nil)
			},
		},
		{
			name:   "Order of another user",
			number: order.Number,
			userID: 8,
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ReadOrderByNumber(gomock.Any(), order.Number).Return(order, nil)
			},
			expError: domain.ErrDataNotFound,
		},
		{
			name:     "Bad checksum",
			number:   "1234567890123",
			userID:   7,
			mock:     func(repo *mock.MockRepository) {},
			expError: domain.ErrOrderBadNumber,
		},
		{
			name:   "Missing order",
			number: "79927398713",
			userID: 7,
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ReadOrderByNumber(gomock.Any(), "79927398713").Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrDataNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			test.mock(repo)

			s, err := service.NewService(repo, mock.NewMockTokenService(mockCtrl), logger)
			require.NoError(t, err)

			result, err := s.GetOrderByNumber(context.Background(), test.userID, test.number)
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, order, result)
		})
	}
}
