package service_test

import (
	"context"
	"net/http"
	"testing"

	"minihotel/config"
	"minihotel/infras/jwt"
	otelMocks "minihotel/infras/otel/mocks"
	"minihotel/internal/domains/auth/model/dto"
	"minihotel/internal/domains/auth/service"
	customerModel "minihotel/internal/domains/customer/model"
	"minihotel/internal/store"
	"minihotel/internal/store/mocks"
	"minihotel/shared/cache"
	"minihotel/shared/constant"
	"minihotel/shared/failure"
	"minihotel/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// sessionStore is an in-memory stand-in for the redis session registry.
type sessionStore struct {
	values map[string]any
}

func newSessionStore() *sessionStore {
	return &sessionStore{values: map[string]any{}}
}

func (s *sessionStore) Save(_ context.Context, key string, value any, _ int) error {
	s.values[key] = value

	return nil
}

func (s *sessionStore) Get(_ context.Context, key string, value any) error {
	stored, ok := s.values[key]
	if !ok {
		return cache.Nil
	}

	if target, ok := value.(*string); ok {
		str, _ := stored.(string)
		*target = str
	}

	return nil
}

func (s *sessionStore) Delete(_ context.Context, key string) error {
	delete(s.values, key)

	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "minihotel-test"
	cfg.Admin.Email = "admin@minihotel.test"
	cfg.Admin.Password = "admin-password"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func newAuthService(t *testing.T) (service.Auth, *sessionStore, jwt.JWT, *mocks.MockGateway[customerModel.Customer]) {
	t.Helper()

	hash, err := password.Hash("customer-password")
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockGateway[customerModel.Customer](ctrl)
	gateway.EXPECT().LoadAll(gomock.Any()).Return([]customerModel.Customer{
		{ID: 1, FullName: "Alice Smith", Email: "alice@example.com", Password: hash, Status: customerModel.StatusActive},
	}, nil)

	otl := otelMocks.NewOtel()
	customers := store.NewCache(customerModel.EntityName, gateway, otl,
		store.WithUniqueKey(customerModel.EmailKey, "customer email already in use"))

	cfg := testConfig()
	jwtService := jwt.New(cfg)
	sessions := newSessionStore()

	return service.New(customers, cfg, jwtService, sessions, otl), sessions, jwtService, gateway
}

func TestLogin(t *testing.T) {
	t.Run("admin account from configuration", func(t *testing.T) {
		svc, sessions, jwtService, _ := newAuthService(t)

		res, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "admin@minihotel.test",
			Password: "admin-password",
		})

		require.NoError(t, err)
		assert.Equal(t, constant.RoleAdmin, res.Role)
		assert.NotEmpty(t, res.AccessToken)
		assert.Len(t, sessions.values, 1)

		claims, err := jwtService.ValidateToken(res.AccessToken, jwt.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, constant.RoleAdmin, claims.Role)
	})

	t.Run("customer account, email compared case-insensitively", func(t *testing.T) {
		svc, _, jwtService, _ := newAuthService(t)

		res, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "Alice@Example.com",
			Password: "customer-password",
		})

		require.NoError(t, err)
		assert.Equal(t, constant.RoleCustomer, res.Role)

		claims, err := jwtService.ValidateToken(res.AccessToken, jwt.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "1", claims.UserID)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		svc, _, _, _ := newAuthService(t)

		_, errWrongPassword := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "alice@example.com",
			Password: "nope",
		})
		_, errUnknownEmail := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "ghost@example.com",
			Password: "customer-password",
		})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(errWrongPassword))
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(errUnknownEmail))
		assert.EqualError(t, errWrongPassword, errUnknownEmail.Error())
	})
}

func TestRefresh(t *testing.T) {
	t.Run("rotation invalidates the presented token", func(t *testing.T) {
		svc, _, _, _ := newAuthService(t)

		login, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "alice@example.com",
			Password: "customer-password",
		})
		require.NoError(t, err)

		refreshed, err := svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: login.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)

		_, err = svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: login.RefreshToken})
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		svc, _, _, _ := newAuthService(t)

		_, err := svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: "not-a-token"})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestLogout(t *testing.T) {
	svc, sessions, _, _ := newAuthService(t)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "customer-password",
	})
	require.NoError(t, err)
	require.Len(t, sessions.values, 1)

	require.NoError(t, svc.Logout(context.Background(), dto.LogoutRequest{RefreshToken: login.RefreshToken}))
	assert.Empty(t, sessions.values)

	_, err = svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestChangePassword(t *testing.T) {
	t.Run("rewrites the stored hash", func(t *testing.T) {
		svc, _, _, gateway := newAuthService(t)

		var stored customerModel.Customer
		gateway.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, customer customerModel.Customer) error {
				stored = customer

				return nil
			})

		err := svc.ChangePassword(context.Background(), "1", dto.ChangePasswordRequest{
			OldPassword: "customer-password",
			NewPassword: "brand-new-password",
		})

		require.NoError(t, err)
		assert.NoError(t, password.Verify("brand-new-password", stored.Password))
	})

	t.Run("wrong current password is unauthorized", func(t *testing.T) {
		svc, _, _, _ := newAuthService(t)

		err := svc.ChangePassword(context.Background(), "1", dto.ChangePasswordRequest{
			OldPassword: "nope",
			NewPassword: "brand-new-password",
		})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("admin password lives in configuration", func(t *testing.T) {
		svc, _, _, _ := newAuthService(t)

		err := svc.ChangePassword(context.Background(), "admin", dto.ChangePasswordRequest{
			OldPassword: "admin-password",
			NewPassword: "brand-new-password",
		})

		assert.Equal(t, http.StatusMethodNotAllowed, failure.GetCode(err))
	})
}
