package service

import (
	"context"
	"strconv"
	"strings"

	"minihotel/config"
	"minihotel/infras/jwt"
	"minihotel/infras/otel"
	"minihotel/internal/domains/auth/model/dto"
	customerModel "minihotel/internal/domains/customer/model"
	"minihotel/internal/store"
	"minihotel/shared/cache"
	"minihotel/shared/constant"
	"minihotel/shared/failure"
	"minihotel/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	sessionKeyPrefix = "session"
	adminUserID      = "admin"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
	Refresh(ctx context.Context, req dto.RefreshRequest) (dto.AuthResponse, error)
	Logout(ctx context.Context, req dto.LogoutRequest) error
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	customers *store.Cache[customerModel.Customer]
	cfg       *config.Config
	jwt       jwt.JWT
	sessions  cache.RedisCache
	otel      otel.Otel
}

func New(
	customers *store.Cache[customerModel.Customer],
	cfg *config.Config,
	jwtService jwt.JWT,
	sessions cache.RedisCache,
	otl otel.Otel,
) Auth {
	return &serviceImpl{
		customers: customers,
		cfg:       cfg,
		jwt:       jwtService,
		sessions:  sessions,
		otel:      otl,
	}
}

// Login authenticates the bootstrap admin account from configuration or a
// customer from the collection. Wrong email and wrong password produce the
// same answer.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	if strings.EqualFold(req.Email, s.cfg.Admin.Email) {
		if req.Password != s.cfg.Admin.Password {
			return res, failure.Unauthorized("invalid email or password")
		}

		return s.issueTokens(ctx, adminUserID, s.cfg.Admin.Email, constant.RoleAdmin)
	}

	customer, err := s.customers.GetByKey(ctx, strings.ToLower(req.Email))
	if err != nil {
		return res, failure.Unauthorized("invalid email or password")
	}

	if err = password.Verify(req.Password, customer.Password); err != nil {
		return res, failure.Unauthorized("invalid email or password")
	}

	return s.issueTokens(ctx, strconv.FormatInt(customer.ID, 10), customer.Email, constant.RoleCustomer)
}

// Refresh rotates the token pair. The presented refresh token must carry a
// live session; rotation invalidates it so a replayed token fails.
func (s *serviceImpl) Refresh(ctx context.Context, req dto.RefreshRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Refresh")
	defer scope.End()
	defer scope.TraceIfError(err)

	claims, err := s.jwt.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		return res, failure.Unauthorized("invalid refresh token")
	}

	sessionKey := cache.BuildCacheKey(sessionKeyPrefix, claims.TokenID)

	var sessionUser string
	if err = s.sessions.Get(ctx, sessionKey, &sessionUser); err != nil {
		return res, failure.Unauthorized("session expired")
	}

	if err = s.sessions.Delete(ctx, sessionKey); err != nil {
		log.Error().Err(err).Msg("Failed to revoke refreshed session")
	}

	return s.issueTokens(ctx, claims.UserID, claims.Email, claims.Role)
}

// Logout revokes the refresh session. The access token expires on its own.
func (s *serviceImpl) Logout(ctx context.Context, req dto.LogoutRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer scope.TraceIfError(err)

	claims, err := s.jwt.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		return failure.Unauthorized("invalid refresh token")
	}

	return s.sessions.Delete(ctx, cache.BuildCacheKey(sessionKeyPrefix, claims.TokenID))
}

// ChangePassword rewrites the caller's password hash after verifying the
// current one. The admin bootstrap account lives in configuration, not in
// the collection, so its password can not be changed here.
func (s *serviceImpl) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	if userID == adminUserID {
		return failure.Unsupported("changing the admin password")
	}

	customerID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return failure.Unauthorized("invalid token subject")
	}

	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return err
	}

	if err = password.Verify(req.OldPassword, customer.Password); err != nil {
		return failure.Unauthorized("invalid password")
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return failure.InternalError(err)
	}

	customer.Password = hash

	_, err = s.customers.Update(ctx, customer)

	return err
}

func (s *serviceImpl) issueTokens(ctx context.Context, userID, email, role string) (res dto.AuthResponse, err error) {
	pair, err := s.jwt.GenerateTokenPair(userID, email, role)
	if err != nil {
		return res, failure.InternalError(err)
	}

	claims, err := s.jwt.ValidateToken(pair.RefreshToken, jwt.RefreshToken)
	if err != nil {
		return res, failure.InternalError(err)
	}

	sessionTTL := s.cfg.JWT.RefreshExpireMin * 60
	if err = s.sessions.Save(ctx, cache.BuildCacheKey(sessionKeyPrefix, claims.TokenID), userID, sessionTTL); err != nil {
		return res, failure.InternalError(err)
	}

	return dto.AuthResponse{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenPair: *pair,
	}, nil
}
