package auth

import (
	"context"
	"strings"
	"time"

	autherrors "go-workschedule/internal/auth/errors"
	"go-workschedule/internal/rbac"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, employeeID string) (*AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
}

type service struct {
	repo   Repository
	secret string
	loc    *time.Location
	logger *zap.Logger
}

func NewService(repo Repository, secret string, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, secret: secret, loc: loc, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	employee, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Same answer whether the account exists or not.
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if !employee.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrAccountDisabled
	}

	accessToken, err := s.generateToken(employee, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(employee, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success", zap.String("employee_id", employee.ID.String()))
	return accessToken, refreshToken, s.mapEmployee(employee), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	employeeIDStr, ok := claims["employee_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	employeeID, err := uuid.Parse(employeeIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidEmployeeID
	}

	// Reload the row so a role change or deactivation takes effect on the
	// next refresh, not only at the next login.
	employee, err := s.repo.GetByID(ctx, employeeID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrEmployeeNotFound
	}
	if !employee.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrAccountDisabled
	}

	newAccessToken, err := s.generateToken(employee, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := s.generateToken(employee, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, s.mapEmployee(employee), nil
}

func (s *service) GetMe(ctx context.Context, employeeID string) (*AuthResponse, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, autherrors.ErrInvalidEmployeeID
	}

	employee, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrEmployeeNotFound
	}

	resp := s.mapEmployee(employee)
	return &resp, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	hireDate, err := time.ParseInLocation("2006-01-02", req.HireDate, s.loc)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidHireDate
	}

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		role = rbac.RoleEmployee
	}

	employee := &Employee{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hashed),
		FullName:     req.FullName,
		Role:         role,
		HireDate:     hireDate,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, employee); err != nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	s.logger.Info("employee registered",
		zap.String("employee_id", employee.ID.String()),
		zap.String("role", role),
	)
	return s.mapEmployee(employee), nil
}

func (s *service) generateToken(e *Employee, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": e.ID.String(),
		"role":        e.Role,
		"name":        e.FullName,
		"exp":         time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *service) mapEmployee(e *Employee) AuthResponse {
	return AuthResponse{
		EmployeeID: e.ID.String(),
		Email:      e.Email,
		Name:       e.FullName,
		Role:       e.Role,
		HireDate:   e.HireDate.In(s.loc).Format("2006-01-02"),
	}
}
