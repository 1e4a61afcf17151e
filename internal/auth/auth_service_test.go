package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-workschedule/internal/auth"
	autherrors "go-workschedule/internal/auth/errors"
	"go-workschedule/internal/rbac"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

var kst = time.FixedZone("KST", 9*60*60)

const testSecret = "test-secret"

type fakeAuthRepository struct {
	createFn     func(ctx context.Context, e *auth.Employee) error
	getByEmailFn func(ctx context.Context, email string) (*auth.Employee, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*auth.Employee, error)
}

func (f *fakeAuthRepository) Create(ctx context.Context, e *auth.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeAuthRepository) GetByEmail(ctx context.Context, email string) (*auth.Employee, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, errors.New("not found")
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.Employee, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, errors.New("not found")
}

func testEmployee(t *testing.T, password string) *auth.Employee {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &auth.Employee{
		ID:           uuid.New(),
		Email:        "kim@backoffice.co.kr",
		PasswordHash: string(hashed),
		FullName:     "김철수",
		Role:         rbac.RoleManager,
		HireDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, kst),
		IsActive:     true,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		employee := testEmployee(t, "secret-password")
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.Employee, error) {
				assert.Equal(t, employee.Email, email)
				return employee, nil
			},
		}
		svc := auth.NewService(repo, testSecret, kst)

		access, refresh, resp, err := svc.Login(ctx, employee.Email, "secret-password")

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, employee.ID.String(), resp.EmployeeID)
		assert.Equal(t, rbac.RoleManager, resp.Role)
		assert.Equal(t, "2024-03-01", resp.HireDate)

		token, err := jwt.Parse(access, func(token *jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		assert.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, employee.ID.String(), claims["employee_id"])
		assert.Equal(t, rbac.RoleManager, claims["role"])
	})

	t.Run("negative wrong password", func(t *testing.T) {
		employee := testEmployee(t, "secret-password")
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.Employee, error) {
				return employee, nil
			},
		}
		svc := auth.NewService(repo, testSecret, kst)

		_, _, _, err := svc.Login(ctx, employee.Email, "wrong-password")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email gives the same error", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{}, testSecret, kst)

		_, _, _, err := svc.Login(ctx, "nobody@backoffice.co.kr", "whatever")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative disabled account", func(t *testing.T) {
		employee := testEmployee(t, "secret-password")
		employee.IsActive = false
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.Employee, error) {
				return employee, nil
			},
		}
		svc := auth.NewService(repo, testSecret, kst)

		_, _, _, err := svc.Login(ctx, employee.Email, "secret-password")
		assert.ErrorIs(t, err, autherrors.ErrAccountDisabled)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("success reloads the employee row", func(t *testing.T) {
		employee := testEmployee(t, "secret-password")
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.Employee, error) {
				return employee, nil
			},
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.Employee, error) {
				assert.Equal(t, employee.ID, id)
				// Role changed since the token was issued.
				changed := *employee
				changed.Role = rbac.RoleEmployee
				return &changed, nil
			},
		}
		svc := auth.NewService(repo, testSecret, kst)

		_, refresh, _, err := svc.Login(ctx, employee.Email, "secret-password")
		assert.NoError(t, err)

		_, _, resp, err := svc.RefreshToken(ctx, refresh)
		assert.NoError(t, err)
		assert.Equal(t, rbac.RoleEmployee, resp.Role)
	})

	t.Run("negative garbage token", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{}, testSecret, kst)

		_, _, _, err := svc.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("negative token signed with another secret", func(t *testing.T) {
		employee := testEmployee(t, "secret-password")
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.Employee, error) {
				return employee, nil
			},
		}
		other := auth.NewService(repo, "another-secret", kst)
		_, refresh, _, err := other.Login(ctx, employee.Email, "secret-password")
		assert.NoError(t, err)

		svc := auth.NewService(repo, testSecret, kst)
		_, _, _, err = svc.RefreshToken(ctx, refresh)
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("negative account deactivated after issue", func(t *testing.T) {
		employee := testEmployee(t, "secret-password")
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.Employee, error) {
				return employee, nil
			},
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.Employee, error) {
				disabled := *employee
				disabled.IsActive = false
				return &disabled, nil
			},
		}
		svc := auth.NewService(repo, testSecret, kst)

		_, refresh, _, err := svc.Login(ctx, employee.Email, "secret-password")
		assert.NoError(t, err)

		_, _, _, err = svc.RefreshToken(ctx, refresh)
		assert.ErrorIs(t, err, autherrors.ErrAccountDisabled)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success defaults the role", func(t *testing.T) {
		var created *auth.Employee
		repo := &fakeAuthRepository{
			createFn: func(ctx context.Context, e *auth.Employee) error {
				created = e
				return nil
			},
		}
		svc := auth.NewService(repo, testSecret, kst)

		resp, err := svc.Register(ctx, auth.RegisterRequest{
			Email:    "lee@backoffice.co.kr",
			FullName: "이영희",
			Password: "secret-password",
			HireDate: "2026-01-05",
		})

		assert.NoError(t, err)
		assert.Equal(t, rbac.RoleEmployee, resp.Role)
		assert.Equal(t, "2026-01-05", resp.HireDate)
		assert.NotNil(t, created)
		assert.True(t, created.IsActive)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret-password")))
	})

	t.Run("negative bad hire date", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{}, testSecret, kst)

		_, err := svc.Register(ctx, auth.RegisterRequest{
			Email:    "lee@backoffice.co.kr",
			FullName: "이영희",
			Password: "secret-password",
			HireDate: "05/01/2026",
		})
		assert.ErrorIs(t, err, autherrors.ErrInvalidHireDate)
	})

	t.Run("negative duplicate email", func(t *testing.T) {
		repo := &fakeAuthRepository{
			createFn: func(ctx context.Context, e *auth.Employee) error {
				return errors.New("duplicate key value violates unique constraint")
			},
		}
		svc := auth.NewService(repo, testSecret, kst)

		_, err := svc.Register(ctx, auth.RegisterRequest{
			Email:    "kim@backoffice.co.kr",
			FullName: "김철수",
			Password: "secret-password",
			HireDate: "2026-01-05",
		})
		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		employee := testEmployee(t, "secret-password")
		repo := &fakeAuthRepository{
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.Employee, error) {
				return employee, nil
			},
		}
		svc := auth.NewService(repo, testSecret, kst)

		resp, err := svc.GetMe(ctx, employee.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, employee.Email, resp.Email)
	})

	t.Run("negative malformed id", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{}, testSecret, kst)

		_, err := svc.GetMe(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, autherrors.ErrInvalidEmployeeID)
	})
}
