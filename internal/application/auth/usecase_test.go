package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stockpos-backend/internal/application/auth"
	"github.com/tu-usuario/stockpos-backend/internal/application/dto"
	"github.com/tu-usuario/stockpos-backend/internal/domain"
	"github.com/tu-usuario/stockpos-backend/internal/domain/entity"
	pkgjwt "github.com/tu-usuario/stockpos-backend/pkg/jwt"
)

// fakeUserRepo repositorio de usuarios en memoria indexado por email.
type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *user
	r.byEmail[user.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := r.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

var testJWT = auth.JWTConfig{Secret: "secreto-de-test", ExpMinutes: 60, Issuer: "stockpos-test"}

func newAuthUC() (*auth.UseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return auth.NewUseCase(repo, testJWT), repo
}

func TestRegister_CreaUsuarioConHash(t *testing.T) {
	uc, repo := newAuthUC()

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "ana@tienda.co",
		Password: "secreta123",
		Name:     "Ana",
		Role:     entity.RoleBodeguero,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@tienda.co", resp.Email)
	assert.Equal(t, entity.RoleBodeguero, resp.Role)
	assert.Equal(t, "active", resp.Status)

	stored := repo.byEmail["ana@tienda.co"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta123", stored.PasswordHash, "el password nunca se guarda en claro")
}

func TestRegister_RolPorDefectoYValidaciones(t *testing.T) {
	uc, _ := newAuthUC()
	ctx := context.Background()

	resp, err := uc.Register(ctx, dto.RegisterRequest{Email: "v@tienda.co", Password: "x12345"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, resp.Role, "sin rol explícito se asigna vendedor")

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "r@tienda.co", Password: "x", Role: "superadmin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rol fuera del conjunto cerrado")

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "v@tienda.co", Password: "y12345"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_TokenConClaims(t *testing.T) {
	uc, _ := newAuthUC()
	ctx := context.Background()

	reg, err := uc.Register(ctx, dto.RegisterRequest{
		Email: "admin@tienda.co", Password: "clave-admin", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@tienda.co", Password: "clave-admin"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, reg.ID, resp.User.ID)

	userID, role, err := pkgjwt.Parse(testJWT.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, repo := newAuthUC()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "u@tienda.co", Password: "correcta"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "u@tienda.co", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@tienda.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// Usuario suspendido no entra aunque el password sea correcto.
	repo.byEmail["u@tienda.co"].Status = "suspended"
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "u@tienda.co", Password: "correcta"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
