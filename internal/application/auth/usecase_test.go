package auth

import (
	"errors"
	"testing"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	repository.UserRepository
	byEmail    map[string]*entity.User
	byEmailErr error
	created    []*entity.User
}

func (f *fakeUsers) GetByEmail(email string) (*entity.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmail[email], nil
}

func (f *fakeUsers) Create(u *entity.User) error {
	f.created = append(f.created, u)
	return nil
}

func newAuthUseCase(users *fakeUsers) *AuthUseCase {
	return NewAuthUseCase(users, JWTConfig{Secret: "secreto-de-pruebas", ExpMinutes: 60, Issuer: "test"})
}

func registro() dto.RegisterRequest {
	return dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "correcthorse"}
}

func TestRegisterUserEmailDuplicado(t *testing.T) {
	users := &fakeUsers{byEmail: map[string]*entity.User{
		"ana@example.com": {ID: "u1", Email: "ana@example.com"},
	}}
	uc := newAuthUseCase(users)

	_, err := uc.RegisterUser(registro())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Empty(t, users.created)
}

func TestRegisterUserPropagaFalloDeLectura(t *testing.T) {
	// Un fallo de la consulta no debe leerse como "email libre".
	caida := errors.New("conexión perdida")
	users := &fakeUsers{byEmailErr: caida}
	uc := newAuthUseCase(users)

	_, err := uc.RegisterUser(registro())
	require.Error(t, err)
	assert.ErrorIs(t, err, caida)
	assert.NotErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Empty(t, users.created)
}

func TestRegisterUserRolInvalido(t *testing.T) {
	uc := newAuthUseCase(&fakeUsers{})
	in := registro()
	in.Role = "gerente"
	_, err := uc.RegisterUser(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUserDefaultsYHash(t *testing.T) {
	users := &fakeUsers{}
	uc := newAuthUseCase(users)

	out, err := uc.RegisterUser(registro())
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, out.Role, "sin rol explícito se registra como customer")
	require.Len(t, users.created, 1)
	persisted := users.created[0]
	assert.NotEmpty(t, persisted.ID)
	assert.NotEqual(t, "correcthorse", persisted.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(persisted.PasswordHash), []byte("correcthorse")))
}

func TestLoginCredenciales(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correcthorse"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &fakeUsers{byEmail: map[string]*entity.User{
		"ana@example.com": {ID: "u1", Email: "ana@example.com", Role: entity.RoleAdmin, PasswordHash: string(hash)},
	}}
	uc := newAuthUseCase(users)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "correcthorse"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "correcthorse"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "u1", out.User.ID)
}
