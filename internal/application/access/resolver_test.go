package access

import (
	"errors"
	"testing"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUsers implementa solo ManagedInventoryIDs; el resto de la interfaz no se
// usa en el resolutor.
type fakeUsers struct {
	repository.UserRepository
	managed map[string][]string
	err     error
}

func (f *fakeUsers) ManagedInventoryIDs(userID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.managed[userID], nil
}

func TestResolveSuperAdminEsIrrestricto(t *testing.T) {
	r := NewResolver(&fakeUsers{})
	scope, err := r.Resolve("u1", entity.RoleSuperAdmin)
	require.NoError(t, err)
	assert.True(t, scope.Unrestricted)
	assert.False(t, scope.Empty())
	assert.True(t, scope.Allows("cualquier-bodega"))
}

func TestResolveAdminConBodegas(t *testing.T) {
	users := &fakeUsers{managed: map[string][]string{"u1": {"inv-1", "inv-2"}}}
	r := NewResolver(users)

	scope, err := r.Resolve("u1", entity.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, scope.Unrestricted)
	assert.False(t, scope.Empty())
	assert.True(t, scope.Allows("inv-1"))
	assert.True(t, scope.Allows("inv-2"))
	assert.False(t, scope.Allows("inv-3"))
}

func TestResolveAdminSinBodegasEsVacio(t *testing.T) {
	r := NewResolver(&fakeUsers{managed: map[string][]string{}})
	scope, err := r.Resolve("u1", entity.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, scope.Empty())
	assert.False(t, scope.Allows("inv-1"))
}

func TestResolveOtrosRolesDegradanAVacio(t *testing.T) {
	r := NewResolver(&fakeUsers{managed: map[string][]string{"u1": {"inv-1"}}})
	for _, role := range []string{entity.RoleDriver, entity.RoleCustomer, "desconocido", ""} {
		scope, err := r.Resolve("u1", role)
		require.NoError(t, err, role)
		assert.True(t, scope.Empty(), role)
	}
}

func TestResolvePropagaErrorDelRepositorio(t *testing.T) {
	boom := errors.New("db caída")
	r := NewResolver(&fakeUsers{err: boom})
	_, err := r.Resolve("u1", entity.RoleAdmin)
	assert.ErrorIs(t, err, boom)
}

func TestCheckAccess(t *testing.T) {
	users := &fakeUsers{managed: map[string][]string{"admin-1": {"inv-1"}}}
	r := NewResolver(users)

	ok, err := r.CheckAccess("admin-1", entity.RoleAdmin, "inv-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.CheckAccess("admin-1", entity.RoleAdmin, "inv-2")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.CheckAccess("cualquiera", entity.RoleSuperAdmin, "inv-2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.CheckAccess("cliente", entity.RoleCustomer, "inv-1")
	require.NoError(t, err)
	assert.False(t, ok)
}
