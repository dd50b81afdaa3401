package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jucanuro/grupovicaf/repository/models"
)

func TestCreateClienteValidatesRUC(t *testing.T) {
	repo := newTestRepository(t)

	_, repoErr := repo.CreateCliente(&models.Cliente{
		RUC:             "123",
		RazonSocial:     "RUC Corto S.A.",
		PersonaContacto: "Pedro",
	})
	require.NotNil(t, repoErr)
	assert.Equal(t, ErrCodeValidation, repoErr.Code)
}

func TestCreateClienteDuplicateRUC(t *testing.T) {
	repo := newTestRepository(t)
	cliente := crearClientePrueba(t, repo)

	_, repoErr := repo.CreateCliente(&models.Cliente{
		RUC:             cliente.RUC,
		RazonSocial:     "Otra Razon Social S.A.",
		PersonaContacto: "Pedro",
	})
	require.NotNil(t, repoErr)
	assert.Equal(t, ErrCodeDuplicate, repoErr.Code)
}

func TestUpdateClienteNoTocaElCodigo(t *testing.T) {
	repo := newTestRepository(t)
	cliente := crearClientePrueba(t, repo)
	codigoOriginal := cliente.Codigo

	nuevaDireccion := "Av. Industrial 450, Arequipa"
	actualizado, repoErr := repo.UpdateCliente(cliente.ID, ClienteUpdate{
		Direccion: &nuevaDireccion,
	})
	require.Nil(t, repoErr)

	assert.Equal(t, codigoOriginal, actualizado.Codigo)
	assert.Equal(t, nuevaDireccion, actualizado.Direccion)
	assert.Equal(t, cliente.RUC, actualizado.RUC)
}

func TestUpdateClienteInexistente(t *testing.T) {
	repo := newTestRepository(t)

	activo := false
	_, repoErr := repo.UpdateCliente(9999, ClienteUpdate{Activo: &activo})
	require.NotNil(t, repoErr)
	assert.Equal(t, ErrCodeNotFound, repoErr.Code)
}

func TestDeleteClienteConCotizacionesRehusa(t *testing.T) {
	repo := newTestRepository(t)
	cliente := crearClientePrueba(t, repo)
	crearCotizacionPrueba(t, repo, cliente.ID)

	repoErr := repo.DeleteCliente(cliente.ID)
	require.NotNil(t, repoErr)
	assert.Equal(t, ErrCodeReference, repoErr.Code)

	// The client must still be there.
	_, repoErr = repo.GetCliente(cliente.ID)
	assert.Nil(t, repoErr)
}

func TestDeleteClienteSinDependencias(t *testing.T) {
	repo := newTestRepository(t)
	cliente := crearClientePrueba(t, repo)

	require.Nil(t, repo.DeleteCliente(cliente.ID))

	_, repoErr := repo.GetCliente(cliente.ID)
	require.NotNil(t, repoErr)
	assert.Equal(t, ErrCodeNotFound, repoErr.Code)
}
