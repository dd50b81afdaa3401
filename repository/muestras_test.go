package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jucanuro/grupovicaf/repository/models"
)

func TestRegistrarMuestraAsignaCodigo(t *testing.T) {
	repo := newTestRepository(t)
	proyecto := crearProyectoPrueba(t, repo, 3)

	m1 := registrarMuestraPrueba(t, repo, proyecto.ID)
	m2 := registrarMuestraPrueba(t, repo, proyecto.ID)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("V-M-%d-S-0001", year), m1.CodigoMuestra)
	assert.Equal(t, fmt.Sprintf("V-M-%d-S-0002", year), m2.CodigoMuestra)
	assert.Equal(t, models.MuestraRecibida, m1.Estado)
	assert.False(t, m1.FechaRecepcion.IsZero())
}

func TestRegistrarMuestraSiglaPorTipo(t *testing.T) {
	repo := newTestRepository(t)
	proyecto := crearProyectoPrueba(t, repo, 3)

	registrarMuestraPrueba(t, repo, proyecto.ID) // tipo Suelo

	// Concrete samples number independently under their own sigla.
	m, repoErr := repo.RegistrarMuestra(&models.Muestra{
		ProyectoID:    proyecto.ID,
		TipoMuestraID: 2,
		Descripcion:   "Probeta cilindrica",
	})
	require.Nil(t, repoErr)
	assert.Equal(t, fmt.Sprintf("V-M-%d-C-0001", time.Now().Year()), m.CodigoMuestra)
}

func TestRegistrarMuestraLimiteAlcanzado(t *testing.T) {
	repo := newTestRepository(t)
	proyecto := crearProyectoPrueba(t, repo, 2)
	registrarMuestraPrueba(t, repo, proyecto.ID)
	registrarMuestraPrueba(t, repo, proyecto.ID)

	_, repoErr := repo.RegistrarMuestra(&models.Muestra{
		ProyectoID:    proyecto.ID,
		TipoMuestraID: 1,
		Descripcion:   "Una de mas",
	})
	require.NotNil(t, repoErr)
	assert.Equal(t, ErrCodeLimitReached, repoErr.Code)
}

func TestRegistrarMuestraEnProyectoCancelado(t *testing.T) {
	repo := newTestRepository(t)
	proyecto := crearProyectoPrueba(t, repo, 3)
	_, repoErr := repo.CancelarProyecto(proyecto.ID)
	require.Nil(t, repoErr)

	_, repoErr = repo.RegistrarMuestra(&models.Muestra{
		ProyectoID:    proyecto.ID,
		TipoMuestraID: 1,
		Descripcion:   "Tarde",
	})
	require.NotNil(t, repoErr)
	assert.Equal(t, ErrCodeInvalidState, repoErr.Code)
}

func TestRegistrarMuestraTipoInexistente(t *testing.T) {
	repo := newTestRepository(t)
	proyecto := crearProyectoPrueba(t, repo, 3)

	_, repoErr := repo.RegistrarMuestra(&models.Muestra{
		ProyectoID:    proyecto.ID,
		TipoMuestraID: 99,
		Descripcion:   "Tipo desconocido",
	})
	require.NotNil(t, repoErr)
	assert.Equal(t, ErrCodeReference, repoErr.Code)
}

func TestEliminarMuestraReferenciadaRehusa(t *testing.T) {
	repo := newTestRepository(t)
	proyecto := crearProyectoPrueba(t, repo, 2)
	muestra := registrarMuestraPrueba(t, repo, proyecto.ID)

	cotizacionID := *proyecto.CotizacionID
	_, repoErr := repo.CrearSolicitud(&models.SolicitudEnsayo{
		CotizacionID:   cotizacionID,
		ProyectoID:     &proyecto.ID,
		ElaboradoPorID: 1,
	}, []models.DetalleSolicitud{
		{MuestraID: muestra.ID, DescripcionEnsayo: "Contenido de humedad"},
	})
	require.Nil(t, repoErr)

	repoErr = repo.EliminarMuestra(muestra.ID)
	require.NotNil(t, repoErr)
	assert.Equal(t, ErrCodeReference, repoErr.Code)
}
