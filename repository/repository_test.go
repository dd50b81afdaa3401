package repository

import (
	"fmt"
	"io"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jucanuro/grupovicaf/repository/models"
)

// newTestRepository opens an in-memory database, runs the migrations
// and loads the seed catalog.
func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := NewWithDB(db, logger)
	require.NoError(t, repo.Migrate())
	require.NoError(t, repo.Seed())
	return repo
}

var testRUCCounter = 0

func crearClientePrueba(t *testing.T, repo *Repository) *models.Cliente {
	t.Helper()
	testRUCCounter++
	cliente, repoErr := repo.CreateCliente(&models.Cliente{
		RUC:             fmt.Sprintf("20%09d", testRUCCounter),
		RazonSocial:     fmt.Sprintf("Constructora Andina %d S.A.C.", testRUCCounter),
		PersonaContacto: "Maria Torres",
		Activo:          true,
	})
	require.Nil(t, repoErr)
	return cliente
}

func crearCotizacionPrueba(t *testing.T, repo *Repository, clienteID uint) *models.Cotizacion {
	t.Helper()
	cotizacion, repoErr := repo.CreateCotizacion(&models.Cotizacion{
		ClienteID:      clienteID,
		AsuntoServicio: "Ensayos de laboratorio",
	}, []models.CotizacionDetalle{
		{
			ServicioID:     1,
			Descripcion:    "Contenido de humedad",
			Cantidad:       2,
			PrecioUnitario: decimal.RequireFromString("100.00"),
		},
		{
			ServicioID:     2,
			Descripcion:    "Rotura de probetas",
			Cantidad:       1,
			PrecioUnitario: decimal.RequireFromString("50.00"),
		},
	})
	require.Nil(t, repoErr)
	return cotizacion
}

// crearProyectoPrueba approves a fresh quotation, yielding a project
// expecting the given number of samples.
func crearProyectoPrueba(t *testing.T, repo *Repository, numeroMuestras uint) *models.Proyecto {
	t.Helper()
	cliente := crearClientePrueba(t, repo)
	cotizacion := crearCotizacionPrueba(t, repo, cliente.ID)
	proyecto, repoErr := repo.AprobarCotizacion(cotizacion.ID, &models.Voucher{
		Codigo:      "OP-0001",
		MontoPagado: cotizacion.MontoTotal,
	}, numeroMuestras)
	require.Nil(t, repoErr)
	return proyecto
}

func registrarMuestraPrueba(t *testing.T, repo *Repository, proyectoID uint) *models.Muestra {
	t.Helper()
	muestra, repoErr := repo.RegistrarMuestra(&models.Muestra{
		ProyectoID:    proyectoID,
		TipoMuestraID: 1,
		Descripcion:   "Muestra de suelo arcilloso",
	})
	require.Nil(t, repoErr)
	return muestra
}
