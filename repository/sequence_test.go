package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jucanuro/grupovicaf/repository/models"
)

func TestParseSuffix(t *testing.T) {
	tests := []struct {
		code string
		want int
		ok   bool
	}{
		{"CLI-25-0001", 1, true},
		{"VFC-OTE-2025-0042", 42, true},
		{"VCF-LAB-2025-007", 7, true},
		{"V-M-2025-S-0123", 123, true},
		{"CLI-25-", 0, false},
		{"CLI-25-abc", 0, false},
		{"sin-guion-final-x1x", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		n, ok := parseSuffix(tt.code)
		assert.Equal(t, tt.ok, ok, "code %q", tt.code)
		if tt.ok {
			assert.Equal(t, tt.want, n, "code %q", tt.code)
		}
	}
}

func TestFormatCode(t *testing.T) {
	sc := codeScope{Prefix: "CLI-25-", Width: 4}
	assert.Equal(t, "CLI-25-0001", formatCode(sc, 1))
	assert.Equal(t, "CLI-25-0099", formatCode(sc, 99))
	assert.Equal(t, "CLI-25-12345", formatCode(sc, 12345))

	sc3 := codeScope{Prefix: "VCF-LAB-2025-", Width: 3}
	assert.Equal(t, "VCF-LAB-2025-001", formatCode(sc3, 1))
}

func TestScopePrefixes(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "CLI-25-", scopeCliente(now).Prefix)
	assert.Equal(t, "VFC-OTE-2025-", scopeCotizacion(now).Prefix)
	assert.Equal(t, "V-M-2025-S-", scopeMuestra(now, "S").Prefix)
	assert.Equal(t, "VCF-LAB-2025-", scopeSolicitud(now).Prefix)
	assert.Equal(t, "VCF-INF-2025-", scopeInforme(now).Prefix)

	assert.Equal(t, 4, scopeCliente(now).Width)
	assert.Equal(t, 3, scopeSolicitud(now).Width)
}

func TestNextCodeSequence(t *testing.T) {
	repo := newTestRepository(t)
	year := time.Now().Year() % 100

	c1 := crearClientePrueba(t, repo)
	assert.Equal(t, fmt.Sprintf("CLI-%02d-0001", year), c1.Codigo)

	c2 := crearClientePrueba(t, repo)
	assert.Equal(t, fmt.Sprintf("CLI-%02d-0002", year), c2.Codigo)
}

func TestNextCodeScopesAreIndependent(t *testing.T) {
	repo := newTestRepository(t)

	cliente := crearClientePrueba(t, repo)
	cotizacion := crearCotizacionPrueba(t, repo, cliente.ID)

	// Each entity numbers from 1 within its own scope.
	assert.Equal(t, fmt.Sprintf("VFC-OTE-%d-0001", time.Now().Year()), cotizacion.NumeroOferta)
}

func TestNextCodeGapBehavior(t *testing.T) {
	repo := newTestRepository(t)

	crearClientePrueba(t, repo) // 0001
	c2 := crearClientePrueba(t, repo)
	crearClientePrueba(t, repo) // 0003

	// Removing a row below the maximum leaves a permanent gap; the
	// next code continues from the surviving maximum.
	require.NoError(t, repo.db.Delete(&models.Cliente{}, c2.ID).Error)
	c4 := crearClientePrueba(t, repo)
	year := time.Now().Year() % 100
	assert.Equal(t, fmt.Sprintf("CLI-%02d-0004", year), c4.Codigo)

	// Removing the maximum itself frees its number for reuse: the
	// generator scans live rows only.
	require.NoError(t, repo.db.Delete(&models.Cliente{}, c4.ID).Error)
	c5 := crearClientePrueba(t, repo)
	assert.Equal(t, fmt.Sprintf("CLI-%02d-0004", year), c5.Codigo)
}

func TestNextCodeMalformedMaxFallsBackToOne(t *testing.T) {
	repo := newTestRepository(t)
	year := time.Now().Year() % 100

	// A hand-entered code that sorts above every generated one but has
	// no numeric suffix must not block creation.
	cliente := models.Cliente{
		Codigo:          fmt.Sprintf("CLI-%02d-ZZZZ", year),
		RUC:             "20999999999",
		RazonSocial:     "Cliente Manual S.A.",
		PersonaContacto: "Jorge Paz",
	}
	require.NoError(t, repo.db.Create(&cliente).Error)

	c, repoErr := repo.CreateCliente(&models.Cliente{
		RUC:             "20888888888",
		RazonSocial:     "Cliente Nuevo S.A.",
		PersonaContacto: "Rosa Diaz",
	})
	require.Nil(t, repoErr)
	assert.Equal(t, fmt.Sprintf("CLI-%02d-0001", year), c.Codigo)
}

func TestNextCodeRespetaCodigoExplicito(t *testing.T) {
	repo := newTestRepository(t)

	c, repoErr := repo.CreateCliente(&models.Cliente{
		Codigo:          "CLI-EXT-777",
		RUC:             "20777777777",
		RazonSocial:     "Cliente Importado S.A.",
		PersonaContacto: "Ana Quispe",
	})
	require.Nil(t, repoErr)
	assert.Equal(t, "CLI-EXT-777", c.Codigo)
}
