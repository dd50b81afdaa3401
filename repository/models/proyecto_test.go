package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstadoSugerido(t *testing.T) {
	tests := []struct {
		name        string
		totales     uint
		registradas int64
		want        string
	}{
		{"sin muestras", 5, 0, EstadoPendiente},
		{"parcial", 5, 3, EstadoEnCurso},
		{"completo", 5, 5, EstadoMuestrasAsignadas},
		{"sobre el total", 5, 7, EstadoMuestrasAsignadas},
		{"una de una", 1, 1, EstadoMuestrasAsignadas},
		{"total cero sin registros", 0, 0, EstadoPendiente},
		{"total cero con registros", 0, 2, EstadoPendiente},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Proyecto{NumeroMuestras: tt.totales}
			assert.Equal(t, tt.want, p.EstadoSugerido(tt.registradas))
		})
	}
}

func TestIndiceEstado(t *testing.T) {
	assert.Equal(t, 0, IndiceEstado(EstadoPendiente))
	assert.Equal(t, 1, IndiceEstado(EstadoEnCurso))
	assert.Equal(t, 2, IndiceEstado(EstadoMuestrasAsignadas))
	assert.Equal(t, 3, IndiceEstado(EstadoMuestrasValidadas))
	assert.Equal(t, 4, IndiceEstado(EstadoFinalizado))

	// CANCELADO sits outside the forward hierarchy.
	assert.Equal(t, -1, IndiceEstado(EstadoCancelado))
	assert.Equal(t, -1, IndiceEstado("NO_EXISTE"))
}

func TestEsEstadoTerminal(t *testing.T) {
	assert.True(t, EsEstadoTerminal(EstadoFinalizado))
	assert.True(t, EsEstadoTerminal(EstadoCancelado))
	assert.False(t, EsEstadoTerminal(EstadoPendiente))
	assert.False(t, EsEstadoTerminal(EstadoMuestrasValidadas))
}
