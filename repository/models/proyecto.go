package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project lifecycle states. The first five form a strict forward-only
// hierarchy; CANCELADO is a side terminal state set only manually.
const (
	EstadoPendiente         = "PENDIENTE"
	EstadoEnCurso           = "EN_CURSO"
	EstadoMuestrasAsignadas = "MUESTRAS_ASIGNADAS"
	EstadoMuestrasValidadas = "MUESTRAS_VALIDADAS"
	EstadoFinalizado        = "FINALIZADO"
	EstadoCancelado         = "CANCELADO"
)

// jerarquiaEstados is the forward order used by the automatic status
// engine. CANCELADO is deliberately absent: it is unreachable from here.
var jerarquiaEstados = []string{
	EstadoPendiente,
	EstadoEnCurso,
	EstadoMuestrasAsignadas,
	EstadoMuestrasValidadas,
	EstadoFinalizado,
}

// IndiceEstado returns the position of a state in the forward hierarchy,
// or -1 for states outside it (CANCELADO, unknown values).
func IndiceEstado(estado string) int {
	for i, e := range jerarquiaEstados {
		if e == estado {
			return i
		}
	}
	return -1
}

// EsEstadoTerminal reports whether the automatic engine must leave the
// project untouched.
func EsEstadoTerminal(estado string) bool {
	return estado == EstadoFinalizado || estado == EstadoCancelado
}

// Proyecto is a work project created when a quotation is approved.
type Proyecto struct {
	ID                   uint            `gorm:"column:id;primaryKey"`
	CotizacionID         *uint           `gorm:"column:cotizacion_id;index"`
	Cotizacion           *Cotizacion     `gorm:"foreignKey:CotizacionID;constraint:OnDelete:SET NULL"`
	NombreProyecto       string          `gorm:"column:nombre_proyecto;type:varchar(255);not null"`
	CodigoProyecto       string          `gorm:"column:codigo_proyecto;type:varchar(50);uniqueIndex;not null"`
	ClienteID            uint            `gorm:"column:cliente_id;index;not null"`
	Cliente              *Cliente        `gorm:"foreignKey:ClienteID;constraint:OnDelete:CASCADE"`
	Descripcion          string          `gorm:"column:descripcion;type:text"`
	MontoCotizacion      decimal.Decimal `gorm:"column:monto_cotizacion;type:decimal(10,2)"`
	CodigoVoucher        string          `gorm:"column:codigo_voucher;type:varchar(100)"`
	FechaInicio          time.Time       `gorm:"column:fecha_inicio"`
	FechaEntregaEstimada *time.Time      `gorm:"column:fecha_entrega_estimada"`
	Estado               string          `gorm:"column:estado;type:varchar(20);default:'PENDIENTE'"`
	NumeroMuestras       uint            `gorm:"column:numero_muestras;default:0"`
	CreadoEn             time.Time       `gorm:"column:creado_en;autoCreateTime"`
	ModificadoEn         time.Time       `gorm:"column:modificado_en;autoUpdateTime"`

	// Relationships
	Muestras []Muestra `gorm:"foreignKey:ProyectoID"`
	Informe  *Informe  `gorm:"foreignKey:ProyectoID"`
}

// EstadoSugerido derives the lifecycle state suggested by the number of
// registered samples. Pure function, no side effects. When samples exist
// but the expected total is 0, the suggestion falls back to PENDIENTE.
func (p *Proyecto) EstadoSugerido(registradas int64) string {
	totales := int64(p.NumeroMuestras)

	if registradas == 0 {
		return EstadoPendiente
	}
	if registradas > 0 && registradas < totales {
		return EstadoEnCurso
	}
	if registradas >= totales && totales > 0 {
		return EstadoMuestrasAsignadas
	}
	return EstadoPendiente
}
