package models

import "time"

// Informe is the final report issued when a project's samples are
// validated. The validation token is an opaque random UUID used by the
// public, unauthenticated lookup endpoint; the signed PDF is stored as
// an opaque path.
type Informe struct {
	ID              uint        `gorm:"column:id;primaryKey"`
	ProyectoID      uint        `gorm:"column:proyecto_id;uniqueIndex;not null"`
	Proyecto        *Proyecto   `gorm:"foreignKey:ProyectoID;constraint:OnDelete:CASCADE"`
	CodigoInforme   string      `gorm:"column:codigo_informe;type:varchar(50);uniqueIndex"`
	TokenValidacion string      `gorm:"column:token_validacion;type:varchar(36);uniqueIndex;not null"`
	ArchivoRuta     string      `gorm:"column:archivo_ruta;type:varchar(255)"`
	EmitidoPorID    *uint       `gorm:"column:emitido_por_id"`
	EmitidoPor      *Trabajador `gorm:"foreignKey:EmitidoPorID;constraint:OnDelete:SET NULL"`
	FechaEmision    time.Time   `gorm:"column:fecha_emision;autoCreateTime"`
	Observaciones   string      `gorm:"column:observaciones;type:text"`
}
