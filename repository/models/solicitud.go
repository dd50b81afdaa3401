package models

import "time"

// SolicitudEnsayo is the internal work order (registro VCF-LAB-FOR-068)
// that schedules the tests of a quotation's samples.
type SolicitudEnsayo struct {
	ID                      uint        `gorm:"column:id;primaryKey"`
	CodigoSolicitud         string      `gorm:"column:codigo_solicitud;type:varchar(50);uniqueIndex"`
	CotizacionID            uint        `gorm:"column:cotizacion_id;index;not null"`
	Cotizacion              *Cotizacion `gorm:"foreignKey:CotizacionID;constraint:OnDelete:RESTRICT"`
	ProyectoID              *uint       `gorm:"column:proyecto_id;index"`
	Proyecto                *Proyecto   `gorm:"foreignKey:ProyectoID;constraint:OnDelete:SET NULL"`
	FechaSolicitud          time.Time   `gorm:"column:fecha_solicitud"`
	FechaEntregaProgramada  time.Time   `gorm:"column:fecha_entrega_programada"`
	FechaEntregaReal        *time.Time  `gorm:"column:fecha_entrega_real"`
	ElaboradoPorID          uint        `gorm:"column:elaborado_por_id;not null"`
	ElaboradoPor            *Trabajador `gorm:"foreignKey:ElaboradoPorID;constraint:OnDelete:RESTRICT"`
	RevisadoPorID           *uint       `gorm:"column:revisado_por_id"`
	RevisadoPor             *Trabajador `gorm:"foreignKey:RevisadoPorID;constraint:OnDelete:SET NULL"`

	// Relationships
	Detalles []DetalleSolicitud `gorm:"foreignKey:SolicitudID;constraint:OnDelete:CASCADE"`
}

// DetalleSolicitud assigns one test of one sample to a technician.
type DetalleSolicitud struct {
	ID                     uint             `gorm:"column:id;primaryKey"`
	SolicitudID            uint             `gorm:"column:solicitud_id;index;not null"`
	Solicitud              *SolicitudEnsayo `gorm:"foreignKey:SolicitudID"`
	MuestraID              uint             `gorm:"column:muestra_id;index;not null"`
	Muestra                *Muestra         `gorm:"foreignKey:MuestraID;constraint:OnDelete:RESTRICT"`
	DescripcionEnsayo      string           `gorm:"column:descripcion_ensayo;type:varchar(255);not null"`
	Norma                  string           `gorm:"column:norma;type:varchar(255)"`
	Metodo                 string           `gorm:"column:metodo;type:varchar(100)"`
	TecnicoID              *uint            `gorm:"column:tecnico_id"`
	Tecnico                *Trabajador      `gorm:"foreignKey:TecnicoID;constraint:OnDelete:SET NULL"`
	FechaEntregaProgramada time.Time        `gorm:"column:fecha_entrega_programada"`
	FechaEntregaReal       *time.Time       `gorm:"column:fecha_entrega_real"`
	AceptadoTecnico        bool             `gorm:"column:aceptado_tecnico;default:false"`
	Observaciones          string           `gorm:"column:observaciones;type:text"`
}
