package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sample reception states.
const (
	MuestraRecibida   = "RECIBIDA"
	MuestraEnEnsayo   = "EN_ENSAYO"
	MuestraEnsayada   = "ENSAYADA"
	MuestraDescartada = "DESCARTADA"
)

// Laboratorio is a physical lab location where samples are processed.
type Laboratorio struct {
	ID            uint   `gorm:"column:id;primaryKey"`
	Nombre        string `gorm:"column:nombre;type:varchar(100);not null"`
	CodigoInterno string `gorm:"column:codigo_interno;type:varchar(20);uniqueIndex;not null"`
	Direccion     string `gorm:"column:direccion;type:varchar(255)"`
}

// TipoMuestra classifies samples; its sigla feeds the lab code scope.
type TipoMuestra struct {
	ID     uint   `gorm:"column:id;primaryKey"`
	Nombre string `gorm:"column:nombre;type:varchar(100);not null"`
	Sigla  string `gorm:"column:sigla;type:varchar(5);uniqueIndex;not null"`
}

// Muestra is a physical sample registered under a project. The lab code
// is assigned exactly once at registration and never changes.
type Muestra struct {
	ID               uint                `gorm:"column:id;primaryKey"`
	ProyectoID       uint                `gorm:"column:proyecto_id;index;not null"`
	Proyecto         *Proyecto           `gorm:"foreignKey:ProyectoID;constraint:OnDelete:CASCADE"`
	LaboratorioID    *uint               `gorm:"column:laboratorio_id;index"`
	Laboratorio      *Laboratorio        `gorm:"foreignKey:LaboratorioID;constraint:OnDelete:SET NULL"`
	TipoMuestraID    uint                `gorm:"column:tipo_muestra_id;index;not null"`
	TipoMuestra      *TipoMuestra        `gorm:"foreignKey:TipoMuestraID;constraint:OnDelete:RESTRICT"`
	CodigoMuestra    string              `gorm:"column:codigo_muestra;type:varchar(50);uniqueIndex"`
	Descripcion      string              `gorm:"column:descripcion;type:varchar(255);not null"`
	MasaAproxKg      decimal.NullDecimal `gorm:"column:masa_aprox_kg;type:decimal(10,2)"`
	Cantidad         int                 `gorm:"column:cantidad;default:1"`
	Unidad           string              `gorm:"column:unidad;type:varchar(50);default:'UND'"`
	Estado           string              `gorm:"column:estado;type:varchar(20);default:'RECIBIDA'"`
	EstadoFisico     string              `gorm:"column:estado_fisico;type:varchar(255)"`
	Ubicacion        string              `gorm:"column:ubicacion;type:varchar(255)"`
	FechaTomaMuestra *time.Time          `gorm:"column:fecha_toma_muestra"`
	FechaRecepcion   time.Time           `gorm:"column:fecha_recepcion"`
	RecepcionadoPorID *uint              `gorm:"column:recepcionado_por_id"`
	RecepcionadoPor  *Trabajador         `gorm:"foreignKey:RecepcionadoPorID;constraint:OnDelete:SET NULL"`
	Observaciones    string              `gorm:"column:observaciones;type:text"`
	CreadoEn         time.Time           `gorm:"column:creado_en;autoCreateTime"`
}
