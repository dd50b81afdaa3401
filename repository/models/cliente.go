package models

import "time"

// Cliente represents a client company of the laboratory. The RUC (tax ID)
// and the company name must both be unique.
type Cliente struct {
	ID              uint      `gorm:"column:id;primaryKey"`
	Codigo          string    `gorm:"column:codigo;type:varchar(20);uniqueIndex"`
	RUC             string    `gorm:"column:ruc;type:varchar(11);uniqueIndex;not null"`
	RazonSocial     string    `gorm:"column:razon_social;type:varchar(255);uniqueIndex;not null"`
	Direccion       string    `gorm:"column:direccion;type:varchar(255)"`
	SitioWeb        string    `gorm:"column:sitio_web;type:varchar(255)"`
	PersonaContacto string    `gorm:"column:persona_contacto;type:varchar(255);not null"`
	CargoContacto   string    `gorm:"column:cargo_contacto;type:varchar(100)"`
	CelularContacto string    `gorm:"column:celular_contacto;type:varchar(20)"`
	CorreoContacto  string    `gorm:"column:correo_contacto;type:varchar(255)"`
	FirmaRuta       string    `gorm:"column:firma_ruta;type:varchar(255)"` // stored file path, opaque
	Activo          bool      `gorm:"column:activo;default:true"`
	CreadoEn        time.Time `gorm:"column:creado_en;autoCreateTime"`
	ActualizadoEn   time.Time `gorm:"column:actualizado_en;autoUpdateTime"`

	// Relationships
	Cotizaciones []Cotizacion `gorm:"foreignKey:ClienteID"`
	Proyectos    []Proyecto   `gorm:"foreignKey:ClienteID"`
}
