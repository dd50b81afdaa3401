package models

import "time"

// Trabajador represents a laboratory staff profile. Quotations, test
// requests and sample receptions reference the responsible worker.
type Trabajador struct {
	ID                uint      `gorm:"column:id;primaryKey"`
	Nombres           string    `gorm:"column:nombres;type:varchar(100);not null"`
	Apellidos         string    `gorm:"column:apellidos;type:varchar(100);not null"`
	Cargo             string    `gorm:"column:cargo;type:varchar(100)"`
	Rol               string    `gorm:"column:rol;type:varchar(50);default:'TECNICO'"`
	CorreoCorporativo string    `gorm:"column:correo_corporativo;type:varchar(255);uniqueIndex"`
	Telefono          string    `gorm:"column:telefono;type:varchar(20)"`
	FirmaRuta         string    `gorm:"column:firma_ruta;type:varchar(255)"`
	Activo            bool      `gorm:"column:activo;default:true"`
	CreadoEn          time.Time `gorm:"column:creado_en;autoCreateTime"`
}
