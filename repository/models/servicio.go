package models

import "github.com/shopspring/decimal"

// CategoriaServicio groups services of the tariff catalog, e.g. soil or
// concrete testing. The prefix feeds the billing codes of its services.
type CategoriaServicio struct {
	ID            uint   `gorm:"column:id;primaryKey"`
	Nombre        string `gorm:"column:nombre;type:varchar(100);uniqueIndex;not null"`
	CodigoPrefijo string `gorm:"column:codigo_prefijo;type:varchar(10);uniqueIndex;not null"`
	Descripcion   string `gorm:"column:descripcion;type:text"`

	// Relationships
	Servicios []Servicio `gorm:"foreignKey:CategoriaID"`
}

// Norma is a testing standard (e.g. ASTM D2216-19).
type Norma struct {
	ID          uint   `gorm:"column:id;primaryKey"`
	Codigo      string `gorm:"column:codigo;type:varchar(50);uniqueIndex;not null"`
	Nombre      string `gorm:"column:nombre;type:varchar(255);uniqueIndex;not null"`
	Descripcion string `gorm:"column:descripcion;type:text"`
}

// Metodo is a testing method associated to one or more services.
type Metodo struct {
	ID          uint   `gorm:"column:id;primaryKey"`
	Codigo      string `gorm:"column:codigo;type:varchar(50);uniqueIndex;not null"`
	Nombre      string `gorm:"column:nombre;type:varchar(100);uniqueIndex;not null"`
	Descripcion string `gorm:"column:descripcion;type:text"`
}

// Servicio is a priced laboratory test in the tariff catalog. Services
// referenced by quotation lines cannot be deleted.
type Servicio struct {
	ID                   uint               `gorm:"column:id;primaryKey"`
	CategoriaID          *uint              `gorm:"column:categoria_id;index"`
	Categoria            *CategoriaServicio `gorm:"foreignKey:CategoriaID;constraint:OnDelete:SET NULL"`
	CodigoFacturacion    string             `gorm:"column:codigo_facturacion;type:varchar(50);uniqueIndex;not null"`
	Nombre               string             `gorm:"column:nombre;type:varchar(150);not null"`
	Descripcion          string             `gorm:"column:descripcion;type:text"`
	PrecioBase           decimal.Decimal    `gorm:"column:precio_base;type:decimal(10,2);not null"`
	PrecioUrgente        decimal.NullDecimal `gorm:"column:precio_urgente;type:decimal(10,2)"`
	EsSujetoAPresupuesto bool               `gorm:"column:es_sujeto_a_presupuesto;default:false"`
	UnidadBase           string             `gorm:"column:unidad_base;type:varchar(50);default:'Ensayo'"`
	EstaAcreditado       bool               `gorm:"column:esta_acreditado;default:false"`

	// Relationships
	Normas  []Norma  `gorm:"many2many:servicio_normas"`
	Metodos []Metodo `gorm:"many2many:servicio_metodos"`
}
