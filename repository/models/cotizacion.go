package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quotation lifecycle states.
const (
	CotizacionPendiente = "Pendiente"
	CotizacionEnviada   = "Enviada"
	CotizacionAceptada  = "Aceptada"
	CotizacionRechazada = "Rechazada"
	CotizacionAnulada   = "Anulada"
)

// TasaIGVDefecto is the default sales tax rate (18%, Peru).
var TasaIGVDefecto = decimal.NewFromFloat(0.18)

// Cotizacion is a technical-economic offer issued to a client. The
// subtotal, tax and grand total columns are derived from the live detail
// lines and recomputed on every line mutation and on every save.
type Cotizacion struct {
	ID                  uint        `gorm:"column:id;primaryKey"`
	ClienteID           uint        `gorm:"column:cliente_id;index;not null"`
	Cliente             *Cliente    `gorm:"foreignKey:ClienteID;constraint:OnDelete:CASCADE"`
	TrabajadorID        *uint       `gorm:"column:trabajador_id;index"`
	Trabajador          *Trabajador `gorm:"foreignKey:TrabajadorID;constraint:OnDelete:SET NULL"`
	NumeroOferta        string      `gorm:"column:numero_oferta;type:varchar(50);uniqueIndex"`
	FechaGeneracion     time.Time   `gorm:"column:fecha_generacion"`
	AsuntoServicio      string      `gorm:"column:asunto_servicio;type:varchar(255);not null"`
	ProyectoAsociado    string      `gorm:"column:proyecto_asociado;type:varchar(255)"`
	PersonaContacto     string      `gorm:"column:persona_contacto;type:varchar(200)"`
	CorreoContacto      string      `gorm:"column:correo_contacto;type:varchar(255)"`
	TelefonoContacto    string      `gorm:"column:telefono_contacto;type:varchar(20)"`
	Estado              string      `gorm:"column:estado;type:varchar(20);default:'Pendiente'"`
	AprobadaPorCliente  bool        `gorm:"column:aprobada_por_cliente;default:false"`
	PlazoEntregaDias    int         `gorm:"column:plazo_entrega_dias;default:30"`
	FormaPago           string      `gorm:"column:forma_pago;type:varchar(20);default:'Contado'"`
	ValidezOfertaDias   int         `gorm:"column:validez_oferta_dias;default:30"`
	TasaIGV             decimal.Decimal `gorm:"column:tasa_igv;type:decimal(5,3)"`
	Subtotal            decimal.Decimal `gorm:"column:subtotal;type:decimal(12,2)"`
	ImpuestoIGV         decimal.Decimal `gorm:"column:impuesto_igv;type:decimal(12,2)"`
	MontoTotal          decimal.Decimal `gorm:"column:monto_total;type:decimal(12,2)"`
	Observaciones       string      `gorm:"column:observaciones;type:text"`
	FechaCreacion       time.Time   `gorm:"column:fecha_creacion;autoCreateTime"`
	FechaActualizacion  time.Time   `gorm:"column:fecha_actualizacion;autoUpdateTime"`

	// Relationships
	Detalles []CotizacionDetalle `gorm:"foreignKey:CotizacionID;constraint:OnDelete:CASCADE"`
	Voucher  *Voucher            `gorm:"foreignKey:CotizacionID"`
}

// CalcularTotales recomputes the derived money columns from the given
// live detail lines. Intermediate sums stay exact; rounding (half up, 2
// decimal places) happens once here, at the values that get persisted.
func (c *Cotizacion) CalcularTotales(detalles []CotizacionDetalle) {
	subtotal := decimal.Zero
	for _, d := range detalles {
		subtotal = subtotal.Add(d.TotalDetalle)
	}
	igv := subtotal.Mul(c.TasaIGV)
	c.Subtotal = subtotal.Round(2)
	c.ImpuestoIGV = igv.Round(2)
	c.MontoTotal = subtotal.Add(igv).Round(2)
}

// CotizacionDetalle is a priced line item of a quotation. The line is
// owned by its quotation and cascade-deleted with it; the referenced
// service is protected against deletion while lines point at it.
type CotizacionDetalle struct {
	ID           uint            `gorm:"column:id;primaryKey"`
	CotizacionID uint            `gorm:"column:cotizacion_id;index;not null"`
	Cotizacion   *Cotizacion     `gorm:"foreignKey:CotizacionID"`
	ServicioID   uint            `gorm:"column:servicio_id;index;not null"`
	Servicio     *Servicio       `gorm:"foreignKey:ServicioID;constraint:OnDelete:RESTRICT"`
	NormaID      *uint           `gorm:"column:norma_id"`
	Norma        *Norma          `gorm:"foreignKey:NormaID;constraint:OnDelete:SET NULL"`
	MetodoID     *uint           `gorm:"column:metodo_id"`
	Metodo       *Metodo         `gorm:"foreignKey:MetodoID;constraint:OnDelete:SET NULL"`
	Descripcion  string          `gorm:"column:descripcion;type:text;not null"`
	UnidadMedida string          `gorm:"column:unidad_medida;type:varchar(50);default:'Ensayo'"`
	Cantidad     int             `gorm:"column:cantidad;not null"`
	PrecioUnitario decimal.Decimal `gorm:"column:precio_unitario;type:decimal(10,2);not null"`
	TotalDetalle decimal.Decimal `gorm:"column:total_detalle;type:decimal(12,2)"`
}

// CalcularTotal materializes the line total (cantidad x precio unitario).
func (d *CotizacionDetalle) CalcularTotal() {
	d.TotalDetalle = decimal.NewFromInt(int64(d.Cantidad)).Mul(d.PrecioUnitario)
}

// Voucher is the payment proof attached to an accepted quotation. The
// uploaded file is stored as an opaque path.
type Voucher struct {
	ID           uint            `gorm:"column:id;primaryKey"`
	CotizacionID uint            `gorm:"column:cotizacion_id;uniqueIndex;not null"`
	Cotizacion   *Cotizacion     `gorm:"foreignKey:CotizacionID;constraint:OnDelete:CASCADE"`
	Codigo       string          `gorm:"column:codigo;type:varchar(100);not null"`
	MontoPagado  decimal.Decimal `gorm:"column:monto_pagado;type:decimal(10,2)"`
	ArchivoRuta  string          `gorm:"column:archivo_ruta;type:varchar(255)"`
	FechaSubida  time.Time       `gorm:"column:fecha_subida;autoCreateTime"`
}
