package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jucanuro/grupovicaf/repository/models"
)

// validarDetalle runs the fail-fast checks on a quotation line: positive
// quantity and an existing referenced service. A line pointing at a
// missing service is a referential error surfaced to the caller, never a
// silent zero contribution.
func validarDetalle(tx *gorm.DB, detalle *models.CotizacionDetalle) *RepositoryError {
	if detalle.Cantidad < 1 {
		return &RepositoryError{
			Code:    ErrCodeValidation,
			Message: "invalid quantity",
			Detail:  "cantidad must be a positive integer",
		}
	}
	if detalle.PrecioUnitario.IsNegative() {
		return &RepositoryError{
			Code:    ErrCodeValidation,
			Message: "invalid unit price",
			Detail:  "precio unitario must not be negative",
		}
	}
	var servicio models.Servicio
	if err := tx.First(&servicio, detalle.ServicioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &RepositoryError{
				Code:    ErrCodeReference,
				Message: "servicio does not exist",
				Detail:  fmt.Sprintf("servicio with id %d does not exist", detalle.ServicioID),
			}
		}
		return wrapError(err, "servicio")
	}
	return nil
}

// recalcularTotales recomputes and persists the derived money columns of
// a quotation from its live detail lines, inside the caller's
// transaction. Readers never observe a partial state: the update commits
// or rolls back together with the line mutation that triggered it.
func recalcularTotales(tx *gorm.DB, cotizacionID uint) error {
	var cotizacion models.Cotizacion
	if err := tx.First(&cotizacion, cotizacionID).Error; err != nil {
		return err
	}
	var detalles []models.CotizacionDetalle
	if err := tx.Where("cotizacion_id = ?", cotizacion.ID).Find(&detalles).Error; err != nil {
		return err
	}
	cotizacion.CalcularTotales(detalles)
	return tx.Model(&models.Cotizacion{}).Where("id = ?", cotizacion.ID).
		Updates(map[string]any{
			"subtotal":     cotizacion.Subtotal,
			"impuesto_igv": cotizacion.ImpuestoIGV,
			"monto_total":  cotizacion.MontoTotal,
		}).Error
}

// CreateCotizacion creates a quotation with its detail lines, assigns
// the offer number (VFC-OTE-YYYY-NNNN) and computes the totals, all in
// one transaction.
func (r *Repository) CreateCotizacion(cotizacion *models.Cotizacion, detalles []models.CotizacionDetalle) (*models.Cotizacion, *RepositoryError) {
	dbTx := r.db.Begin()

	var cliente models.Cliente
	if err := dbTx.First(&cliente, cotizacion.ClienteID).Error; err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("cliente", cotizacion.ClienteID)
		}
		return nil, wrapError(err, "cliente")
	}

	if cotizacion.TasaIGV.IsZero() {
		cotizacion.TasaIGV = models.TasaIGVDefecto
	}
	if cotizacion.FechaGeneracion.IsZero() {
		cotizacion.FechaGeneracion = time.Now()
	}
	if cotizacion.Estado == "" {
		cotizacion.Estado = models.CotizacionPendiente
	}

	for i := range detalles {
		if repoErr := validarDetalle(dbTx, &detalles[i]); repoErr != nil {
			dbTx.Rollback()
			return nil, repoErr
		}
		detalles[i].CalcularTotal()
	}

	if cotizacion.NumeroOferta == "" {
		numero, err := nextCode(dbTx, &models.Cotizacion{}, "numero_oferta", scopeCotizacion(cotizacion.FechaGeneracion))
		if err != nil {
			dbTx.Rollback()
			return nil, wrapError(err, "cotizacion")
		}
		cotizacion.NumeroOferta = numero
	}

	if err := dbTx.Create(cotizacion).Error; err != nil {
		dbTx.Rollback()
		return nil, wrapError(err, "cotizacion")
	}

	for i := range detalles {
		detalles[i].CotizacionID = cotizacion.ID
		if err := dbTx.Create(&detalles[i]).Error; err != nil {
			dbTx.Rollback()
			return nil, wrapError(err, "detalle de cotizacion")
		}
	}

	if err := recalcularTotales(dbTx, cotizacion.ID); err != nil {
		dbTx.Rollback()
		return nil, wrapError(err, "cotizacion")
	}

	cotizacion.CalcularTotales(detalles)

	if err := dbTx.Commit().Error; err != nil {
		return nil, commitError(err)
	}

	cotizacion.Detalles = detalles
	r.logger.WithField("numero_oferta", cotizacion.NumeroOferta).Info("cotizacion created")
	return cotizacion, nil
}

// GetCotizacion fetches a quotation with its lines and client.
func (r *Repository) GetCotizacion(id uint) (*models.Cotizacion, *RepositoryError) {
	var cotizacion models.Cotizacion
	err := r.db.Preload("Detalles").Preload("Cliente").Preload("Voucher").First(&cotizacion, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("cotizacion", id)
		}
		return nil, wrapError(err, "cotizacion")
	}
	return &cotizacion, nil
}

// AddDetalle appends a line to a quotation and recomputes the totals in
// the same transaction.
func (r *Repository) AddDetalle(cotizacionID uint, detalle *models.CotizacionDetalle) (*models.CotizacionDetalle, *RepositoryError) {
	dbTx := r.db.Begin()

	var cotizacion models.Cotizacion
	if err := dbTx.First(&cotizacion, cotizacionID).Error; err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("cotizacion", cotizacionID)
		}
		return nil, wrapError(err, "cotizacion")
	}

	if repoErr := validarDetalle(dbTx, detalle); repoErr != nil {
		dbTx.Rollback()
		return nil, repoErr
	}

	detalle.CotizacionID = cotizacion.ID
	detalle.CalcularTotal()

	if err := dbTx.Create(detalle).Error; err != nil {
		dbTx.Rollback()
		return nil, wrapError(err, "detalle de cotizacion")
	}

	if err := recalcularTotales(dbTx, cotizacion.ID); err != nil {
		dbTx.Rollback()
		return nil, wrapError(err, "cotizacion")
	}

	if err := dbTx.Commit().Error; err != nil {
		return nil, commitError(err)
	}
	return detalle, nil
}

// UpdateDetalle changes the quantity and unit price of a line and
// recomputes the parent totals.
func (r *Repository) UpdateDetalle(detalleID uint, cantidad int, precioUnitario decimal.Decimal) (*models.CotizacionDetalle, *RepositoryError) {
	dbTx := r.db.Begin()

	var detalle models.CotizacionDetalle
	if err := dbTx.First(&detalle, detalleID).Error; err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("detalle de cotizacion", detalleID)
		}
		return nil, wrapError(err, "detalle de cotizacion")
	}

	detalle.Cantidad = cantidad
	detalle.PrecioUnitario = precioUnitario
	if repoErr := validarDetalle(dbTx, &detalle); repoErr != nil {
		dbTx.Rollback()
		return nil, repoErr
	}
	detalle.CalcularTotal()

	if err := dbTx.Save(&detalle).Error; err != nil {
		dbTx.Rollback()
		return nil, wrapError(err, "detalle de cotizacion")
	}

	if err := recalcularTotales(dbTx, detalle.CotizacionID); err != nil {
		dbTx.Rollback()
		return nil, wrapError(err, "cotizacion")
	}

	if err := dbTx.Commit().Error; err != nil {
		return nil, commitError(err)
	}
	return &detalle, nil
}

// DeleteDetalle removes a line and recomputes the parent totals.
func (r *Repository) DeleteDetalle(detalleID uint) *RepositoryError {
	dbTx := r.db.Begin()

	var detalle models.CotizacionDetalle
	if err := dbTx.First(&detalle, detalleID).Error; err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("detalle de cotizacion", detalleID)
		}
		return wrapError(err, "detalle de cotizacion")
	}

	if err := dbTx.Delete(&detalle).Error; err != nil {
		dbTx.Rollback()
		return wrapError(err, "detalle de cotizacion")
	}

	if err := recalcularTotales(dbTx, detalle.CotizacionID); err != nil {
		dbTx.Rollback()
		return wrapError(err, "cotizacion")
	}

	if err := dbTx.Commit().Error; err != nil {
		return commitError(err)
	}
	return nil
}

// AprobarCotizacion marks an offer as accepted, records the payment
// voucher and creates the work project derived from it. The project code
// is P-<numero de oferta> and its amount is the quotation's grand total.
func (r *Repository) AprobarCotizacion(cotizacionID uint, voucher *models.Voucher, numeroMuestras uint) (*models.Proyecto, *RepositoryError) {
	dbTx := r.db.Begin()

	var cotizacion models.Cotizacion
	if err := dbTx.First(&cotizacion, cotizacionID).Error; err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("cotizacion", cotizacionID)
		}
		return nil, wrapError(err, "cotizacion")
	}

	switch cotizacion.Estado {
	case models.CotizacionAceptada:
		dbTx.Rollback()
		return nil, &RepositoryError{
			Code:    ErrCodeInvalidState,
			Message: "cotizacion already accepted",
			Detail:  fmt.Sprintf("cotizacion %s was already approved", cotizacion.NumeroOferta),
		}
	case models.CotizacionAnulada, models.CotizacionRechazada:
		dbTx.Rollback()
		return nil, &RepositoryError{
			Code:    ErrCodeInvalidState,
			Message: "cotizacion not approvable",
			Detail:  fmt.Sprintf("cotizacion status is %s", cotizacion.Estado),
		}
	}

	cotizacion.Estado = models.CotizacionAceptada
	cotizacion.AprobadaPorCliente = true
	if err := dbTx.Save(&cotizacion).Error; err != nil {
		dbTx.Rollback()
		return nil, wrapError(err, "cotizacion")
	}

	voucher.CotizacionID = cotizacion.ID
	if err := dbTx.Create(voucher).Error; err != nil {
		dbTx.Rollback()
		return nil, wrapError(err, "voucher")
	}

	proyecto := models.Proyecto{
		CotizacionID:    &cotizacion.ID,
		NombreProyecto:  fmt.Sprintf("Proyecto - %s (%s)", cotizacion.AsuntoServicio, cotizacion.NumeroOferta),
		CodigoProyecto:  fmt.Sprintf("P-%s", cotizacion.NumeroOferta),
		ClienteID:       cotizacion.ClienteID,
		MontoCotizacion: cotizacion.MontoTotal,
		CodigoVoucher:   voucher.Codigo,
		FechaInicio:     time.Now(),
		Estado:          models.EstadoPendiente,
		NumeroMuestras:  numeroMuestras,
	}
	if err := dbTx.Create(&proyecto).Error; err != nil {
		dbTx.Rollback()
		return nil, wrapError(err, "proyecto")
	}

	if err := dbTx.Commit().Error; err != nil {
		return nil, commitError(err)
	}

	r.logger.WithFields(map[string]any{
		"numero_oferta":   cotizacion.NumeroOferta,
		"codigo_proyecto": proyecto.CodigoProyecto,
	}).Info("cotizacion approved, proyecto created")
	return &proyecto, nil
}
