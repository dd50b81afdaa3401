package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jucanuro/grupovicaf/repository/models"
)

// CrearSolicitud schedules a test work order for an accepted quotation.
// Each detail line must reference a registered sample; every reference
// is checked before anything is written.
func (r *Repository) CrearSolicitud(solicitud *models.SolicitudEnsayo, detalles []models.DetalleSolicitud) (*models.SolicitudEnsayo, *RepositoryError) {
	dbTx := r.db.Begin()

	var cotizacion models.Cotizacion
	if err := dbTx.First(&cotizacion, solicitud.CotizacionID).Error; err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &RepositoryError{
				Code:    ErrCodeReference,
				Message: "cotizacion not found",
				Detail:  fmt.Sprintf("cotizacion %d does not exist", solicitud.CotizacionID),
			}
		}
		return nil, wrapError(err, "cotizacion")
	}
	if cotizacion.Estado != models.CotizacionAceptada {
		dbTx.Rollback()
		return nil, &RepositoryError{
			Code:    ErrCodeInvalidState,
			Message: "cotizacion not accepted",
			Detail:  fmt.Sprintf("cotizacion %s is %s", cotizacion.NumeroOferta, cotizacion.Estado),
		}
	}

	for i := range detalles {
		d := &detalles[i]
		if d.DescripcionEnsayo == "" {
			dbTx.Rollback()
			return nil, &RepositoryError{
				Code:    ErrCodeValidation,
				Message: "detalle without descripcion",
				Detail:  fmt.Sprintf("detalle %d has no descripcion_ensayo", i+1),
			}
		}
		var muestras int64
		if err := dbTx.Model(&models.Muestra{}).Where("id = ?", d.MuestraID).Count(&muestras).Error; err != nil {
			dbTx.Rollback()
			return nil, wrapError(err, "muestra")
		}
		if muestras == 0 {
			dbTx.Rollback()
			return nil, &RepositoryError{
				Code:    ErrCodeReference,
				Message: "muestra not found",
				Detail:  fmt.Sprintf("detalle %d references muestra %d which does not exist", i+1, d.MuestraID),
			}
		}
	}

	if solicitud.CodigoSolicitud == "" {
		codigo, err := nextCode(dbTx, &models.SolicitudEnsayo{}, "codigo_solicitud", scopeSolicitud(time.Now()))
		if err != nil {
			dbTx.Rollback()
			return nil, wrapError(err, "solicitud")
		}
		solicitud.CodigoSolicitud = codigo
	}
	if solicitud.FechaSolicitud.IsZero() {
		solicitud.FechaSolicitud = time.Now()
	}

	if err := dbTx.Create(solicitud).Error; err != nil {
		dbTx.Rollback()
		return nil, wrapError(err, "solicitud")
	}
	for i := range detalles {
		detalles[i].SolicitudID = solicitud.ID
		if detalles[i].FechaEntregaProgramada.IsZero() {
			detalles[i].FechaEntregaProgramada = solicitud.FechaEntregaProgramada
		}
	}
	if len(detalles) > 0 {
		if err := dbTx.Create(&detalles).Error; err != nil {
			dbTx.Rollback()
			return nil, wrapError(err, "detalle_solicitud")
		}
	}

	if err := dbTx.Commit().Error; err != nil {
		return nil, commitError(err)
	}

	solicitud.Detalles = detalles
	r.logger.WithFields(map[string]any{
		"solicitud":  solicitud.CodigoSolicitud,
		"cotizacion": cotizacion.NumeroOferta,
		"detalles":   len(detalles),
	}).Info("solicitud de ensayo created")
	return solicitud, nil
}

// GetSolicitud fetches a work order with its details and samples.
func (r *Repository) GetSolicitud(id uint) (*models.SolicitudEnsayo, *RepositoryError) {
	var solicitud models.SolicitudEnsayo
	err := r.db.Preload("Detalles").Preload("Detalles.Muestra").
		Preload("Cotizacion").Preload("ElaboradoPor").First(&solicitud, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("solicitud", id)
		}
		return nil, wrapError(err, "solicitud")
	}
	return &solicitud, nil
}

// AceptarDetalleSolicitud marks one assigned test as accepted by its
// technician.
func (r *Repository) AceptarDetalleSolicitud(detalleID uint, tecnicoID uint) *RepositoryError {
	dbTx := r.db.Begin()

	var detalle models.DetalleSolicitud
	if err := dbTx.First(&detalle, detalleID).Error; err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("detalle_solicitud", detalleID)
		}
		return wrapError(err, "detalle_solicitud")
	}

	err := dbTx.Model(&models.DetalleSolicitud{}).Where("id = ?", detalleID).
		Updates(map[string]any{"aceptado_tecnico": true, "tecnico_id": tecnicoID}).Error
	if err != nil {
		dbTx.Rollback()
		return wrapError(err, "detalle_solicitud")
	}

	if err := dbTx.Commit().Error; err != nil {
		return commitError(err)
	}
	return nil
}
