package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jucanuro/grupovicaf/repository/models"
)

// RegistrarMuestra registers a field sample against a project. The
// sample code is derived from the sample type's sigla, and the project
// lifecycle engine is run once the row is committed.
func (r *Repository) RegistrarMuestra(muestra *models.Muestra) (*models.Muestra, *RepositoryError) {
	dbTx := r.db.Begin()

	var proyecto models.Proyecto
	if err := dbTx.First(&proyecto, muestra.ProyectoID).Error; err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("proyecto", muestra.ProyectoID)
		}
		return nil, wrapError(err, "proyecto")
	}

	if models.EsEstadoTerminal(proyecto.Estado) {
		dbTx.Rollback()
		return nil, &RepositoryError{
			Code:    ErrCodeInvalidState,
			Message: "proyecto closed to new samples",
			Detail:  fmt.Sprintf("proyecto %s is %s", proyecto.CodigoProyecto, proyecto.Estado),
		}
	}

	var registradas int64
	if err := dbTx.Model(&models.Muestra{}).Where("proyecto_id = ?", muestra.ProyectoID).Count(&registradas).Error; err != nil {
		dbTx.Rollback()
		return nil, wrapError(err, "muestra")
	}
	if registradas >= int64(proyecto.NumeroMuestras) {
		dbTx.Rollback()
		return nil, &RepositoryError{
			Code:    ErrCodeLimitReached,
			Message: "sample limit reached",
			Detail: fmt.Sprintf("proyecto %s already has %d of %d muestras",
				proyecto.CodigoProyecto, registradas, proyecto.NumeroMuestras),
		}
	}

	var tipo models.TipoMuestra
	if err := dbTx.First(&tipo, muestra.TipoMuestraID).Error; err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &RepositoryError{
				Code:    ErrCodeReference,
				Message: "tipo de muestra not found",
				Detail:  fmt.Sprintf("tipo_muestra %d does not exist", muestra.TipoMuestraID),
			}
		}
		return nil, wrapError(err, "tipo_muestra")
	}

	if muestra.CodigoMuestra == "" {
		codigo, err := nextCode(dbTx, &models.Muestra{}, "codigo_muestra", scopeMuestra(time.Now(), tipo.Sigla))
		if err != nil {
			dbTx.Rollback()
			return nil, wrapError(err, "muestra")
		}
		muestra.CodigoMuestra = codigo
	}
	if muestra.FechaRecepcion.IsZero() {
		muestra.FechaRecepcion = time.Now()
	}
	if muestra.Estado == "" {
		muestra.Estado = models.MuestraRecibida
	}

	if err := dbTx.Create(muestra).Error; err != nil {
		dbTx.Rollback()
		return nil, wrapError(err, "muestra")
	}

	if err := dbTx.Commit().Error; err != nil {
		return nil, commitError(err)
	}

	if _, repoErr := r.ActualizarEstadoPorMuestreo(muestra.ProyectoID); repoErr != nil {
		r.logger.WithError(repoErr).Warn("lifecycle re-evaluation failed after sample registration")
	}

	r.logger.WithFields(map[string]any{
		"muestra":  muestra.CodigoMuestra,
		"proyecto": proyecto.CodigoProyecto,
	}).Info("muestra registered")
	return muestra, nil
}

// GetMuestra fetches a sample with its type and project.
func (r *Repository) GetMuestra(id uint) (*models.Muestra, *RepositoryError) {
	var muestra models.Muestra
	err := r.db.Preload("TipoMuestra").Preload("Proyecto").Preload("Laboratorio").First(&muestra, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("muestra", id)
		}
		return nil, wrapError(err, "muestra")
	}
	return &muestra, nil
}

// ListMuestrasPorProyecto returns a project's samples in code order.
func (r *Repository) ListMuestrasPorProyecto(proyectoID uint) ([]models.Muestra, *RepositoryError) {
	var muestras []models.Muestra
	err := r.db.Where("proyecto_id = ?", proyectoID).Order("codigo_muestra ASC").Find(&muestras).Error
	if err != nil {
		return nil, wrapError(err, "muestra")
	}
	return muestras, nil
}

// EliminarMuestra removes a sample and re-runs the project lifecycle
// engine. Because the engine only ever advances, a project that already
// reached MUESTRAS_ASIGNADAS keeps that state even if the deletion
// drops the count back under the expected total.
func (r *Repository) EliminarMuestra(id uint) *RepositoryError {
	dbTx := r.db.Begin()

	var muestra models.Muestra
	if err := dbTx.First(&muestra, id).Error; err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("muestra", id)
		}
		return wrapError(err, "muestra")
	}

	var dependientes int64
	if err := dbTx.Model(&models.DetalleSolicitud{}).Where("muestra_id = ?", id).Count(&dependientes).Error; err != nil {
		dbTx.Rollback()
		return wrapError(err, "detalle_solicitud")
	}
	if dependientes > 0 {
		dbTx.Rollback()
		return &RepositoryError{
			Code:    ErrCodeReference,
			Message: "muestra is referenced",
			Detail:  fmt.Sprintf("muestra %s appears in %d solicitud detail(s)", muestra.CodigoMuestra, dependientes),
		}
	}

	if err := dbTx.Delete(&models.Muestra{}, id).Error; err != nil {
		dbTx.Rollback()
		return wrapError(err, "muestra")
	}

	if err := dbTx.Commit().Error; err != nil {
		return commitError(err)
	}

	if _, repoErr := r.ActualizarEstadoPorMuestreo(muestra.ProyectoID); repoErr != nil {
		r.logger.WithError(repoErr).Warn("lifecycle re-evaluation failed after sample deletion")
	}
	return nil
}
