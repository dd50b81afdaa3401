package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jucanuro/grupovicaf/repository/models"
)

// GetProyecto fetches a project with its samples and client.
func (r *Repository) GetProyecto(id uint) (*models.Proyecto, *RepositoryError) {
	var proyecto models.Proyecto
	err := r.db.Preload("Muestras").Preload("Cliente").Preload("Informe").First(&proyecto, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("proyecto", id)
		}
		return nil, wrapError(err, "proyecto")
	}
	return &proyecto, nil
}

// ListProyectos returns all projects, most recently started first.
func (r *Repository) ListProyectos() ([]models.Proyecto, *RepositoryError) {
	var proyectos []models.Proyecto
	if err := r.db.Order("fecha_inicio DESC").Find(&proyectos).Error; err != nil {
		return nil, wrapError(err, "proyecto")
	}
	return proyectos, nil
}

// ActualizarEstadoPorMuestreo re-evaluates a project's lifecycle state
// from its registered-sample count and advances it when the suggested
// state sits further along the hierarchy. The stored state never moves
// backward through this path, and FINALIZADO/CANCELADO are never left.
// The advance is a single-field UPDATE so that no unrelated save-time
// side effects fire. Returns whether a transition occurred.
//
// Callers mutating the sample set of a project are responsible for
// invoking this afterwards; nothing runs it on a schedule.
func (r *Repository) ActualizarEstadoPorMuestreo(proyectoID uint) (bool, *RepositoryError) {
	dbTx := r.db.Begin()

	var proyecto models.Proyecto
	if err := dbTx.First(&proyecto, proyectoID).Error; err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, notFound("proyecto", proyectoID)
		}
		return false, wrapError(err, "proyecto")
	}

	if models.EsEstadoTerminal(proyecto.Estado) {
		dbTx.Rollback()
		return false, nil
	}

	var registradas int64
	if err := dbTx.Model(&models.Muestra{}).Where("proyecto_id = ?", proyectoID).Count(&registradas).Error; err != nil {
		dbTx.Rollback()
		return false, wrapError(err, "muestra")
	}

	sugerido := proyecto.EstadoSugerido(registradas)

	indiceActual := models.IndiceEstado(proyecto.Estado)
	indiceSugerido := models.IndiceEstado(sugerido)
	if indiceActual < 0 || indiceSugerido <= indiceActual {
		dbTx.Rollback()
		return false, nil
	}

	err := dbTx.Model(&models.Proyecto{}).Where("id = ?", proyectoID).
		Update("estado", sugerido).Error
	if err != nil {
		dbTx.Rollback()
		return false, wrapError(err, "proyecto")
	}

	if err := dbTx.Commit().Error; err != nil {
		return false, commitError(err)
	}

	r.logger.WithFields(map[string]any{
		"proyecto": proyecto.CodigoProyecto,
		"de":       proyecto.Estado,
		"a":        sugerido,
	}).Info("proyecto state advanced")
	return true, nil
}

// MarcarMuestrasValidadas moves a project to MUESTRAS_VALIDADAS once all
// its test results are approved. Only valid from MUESTRAS_ASIGNADAS.
func (r *Repository) MarcarMuestrasValidadas(proyectoID uint) (*models.Proyecto, *RepositoryError) {
	dbTx := r.db.Begin()

	var proyecto models.Proyecto
	if err := dbTx.First(&proyecto, proyectoID).Error; err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("proyecto", proyectoID)
		}
		return nil, wrapError(err, "proyecto")
	}

	if proyecto.Estado != models.EstadoMuestrasAsignadas {
		dbTx.Rollback()
		return nil, &RepositoryError{
			Code:    ErrCodeInvalidState,
			Message: "proyecto not ready for validation",
			Detail:  fmt.Sprintf("proyecto status is %s, must be %s", proyecto.Estado, models.EstadoMuestrasAsignadas),
		}
	}

	err := dbTx.Model(&models.Proyecto{}).Where("id = ?", proyectoID).
		Update("estado", models.EstadoMuestrasValidadas).Error
	if err != nil {
		dbTx.Rollback()
		return nil, wrapError(err, "proyecto")
	}

	if err := dbTx.Commit().Error; err != nil {
		return nil, commitError(err)
	}

	proyecto.Estado = models.EstadoMuestrasValidadas
	return &proyecto, nil
}

// CancelarProyecto is the manual administrative override that moves a
// project into the CANCELADO side state. The automatic engine never
// enters or leaves it.
func (r *Repository) CancelarProyecto(proyectoID uint) (*models.Proyecto, *RepositoryError) {
	dbTx := r.db.Begin()

	var proyecto models.Proyecto
	if err := dbTx.First(&proyecto, proyectoID).Error; err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("proyecto", proyectoID)
		}
		return nil, wrapError(err, "proyecto")
	}

	if proyecto.Estado == models.EstadoFinalizado {
		dbTx.Rollback()
		return nil, &RepositoryError{
			Code:    ErrCodeInvalidState,
			Message: "proyecto already finished",
			Detail:  "a finished project cannot be cancelled",
		}
	}

	err := dbTx.Model(&models.Proyecto{}).Where("id = ?", proyectoID).
		Update("estado", models.EstadoCancelado).Error
	if err != nil {
		dbTx.Rollback()
		return nil, wrapError(err, "proyecto")
	}

	if err := dbTx.Commit().Error; err != nil {
		return nil, commitError(err)
	}

	proyecto.Estado = models.EstadoCancelado
	return &proyecto, nil
}
