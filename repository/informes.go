package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jucanuro/grupovicaf/repository/models"
)

// EmitirInforme issues the final report for a project. The project must
// have every sample validated; issuing the report is what closes the
// lifecycle, moving the project to FINALIZADO. Each project carries at
// most one report.
func (r *Repository) EmitirInforme(proyectoID uint, emitidoPorID *uint, archivoRuta string) (*models.Informe, *RepositoryError) {
	dbTx := r.db.Begin()

	var proyecto models.Proyecto
	if err := dbTx.First(&proyecto, proyectoID).Error; err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("proyecto", proyectoID)
		}
		return nil, wrapError(err, "proyecto")
	}

	if proyecto.Estado != models.EstadoMuestrasValidadas {
		dbTx.Rollback()
		return nil, &RepositoryError{
			Code:    ErrCodeInvalidState,
			Message: "proyecto not ready for report",
			Detail: fmt.Sprintf("proyecto status is %s, must be %s",
				proyecto.Estado, models.EstadoMuestrasValidadas),
		}
	}

	var existentes int64
	if err := dbTx.Model(&models.Informe{}).Where("proyecto_id = ?", proyectoID).Count(&existentes).Error; err != nil {
		dbTx.Rollback()
		return nil, wrapError(err, "informe")
	}
	if existentes > 0 {
		dbTx.Rollback()
		return nil, &RepositoryError{
			Code:    ErrCodeDuplicate,
			Message: "informe already issued",
			Detail:  fmt.Sprintf("proyecto %s already has a report", proyecto.CodigoProyecto),
		}
	}

	codigo, err := nextCode(dbTx, &models.Informe{}, "codigo_informe", scopeInforme(time.Now()))
	if err != nil {
		dbTx.Rollback()
		return nil, wrapError(err, "informe")
	}

	informe := models.Informe{
		ProyectoID:      proyectoID,
		CodigoInforme:   codigo,
		TokenValidacion: uuid.NewString(),
		FechaEmision:    time.Now(),
		EmitidoPorID:    emitidoPorID,
		ArchivoRuta:     archivoRuta,
	}
	if err := dbTx.Create(&informe).Error; err != nil {
		dbTx.Rollback()
		return nil, wrapError(err, "informe")
	}

	err = dbTx.Model(&models.Proyecto{}).Where("id = ?", proyectoID).
		Update("estado", models.EstadoFinalizado).Error
	if err != nil {
		dbTx.Rollback()
		return nil, wrapError(err, "proyecto")
	}

	if err := dbTx.Commit().Error; err != nil {
		return nil, commitError(err)
	}

	r.logger.WithFields(map[string]any{
		"informe":  informe.CodigoInforme,
		"proyecto": proyecto.CodigoProyecto,
	}).Info("informe issued, proyecto finalized")
	return &informe, nil
}

// GetInforme fetches a report with its project.
func (r *Repository) GetInforme(id uint) (*models.Informe, *RepositoryError) {
	var informe models.Informe
	err := r.db.Preload("Proyecto").Preload("EmitidoPor").First(&informe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("informe", id)
		}
		return nil, wrapError(err, "informe")
	}
	return &informe, nil
}

// ValidarInformePorToken resolves a public validation token to the
// report it belongs to. Tokens are opaque UUIDs printed on the issued
// document; an unknown token yields ENTITY_NOT_FOUND.
func (r *Repository) ValidarInformePorToken(token string) (*models.Informe, *RepositoryError) {
	var informe models.Informe
	err := r.db.Preload("Proyecto").Preload("Proyecto.Cliente").
		Where("token_validacion = ?", token).First(&informe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &RepositoryError{
				Code:    ErrCodeNotFound,
				Message: "informe not found",
				Detail:  "no report matches the supplied validation token",
			}
		}
		return nil, wrapError(err, "informe")
	}
	return &informe, nil
}
