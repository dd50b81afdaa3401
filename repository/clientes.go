package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jucanuro/grupovicaf/repository/models"
)

// ClienteUpdate carries the editable fields of a client. The generated
// code is deliberately absent: once assigned it never changes.
type ClienteUpdate struct {
	RazonSocial     *string `json:"razon_social"`
	Direccion       *string `json:"direccion"`
	SitioWeb        *string `json:"sitio_web"`
	PersonaContacto *string `json:"persona_contacto"`
	CargoContacto   *string `json:"cargo_contacto"`
	CelularContacto *string `json:"celular_contacto"`
	CorreoContacto  *string `json:"correo_contacto"`
	Activo          *bool   `json:"activo"`
}

// CreateCliente registers a client company and assigns its sequential
// code (CLI-YY-NNNN) inside the same transaction that persists the row.
func (r *Repository) CreateCliente(cliente *models.Cliente) (*models.Cliente, *RepositoryError) {
	if len(cliente.RUC) != 11 {
		return nil, &RepositoryError{
			Code:    ErrCodeValidation,
			Message: "invalid RUC",
			Detail:  "the RUC must be exactly 11 digits",
		}
	}
	if cliente.RazonSocial == "" || cliente.PersonaContacto == "" {
		return nil, &RepositoryError{
			Code:    ErrCodeValidation,
			Message: "missing required fields",
			Detail:  "razon social and persona de contacto are required",
		}
	}

	dbTx := r.db.Begin()

	if cliente.Codigo == "" {
		codigo, err := nextCode(dbTx, &models.Cliente{}, "codigo", scopeCliente(time.Now()))
		if err != nil {
			dbTx.Rollback()
			return nil, wrapError(err, "cliente")
		}
		cliente.Codigo = codigo
	}

	if err := dbTx.Create(cliente).Error; err != nil {
		dbTx.Rollback()
		return nil, wrapError(err, "cliente")
	}

	if err := dbTx.Commit().Error; err != nil {
		return nil, commitError(err)
	}

	r.logger.WithField("codigo", cliente.Codigo).Info("cliente created")
	return cliente, nil
}

// GetCliente fetches a client with its projects and quotations.
func (r *Repository) GetCliente(id uint) (*models.Cliente, *RepositoryError) {
	var cliente models.Cliente
	err := r.db.Preload("Proyectos").Preload("Cotizaciones").First(&cliente, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("cliente", id)
		}
		return nil, wrapError(err, "cliente")
	}
	return &cliente, nil
}

// ListClientes returns all clients ordered by company name.
func (r *Repository) ListClientes() ([]models.Cliente, *RepositoryError) {
	var clientes []models.Cliente
	if err := r.db.Order("razon_social").Find(&clientes).Error; err != nil {
		return nil, wrapError(err, "cliente")
	}
	return clientes, nil
}

// UpdateCliente applies the given field updates. The code and RUC are
// immutable through this path.
func (r *Repository) UpdateCliente(id uint, upd ClienteUpdate) (*models.Cliente, *RepositoryError) {
	dbTx := r.db.Begin()

	var cliente models.Cliente
	if err := dbTx.First(&cliente, id).Error; err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("cliente", id)
		}
		return nil, wrapError(err, "cliente")
	}

	if upd.RazonSocial != nil {
		cliente.RazonSocial = *upd.RazonSocial
	}
	if upd.Direccion != nil {
		cliente.Direccion = *upd.Direccion
	}
	if upd.SitioWeb != nil {
		cliente.SitioWeb = *upd.SitioWeb
	}
	if upd.PersonaContacto != nil {
		cliente.PersonaContacto = *upd.PersonaContacto
	}
	if upd.CargoContacto != nil {
		cliente.CargoContacto = *upd.CargoContacto
	}
	if upd.CelularContacto != nil {
		cliente.CelularContacto = *upd.CelularContacto
	}
	if upd.CorreoContacto != nil {
		cliente.CorreoContacto = *upd.CorreoContacto
	}
	if upd.Activo != nil {
		cliente.Activo = *upd.Activo
	}

	if err := dbTx.Save(&cliente).Error; err != nil {
		dbTx.Rollback()
		return nil, wrapError(err, "cliente")
	}

	if err := dbTx.Commit().Error; err != nil {
		return nil, commitError(err)
	}
	return &cliente, nil
}

// DeleteCliente removes a client. The delete is refused, not forced,
// while quotations or projects still reference the client.
func (r *Repository) DeleteCliente(id uint) *RepositoryError {
	dbTx := r.db.Begin()

	var cliente models.Cliente
	if err := dbTx.First(&cliente, id).Error; err != nil {
		dbTx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("cliente", id)
		}
		return wrapError(err, "cliente")
	}

	var dependientes int64
	dbTx.Model(&models.Cotizacion{}).Where("cliente_id = ?", id).Count(&dependientes)
	if dependientes == 0 {
		dbTx.Model(&models.Proyecto{}).Where("cliente_id = ?", id).Count(&dependientes)
	}
	if dependientes > 0 {
		dbTx.Rollback()
		return &RepositoryError{
			Code:    ErrCodeReference,
			Message: "cliente has dependent records",
			Detail:  "the client still has quotations or projects and cannot be deleted",
		}
	}

	if err := dbTx.Delete(&cliente).Error; err != nil {
		dbTx.Rollback()
		return wrapError(err, "cliente")
	}

	if err := dbTx.Commit().Error; err != nil {
		return commitError(err)
	}
	return nil
}
