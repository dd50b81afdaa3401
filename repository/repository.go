package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jucanuro/grupovicaf/repository/models"
)

// PostgreSQL error codes as constants
const (
	// Class 23 — Integrity Constraint Violation
	PgErrForeignKeyViolation = "23503" // foreign_key_violation
	PgErrUniqueViolation     = "23505" // unique_violation
	PgErrCheckViolation      = "23514" // check_violation
	PgErrNotNullViolation    = "23502" // not_null_violation

	// Class 22 — Data Exception
	PgErrDataException          = "22000" // data_exception
	PgErrNumericValueOutOfRange = "22003" // numeric_value_out_of_range

	// Class 40 — Transaction Rollback
	PgErrTransactionRollback = "40000" // transaction_rollback
	PgErrSerializationFail   = "40001" // serialization_failure

	// Class 08 — Connection Exception
	PgErrConnectionException = "08000" // connection_exception
	PgErrConnectionFailure   = "08006" // connection_failure
)

// Stable error codes surfaced by the repository layer.
const (
	ErrCodeNotFound     = "ENTITY_NOT_FOUND"
	ErrCodeDuplicate    = "DUPLICATE"
	ErrCodeReference    = "REFERENCE_ERROR"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeInvalidState = "INVALID_STATE"
	ErrCodeLimitReached = "LIMIT_REACHED"
	ErrCodeDatabase     = "DATABASE_ERROR"
)

// RepositoryError represents an error in the repository layer.
type RepositoryError struct {
	Code    string
	Message string
	Detail  string
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Detail)
}

// Repository wraps the relational store. All operations run inside
// explicit transactions; the database is the only shared mutable
// resource of the system.
type Repository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewRepository creates a repository with an injected logger. The
// database connection is established separately via ConnectDB.
func NewRepository(logger *logrus.Logger) *Repository {
	return &Repository{logger: logger}
}

// NewWithDB wraps an already-open GORM handle. Used by tests running on
// an embedded database.
func NewWithDB(db *gorm.DB, logger *logrus.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// ConnectDB connects to Postgres, retrying while the database comes up.
func (r *Repository) ConnectDB(dsn string) error {
	var lastErr error
	for i := range 10 {
		db, err := gorm.Open(postgres.Open(dsn))
		if err == nil {
			r.db = db
			r.logger.Info("connected to Postgres")
			return nil
		}
		lastErr = err
		r.logger.WithError(err).Warnf("connection attempt %d failed", i+1)
		time.Sleep(2 * time.Second)
	}
	return fmt.Errorf("connecting to database: %w", lastErr)
}

// Migrate creates or updates the schema for all domain models.
func (r *Repository) Migrate() error {
	err := r.db.AutoMigrate(
		&models.Trabajador{},
		&models.Cliente{},
		&models.CategoriaServicio{},
		&models.Norma{},
		&models.Metodo{},
		&models.Servicio{},
		&models.Cotizacion{},
		&models.CotizacionDetalle{},
		&models.Voucher{},
		&models.Proyecto{},
		&models.Laboratorio{},
		&models.TipoMuestra{},
		&models.Muestra{},
		&models.SolicitudEnsayo{},
		&models.DetalleSolicitud{},
		&models.Informe{},
	)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	r.logger.Info("database migration completed")
	return nil
}

// Seed loads the catalog data the laboratory needs to operate: service
// categories, tariff entries, labs, sample types and staff. Skipped when
// data already exists.
func (r *Repository) Seed() error {
	var categorias int64
	r.db.Model(&models.CategoriaServicio{}).Count(&categorias)
	if categorias > 0 {
		r.logger.Info("seed data already exists, skipping")
		return nil
	}

	r.logger.Info("seeding database with initial data")

	for _, c := range seedCategorias {
		if err := r.db.Create(&c).Error; err != nil {
			return fmt.Errorf("seeding categoria %s: %w", c.CodigoPrefijo, err)
		}
	}
	for _, n := range seedNormas {
		if err := r.db.Create(&n).Error; err != nil {
			return fmt.Errorf("seeding norma %s: %w", n.Codigo, err)
		}
	}
	for _, s := range seedServicios {
		if err := r.db.Create(&s).Error; err != nil {
			return fmt.Errorf("seeding servicio %s: %w", s.CodigoFacturacion, err)
		}
	}
	for _, l := range seedLaboratorios {
		if err := r.db.Create(&l).Error; err != nil {
			return fmt.Errorf("seeding laboratorio %s: %w", l.CodigoInterno, err)
		}
	}
	for _, t := range seedTiposMuestra {
		if err := r.db.Create(&t).Error; err != nil {
			return fmt.Errorf("seeding tipo de muestra %s: %w", t.Sigla, err)
		}
	}
	for _, t := range seedTrabajadores {
		if err := r.db.Create(&t).Error; err != nil {
			return fmt.Errorf("seeding trabajador %s: %w", t.CorreoCorporativo, err)
		}
	}

	r.logger.Info("database seeding completed")
	return nil
}

// wrapError converts a database error into the repository taxonomy.
func wrapError(err error, entity string) *RepositoryError {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &RepositoryError{
			Code:    ErrCodeNotFound,
			Message: fmt.Sprintf("%s does not exist", entity),
			Detail:  err.Error(),
		}
	}
	// The embedded SQLite engine used in tests reports constraint
	// violations as plain messages rather than SQLSTATE codes.
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return &RepositoryError{
			Code:    ErrCodeDuplicate,
			Message: fmt.Sprintf("%s violates a uniqueness constraint", entity),
			Detail:  err.Error(),
		}
	}
	if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return &RepositoryError{
			Code:    ErrCodeReference,
			Message: fmt.Sprintf("%s references or is referenced by other records", entity),
			Detail:  err.Error(),
		}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrUniqueViolation:
			return &RepositoryError{
				Code:    ErrCodeDuplicate,
				Message: fmt.Sprintf("%s violates a uniqueness constraint", entity),
				Detail:  pgErr.Detail,
			}
		case PgErrForeignKeyViolation:
			return &RepositoryError{
				Code:    ErrCodeReference,
				Message: fmt.Sprintf("%s references or is referenced by other records", entity),
				Detail:  pgErr.Detail,
			}
		}
		return &RepositoryError{
			Code:    string(pgErr.Code),
			Message: pgErr.Message,
			Detail:  pgErr.Detail,
		}
	}
	return &RepositoryError{
		Code:    ErrCodeDatabase,
		Message: "a database error occurred",
		Detail:  err.Error(),
	}
}

func notFound(entity string, id any) *RepositoryError {
	return &RepositoryError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s does not exist", entity),
		Detail:  fmt.Sprintf("%s with id %v does not exist", entity, id),
	}
}

func commitError(err error) *RepositoryError {
	return &RepositoryError{
		Code:    ErrCodeDatabase,
		Message: "failed to commit transaction",
		Detail:  err.Error(),
	}
}
