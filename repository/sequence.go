package repository

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// codeScope identifies the numbering sequence a generated code belongs
// to: entity prefix plus year (and an optional sub-key baked into the
// prefix), and the fixed width of the zero-padded numeric suffix.
//
// Widths differ per entity (3 vs 4 digits) and must stay exactly as
// configured: historical codes depend on the width for correct
// lexicographic max-finding.
type codeScope struct {
	Prefix string
	Width  int
}

func scopeCliente(now time.Time) codeScope {
	return codeScope{Prefix: fmt.Sprintf("CLI-%02d-", now.Year()%100), Width: 4}
}

func scopeCotizacion(now time.Time) codeScope {
	return codeScope{Prefix: fmt.Sprintf("VFC-OTE-%d-", now.Year()), Width: 4}
}

func scopeMuestra(now time.Time, sigla string) codeScope {
	return codeScope{Prefix: fmt.Sprintf("V-M-%d-%s-", now.Year(), sigla), Width: 4}
}

func scopeSolicitud(now time.Time) codeScope {
	return codeScope{Prefix: fmt.Sprintf("VCF-LAB-%d-", now.Year()), Width: 3}
}

func scopeInforme(now time.Time) codeScope {
	return codeScope{Prefix: fmt.Sprintf("VCF-INF-%d-", now.Year()), Width: 3}
}

// nextCode issues the next unused code of a scope. It must run inside
// the same transaction that saves the owning record: on Postgres the
// scoped query takes row locks (SELECT ... FOR UPDATE), so a concurrent
// creator in the same scope blocks until this transaction commits or
// rolls back, then recomputes from the updated maximum. On SQLite the
// single-writer model serializes issuance without the clause.
//
// Fixed-width zero padding makes lexicographic order equal numeric
// order; the descending string sort below relies on that to find the
// numeric maximum.
func nextCode(tx *gorm.DB, model any, column string, sc codeScope) (string, error) {
	q := tx.Model(model).
		Where(column+" LIKE ?", sc.Prefix+"%").
		Order(column + " DESC").
		Limit(1)
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var last []string
	if err := q.Pluck(column, &last).Error; err != nil {
		return "", err
	}

	// A missing or malformed maximum falls back to suffix 1: record
	// creation is never blocked over a cosmetic numbering gap, at the
	// cost of a possible collision if historical data is malformed.
	next := 1
	if len(last) > 0 {
		if n, ok := parseSuffix(last[0]); ok {
			next = n + 1
		}
	}
	return formatCode(sc, next), nil
}

// parseSuffix extracts the trailing numeric suffix of a generated code.
func parseSuffix(code string) (int, bool) {
	idx := strings.LastIndex(code, "-")
	if idx < 0 || idx == len(code)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(code[idx+1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func formatCode(sc codeScope, n int) string {
	return fmt.Sprintf("%s%0*d", sc.Prefix, sc.Width, n)
}
