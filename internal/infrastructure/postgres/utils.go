package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tu-usuario/kardex-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isConcurrencyError verifica si un error es de serialización o de lock:
// 40001 serialization_failure, 40P01 deadlock_detected, 55P03 lock_not_available.
func isConcurrencyError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", "40P01", "55P03":
		return true
	}
	return false
}

// translateError mapea errores de Postgres a los sentinelas de dominio,
// conservando el error original como causa envuelta.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if isConcurrencyError(err) {
		return fmt.Errorf("%s: %v: %w", op, err, domain.ErrConcurrencyConflict)
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %v: %w", op, err, domain.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
