package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// nullIfEmpty mapea cadenas vacías a NULL (columnas opcionales con FK).
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// rowsScanner subconjunto de pgx.Rows usado por los escáneres compartidos.
type rowsScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}
