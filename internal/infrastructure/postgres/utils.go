package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation 23503: la fila sigue referenciada (p. ej. producto con movimientos).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// mapWriteErr traduce violaciones de constraint a errores de dominio.
func mapWriteErr(err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return domain.ErrConflict
	}
	return err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nextNumber siguiente número prefix+NNNN de column en table. El advisory lock dura hasta
// el fin de la tx y serializa las altas con el mismo prefijo.
func nextNumber(ctx context.Context, tx pgx.Tx, table, column, prefix string) (string, error) {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, prefix); err != nil {
		return "", fmt.Errorf("lock %s: %w", prefix, err)
	}
	rows, err := tx.Query(ctx, fmt.Sprintf(`SELECT %s FROM %s WHERE %s LIKE $1`, column, table, column), prefix+"%")
	if err != nil {
		return "", fmt.Errorf("numbers %s: %w", prefix, err)
	}
	numbers, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return "", fmt.Errorf("numbers %s: %w", prefix, err)
	}
	return entity.SequenceNumber(prefix, entity.NextSequence(numbers, prefix)), nil
}
