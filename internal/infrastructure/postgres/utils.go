package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// unique_violation de PostgreSQL.
const uniqueViolationCode = "23505"

// isUniqueViolation reporta si err es una violación de constraint único. En
// este esquema la disparan el envío duplicado de un pedido (shipments.order_id)
// y la posición de stock repetida; los repos la traducen a error de dominio.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return strings.Contains(err.Error(), uniqueViolationCode)
}
