package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"holocron/internal/logging"

	"github.com/jackc/pgx/v5/pgconn"
)

// Коды PostgreSQL, которые при bootstrap'е означают «уже есть».
const (
	codeDuplicateTable  = "42P07"
	codeDuplicateObject = "42710"
)

// Statement — один DDL-шаг; Name только для логов.
type Statement struct {
	Name string
	SQL  string
}

// ApplyDDL выполняет DDL по порядку. Ожидается idempotent DDL (create ... if not exists).
func ApplyDDL(ctx context.Context, db *sql.DB, log logging.Logger, ddl []Statement) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	for _, st := range ddl {
		sqlText := strings.TrimSpace(st.SQL)
		if sqlText == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, sqlText); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && (pgErr.Code == codeDuplicateTable || pgErr.Code == codeDuplicateObject) {
				log.Info(ctx, "DDL skipped (already exists)", "statement", st.Name, "detail", strings.TrimSpace(pgErr.Message))
				continue
			}
			return fmt.Errorf("DDL apply failed (%s): %w", st.Name, err)
		}
		log.Debug(ctx, "DDL applied", "statement", st.Name)
	}
	return nil
}
