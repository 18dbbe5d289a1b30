package oracle

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// cursorDecoder drains rows into a typed slice returned as interface{}.
type cursorDecoder func(ctx context.Context, tx *gorm.DB, rows *sql.Rows) (interface{}, error)

func decodeAs[T any](ctx context.Context, tx *gorm.DB, rows *sql.Rows) (interface{}, error) {
	return scanCursor[T](ctx, tx, rows)
}

// scanCursor reads every row of rows into T and closes rows. Structs are
// matched by column name through the gorm schema, single columns are
// plucked, and map[string]interface{} keeps the raw column names.
func scanCursor[T any](ctx context.Context, tx *gorm.DB, rows *sql.Rows) (items []T, err error) {
	defer func() {
		if closeErr := rows.Close(); err == nil && closeErr != nil {
			items, err = nil, closeErr
		}
	}()

	items = make([]T, 0)
	if !rows.Next() {
		return items, rows.Err()
	}

	tx = tx.Session(&gorm.Session{NewDB: true, Context: ctx})
	if err = tx.Statement.Parse(&items); err != nil && !errors.Is(err, schema.ErrUnsupportedDataType) {
		return nil, err
	}
	tx.Statement.Dest = &items
	tx.Statement.ReflectValue = reflect.ValueOf(&items).Elem()

	gorm.Scan(foldedRows{Rows: rows, schema: tx.Statement.Schema}, tx, gorm.ScanInitialized)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	tx.Logger.Info(ctx, "drained %d rows into %T", len(items), items)
	return items, nil
}

// foldedRows maps Oracle's upper-cased column names onto schema field names
// that differ only in case, e.g. a `gorm:"column:name"` tag.
type foldedRows struct {
	*sql.Rows
	schema *schema.Schema
}

func (r foldedRows) Columns() ([]string, error) {
	columns, err := r.Rows.Columns()
	if err != nil || r.schema == nil {
		return columns, err
	}
	for i, column := range columns {
		if r.schema.LookUpField(column) != nil {
			continue
		}
		for _, dbName := range r.schema.DBNames {
			if strings.EqualFold(dbName, column) {
				columns[i] = dbName
				break
			}
		}
	}
	return columns, nil
}
