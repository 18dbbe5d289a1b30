package oracle

import (
	"context"
	"database/sql"

	"github.com/sijms/go-ora/v2"
	"gorm.io/gorm"
)

// RefCursor is a REF CURSOR output parameter of an OracleCommand.
type RefCursor struct {
	go_ora.RefCursor
	Name string
}

// Out returns the bind value receiving the cursor.
func (cursor *RefCursor) Out() sql.Out {
	return sql.Out{Dest: &cursor.RefCursor}
}

// Rows opens the executed cursor as a result set. conn must be the connection
// the cursor was returned on.
func (cursor *RefCursor) Rows(ctx context.Context, conn gorm.ConnPool) (*sql.Rows, error) {
	return go_ora.WrapRefCursor(ctx, conn, &cursor.RefCursor)
}
