package oracle

import (
	"context"
	"fmt"
	"io"

	"gorm.io/gorm"
)

// Commander executes commands and multi-cursor queries on a gorm connection
// opened with this package's Dialector.
//
// Each call runs on one pinned connection: the command is executed and its
// REF CURSORs are drained before the connection returns to the pool. Inside a
// gorm transaction the transaction's connection is used.
type Commander struct {
	db         *gorm.DB
	newCommand func(tx *gorm.DB, text string) Command
}

// NewCommander returns a Commander using db.
func NewCommander(db *gorm.DB) *Commander {
	return &Commander{
		db: db,
		newCommand: func(tx *gorm.DB, text string) Command {
			return NewOracleCommand(tx, text)
		},
	}
}

// DB returns the underlying gorm connection.
func (c *Commander) DB() *gorm.DB {
	return c.db
}

// Ping verifies the pool can reach the database.
func (c *Commander) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Execute runs text with args bound as ordinary parameters.
func (c *Commander) Execute(ctx context.Context, text string, args interface{}) error {
	params, err := resolveArgs(args)
	if err != nil {
		return err
	}
	return c.connection(ctx, func(tx *gorm.DB) error {
		cmd := c.newCommand(tx, text)
		for _, p := range params {
			cmd.AddParameter(p.Name, p.Value)
		}
		return cmd.ExecContext(ctx)
	})
}

// Query runs text as a plain query and decodes every row into T.
func Query[T any](ctx context.Context, c *Commander, text string, args interface{}) (items []T, err error) {
	params, err := resolveArgs(args)
	if err != nil {
		return nil, err
	}
	err = c.connection(ctx, func(tx *gorm.DB) error {
		cmd := NewOracleCommand(tx, text)
		for _, p := range params {
			cmd.AddParameter(p.Name, p.Value)
		}
		rows, err := cmd.QueryContext(ctx)
		if err != nil {
			return err
		}
		items, err = scanCursor[T](ctx, tx, rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// QueryMultipleMaps executes text and drains the first n declared cursors,
// each as a slice of column name to value maps.
func (c *Commander) QueryMultipleMaps(ctx context.Context, text string, params *CursorParameters, n int) ([][]map[string]interface{}, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: cursor count %d", ErrInvalidArgument, n)
	}
	decoders := make([]cursorDecoder, n)
	for i := range decoders {
		decoders[i] = decodeAs[map[string]interface{}]
	}
	sets, err := c.queryMultiple(ctx, text, params, decoders...)
	if err != nil {
		return nil, err
	}
	results := make([][]map[string]interface{}, len(sets))
	for i, set := range sets {
		results[i] = set.([]map[string]interface{})
	}
	return results, nil
}

// queryMultiple executes text once and decodes the i-th declared cursor with
// decoders[i]. Any failure discards every decoded set.
func (c *Commander) queryMultiple(ctx context.Context, text string, params *CursorParameters, decoders ...cursorDecoder) (sets []interface{}, err error) {
	if params == nil {
		params = Cursors(nil)
	}
	cursors := params.Descriptors()
	if len(decoders) > len(cursors) {
		return nil, fmt.Errorf("%w: %d declared, %d mapped", ErrCursorArity, len(cursors), len(decoders))
	}

	err = c.connection(ctx, func(tx *gorm.DB) error {
		cmd := c.newCommand(tx, text)
		if closer, ok := cmd.(io.Closer); ok {
			defer func() {
				_ = closer.Close()
			}()
		}
		if err := params.AttachTo(cmd); err != nil {
			return err
		}
		if err := cmd.ExecContext(ctx); err != nil {
			return err
		}

		reader, ok := cmd.(CursorReader)
		if !ok {
			return fmt.Errorf("%w: %T", ErrRefCursorUnsupported, cmd)
		}
		sets = make([]interface{}, 0, len(decoders))
		for i, decode := range decoders {
			rows, err := reader.OpenCursor(ctx, cursors[i].Name)
			if err != nil {
				return err
			}
			set, err := decode(ctx, tx, rows)
			if err != nil {
				return fmt.Errorf("cursor %s: %w", cursors[i].Name, err)
			}
			sets = append(sets, set)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sets, nil
}

func (c *Commander) connection(ctx context.Context, fc func(tx *gorm.DB) error) error {
	tx := c.db.WithContext(ctx)
	if _, ok := tx.Statement.ConnPool.(gorm.TxCommitter); ok {
		return fc(tx)
	}
	return tx.Connection(fc)
}
