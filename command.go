package oracle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/syrx/syrx-oracle/internal/bindvars"
	"gorm.io/gorm"
)

// Direction of a bound parameter.
type Direction int

const (
	Input Direction = iota
	Output
)

// Parameter is one entry of a command's parameter collection.
type Parameter struct {
	Name      string
	Value     interface{}
	Direction Direction
	Kind      ParameterKind
}

// Command is a database command bound to a connection and a command text.
type Command interface {
	Text() string
	Parameters() []Parameter
	AddParameter(name string, value interface{})
	ExecContext(ctx context.Context) error
}

// RefCursorBinder is implemented by commands able to carry REF CURSOR
// output parameters.
type RefCursorBinder interface {
	AddRefCursor(name string)
}

// CursorReader is implemented by commands whose REF CURSOR outputs can be
// read back as result sets once executed.
type CursorReader interface {
	OpenCursor(ctx context.Context, name string) (*sql.Rows, error)
}

// SQLCommand is a backend-neutral command. Parameters are passed to the
// driver as sql.NamedArg values.
type SQLCommand struct {
	db     *gorm.DB
	text   string
	params []Parameter
}

// NewSQLCommand returns a command executing text on db.
func NewSQLCommand(db *gorm.DB, text string) *SQLCommand {
	return &SQLCommand{db: db, text: text}
}

func (c *SQLCommand) Text() string {
	return c.text
}

func (c *SQLCommand) Parameters() []Parameter {
	return append([]Parameter(nil), c.params...)
}

func (c *SQLCommand) AddParameter(name string, value interface{}) {
	c.params = append(c.params, Parameter{Name: name, Value: value, Direction: Input, Kind: ValueKind})
}

func (c *SQLCommand) ExecContext(ctx context.Context) error {
	vars := make([]interface{}, 0, len(c.params))
	for _, p := range c.params {
		vars = append(vars, sql.Named(p.Name, p.Value))
	}
	return rawExec(c.db.WithContext(ctx), c.text, vars).Error
}

// OracleCommand binds parameters positionally in the order the command text
// references them, which is the only way Oracle accepts numbered binds such
// as :1 alongside named ones.
//
// Parameters the text never references are not sent. Binding stops at the
// first placeholder without a parameter, leaving the driver to report
// ORA-01008 (not all variables bound).
type OracleCommand struct {
	SQLCommand
	cursors map[string]*RefCursor
	bound   map[string]*RefCursor
}

var (
	_ Command         = (*OracleCommand)(nil)
	_ RefCursorBinder = (*OracleCommand)(nil)
	_ CursorReader    = (*OracleCommand)(nil)
)

// NewOracleCommand returns a command executing text on db. For REF CURSOR
// reads db should be pinned to one connection (see gorm.DB.Connection).
func NewOracleCommand(db *gorm.DB, text string) *OracleCommand {
	return &OracleCommand{
		SQLCommand: SQLCommand{db: db, text: text},
		cursors:    make(map[string]*RefCursor),
	}
}

// AddRefCursor adds an output parameter of REF CURSOR type.
func (c *OracleCommand) AddRefCursor(name string) {
	cursor := &RefCursor{Name: name}
	c.params = append(c.params, Parameter{Name: name, Value: cursor.Out(), Direction: Output, Kind: RefCursorKind})
	c.cursors[bindvars.Key(name)] = cursor
}

// ExecContext executes the command through gorm's raw callback chain.
func (c *OracleCommand) ExecContext(ctx context.Context) error {
	vars, cursors := c.bindVars()
	if err := rawExec(c.db.WithContext(ctx), c.text, vars).Error; err != nil {
		return err
	}
	c.bound = cursors
	return nil
}

// QueryContext runs the command as a query returning rows.
func (c *OracleCommand) QueryContext(ctx context.Context) (*sql.Rows, error) {
	vars, _ := c.bindVars()
	return rawRows(c.db.WithContext(ctx), c.text, vars)
}

// OpenCursor returns the rows of an executed REF CURSOR output.
func (c *OracleCommand) OpenCursor(ctx context.Context, name string) (*sql.Rows, error) {
	cursor, ok := c.bound[bindvars.Key(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCursorNotBound, name)
	}
	return cursor.Rows(ctx, c.db.Statement.ConnPool)
}

// Close releases the server side cursors of an executed command.
func (c *OracleCommand) Close() error {
	var errs []error
	for _, cursor := range c.bound {
		errs = append(errs, cursor.Close())
	}
	c.bound = nil
	return errors.Join(errs...)
}

// bindVars resolves the placeholders of the command text against the
// parameter collection. Output parameters win over inputs of the same name.
func (c *OracleCommand) bindVars() (vars []interface{}, cursors map[string]*RefCursor) {
	cursors = make(map[string]*RefCursor)
	for _, name := range bindvars.Parse(c.text) {
		key := bindvars.Key(name)
		if cursor, ok := c.cursors[key]; ok {
			vars = append(vars, cursor.Out())
			cursors[key] = cursor
			continue
		}
		p, ok := c.input(key)
		if !ok {
			break
		}
		vars = append(vars, p.Value)
	}
	return
}

func (c *OracleCommand) input(key string) (Parameter, bool) {
	for _, p := range c.params {
		if p.Direction == Input && bindvars.Key(p.Name) == key {
			return p, true
		}
	}
	return Parameter{}, false
}

// rawExec runs text through the raw callbacks so registered plugins and the
// logger see the statement.
func rawExec(tx *gorm.DB, text string, vars []interface{}) *gorm.DB {
	tx.Statement.SQL.WriteString(text)
	tx.Statement.Vars = vars
	return tx.Callback().Raw().Execute(tx)
}

// rawRows runs text through the row callbacks, the way gorm's Rows() does.
func rawRows(tx *gorm.DB, text string, vars []interface{}) (*sql.Rows, error) {
	tx = tx.Set("rows", true)
	tx.Statement.SQL.WriteString(text)
	tx.Statement.Vars = vars
	tx = tx.Callback().Row().Execute(tx)
	if tx.Error != nil {
		return nil, tx.Error
	}
	rows, ok := tx.Statement.Dest.(*sql.Rows)
	if !ok {
		return nil, gorm.ErrInvalidData
	}
	return rows, nil
}
