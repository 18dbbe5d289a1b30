package oracle

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/syrx/syrx-oracle/internal/bindvars"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// errNotAllBound mimics the error Oracle raises when a placeholder has no bind.
var errNotAllBound = errors.New("ORA-01008: not all variables bound")

type fakeResult struct {
	columns []string
	rows    [][]driver.Value
}

type fakeCall struct {
	query string
	args  []driver.NamedValue
}

// fakeServer is a database/sql connector answering queries from canned results.
type fakeServer struct {
	mu      sync.Mutex
	results map[string]fakeResult
	execs   []fakeCall
}

func (s *fakeServer) Connect(context.Context) (driver.Conn, error) {
	return &fakeConn{server: s}, nil
}

func (s *fakeServer) Driver() driver.Driver {
	return fakeDriver{server: s}
}

func (s *fakeServer) lastExec() fakeCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.execs) == 0 {
		return fakeCall{}
	}
	return s.execs[len(s.execs)-1]
}

type fakeDriver struct {
	server *fakeServer
}

func (d fakeDriver) Open(string) (driver.Conn, error) {
	return &fakeConn{server: d.server}, nil
}

type fakeConn struct {
	server *fakeServer
}

func (c *fakeConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("fake: prepare not supported")
}

func (c *fakeConn) Close() error {
	return nil
}

func (c *fakeConn) Begin() (driver.Tx, error) {
	return fakeTx{}, nil
}

// CheckNamedValue accepts every value, sql.Out included.
func (c *fakeConn) CheckNamedValue(*driver.NamedValue) error {
	return nil
}

func (c *fakeConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.server.mu.Lock()
	c.server.execs = append(c.server.execs, fakeCall{query: query, args: args})
	c.server.mu.Unlock()

	if len(bindvars.Parse(query)) > len(args) {
		return nil, errNotAllBound
	}
	return driver.RowsAffected(1), nil
}

func (c *fakeConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.server.mu.Lock()
	result, ok := c.server.results[query]
	c.server.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("ORA-00942: table or view does not exist (%s)", query)
	}
	return &fakeRows{result: result}, nil
}

type fakeTx struct{}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type fakeRows struct {
	result fakeResult
	pos    int
}

func (r *fakeRows) Columns() []string {
	return r.result.columns
}

func (r *fakeRows) Close() error {
	return nil
}

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.result.rows) {
		return io.EOF
	}
	copy(dest, r.result.rows[r.pos])
	r.pos++
	return nil
}

func openFakeDB(t *testing.T, results map[string]fakeResult) (*gorm.DB, *fakeServer) {
	t.Helper()
	server := &fakeServer{results: results}
	db, err := gorm.Open(New(Config{Conn: sql.OpenDB(server)}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	return db, server
}

// fakeCursorCommand serves each declared cursor from the canned result
// "cursor <name>", standing in for REF CURSORs filled by the server.
type fakeCursorCommand struct {
	*SQLCommand
	tx       *gorm.DB
	cursors  []string
	executed bool
}

func (c *fakeCursorCommand) AddRefCursor(name string) {
	c.cursors = append(c.cursors, name)
}

func (c *fakeCursorCommand) ExecContext(context.Context) error {
	c.executed = true
	return nil
}

func (c *fakeCursorCommand) OpenCursor(ctx context.Context, name string) (*sql.Rows, error) {
	for _, cursor := range c.cursors {
		if cursor == name {
			return c.tx.Statement.ConnPool.QueryContext(ctx, "cursor "+name)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCursorNotBound, name)
}

func newFakeCommander(db *gorm.DB) *Commander {
	c := NewCommander(db)
	c.newCommand = func(tx *gorm.DB, text string) Command {
		return &fakeCursorCommand{SQLCommand: NewSQLCommand(tx, text), tx: tx}
	}
	return c
}

func ids(values ...int64) [][]driver.Value {
	rows := make([][]driver.Value, 0, len(values))
	for _, v := range values {
		rows = append(rows, []driver.Value{v})
	}
	return rows
}
