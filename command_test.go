package oracle

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/sijms/go-ora/v2"
)

func isCursorOut(v interface{}) bool {
	out, ok := v.(sql.Out)
	if !ok {
		return false
	}
	_, ok = out.Dest.(*go_ora.RefCursor)
	return ok
}

func TestOracleCommandExecContext(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		params  func() (*CursorParameters, error)
		want    []interface{} // nil entries stand for a cursor output
		wantErr error
	}{
		{
			name: "numbered cursors with shared bind",
			text: `BEGIN
	OPEN :1 FOR SELECT * FROM T WHERE ID > :id;
	OPEN :2 FOR SELECT * FROM T WHERE ID < :id;
END;`,
			params: func() (*CursorParameters, error) { return Cursors(Args{"id": 1}), nil },
			want:   []interface{}{nil, 1, nil},
		},
		{
			name: "named cursors",
			text: "BEGIN OPEN :emp FOR SELECT * FROM EMP; OPEN :dept FOR SELECT * FROM DEPT WHERE DEPTNO = :deptno; END;",
			params: func() (*CursorParameters, error) {
				return NamedCursors([]string{"emp", "dept"}, Args{"deptno": 10})
			},
			want: []interface{}{nil, nil, 10},
		},
		{
			name:   "case insensitive names",
			text:   "BEGIN OPEN :1 FOR SELECT * FROM T WHERE ID = :ID; END;",
			params: func() (*CursorParameters, error) { return Cursors(Args{"id": 7}), nil },
			want:   []interface{}{nil, 7},
		},
		{
			name:   "output wins over input",
			text:   "BEGIN OPEN :1 FOR SELECT 1 FROM DUAL; END;",
			params: func() (*CursorParameters, error) { return Cursors(Args{"1": "shadowed"}), nil },
			want:   []interface{}{nil},
		},
		{
			name:   "unreferenced binds are not sent",
			text:   "BEGIN NULL; END;",
			params: func() (*CursorParameters, error) { return Cursors(Args{"unused": 1}), nil },
			want:   nil,
		},
		{
			name:    "unbound placeholder",
			text:    "BEGIN OPEN :1 FOR SELECT * FROM T WHERE ID = :missing; OPEN :2 FOR SELECT 1 FROM DUAL; END;",
			params:  func() (*CursorParameters, error) { return Cursors(nil), nil },
			want:    []interface{}{nil},
			wantErr: errNotAllBound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, server := openFakeDB(t, nil)
			p, err := tt.params()
			if err != nil {
				t.Fatal(err)
			}
			cmd := NewOracleCommand(db, tt.text)
			if err = p.AttachTo(cmd); err != nil {
				t.Fatal(err)
			}

			err = cmd.ExecContext(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ExecContext() error = %v, want %v", err, tt.wantErr)
			}

			call := server.lastExec()
			if call.query != tt.text {
				t.Errorf("query = %q", call.query)
			}
			if len(call.args) != len(tt.want) {
				t.Fatalf("sent %d binds, want %d", len(call.args), len(tt.want))
			}
			for i, want := range tt.want {
				got := call.args[i].Value
				if want == nil {
					if !isCursorOut(got) {
						t.Errorf("bind %d = %#v, want cursor output", i, got)
					}
					continue
				}
				if got != want {
					t.Errorf("bind %d = %#v, want %#v", i, got, want)
				}
			}
		})
	}
}

func TestSQLStatementBindsEveryOccurrence(t *testing.T) {
	db, server := openFakeDB(t, nil)
	cmd := NewOracleCommand(db, "UPDATE T SET A = :a WHERE B = :b OR C = :a")
	cmd.AddParameter("a", 1)
	cmd.AddParameter("b", 2)
	if err := cmd.ExecContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	args := server.lastExec().args
	if len(args) != 3 || args[0].Value != 1 || args[1].Value != 2 || args[2].Value != 1 {
		t.Errorf("binds = %+v", args)
	}
}

func TestOracleCommandOpenCursor(t *testing.T) {
	db, _ := openFakeDB(t, nil)
	cmd := NewOracleCommand(db, "BEGIN OPEN :1 FOR SELECT 1 FROM DUAL; END;")
	if err := Cursors(nil).AttachTo(cmd); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, err := cmd.OpenCursor(ctx, "1"); !errors.Is(err, ErrCursorNotBound) {
		t.Fatalf("before execution: error = %v, want ErrCursorNotBound", err)
	}
	if err := cmd.ExecContext(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := cmd.OpenCursor(ctx, "2"); !errors.Is(err, ErrCursorNotBound) {
		t.Fatalf("unreferenced cursor: error = %v, want ErrCursorNotBound", err)
	}
}

func TestSQLCommandExecContext(t *testing.T) {
	db, server := openFakeDB(t, nil)
	cmd := NewSQLCommand(db, "DELETE FROM T WHERE ID = :id")
	cmd.AddParameter("id", 3)
	if err := cmd.ExecContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	args := server.lastExec().args
	if len(args) != 1 || args[0].Name != "id" || args[0].Value != 3 {
		t.Errorf("binds = %+v", args)
	}
}
