package oracle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"testing"
)

type cursorScenario struct {
	ID int64
}

func (cursorScenario) TableName() string {
	return "T_CURSOR_SCENARIO"
}

const procCursorScenario = `CREATE OR REPLACE PROCEDURE PRO_CURSOR_SCENARIO (
	LOW_CURSOR OUT SYS_REFCURSOR,
	HIGH_CURSOR OUT SYS_REFCURSOR
)
AS
BEGIN
	OPEN LOW_CURSOR FOR SELECT ID FROM T_CURSOR_SCENARIO WHERE ID <= 2 ORDER BY ID;
	OPEN HIGH_CURSOR FOR SELECT ID FROM T_CURSOR_SCENARIO WHERE ID > 2 ORDER BY ID;
END PRO_CURSOR_SCENARIO;`

func prepareCursorScenario(t *testing.T) *Commander {
	t.Helper()
	db := liveDB(t)
	if err := db.Migrator().DropTable(&cursorScenario{}); err != nil {
		t.Fatal(err)
	}
	if err := db.Exec("CREATE TABLE T_CURSOR_SCENARIO (ID NUMBER(10) PRIMARY KEY)").Error; err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = db.Migrator().DropTable(&cursorScenario{})
	})

	c := NewCommander(db)
	ctx := context.Background()
	for id := 1; id <= 4; id++ {
		if err := c.Execute(ctx, "INSERT INTO T_CURSOR_SCENARIO (ID) VALUES (:id)", Args{"id": id}); err != nil {
			t.Fatal(err)
		}
	}
	if !db.Migrator().HasTable(&cursorScenario{}) {
		t.Fatal("scenario table missing")
	}
	return c
}

func TestQueryMultipleLive(t *testing.T) {
	c := prepareCursorScenario(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		text   string
		params func() (*CursorParameters, error)
		want   [2]int
	}{
		{
			name:   "default cursors",
			text:   "BEGIN OPEN :1 FOR SELECT id FROM T_CURSOR_SCENARIO WHERE id<2; OPEN :2 FOR SELECT id FROM T_CURSOR_SCENARIO WHERE id<3; END;",
			params: func() (*CursorParameters, error) { return Cursors(nil), nil },
			want:   [2]int{1, 2},
		},
		{
			name: "numbered with bind",
			text: `BEGIN
	OPEN :1 FOR SELECT ID FROM T_CURSOR_SCENARIO WHERE ID <= :limit ORDER BY ID;
	OPEN :2 FOR SELECT ID FROM T_CURSOR_SCENARIO WHERE ID > :limit ORDER BY ID;
END;`,
			params: func() (*CursorParameters, error) { return Cursors(Args{"limit": 2}), nil },
			want:   [2]int{2, 2},
		},
		{
			name: "named",
			text: "BEGIN PRO_CURSOR_SCENARIO(:low, :high); END;",
			params: func() (*CursorParameters, error) {
				return NamedCursors([]string{"low", "high"}, nil)
			},
			want: [2]int{2, 2},
		},
	}
	if err := c.DB().Exec(procCursorScenario).Error; err != nil {
		t.Fatal(err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.params()
			if err != nil {
				t.Fatal(err)
			}
			got, err := QueryMultiple2(ctx, c, tt.text, p, func(a []cursorScenario, b []int64) [2]int {
				return [2]int{len(a), len(b)}
			})
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("got %v, want [%v]", got, tt.want)
			}
		})
	}
}

func TestQueryMultipleLiveNotAllVariablesBound(t *testing.T) {
	c := prepareCursorScenario(t)

	p, err := NamedCursors([]string{"1", "2"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = QueryMultiple2(context.Background(), c, `BEGIN
	OPEN :1 FOR SELECT ID FROM T_CURSOR_SCENARIO WHERE ID < 2;
	OPEN :2 FOR SELECT ID FROM T_CURSOR_SCENARIO WHERE ID < 3;
	OPEN :3 FOR SELECT ID FROM T_CURSOR_SCENARIO;
END;`, p, func(a, b []int64) int {
		return len(a) + len(b)
	})
	if err == nil || !strings.Contains(err.Error(), "ORA-01008") {
		t.Fatalf("error = %v, want ORA-01008", err)
	}
}

func TestQueryMultipleLiveUnopenedCursor(t *testing.T) {
	c := prepareCursorScenario(t)

	_, err := QueryMultiple2(context.Background(), c, "BEGIN OPEN :1 FOR SELECT ID FROM T_CURSOR_SCENARIO; END;", Cursors(nil), func(a, b []int64) int {
		return len(a) + len(b)
	})
	if !errors.Is(err, ErrCursorNotBound) {
		t.Fatalf("error = %v, want ErrCursorNotBound", err)
	}
}

func ExampleQueryMultiple2() {
	db, err := dbLive, dbLiveErr
	if err != nil || db == nil {
		log.Fatal(err)
	}
	type employee struct {
		EmpNo int64
		EName string `gorm:"column:ename"`
	}
	type department struct {
		DeptNo int64
		DName  string `gorm:"column:dname"`
	}
	params, err := NamedCursors([]string{"emp", "dept"}, Args{"deptno": 10})
	if err != nil {
		log.Fatal(err)
	}

	summaries, err := QueryMultiple2(context.Background(), NewCommander(db), `BEGIN
	OPEN :emp FOR SELECT EMPNO AS EMP_NO, ENAME FROM EMP WHERE DEPTNO = :deptno;
	OPEN :dept FOR SELECT DEPTNO AS DEPT_NO, DNAME FROM DEPT WHERE DEPTNO = :deptno;
END;`, params, func(emps []employee, depts []department) string {
		return fmt.Sprintf("%d employees in %d departments", len(emps), len(depts))
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(summaries[0])
}
