package oracle

import (
	"database/sql"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sijms/go-ora/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/callbacks"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/migrator"
	"gorm.io/gorm/schema"
)

type Config struct {
	DriverName string
	DSN        string
	Conn       gorm.ConnPool //*sql.DB

	NamingCaseSensitive bool // whether naming is case-sensitive

	// SessionParams are registered with go-ora's AddSessionParam when the pool
	// is opened, e.g. {"NLS_DATE_FORMAT": "YYYY-MM-DD"}
	SessionParams map[string]string
}

type Dialector struct {
	*Config
}

//goland:noinspection GoUnusedExportedFunction
func Open(dsn string) gorm.Dialector {
	return &Dialector{Config: &Config{DSN: dsn}}
}

//goland:noinspection GoUnusedExportedFunction
func New(config Config) gorm.Dialector {
	return &Dialector{Config: &config}
}

// BuildUrl create databaseURL from server, port, service, user, password, urlOptions
// this function help build a will formed databaseURL and accept any character as it
// convert special charters to corresponding values in URL
//
//goland:noinspection GoUnusedExportedFunction
func BuildUrl(server string, port int, service, user, password string, options map[string]string) string {
	return go_ora.BuildUrl(server, port, service, user, password, options)
}

// AddSessionParams setting database connection session parameters
func AddSessionParams(db *sql.DB, params map[string]string) (keys []string, err error) {
	if db == nil {
		return
	}
	if _, ok := db.Driver().(*go_ora.OracleDriver); !ok {
		return
	}

	for key, value := range params {
		if key == "" || value == "" {
			continue
		}
		if err = go_ora.AddSessionParam(db, key, fmt.Sprintf("'%s'", value)); err != nil {
			return
		}
		keys = append(keys, key)
	}
	return
}

// DelSessionParams remove session parameters
func DelSessionParams(db *sql.DB, keys []string) {
	if db == nil {
		return
	}
	if _, ok := db.Driver().(*go_ora.OracleDriver); !ok {
		return
	}

	for _, key := range keys {
		if key == "" {
			continue
		}
		go_ora.DelSessionParam(db, key)
	}
}

// convertCustomType turns gorm.DeletedAt and types with a Time() method into
// values go-ora can bind.
func convertCustomType(val interface{}) interface{} {
	rv := reflect.ValueOf(val)
	ri := rv.Interface()
	typeName := reflect.TypeOf(ri).Name()
	if reflect.TypeOf(val).Kind() == reflect.Ptr {
		if rv.IsNil() {
			typeName = rv.Type().Elem().Name()
		} else {
			for rv.Kind() == reflect.Ptr {
				rv = rv.Elem()
			}
			ri = rv.Interface()
			typeName = reflect.TypeOf(ri).Name()
		}
	}
	if typeName == "DeletedAt" {
		if rv.IsZero() {
			val = sql.NullTime{}
		} else if deletedAt, ok := ri.(gorm.DeletedAt); ok {
			val = getTimeValue(deletedAt.Time)
		}
	} else if m := rv.MethodByName("Time"); m.IsValid() && m.Type().NumIn() == 0 {
		for _, result := range m.Call([]reflect.Value{}) {
			if t, ok := result.Interface().(time.Time); ok {
				val = getTimeValue(t)
			}
		}
	}
	return val
}

func ptrDereference(obj interface{}) (value interface{}) {
	if obj == nil {
		return obj
	}
	if t := reflect.TypeOf(obj); t.Kind() != reflect.Ptr {
		return obj
	}

	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}
	if !v.IsValid() || v.Kind() == reflect.Ptr && v.IsNil() {
		return obj
	}
	value = v.Interface()
	return
}

func getTimeValue(t time.Time) interface{} {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return t
}

func (d Dialector) DummyTableName() string {
	return "DUAL"
}

func (d Dialector) Name() string {
	return "oracle"
}

func (d Dialector) Initialize(db *gorm.DB) (err error) {
	db.NamingStrategy = Namer{
		NamingStrategy: db.NamingStrategy,
		CaseSensitive:  d.NamingCaseSensitive,
	}
	callbacks.RegisterDefaultCallbacks(db, &callbacks.Config{})

	if d.DriverName == "" {
		d.DriverName = "oracle"
	}
	if d.Conn != nil {
		db.ConnPool = d.Conn
	} else {
		db.ConnPool, err = sql.Open(d.DriverName, d.DSN)
		if err != nil {
			return
		}
	}
	if sqlDB, ok := db.ConnPool.(*sql.DB); ok && len(d.SessionParams) > 0 {
		if _, err = AddSessionParams(sqlDB, d.SessionParams); err != nil {
			return
		}
	}
	return
}

func (d Dialector) DefaultValueOf(*schema.Field) clause.Expression {
	return clause.Expr{SQL: "VALUES (DEFAULT)"}
}

func (d Dialector) Migrator(db *gorm.DB) gorm.Migrator {
	return Migrator{
		Migrator: migrator.Migrator{
			Config: migrator.Config{
				DB:        db,
				Dialector: d,
			},
		},
	}
}

func (d Dialector) BindVarTo(writer clause.Writer, stmt *gorm.Statement, _ interface{}) {
	_, _ = writer.WriteString(":")
	_, _ = writer.WriteString(strconv.Itoa(len(stmt.Vars)))
}

func (d Dialector) QuoteTo(writer clause.Writer, str string) {
	if !d.NamingCaseSensitive || str == "" {
		_, _ = writer.WriteString(str)
		return
	}
	for i, part := range strings.Split(str, ".") {
		if i > 0 {
			_ = writer.WriteByte('.')
		}
		_ = writer.WriteByte('"')
		_, _ = writer.WriteString(strings.ReplaceAll(strings.Trim(part, `"`), `"`, `""`))
		_ = writer.WriteByte('"')
	}
}

var numericPlaceholder = regexp.MustCompile(`:(\d+)`)

func (d Dialector) Explain(text string, vars ...interface{}) string {
	for idx, val := range vars {
		switch v := ptrDereference(val).(type) {
		case bool:
			if v {
				vars[idx] = 1
			} else {
				vars[idx] = 0
			}
		case go_ora.Clob:
			vars[idx] = v.String
		case sql.Out:
			if _, ok := v.Dest.(*go_ora.RefCursor); ok {
				vars[idx] = "<REF CURSOR>"
			} else {
				vars[idx] = ptrDereference(v.Dest)
			}
		}
	}
	return logger.ExplainSQL(text, numericPlaceholder, `'`, vars...)
}

func (d Dialector) DataTypeOf(field *schema.Field) string {
	switch field.DataType {
	case schema.Bool:
		return "NUMBER(1)"
	case schema.Int, schema.Uint:
		if field.Size > 0 && field.Size <= 8 {
			return "SMALLINT"
		}
		return "INTEGER"
	case schema.Float:
		return "FLOAT"
	case schema.String:
		if size := field.Size; size > 0 && size <= 4000 {
			return fmt.Sprintf("VARCHAR2(%d)", size)
		} else if size == 0 {
			return "VARCHAR2(1024)"
		}
		return "CLOB"
	case schema.Time:
		return "TIMESTAMP WITH TIME ZONE"
	case schema.Bytes:
		return "BLOB"
	}

	sqlType := string(field.DataType)
	if strings.EqualFold(sqlType, "text") {
		sqlType = "CLOB"
	}
	if sqlType == "" {
		panic(fmt.Sprintf("invalid sql type %s (%s) for oracle", field.FieldType.Name(), field.FieldType.String()))
	}
	return sqlType
}
