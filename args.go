package oracle

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/syrx/syrx-oracle/internal/bindvars"
	"gorm.io/gorm/schema"
)

// Args is an explicit bind name to value mapping.
type Args map[string]interface{}

var (
	argsSchemaCache sync.Map
	argsNamer       = Namer{NamingStrategy: schema.NamingStrategy{}}
)

// resolveArgs turns caller supplied bind values into input parameters.
//
// Accepted shapes are nil, Args or any string-keyed map, sql.NamedArg or a
// slice of them, and a struct or pointer to struct. Struct fields are resolved
// once per type through the gorm schema cache, so `gorm:"column:..."` tags
// rename binds and fields marked `gorm:"-"` are skipped.
//
// Bind names match case-insensitively, so two names differing only in case
// (Args{"id": 1, "ID": 2}) are rejected with ErrInvalidArgument.
func resolveArgs(args interface{}) ([]Parameter, error) {
	params, err := collectArgs(args)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]string, len(params))
	for _, p := range params {
		key := bindvars.Key(p.Name)
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: bind %q collides with %q", ErrInvalidArgument, p.Name, prev)
		}
		seen[key] = p.Name
	}
	return params, nil
}

func collectArgs(args interface{}) (params []Parameter, err error) {
	switch v := args.(type) {
	case nil:
		return nil, nil
	case Args:
		return mapArgs(reflect.ValueOf(map[string]interface{}(v))), nil
	case map[string]interface{}:
		return mapArgs(reflect.ValueOf(v)), nil
	case sql.NamedArg:
		return []Parameter{{Name: v.Name, Value: v.Value}}, nil
	case []sql.NamedArg:
		params = make([]Parameter, 0, len(v))
		for _, arg := range v {
			params = append(params, Parameter{Name: arg.Name, Value: arg.Value})
		}
		return params, nil
	}

	rv := reflect.ValueOf(args)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key type %s", ErrUnsupportedArgs, rv.Type().Key())
		}
		return mapArgs(rv), nil
	case reflect.Struct:
		return structArgs(rv)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedArgs, args)
	}
}

func mapArgs(rv reflect.Value) []Parameter {
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	params := make([]Parameter, 0, len(keys))
	for _, k := range keys {
		value := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface()
		params = append(params, Parameter{Name: k, Value: value})
	}
	return params
}

func structArgs(rv reflect.Value) ([]Parameter, error) {
	s, err := schema.Parse(rv.Interface(), &argsSchemaCache, argsNamer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedArgs, err)
	}
	params := make([]Parameter, 0, len(s.Fields))
	for _, field := range s.Fields {
		if field.DBName == "" || !field.Readable {
			continue
		}
		value, _ := field.ValueOf(context.Background(), rv)
		if value != nil {
			value = convertCustomType(value)
		}
		params = append(params, Parameter{Name: field.DBName, Value: value})
	}
	return params, nil
}
