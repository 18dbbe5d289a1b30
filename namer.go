package oracle

import (
	"strings"

	"gorm.io/gorm/schema"
)

// Namer wraps a gorm naming strategy so generated names follow Oracle's
// upper-case folding of unquoted identifiers. Cursor columns come back
// upper-cased, so struct fields only match them through this namer.
type Namer struct {
	// NamingStrategy use custom naming strategy in gorm.Config on initialize
	NamingStrategy schema.Namer
	// CaseSensitive keeps names as produced by NamingStrategy
	CaseSensitive bool
}

var _ schema.Namer = Namer{}

// ConvertNameToFormat return appropriate capitalization name based on CaseSensitive
func (n Namer) ConvertNameToFormat(x string) string {
	if n.CaseSensitive {
		return x
	}
	return strings.ToUpper(x)
}

func (n Namer) strategy() schema.Namer {
	if n.NamingStrategy == nil {
		return schema.NamingStrategy{}
	}
	return n.NamingStrategy
}

func (n Namer) TableName(table string) string {
	return n.ConvertNameToFormat(n.strategy().TableName(table))
}

func (n Namer) SchemaName(table string) string {
	return n.ConvertNameToFormat(n.strategy().SchemaName(table))
}

func (n Namer) ColumnName(table, column string) string {
	return n.ConvertNameToFormat(n.strategy().ColumnName(table, column))
}

func (n Namer) JoinTableName(table string) string {
	return n.ConvertNameToFormat(n.strategy().JoinTableName(table))
}

func (n Namer) RelationshipFKName(relationship schema.Relationship) string {
	return n.ConvertNameToFormat(n.strategy().RelationshipFKName(relationship))
}

func (n Namer) CheckerName(table, column string) string {
	return n.ConvertNameToFormat(n.strategy().CheckerName(table, column))
}

func (n Namer) IndexName(table, column string) string {
	return n.ConvertNameToFormat(n.strategy().IndexName(table, column))
}

func (n Namer) UniqueName(table, column string) string {
	return n.ConvertNameToFormat(n.strategy().UniqueName(table, column))
}
