package oracle

import (
	"fmt"
	"strconv"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/syrx/syrx-oracle/internal/bindvars"
)

// DefaultCursorCount is the number of numbered cursors ("1".."16") declared
// when no cursor names are given. Cursors the command text never opens are
// not bound, so declaring more than needed is harmless.
const DefaultCursorCount = 16

// ParameterKind tags the provider type of a bound parameter.
type ParameterKind int

const (
	ValueKind ParameterKind = iota
	RefCursorKind
)

// CursorDescriptor names one REF CURSOR output parameter.
// Direction is always Output and Kind always RefCursorKind.
type CursorDescriptor struct {
	Name      string
	Direction Direction
	Kind      ParameterKind
}

// CursorParameters carries the ordinary bind values of one query together
// with the REF CURSOR outputs its PL/SQL block opens. A value is built for a
// single execution and is not safe for concurrent use.
//
//	BEGIN
//		OPEN :1 FOR SELECT * FROM EMP WHERE DEPTNO = :deptno;
//		OPEN :2 FOR SELECT * FROM DEPT;
//	END;
type CursorParameters struct {
	args    []Parameter
	argsErr error
	cursors []CursorDescriptor
}

// Cursors declares DefaultCursorCount numbered cursors, bound as :1 .. :16.
func Cursors(args interface{}) *CursorParameters {
	p := &CursorParameters{cursors: numbered(DefaultCursorCount)}
	p.setArgs(args)
	return p
}

// NumberedCursors declares n numbered cursors, bound as :1 .. :n.
func NumberedCursors(n int, args interface{}) (*CursorParameters, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: cursor count %d", ErrInvalidArgument, n)
	}
	p := &CursorParameters{cursors: numbered(n)}
	p.setArgs(args)
	return p, nil
}

// NamedCursors declares one cursor per name, in order. Names must be
// non-empty and unique ignoring case; the command text references them as
// :name.
func NamedCursors(names []string, args interface{}) (*CursorParameters, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no cursor names", ErrInvalidArgument)
	}
	keys := linkedhashset.New()
	p := &CursorParameters{cursors: make([]CursorDescriptor, 0, len(names))}
	for _, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%w: empty cursor name", ErrInvalidArgument)
		}
		key := bindvars.Key(name)
		if keys.Contains(key) {
			return nil, fmt.Errorf("%w: duplicate cursor name %q", ErrInvalidArgument, name)
		}
		keys.Add(key)
		p.cursors = append(p.cursors, cursor(name))
	}
	p.setArgs(args)
	return p, nil
}

// NewCursorParameters declares the given cursor names, or the numbered
// defaults when names is nil. A non-nil empty names is rejected.
func NewCursorParameters(args interface{}, names []string) (*CursorParameters, error) {
	if names == nil {
		return Cursors(args), nil
	}
	return NamedCursors(names, args)
}

// setArgs resolves args now; a failure is reported by AttachTo.
func (p *CursorParameters) setArgs(args interface{}) {
	p.args, p.argsErr = resolveArgs(args)
}

// Descriptors returns the declared cursors in declaration order.
func (p *CursorParameters) Descriptors() []CursorDescriptor {
	return append([]CursorDescriptor(nil), p.cursors...)
}

// Args returns the ordinary bind parameters.
func (p *CursorParameters) Args() []Parameter {
	return append([]Parameter(nil), p.args...)
}

// AttachTo adds the ordinary parameters and then, when cmd can carry them,
// one REF CURSOR output per descriptor. Commands without RefCursorBinder only
// receive the ordinary parameters.
func (p *CursorParameters) AttachTo(cmd Command) error {
	if p.argsErr != nil {
		return p.argsErr
	}
	for _, arg := range p.args {
		cmd.AddParameter(arg.Name, arg.Value)
	}

	binder, ok := cmd.(RefCursorBinder)
	if !ok {
		return nil
	}
	for _, c := range p.cursors {
		binder.AddRefCursor(c.Name)
	}
	return nil
}

func cursor(name string) CursorDescriptor {
	return CursorDescriptor{Name: name, Direction: Output, Kind: RefCursorKind}
}

func numbered(n int) []CursorDescriptor {
	cursors := make([]CursorDescriptor, n)
	for i := range cursors {
		cursors[i] = cursor(strconv.Itoa(i + 1))
	}
	return cursors
}
