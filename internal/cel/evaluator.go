package cel

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/grdfind/internal/catalog"
)

// ItemVar is the variable an expression uses to reference the current item.
const ItemVar = "item"

// ErrNotBool is returned when an expression does not produce a bool.
var ErrNotBool = errors.New("expression must evaluate to bool")

// Predicate is a compiled boolean expression over a catalog item, for
// example `item.category == "Fruit" && has(item.price_kg)`.
type Predicate struct {
	expr string
	prg  cel.Program
}

// newStandardCELEnv creates a CEL environment with the item variable and
// common extension libraries.
func newStandardCELEnv(opts ...cel.EnvOption) (*cel.Env, error) {
	allOpts := make([]cel.EnvOption, 0, 5+len(opts))
	allOpts = append(allOpts,
		cel.Variable(ItemVar, cel.MapType(cel.StringType, cel.DynType)),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	allOpts = append(allOpts, opts...)
	return cel.NewEnv(allOpts...)
}

// NewPredicate compiles expr once. Compilation and type errors are
// reported here rather than per item.
func NewPredicate(expr string) (*Predicate, error) {
	env, err := newStandardCELEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("%w, got %s", ErrNotBool, out)
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Predicate{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (p *Predicate) String() string { return p.expr }

// Match reports whether it satisfies the predicate.
func (p *Predicate) Match(it catalog.Item) (bool, error) {
	result, _, err := p.prg.Eval(map[string]any{ItemVar: Activation(it)})
	if err != nil {
		return false, fmt.Errorf("eval error on %s: %w", it.GRD, err)
	}
	b, ok := result.(types.Bool)
	if !ok {
		return false, fmt.Errorf("%w, got %s", ErrNotBool, result.Type())
	}
	return bool(b), nil
}

// Filter keeps the items matching p, preserving order. The first
// evaluation error aborts.
func (p *Predicate) Filter(items []catalog.Item) ([]catalog.Item, error) {
	out := make([]catalog.Item, 0, len(items))
	for _, it := range items {
		ok, err := p.Match(it)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, it)
		}
	}
	return out, nil
}

// Activation is the map an item is bound as. Absent prices are omitted so
// expressions can test them with has().
func Activation(it catalog.Item) map[string]any {
	m := map[string]any{
		"grd":         it.GRD,
		"description": it.Description,
		"category":    it.Category,
		"notes":       it.Notes,
	}
	if it.PriceKg != nil {
		m["price_kg"] = *it.PriceKg
	}
	if it.PriceLb != nil {
		m["price_lb"] = *it.PriceLb
	}
	return m
}
