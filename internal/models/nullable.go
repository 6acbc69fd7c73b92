package models

import (
	"fmt"
	"math"
	"strings"
)

// NullFloat is a float that may be absent. An absent value is distinct from zero.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Float returns a present value.
func Float(v float64) NullFloat {
	return NullFloat{Float64: v, Valid: true}
}

// Null is the absent value.
var Null = NullFloat{}

// Ptr returns nil when the value is absent.
func (n NullFloat) Ptr() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

// FromPtr converts a nullable pointer.
func FromPtr(p *float64) NullFloat {
	if p == nil {
		return Null
	}
	return Float(*p)
}

func (n NullFloat) String() string {
	if !n.Valid {
		return ""
	}
	return FormatFloat(n.Float64)
}

// MarshalCSV writes an absent value as an empty cell.
func (n NullFloat) MarshalCSV() (string, error) {
	return n.String(), nil
}

// UnmarshalCSV reads an empty cell as absent.
func (n *NullFloat) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*n = Null
		return nil
	}
	v := ParseValue(s)
	if math.IsNaN(v) {
		*n = Null
		return nil
	}
	*n = Float(v)
	return nil
}

// Budget is a carbon budget in gigatonnes, or NoBudget.
type Budget struct {
	Gigatonnes float64
	Valid      bool
}

// NoBudget is the sentinel for scenarios without a recognised budget token.
var NoBudget = Budget{}

// BudgetOf returns a present budget.
func BudgetOf(gt float64) Budget {
	return Budget{Gigatonnes: gt, Valid: true}
}

func (b Budget) String() string {
	if !b.Valid {
		return NoBudgetLabel
	}
	return FormatFloat(b.Gigatonnes)
}

// Ptr returns nil for NoBudget.
func (b Budget) Ptr() *float64 {
	if !b.Valid {
		return nil
	}
	v := b.Gigatonnes
	return &v
}

// BudgetFromPtr converts a nullable pointer.
func BudgetFromPtr(p *float64) Budget {
	if p == nil {
		return NoBudget
	}
	return BudgetOf(*p)
}

// MarshalCSV writes NoBudget as its label.
func (b Budget) MarshalCSV() (string, error) {
	return b.String(), nil
}

// UnmarshalCSV accepts the NoBudget label, an empty cell or a number.
func (b *Budget) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || s == NoBudgetLabel {
		*b = NoBudget
		return nil
	}
	v := ParseValue(s)
	if math.IsNaN(v) {
		return fmt.Errorf("invalid carbon budget '%s'", s)
	}
	*b = BudgetOf(v)
	return nil
}
