package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Value is a single table cell: either a number or Missing.
//
// On the wire a Value is tagged so a missing cell can never be confused with
// a numeric value or a string:
//
//	{"kind":"number","value":1.5}
//	{"kind":"missing"}
type Value struct {
	num     float64
	present bool
}

// Missing is the sentinel for an empty cell.
var Missing = Value{}

// Number wraps x as a present Value.
func Number(x float64) Value {
	return Value{num: x, present: true}
}

// IsMissing reports whether v is the Missing sentinel.
func (v Value) IsMissing() bool {
	return !v.present
}

// Float returns the numeric value and whether it is present.
func (v Value) Float() (float64, bool) {
	return v.num, v.present
}

func (v Value) String() string {
	if !v.present {
		return "missing"
	}
	return strconv.FormatFloat(v.num, 'f', -1, 64)
}

const (
	valueKindNumber  = "number"
	valueKindMissing = "missing"
)

type wireValue struct {
	Kind  string   `json:"kind"`
	Value *float64 `json:"value,omitempty"`
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return json.Marshal(wireValue{Kind: valueKindMissing})
	}
	x := v.num
	return json.Marshal(wireValue{Kind: valueKindNumber, Value: &x})
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var w wireValue
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case valueKindMissing:
		*v = Missing
	case valueKindNumber:
		if w.Value == nil {
			return fmt.Errorf("value: number without value")
		}
		*v = Number(*w.Value)
	default:
		return fmt.Errorf("value: unknown kind %q", w.Kind)
	}
	return nil
}

// presentFloats returns the numeric values of vs, skipping Missing.
func presentFloats(vs []Value) []float64 {
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		if v.present {
			out = append(out, v.num)
		}
	}
	return out
}

// Stat is a summary statistic. Undefined results (NaN, ±Inf) encode as null.
type Stat float64

func (s Stat) MarshalJSON() ([]byte, error) {
	f := float64(s)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func (s *Stat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Stat(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*s = Stat(f)
	return nil
}

// Defined reports whether s holds a finite value.
func (s Stat) Defined() bool {
	f := float64(s)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
