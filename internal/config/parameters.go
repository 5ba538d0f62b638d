package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var ErrMissingParameter = errors.New("missing parameter")

// Parameters is the read-only parameter store. It is never mutated after
// construction and may be shared freely between goroutines.
type Parameters struct {
	values map[string]float64
}

func NewParameters(values map[string]float64) *Parameters {
	cp := make(map[string]float64, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return &Parameters{values: cp}
}

func (p *Parameters) Get(key string) (float64, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Require reports every key in keys that the store lacks, in one error.
func (p *Parameters) Require(keys ...string) error {
	var missing []string
	for _, k := range keys {
		if _, ok := p.values[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMissingParameter, strings.Join(missing, ", "))
}

func (p *Parameters) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (p *Parameters) Len() int { return len(p.values) }

// integer reads key as a whole number; a fractional value is an error.
func (p *Parameters) integer(key string) (int, bool, error) {
	v, ok := p.values[key]
	if !ok {
		return 0, false, nil
	}
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0, true, fmt.Errorf("%w: %s must be a whole number, got %g", ErrInvalidRun, key, v)
	}
	return int(v), true, nil
}
