package symbol

import (
	"encoding/json"

	"doccomp/internal/lang"
)

// Variants holds one value per interface language. The first language set
// becomes the primary one and provides the default value.
type Variants[T any] struct {
	primary lang.Language
	set     bool
	values  map[lang.Language]T
}

// NewVariants returns variants with def as the primary language's value.
func NewVariants[T any](primary lang.Language, def T) Variants[T] {
	var v Variants[T]
	v.Set(primary, def)
	return v
}

// Set stores value for language l.
func (v *Variants[T]) Set(l lang.Language, value T) {
	if v.values == nil {
		v.values = make(map[lang.Language]T)
	}
	if !v.set {
		v.primary = l
		v.set = true
	}
	v.values[l] = value
}

// Default returns the primary language's value.
func (v Variants[T]) Default() (T, bool) {
	if !v.set {
		var zero T
		return zero, false
	}
	return v.values[v.primary], true
}

// Primary returns the language that provides the default value.
func (v Variants[T]) Primary() (lang.Language, bool) {
	return v.primary, v.set
}

// Get returns the value for l.
func (v Variants[T]) Get(l lang.Language) (T, bool) {
	val, ok := v.values[l]
	return val, ok
}

func (v Variants[T]) IsEmpty() bool {
	return len(v.values) == 0
}

// Overrides returns the non-primary languages in language order.
func (v Variants[T]) Overrides() []lang.Language {
	out := make([]lang.Language, 0, len(v.values))
	for l := range v.values {
		if v.set && l.Equal(v.primary) {
			continue
		}
		out = append(out, l)
	}
	lang.Sort(out)
	return out
}

// Languages returns the primary language followed by Overrides.
func (v Variants[T]) Languages() []lang.Language {
	if !v.set {
		return nil
	}
	return append([]lang.Language{v.primary}, v.Overrides()...)
}

type variantJSON[T any] struct {
	Language string `json:"language"`
	Value    T      `json:"value"`
}

// MarshalJSON encodes the values as a list in Languages order.
func (v Variants[T]) MarshalJSON() ([]byte, error) {
	out := make([]variantJSON[T], 0, len(v.values))
	for _, l := range v.Languages() {
		out = append(out, variantJSON[T]{Language: l.ID(), Value: v.values[l]})
	}
	return json.Marshal(out)
}
