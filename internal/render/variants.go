package render

// Trait is an axis a rendered value varies on.
type Trait struct {
	InterfaceLanguage string `json:"interfaceLanguage" msgpack:"interfaceLanguage"`
}

// Variant overrides the default value for a set of traits.
type Variant[T any] struct {
	Traits []Trait `json:"traits" msgpack:"traits"`
	Value  T       `json:"value" msgpack:"value"`
}

// VariantCollection is a default value plus per-trait overrides.
type VariantCollection[T any] struct {
	Default  T            `json:"defaultValue" msgpack:"defaultValue"`
	Variants []Variant[T] `json:"variants,omitempty" msgpack:"variants,omitempty"`
}

func NewVariantCollection[T any](def T) *VariantCollection[T] {
	return &VariantCollection[T]{Default: def}
}

// Add appends an override for a single interface language.
func (c *VariantCollection[T]) Add(interfaceLanguage string, value T) {
	c.Variants = append(c.Variants, Variant[T]{
		Traits: []Trait{{InterfaceLanguage: interfaceLanguage}},
		Value:  value,
	})
}

// Value returns the value for interfaceLanguage, falling back to the default.
func (c *VariantCollection[T]) Value(interfaceLanguage string) T {
	for _, v := range c.Variants {
		for _, t := range v.Traits {
			if t.InterfaceLanguage == interfaceLanguage {
				return v.Value
			}
		}
	}
	return c.Default
}

// All returns the default followed by every override value.
func (c *VariantCollection[T]) All() []T {
	out := make([]T, 0, 1+len(c.Variants))
	out = append(out, c.Default)
	for _, v := range c.Variants {
		out = append(out, v.Value)
	}
	return out
}

// MapVariants converts every value of c with fn.
func MapVariants[T, U any](c *VariantCollection[T], fn func(T) U) *VariantCollection[U] {
	if c == nil {
		return nil
	}
	out := &VariantCollection[U]{Default: fn(c.Default)}
	for _, v := range c.Variants {
		out.Variants = append(out.Variants, Variant[U]{Traits: v.Traits, Value: fn(v.Value)})
	}
	return out
}
