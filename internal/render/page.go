package render

// Page is the rendered output for one topic.
type Page struct {
	Identifier string   `json:"identifier"`
	Kind       string   `json:"kind"`
	Title      string   `json:"title"`
	Languages  []string `json:"languages,omitempty"`
	// Sections keep translator order.
	Sections   []*VariantCollection[Section] `json:"primaryContentSectionsVariants"`
	References []string                      `json:"references"`
}

// Section returns the first section collection of the given kind.
func (p *Page) Section(kind SectionKind) *VariantCollection[Section] {
	for _, s := range p.Sections {
		if s != nil && s.Default != nil && s.Default.Kind() == kind {
			return s
		}
	}
	return nil
}
