package render

// ReferenceCollector accumulates the identifiers a page links to, in
// first-seen order without duplicates. One collector serves one page
// translation; it is not safe for concurrent use.
type ReferenceCollector struct {
	seen  map[string]struct{}
	order []string
}

func NewReferenceCollector() *ReferenceCollector {
	return &ReferenceCollector{seen: make(map[string]struct{})}
}

// Add records identifier; empty identifiers are ignored.
func (c *ReferenceCollector) Add(identifier string) {
	if identifier == "" {
		return
	}
	if _, ok := c.seen[identifier]; ok {
		return
	}
	c.seen[identifier] = struct{}{}
	c.order = append(c.order, identifier)
}

// Identifiers returns the collected identifiers.
func (c *ReferenceCollector) Identifiers() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *ReferenceCollector) Len() int { return len(c.order) }
