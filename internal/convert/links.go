package convert

import (
	"strings"

	"doccomp/internal/topic"
)

// linkIndex resolves symbol links and precise identifiers. It is filled while
// the graph is built and only read afterwards, so workers share it freely.
type linkIndex struct {
	graph    *topic.Graph
	bySymbol map[string]topic.Reference
	byPath   map[string]topic.Reference
	// ambiguous holds path suffixes shared by several references; they never
	// resolve, so a short link cannot silently pick one of the candidates.
	ambiguous map[string]struct{}
}

func newLinkIndex(g *topic.Graph) *linkIndex {
	return &linkIndex{
		graph:     g,
		bySymbol:  make(map[string]topic.Reference),
		byPath:    make(map[string]topic.Reference),
		ambiguous: make(map[string]struct{}),
	}
}

// add registers ref under the symbol's identifier and every path suffix, so
// `Widget`, `Kit/Widget` and `/documentation/Kit/Widget` all resolve.
func (l *linkIndex) add(preciseIdentifier string, ref topic.Reference) {
	if preciseIdentifier != "" {
		l.bySymbol[preciseIdentifier] = ref
	}
	parts := strings.Split(strings.TrimPrefix(ref.Path, "/"), "/")
	for i := range parts {
		key := strings.Join(parts[i:], "/")
		if _, ok := l.ambiguous[key]; ok {
			continue
		}
		if prev, taken := l.byPath[key]; taken && prev != ref {
			delete(l.byPath, key)
			l.ambiguous[key] = struct{}{}
			continue
		}
		l.byPath[key] = ref
	}
	l.byPath[ref.Path] = ref
}

func (l *linkIndex) ResolveLink(dest string) (topic.Reference, bool) {
	if strings.HasPrefix(dest, "doc://") {
		ref, err := topic.ParseReference(dest)
		if err != nil {
			return topic.Reference{}, false
		}
		if !l.graph.IsLinkable(ref) {
			return topic.Reference{}, false
		}
		return ref, true
	}
	path, fragment, _ := strings.Cut(dest, "#")
	ref, ok := l.byPath[path]
	if !ok {
		ref, ok = l.byPath[strings.TrimPrefix(path, "/")]
	}
	if !ok || !l.graph.IsLinkable(ref) {
		return topic.Reference{}, false
	}
	if fragment != "" {
		ref = ref.WithFragment(fragment)
	}
	return ref, true
}

func (l *linkIndex) ResolveSymbol(preciseIdentifier string) (topic.Reference, bool) {
	ref, ok := l.bySymbol[preciseIdentifier]
	return ref, ok
}
