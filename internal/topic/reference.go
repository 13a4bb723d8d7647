package topic

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Reference is a resolved, globally unique topic identity. It is comparable
// and used as a map key throughout the graph.
type Reference struct {
	BundleID string
	Path     string
	Fragment string
}

// NewReference builds a reference with an absolute, NFC-normalised path.
func NewReference(bundleID, p, fragment string) Reference {
	p = norm.NFC.String(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return Reference{
		BundleID: bundleID,
		Path:     p,
		Fragment: norm.NFC.String(fragment),
	}
}

// ParseReference parses a `doc://bundle/path#fragment` URL.
func ParseReference(s string) (Reference, error) {
	u, err := url.Parse(s)
	if err != nil {
		return Reference{}, fmt.Errorf("invalid topic reference %q: %w", s, err)
	}
	if u.Scheme != "doc" || u.Host == "" {
		return Reference{}, fmt.Errorf("invalid topic reference %q: expected doc://<bundle>/<path>", s)
	}
	return NewReference(u.Host, u.Path, u.Fragment), nil
}

func (r Reference) WithoutFragment() Reference {
	r.Fragment = ""
	return r
}

func (r Reference) WithFragment(fragment string) Reference {
	r.Fragment = norm.NFC.String(fragment)
	return r
}

// AppendingPath returns a child reference; the fragment is dropped.
func (r Reference) AppendingPath(component string) Reference {
	return NewReference(r.BundleID, path.Join(r.Path, component), "")
}

// LastPathComponent returns the final path segment.
func (r Reference) LastPathComponent() string {
	return path.Base(r.Path)
}

// URL renders the reference as a doc:// URL.
func (r Reference) URL() string {
	u := url.URL{Scheme: "doc", Host: r.BundleID, Path: r.Path, Fragment: r.Fragment}
	return u.String()
}

func (r Reference) String() string {
	return r.URL()
}

func (r Reference) IsZero() bool {
	return r == Reference{}
}
