package lang

import (
	"encoding/json"
	"slices"
	"strings"
)

type handle uint8

// Info is the content record behind a language handle.
type Info struct {
	Name                 string
	ID                   string
	IDAliases            []string
	LinkDisambiguationID string
}

// equal compares content; aliases are a set, so order and repeats are ignored.
func (i Info) equal(other Info) bool {
	return i.Name == other.Name &&
		i.ID == other.ID &&
		i.LinkDisambiguationID == other.LinkDisambiguationID &&
		slices.Equal(normalizeAliases(i.IDAliases), normalizeAliases(other.IDAliases))
}

// normalizeAliases returns a sorted copy of aliases without duplicates.
func normalizeAliases(aliases []string) []string {
	if len(aliases) == 0 {
		return nil
	}
	out := slices.Clone(aliases)
	slices.Sort(out)
	return slices.Compact(out)
}

// Language is a tagged handle: either a well-known language (reg == nil) or an
// entry interned into a session registry.
type Language struct {
	h   handle
	reg *Registry
}

const (
	swiftHandle handle = iota
	objectiveCHandle
	dataHandle
	javaScriptHandle
	metalHandle

	knownCount
)

var knownInfos = [knownCount]Info{
	swiftHandle:      {Name: "Swift", ID: "swift", LinkDisambiguationID: "swift"},
	objectiveCHandle: {Name: "Objective-C", ID: "occ", IDAliases: []string{"c", "c++", "objective-c"}, LinkDisambiguationID: "objc"},
	dataHandle:       {Name: "Data", ID: "data", LinkDisambiguationID: "data"},
	javaScriptHandle: {Name: "JavaScript", ID: "javascript", LinkDisambiguationID: "javascript"},
	metalHandle:      {Name: "Metal", ID: "metal", LinkDisambiguationID: "metal"},
}

var (
	Swift      = Language{h: swiftHandle}
	ObjectiveC = Language{h: objectiveCHandle}
	Data       = Language{h: dataHandle}
	JavaScript = Language{h: javaScriptHandle}
	Metal      = Language{h: metalHandle}
)

// Known returns the well-known languages in handle order.
func Known() []Language {
	return []Language{Swift, ObjectiveC, Data, JavaScript, Metal}
}

// Lookup finds a well-known language by display name, case-insensitively.
func Lookup(name string) (Language, bool) {
	for h := range knownCount {
		if strings.EqualFold(knownInfos[h].Name, name) {
			return Language{h: h}, true
		}
	}
	return Language{}, false
}

// LookupID finds a well-known language by id or id alias, case-insensitively.
func LookupID(id string) (Language, bool) {
	for h := range knownCount {
		info := &knownInfos[h]
		if strings.EqualFold(info.ID, id) {
			return Language{h: h}, true
		}
		for _, alias := range info.IDAliases {
			if strings.EqualFold(alias, id) {
				return Language{h: h}, true
			}
		}
	}
	return Language{}, false
}

// IsKnown reports whether l is one of the pre-registered languages.
func (l Language) IsKnown() bool {
	return l.h < knownCount
}

func (l Language) info() Info {
	if l.h < knownCount {
		return knownInfos[l.h]
	}
	if l.reg == nil {
		panic("lang: interned language without registry")
	}
	return l.reg.info(l.h)
}

// Info returns a copy of the content record.
func (l Language) Info() Info {
	info := l.info()
	info.IDAliases = slices.Clone(info.IDAliases)
	return info
}

func (l Language) Name() string { return l.info().Name }

func (l Language) ID() string { return l.info().ID }

func (l Language) IDAliases() []string { return slices.Clone(l.info().IDAliases) }

// LinkDisambiguationID is the suffix used to disambiguate links to symbols
// that exist in several languages.
func (l Language) LinkDisambiguationID() string { return l.info().LinkDisambiguationID }

// Equal reports whether both values share a handle or carry the same content.
func (l Language) Equal(other Language) bool {
	if l.h == other.h && l.reg == other.reg {
		return true
	}
	return l.info().equal(other.info())
}

// Compare orders languages: Swift first, then well-known languages by handle,
// then everything else by id.
func Compare(a, b Language) int {
	switch {
	case a.Equal(b):
		return 0
	case a.h == swiftHandle && a.IsKnown():
		return -1
	case b.h == swiftHandle && b.IsKnown():
		return 1
	case a.IsKnown() && b.IsKnown():
		return int(a.h) - int(b.h)
	}
	return strings.Compare(a.ID(), b.ID())
}

// Sort sorts languages in place using Compare.
func Sort(langs []Language) {
	slices.SortStableFunc(langs, Compare)
}

func (l Language) String() string {
	return l.Name()
}

type languageJSON struct {
	Name                 string   `json:"name"`
	ID                   string   `json:"id"`
	IDAliases            []string `json:"idAliases,omitempty"`
	LinkDisambiguationID string   `json:"linkDisambiguationID,omitempty"`
}

func (l Language) MarshalJSON() ([]byte, error) {
	info := l.info()
	return json.Marshal(languageJSON{
		Name:                 info.Name,
		ID:                   info.ID,
		IDAliases:            info.IDAliases,
		LinkDisambiguationID: info.LinkDisambiguationID,
	})
}
