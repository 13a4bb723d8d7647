package lang

import (
	"fmt"
	"sync"

	"fortio.org/safecast"
)

// Registry owns the languages declared at runtime during one compilation
// session. It is append-only; entries are never freed.
type Registry struct {
	mu      sync.RWMutex
	unknown []Info // handle-knownCount -> info
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Intern returns the language with the given content, creating it if needed.
// Content equal to a well-known language returns that language.
func (r *Registry) Intern(name, id string, aliases []string, linkDisambiguationID string) Language {
	if linkDisambiguationID == "" {
		linkDisambiguationID = id
	}
	info := Info{
		Name:                 name,
		ID:                   id,
		IDAliases:            aliases,
		LinkDisambiguationID: linkDisambiguationID,
	}
	return r.intern(info)
}

func (r *Registry) intern(info Info) Language {
	info.IDAliases = normalizeAliases(info.IDAliases)
	for h := range knownCount {
		if knownInfos[h].equal(info) {
			return Language{h: h}
		}
	}

	r.mu.RLock()
	if h, ok := r.find(info); ok {
		r.mu.RUnlock()
		return Language{h: h, reg: r}
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	// повторная проверка под эксклюзивной блокировкой
	if h, ok := r.find(info); ok {
		return Language{h: h, reg: r}
	}
	h, err := safecast.Conv[uint8](int(knownCount) + len(r.unknown))
	if err != nil {
		panic(fmt.Errorf("lang: cannot intern %q: language handle space exhausted: %w", info.ID, err))
	}
	r.unknown = append(r.unknown, info)
	return Language{h: handle(h), reg: r}
}

// find must be called with r.mu held.
func (r *Registry) find(info Info) (handle, bool) {
	for i := range r.unknown {
		if r.unknown[i].equal(info) {
			return handle(int(knownCount) + i), true
		}
	}
	return 0, false
}

func (r *Registry) info(h handle) Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := int(h) - int(knownCount)
	if idx < 0 || idx >= len(r.unknown) {
		panic(fmt.Sprintf("lang: handle %d is not registered", h))
	}
	return r.unknown[idx]
}

// Len returns the number of interned (non well-known) languages.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.unknown)
}

// Resolve maps a language id from symbol data to a Language: well-known ids and
// aliases first, otherwise the id is interned with itself as display name.
func (r *Registry) Resolve(id string) Language {
	if l, ok := LookupID(id); ok {
		return l
	}
	return r.Intern(id, id, nil, "")
}

// WithName returns the language with l's content but a different name.
// The original handle is left untouched.
func (r *Registry) WithName(l Language, name string) Language {
	info := l.Info()
	info.Name = name
	return r.intern(info)
}

func (r *Registry) WithID(l Language, id string) Language {
	info := l.Info()
	info.ID = id
	return r.intern(info)
}

func (r *Registry) WithIDAliases(l Language, aliases []string) Language {
	info := l.Info()
	info.IDAliases = aliases
	return r.intern(info)
}

func (r *Registry) WithLinkDisambiguationID(l Language, id string) Language {
	info := l.Info()
	info.LinkDisambiguationID = id
	return r.intern(info)
}
