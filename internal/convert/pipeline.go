package convert

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"doccomp/internal/curation"
	"doccomp/internal/diag"
	"doccomp/internal/lang"
	"doccomp/internal/render"
	"doccomp/internal/symbol"
	"doccomp/internal/topic"
	"doccomp/internal/translate"
)

// Input is one symbol as delivered by the symbol loader.
type Input struct {
	Symbol *symbol.Symbol
	// DeclaredLanguages are languages the symbol graph names by string; they are
	// interned into the session registry and added to Symbol.Languages.
	DeclaredLanguages []lang.Info
	// LanguageIDs are bare interface-language ids ("swift", "occ", "rust");
	// well-known ids and aliases map to their language, others are interned.
	LanguageIDs []string
	// Parent is the precise identifier of the enclosing symbol; empty for
	// module-level symbols.
	Parent string
	// Topics is the symbol's authored topic list.
	Topics []curation.Link
}

type Options struct {
	BundleID string
	Module   string
	// Jobs limits parallel translation; 0 means runtime.NumCPU().
	Jobs        int
	Cache       *DiskCache
	Translators []translate.Translator
}

// Result holds the pages in input order.
type Result struct {
	Root      *topic.Node
	Pages     []*render.Page
	CacheHits int
}

var ErrNoModule = errors.New("convert: module name is required")

type Pipeline struct {
	session *Session
	opts    Options
}

func NewPipeline(session *Session, opts Options) *Pipeline {
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.Translators == nil {
		opts.Translators = translate.Default()
	}
	return &Pipeline{session: session, opts: opts}
}

// Run converts inputs. The graph is built and curated on the calling
// goroutine; translation then fans out to at most Jobs workers. Problems go
// to the session engine; the returned error is reserved for cancellation
// and cache I/O failures.
func (p *Pipeline) Run(ctx context.Context, inputs []Input) (*Result, error) {
	if p.opts.Module == "" {
		return nil, ErrNoModule
	}
	start := time.Now()

	root, refs, links := p.buildGraph(inputs)
	curator := &curation.Curator{Graph: p.session.Graph, Links: links, Engine: p.session.Engine}
	for i, in := range inputs {
		if len(in.Topics) > 0 {
			curator.Curate(refs[i], in.Topics)
		}
	}
	salt := linkSalt(inputs, refs)

	result := &Result{Root: root, Pages: make([]*render.Page, len(inputs))}
	var hits atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Jobs)
	for i := range inputs {
		in := inputs[i]
		ref := refs[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p.internLanguages(in)
			p.session.Engine.Emit(translate.Validate(in.Symbol, links)...)

			page, cached, err := p.translate(in.Symbol, ref, links, salt)
			if err != nil {
				return err
			}
			if cached {
				hits.Add(1)
			}
			result.Pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	result.CacheHits = int(hits.Load())

	p.session.Logger.Debug("conversion finished",
		"symbols", len(inputs),
		"cache_hits", result.CacheHits,
		"jobs", p.opts.Jobs,
		"duration", time.Since(start))
	return result, nil
}

// buildGraph adds the module node and one node per input, then wires each
// symbol under its parent (or the module).
func (p *Pipeline) buildGraph(inputs []Input) (*topic.Node, []topic.Reference, *linkIndex) {
	g := p.session.Graph
	links := newLinkIndex(g)

	rootRef := topic.NewReference(p.opts.BundleID, "/documentation/"+p.opts.Module, "")
	root := topic.NewNode(rootRef, topic.KindModule, nil, p.opts.Module)
	g.AddNode(root)
	links.add("", rootRef)

	refs := make([]topic.Reference, len(inputs))
	nodes := make([]*topic.Node, len(inputs))
	parents := make([]*topic.Node, len(inputs))
	for i, in := range inputs {
		sym := in.Symbol
		path := sym.Path
		if len(path) == 0 {
			path = []string{sym.Title}
		}
		ref := rootRef.AppendingPath(strings.Join(path, "/"))
		var src topic.ContentLocation = topic.ExternalLocation{}
		if sym.DocSource != "" {
			src = topic.FileLocation{URL: sym.DocSource}
		}
		nodes[i] = topic.NewNode(ref, topic.KindSymbol, src, sym.Title)
		g.AddNode(nodes[i])
		refs[i] = ref
		links.add(sym.PreciseIdentifier, ref)
	}

	for i, in := range inputs {
		parent := root
		if in.Parent != "" {
			if pref, ok := links.ResolveSymbol(in.Parent); ok {
				if pn, ok := g.Node(pref); ok {
					parent = pn
				}
			}
		}
		if parent.Reference == refs[i] {
			continue
		}
		parents[i] = parent
		g.AddEdge(parent, nodes[i])
	}
	p.breakParentCycles(inputs, root, nodes, parents)
	return root, refs, links
}

// breakParentCycles detaches symbols whose Parent chain loops back to them and
// hangs them under the module instead. Each detached symbol gets a problem.
func (p *Pipeline) breakParentCycles(inputs []Input, root *topic.Node, nodes, parents []*topic.Node) {
	g := p.session.Graph
	cyclic := g.Cycles()
	if len(cyclic) == 0 {
		return
	}
	inCycle := make(map[topic.Reference]bool, len(cyclic))
	for _, ref := range cyclic {
		inCycle[ref] = true
	}
	for i, n := range nodes {
		parent := parents[i]
		if parent == nil || !inCycle[n.Reference] || !g.Reachable(n.Reference, parent.Reference) {
			continue
		}
		g.RemoveEdge(parent, n)
		g.AddEdge(root, n)

		sym := inputs[i].Symbol
		d := diag.New(diag.SevWarning, diag.IDCyclicReference,
			fmt.Sprintf("%q is its own ancestor through its parent %q", sym.Title, parent.Title)).
			WithExplanation("The symbol is placed directly under the module")
		d.Source = sym.DocSource
		p.session.Engine.Emit(diag.NewProblem(d))
	}
}

func (p *Pipeline) internLanguages(in Input) {
	add := func(l lang.Language) {
		if !slices.ContainsFunc(in.Symbol.Languages, l.Equal) {
			in.Symbol.Languages = append(in.Symbol.Languages, l)
		}
	}
	for _, info := range in.DeclaredLanguages {
		add(p.session.Languages.Intern(info.Name, info.ID, info.IDAliases, info.LinkDisambiguationID))
	}
	for _, id := range in.LanguageIDs {
		add(p.session.Languages.Resolve(id))
	}
	lang.Sort(in.Symbol.Languages)
}

func (p *Pipeline) translate(sym *symbol.Symbol, ref topic.Reference, links *linkIndex, salt []byte) (*render.Page, bool, error) {
	identifier := ref.URL()

	var key Digest
	if p.opts.Cache != nil {
		var err error
		key, err = Fingerprint(sym, identifier, salt)
		if err != nil {
			return nil, false, err
		}
		var payload DiskPayload
		ok, err := p.opts.Cache.Get(key, &payload)
		if err != nil {
			p.session.Logger.Warn("render cache read failed", "symbol", sym.PreciseIdentifier, "err", err)
		} else if ok {
			page, err := payloadToPage(&payload)
			if err == nil {
				return page, true, nil
			}
			p.session.Logger.Warn("render cache entry unusable", "symbol", sym.PreciseIdentifier, "err", err)
		}
	}

	ctx := translate.NewContext(links)
	page := translate.Page(sym, identifier, ctx, p.opts.Translators)

	if p.opts.Cache != nil {
		payload, err := pageToPayload(page)
		if err != nil {
			return nil, false, err
		}
		if err := p.opts.Cache.Put(key, payload); err != nil {
			return nil, false, fmt.Errorf("render cache write for %s: %w", sym.PreciseIdentifier, err)
		}
	}
	return page, false, nil
}

// linkSalt summarises every link target of the run; a page's cache entry is
// only valid while the same targets exist.
func linkSalt(inputs []Input, refs []topic.Reference) []byte {
	entries := make([]string, len(inputs))
	for i, in := range inputs {
		entries[i] = in.Symbol.PreciseIdentifier + "=" + refs[i].URL()
	}
	slices.Sort(entries)
	sum := sha256.Sum256([]byte(strings.Join(entries, "\n")))
	return sum[:]
}
