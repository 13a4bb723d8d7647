package translate

import (
	"net/http"
	"strings"

	"doccomp/internal/lang"
	"doccomp/internal/render"
	"doccomp/internal/symbol"
)

// HTTPEndpoint renders the request line of an HTTP endpoint symbol.
type HTTPEndpoint struct{}

func (HTTPEndpoint) Translate(sym *symbol.Symbol, _ *Context) *render.VariantCollection[render.Section] {
	return variants(sym.HTTPEndpoint, func(_ lang.Language, e symbol.Endpoint) (render.Section, bool) {
		if e.Method == "" && e.Path == "" {
			return nil, false
		}
		tokens := []render.EndpointToken{
			{Kind: render.EndpointMethod, Text: strings.ToUpper(e.Method)},
			{Kind: render.EndpointText, Text: " "},
		}
		base := e.BaseURL
		switch {
		case strings.HasPrefix(e.Path, "/"):
			base = strings.TrimSuffix(base, "/")
		case base != "" && e.Path != "" && !strings.HasSuffix(base, "/"):
			base += "/"
		}
		if base != "" {
			tokens = append(tokens, render.EndpointToken{Kind: render.EndpointBaseURL, Text: base})
		}
		tokens = append(tokens, pathTokens(e.Path)...)
		return &render.RESTEndpointSection{Title: "URL", Tokens: tokens}, true
	})
}

// pathTokens splits `/users/{id}/posts` into path and `{id}` parameter tokens.
func pathTokens(path string) []render.EndpointToken {
	var out []render.EndpointToken
	for path != "" {
		open := strings.IndexByte(path, '{')
		if open < 0 {
			out = append(out, render.EndpointToken{Kind: render.EndpointPath, Text: path})
			break
		}
		closing := strings.IndexByte(path[open:], '}')
		if closing < 0 {
			out = append(out, render.EndpointToken{Kind: render.EndpointPath, Text: path})
			break
		}
		if open > 0 {
			out = append(out, render.EndpointToken{Kind: render.EndpointPath, Text: path[:open]})
		}
		out = append(out, render.EndpointToken{Kind: render.EndpointParameter, Text: path[open : open+closing+1]})
		path = path[open+closing+1:]
	}
	return out
}

// HTTPBody renders the request body and its body parameters.
type HTTPBody struct{}

func (HTTPBody) Translate(sym *symbol.Symbol, ctx *Context) *render.VariantCollection[render.Section] {
	return variants(sym.HTTPBody, func(_ lang.Language, b symbol.HTTPBody) (render.Section, bool) {
		if b.MediaType == "" && len(b.Type) == 0 && len(b.Contents) == 0 && len(b.Parameters) == 0 {
			return nil, false
		}
		section := &render.RESTBodySection{
			Title:             "HTTP Body",
			MimeType:          b.MediaType,
			BodyContentType:   ctx.tokens(b.Type),
			Content:           ctx.content(b.Contents),
			ParameterEncoding: b.ParameterEncoding,
		}
		for _, p := range dedupParameters(b.Parameters) {
			section.Parameters = append(section.Parameters, ctx.httpProperty(p))
		}
		return section, true
	})
}

// HTTPParameters renders the parameters carried in one place of the request.
type HTTPParameters struct {
	Source symbol.HTTPParameterSource
}

var parameterTitles = map[symbol.HTTPParameterSource]string{
	symbol.ParameterPath:   "Path Parameters",
	symbol.ParameterQuery:  "Query Parameters",
	symbol.ParameterHeader: "Header Parameters",
	symbol.ParameterBody:   "Body Parameters",
}

func (t HTTPParameters) Translate(sym *symbol.Symbol, ctx *Context) *render.VariantCollection[render.Section] {
	return variants(sym.HTTPParameters, func(_ lang.Language, params []symbol.HTTPParameter) (render.Section, bool) {
		var items []render.Property
		for _, p := range dedupParameters(params) {
			if p.Source != t.Source {
				continue
			}
			items = append(items, ctx.httpProperty(p))
		}
		if len(items) == 0 {
			return nil, false
		}
		return &render.RESTParametersSection{
			Title:  parameterTitles[t.Source],
			Items:  items,
			Source: render.ParameterSource(t.Source),
		}, true
	})
}

func dedupParameters(params []symbol.HTTPParameter) []symbol.HTTPParameter {
	type key struct {
		name   string
		source symbol.HTTPParameterSource
	}
	seen := make(map[key]struct{}, len(params))
	out := make([]symbol.HTTPParameter, 0, len(params))
	for _, p := range params {
		k := key{p.Name, p.Source}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}

func (ctx *Context) httpProperty(p symbol.HTTPParameter) render.Property {
	return render.Property{
		Name:       p.Name,
		Type:       ctx.tokens(p.Type),
		Content:    ctx.content(p.Contents),
		Attributes: ctx.attributes(p.Attributes, false),
		Required:   p.Required,
		Deprecated: p.Deprecated,
	}
}

// HTTPResponses renders the documented response status codes. Missing reason
// phrases are filled in from the status code; repeated codes keep the first entry.
type HTTPResponses struct{}

func (HTTPResponses) Translate(sym *symbol.Symbol, ctx *Context) *render.VariantCollection[render.Section] {
	return variants(sym.HTTPResponses, func(_ lang.Language, responses []symbol.HTTPResponse) (render.Section, bool) {
		if len(responses) == 0 {
			return nil, false
		}
		seen := make(map[int]struct{}, len(responses))
		section := &render.RESTResponseSection{Title: "Response Codes"}
		for _, r := range responses {
			if _, dup := seen[r.StatusCode]; dup {
				continue
			}
			seen[r.StatusCode] = struct{}{}
			reason := r.Reason
			if reason == "" {
				reason = http.StatusText(r.StatusCode)
			}
			section.Items = append(section.Items, render.RESTResponse{
				Status:   r.StatusCode,
				Reason:   reason,
				MimeType: r.MediaType,
				Type:     ctx.tokens(r.Type),
				Content:  ctx.content(r.Contents),
			})
		}
		return section, true
	})
}
