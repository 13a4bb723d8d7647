// Package symbol is the typed input record for one documented symbol: its
// declaration fragments and the documentation parts section translators map
// over. The format the record is loaded from is not this package's concern.
package symbol

import (
	"doccomp/internal/lang"
	"doccomp/internal/markup"
	"doccomp/internal/source"
)

// FragmentKind mirrors the declaration token kinds of the symbol graph format.
type FragmentKind string

const (
	FragmentKeyword          FragmentKind = "keyword"
	FragmentAttribute        FragmentKind = "attribute"
	FragmentNumber           FragmentKind = "number"
	FragmentString           FragmentKind = "string"
	FragmentIdentifier       FragmentKind = "identifier"
	FragmentTypeIdentifier   FragmentKind = "typeIdentifier"
	FragmentGenericParameter FragmentKind = "genericParameter"
	FragmentInternalParam    FragmentKind = "internalParam"
	FragmentExternalParam    FragmentKind = "externalParam"
	FragmentLabel            FragmentKind = "label"
	FragmentText             FragmentKind = "text"
)

type Fragment struct {
	Kind              FragmentKind `json:"kind"`
	Spelling          string       `json:"spelling"`
	PreciseIdentifier string       `json:"preciseIdentifier,omitempty"`
}

// Declaration is a declaration as seen on a set of platforms.
type Declaration struct {
	Platforms []string   `json:"platforms,omitempty"`
	Fragments []Fragment `json:"fragments"`
}

// Overload is another member of the symbol's overload group.
type Overload struct {
	PreciseIdentifier string     `json:"preciseIdentifier"`
	Fragments         []Fragment `json:"fragments"`
}

// OverloadGroup lists the other overloads and where this symbol sits among them.
type OverloadGroup struct {
	Overloads    []Overload `json:"overloads"`
	DisplayIndex int        `json:"displayIndex"`
}

// DocumentedParameter is a `- Parameter name:` entry from the doc comment.
type DocumentedParameter struct {
	Name     string        `json:"name"`
	Contents []markup.Node `json:"contents,omitempty"`
	Range    *source.Range `json:"range,omitempty"`
}

// Parameters pairs documented parameters with the signature's parameter names.
type Parameters struct {
	Documented []DocumentedParameter `json:"documented"`
	// Signature is nil when the symbol has no function signature.
	Signature []string `json:"signature,omitempty"`
}

type Endpoint struct {
	Method     string `json:"method"`
	BaseURL    string `json:"baseURL"`
	SandboxURL string `json:"sandboxURL,omitempty"`
	Path       string `json:"path"`
}

type HTTPParameterSource string

const (
	ParameterPath   HTTPParameterSource = "path"
	ParameterQuery  HTTPParameterSource = "query"
	ParameterHeader HTTPParameterSource = "header"
	ParameterBody   HTTPParameterSource = "body"
)

type HTTPParameter struct {
	Name       string              `json:"name"`
	Source     HTTPParameterSource `json:"source"`
	Required   bool                `json:"required,omitempty"`
	Deprecated bool                `json:"deprecated,omitempty"`
	Type       []Fragment          `json:"type,omitempty"`
	Contents   []markup.Node       `json:"contents,omitempty"`
	Attributes []Attribute         `json:"attributes,omitempty"`
	Range      *source.Range       `json:"range,omitempty"`
}

type HTTPBody struct {
	MediaType         string          `json:"mediaType"`
	Type              []Fragment      `json:"type,omitempty"`
	Contents          []markup.Node   `json:"contents,omitempty"`
	Parameters        []HTTPParameter `json:"parameters,omitempty"`
	ParameterEncoding string          `json:"parameterEncoding,omitempty"`
}

type HTTPResponse struct {
	StatusCode int           `json:"statusCode"`
	Reason     string        `json:"reason,omitempty"`
	MediaType  string        `json:"mediaType,omitempty"`
	Type       []Fragment    `json:"type,omitempty"`
	Contents   []markup.Node `json:"contents,omitempty"`
	Range      *source.Range `json:"range,omitempty"`
}

type DictionaryKey struct {
	Name       string        `json:"name"`
	Required   bool          `json:"required,omitempty"`
	Deprecated bool          `json:"deprecated,omitempty"`
	ReadOnly   bool          `json:"readOnly,omitempty"`
	Type       []Fragment    `json:"type,omitempty"`
	Contents   []markup.Node `json:"contents,omitempty"`
	Attributes []Attribute   `json:"attributes,omitempty"`
}

type AttributeKind string

const (
	AttributeDefault          AttributeKind = "default"
	AttributeMinimum          AttributeKind = "minimum"
	AttributeMaximum          AttributeKind = "maximum"
	AttributeMinimumExclusive AttributeKind = "minimumExclusive"
	AttributeMaximumExclusive AttributeKind = "maximumExclusive"
	AttributeAllowedValues    AttributeKind = "allowedValues"
	AttributeAllowedTypes     AttributeKind = "allowedTypes"
)

// Attribute is a constraint from the symbol data (min/max/default/allowed values).
type Attribute struct {
	Kind   AttributeKind `json:"kind"`
	Value  string        `json:"value,omitempty"`
	Values []string      `json:"values,omitempty"`
	Types  [][]Fragment  `json:"types,omitempty"`
}

// PossibleValue is a `- PossibleValue name:` entry from the doc comment.
type PossibleValue struct {
	Value    string        `json:"value"`
	Contents []markup.Node `json:"contents,omitempty"`
	Range    *source.Range `json:"range,omitempty"`
}

type Availability struct {
	Platform   string `json:"platform"`
	Introduced string `json:"introduced,omitempty"`
	Deprecated string `json:"deprecated,omitempty"`
}

// Symbol is one documented symbol with all per-language documentation parts.
type Symbol struct {
	PreciseIdentifier string          `json:"preciseIdentifier"`
	Title             string          `json:"title"`
	Kind              string          `json:"kind"`
	Path              []string        `json:"path"`
	Languages         []lang.Language `json:"languages"`
	// DocSource is the file the doc comment came from; empty when undocumented.
	DocSource    string         `json:"docSource,omitempty"`
	Availability []Availability `json:"availability,omitempty"`

	Declarations   Variants[[]Declaration]   `json:"declarations"`
	Overloads      Variants[OverloadGroup]   `json:"overloads"`
	Parameters     Variants[Parameters]      `json:"parameters"`
	HTTPEndpoint   Variants[Endpoint]        `json:"httpEndpoint"`
	HTTPBody       Variants[HTTPBody]        `json:"httpBody"`
	HTTPParameters Variants[[]HTTPParameter] `json:"httpParameters"`
	HTTPResponses  Variants[[]HTTPResponse]  `json:"httpResponses"`
	DictionaryKeys Variants[[]DictionaryKey] `json:"dictionaryKeys"`
	Attributes     Variants[[]Attribute]     `json:"attributes"`
	PossibleValues Variants[[]PossibleValue] `json:"possibleValues"`
}
