package render

import (
	"encoding/json"
	"fmt"
)

// SectionKind names a page section.
type SectionKind string

const (
	KindDeclarations   SectionKind = "declarations"
	KindParameters     SectionKind = "parameters"
	KindRESTEndpoint   SectionKind = "restEndpoint"
	KindRESTBody       SectionKind = "restBody"
	KindRESTParameters SectionKind = "restParameters"
	KindRESTResponses  SectionKind = "restResponses"
	KindProperties     SectionKind = "properties"
	KindAttributes     SectionKind = "attributes"
	KindPossibleValues SectionKind = "possibleValues"
)

// Section is one typed fragment of a rendered page.
type Section interface {
	Kind() SectionKind
}

// NewSection allocates an empty section of the given kind, for decoding.
func NewSection(kind SectionKind) (Section, error) {
	switch kind {
	case KindDeclarations:
		return &DeclarationsSection{}, nil
	case KindParameters:
		return &ParametersSection{}, nil
	case KindRESTEndpoint:
		return &RESTEndpointSection{}, nil
	case KindRESTBody:
		return &RESTBodySection{}, nil
	case KindRESTParameters:
		return &RESTParametersSection{}, nil
	case KindRESTResponses:
		return &RESTResponseSection{}, nil
	case KindProperties:
		return &PropertiesSection{}, nil
	case KindAttributes:
		return &AttributesSection{}, nil
	case KindPossibleValues:
		return &PossibleValuesSection{}, nil
	}
	return nil, fmt.Errorf("unknown section kind %q", kind)
}

// marshalSection prepends the "kind" discriminator to body's JSON object.
func marshalSection(kind SectionKind, body any) ([]byte, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	head, err := json.Marshal(kind)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(raw)+len(head)+10)
	out = append(out, `{"kind":`...)
	out = append(out, head...)
	if len(raw) > 2 {
		out = append(out, ',')
		out = append(out, raw[1:]...)
	} else {
		out = append(out, '}')
	}
	return out, nil
}

// Declarations

type OtherDeclaration struct {
	Tokens     []DeclarationToken `json:"tokens" msgpack:"tokens"`
	Identifier string             `json:"identifier" msgpack:"identifier"`
}

// OtherDeclarations lists a symbol's overloads; DisplayIndex is where the
// symbol itself sits in the overload group.
type OtherDeclarations struct {
	Declarations []OtherDeclaration `json:"declarations" msgpack:"declarations"`
	DisplayIndex int                `json:"displayIndex" msgpack:"displayIndex"`
}

type Declaration struct {
	Tokens            []DeclarationToken `json:"tokens" msgpack:"tokens"`
	Platforms         []string           `json:"platforms,omitempty" msgpack:"platforms,omitempty"`
	Languages         []string           `json:"languages,omitempty" msgpack:"languages,omitempty"`
	OtherDeclarations *OtherDeclarations `json:"otherDeclarations,omitempty" msgpack:"otherDeclarations,omitempty"`
}

type DeclarationsSection struct {
	Declarations []Declaration `json:"declarations" msgpack:"declarations"`
}

// Parameters

type Parameter struct {
	Name    string         `json:"name" msgpack:"name"`
	Content []BlockContent `json:"content" msgpack:"content"`
}

type ParametersSection struct {
	Parameters []Parameter `json:"parameters" msgpack:"parameters"`
}

// REST

type EndpointTokenKind string

const (
	EndpointMethod    EndpointTokenKind = "method"
	EndpointBaseURL   EndpointTokenKind = "baseURL"
	EndpointPath      EndpointTokenKind = "path"
	EndpointParameter EndpointTokenKind = "parameter"
	EndpointText      EndpointTokenKind = "text"
)

type EndpointToken struct {
	Kind EndpointTokenKind `json:"kind" msgpack:"kind"`
	Text string            `json:"text" msgpack:"text"`
}

type RESTEndpointSection struct {
	Title  string          `json:"title" msgpack:"title"`
	Tokens []EndpointToken `json:"tokens" msgpack:"tokens"`
}

// Property is one documented key, field or HTTP parameter.
type Property struct {
	Name       string             `json:"name" msgpack:"name"`
	Type       []DeclarationToken `json:"type" msgpack:"type"`
	Content    []BlockContent     `json:"content,omitempty" msgpack:"content,omitempty"`
	Attributes []Attribute        `json:"attributes,omitempty" msgpack:"attributes,omitempty"`
	MimeType   string             `json:"mimeType,omitempty" msgpack:"mimeType,omitempty"`
	Required   bool               `json:"required,omitempty" msgpack:"required,omitempty"`
	Deprecated bool               `json:"deprecated,omitempty" msgpack:"deprecated,omitempty"`
	ReadOnly   bool               `json:"readOnly,omitempty" msgpack:"readOnly,omitempty"`
}

type RESTBodySection struct {
	Title             string             `json:"title" msgpack:"title"`
	MimeType          string             `json:"mimeType" msgpack:"mimeType"`
	BodyContentType   []DeclarationToken `json:"bodyContentType" msgpack:"bodyContentType"`
	Content           []BlockContent     `json:"content,omitempty" msgpack:"content,omitempty"`
	Parameters        []Property         `json:"parameters,omitempty" msgpack:"parameters,omitempty"`
	ParameterEncoding string             `json:"parameterEncoding,omitempty" msgpack:"parameterEncoding,omitempty"`
}

// ParameterSource says where an HTTP parameter is carried.
type ParameterSource string

const (
	SourcePath   ParameterSource = "path"
	SourceQuery  ParameterSource = "query"
	SourceHeader ParameterSource = "header"
	SourceBody   ParameterSource = "body"
)

type RESTParametersSection struct {
	Title  string          `json:"title" msgpack:"title"`
	Items  []Property      `json:"items" msgpack:"items"`
	Source ParameterSource `json:"source" msgpack:"source"`
}

type RESTResponse struct {
	Status   int                `json:"status" msgpack:"status"`
	Reason   string             `json:"reason,omitempty" msgpack:"reason,omitempty"`
	MimeType string             `json:"mimeType,omitempty" msgpack:"mimeType,omitempty"`
	Type     []DeclarationToken `json:"type" msgpack:"type"`
	Content  []BlockContent     `json:"content,omitempty" msgpack:"content,omitempty"`
}

type RESTResponseSection struct {
	Title string         `json:"title" msgpack:"title"`
	Items []RESTResponse `json:"items" msgpack:"items"`
}

// Properties, attributes and values

type PropertiesSection struct {
	Title string     `json:"title" msgpack:"title"`
	Items []Property `json:"items" msgpack:"items"`
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

type Attribute struct {
	Kind   AttributeKind        `json:"kind" msgpack:"kind"`
	Title  string               `json:"title" msgpack:"title"`
	Value  string               `json:"value,omitempty" msgpack:"value,omitempty"`
	Values []string             `json:"values,omitempty" msgpack:"values,omitempty"`
	Types  [][]DeclarationToken `json:"types,omitempty" msgpack:"types,omitempty"`
}

type AttributesSection struct {
	Title      string      `json:"title" msgpack:"title"`
	Attributes []Attribute `json:"attributes" msgpack:"attributes"`
}

type PossibleValue struct {
	Value   string         `json:"value" msgpack:"value"`
	Content []BlockContent `json:"content,omitempty" msgpack:"content,omitempty"`
}

type PossibleValuesSection struct {
	Title  string          `json:"title" msgpack:"title"`
	Values []PossibleValue `json:"values" msgpack:"values"`
}

func (*DeclarationsSection) Kind() SectionKind   { return KindDeclarations }
func (*ParametersSection) Kind() SectionKind     { return KindParameters }
func (*RESTEndpointSection) Kind() SectionKind   { return KindRESTEndpoint }
func (*RESTBodySection) Kind() SectionKind       { return KindRESTBody }
func (*RESTParametersSection) Kind() SectionKind { return KindRESTParameters }
func (*RESTResponseSection) Kind() SectionKind   { return KindRESTResponses }
func (*PropertiesSection) Kind() SectionKind     { return KindProperties }
func (*AttributesSection) Kind() SectionKind     { return KindAttributes }
func (*PossibleValuesSection) Kind() SectionKind { return KindPossibleValues }

func (s *DeclarationsSection) MarshalJSON() ([]byte, error) {
	type plain DeclarationsSection
	return marshalSection(s.Kind(), (*plain)(s))
}

func (s *ParametersSection) MarshalJSON() ([]byte, error) {
	type plain ParametersSection
	return marshalSection(s.Kind(), (*plain)(s))
}

func (s *RESTEndpointSection) MarshalJSON() ([]byte, error) {
	type plain RESTEndpointSection
	return marshalSection(s.Kind(), (*plain)(s))
}

func (s *RESTBodySection) MarshalJSON() ([]byte, error) {
	type plain RESTBodySection
	return marshalSection(s.Kind(), (*plain)(s))
}

func (s *RESTParametersSection) MarshalJSON() ([]byte, error) {
	type plain RESTParametersSection
	return marshalSection(s.Kind(), (*plain)(s))
}

func (s *RESTResponseSection) MarshalJSON() ([]byte, error) {
	type plain RESTResponseSection
	return marshalSection(s.Kind(), (*plain)(s))
}

func (s *PropertiesSection) MarshalJSON() ([]byte, error) {
	type plain PropertiesSection
	return marshalSection(s.Kind(), (*plain)(s))
}

func (s *AttributesSection) MarshalJSON() ([]byte, error) {
	type plain AttributesSection
	return marshalSection(s.Kind(), (*plain)(s))
}

func (s *PossibleValuesSection) MarshalJSON() ([]byte, error) {
	type plain PossibleValuesSection
	return marshalSection(s.Kind(), (*plain)(s))
}
