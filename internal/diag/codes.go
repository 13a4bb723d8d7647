package diag

// Diagnostic identifiers. They are part of the public surface: users refer to
// them in `error_ids` / `warning_ids` configuration, so never rename one.
const (
	// Curation
	IDUnresolvedTopicReference = "org.doccomp.UnresolvedTopicReference"
	IDDuplicateCuration        = "org.doccomp.DuplicateCuration"
	IDCyclicReference          = "org.doccomp.CyclicReference"
	IDCuratedIntoSelf          = "org.doccomp.CuratedIntoSelf"

	// Directives
	IDDirectiveDuplicateArgument       = "org.doccomp.Directive.DuplicateArgument"
	IDDirectiveUnknownArgument         = "org.doccomp.Directive.UnknownArgument"
	IDDirectiveMissingRequiredArgument = "org.doccomp.Directive.MissingRequiredArgument"
	IDDirectiveInvalidArgumentValue    = "org.doccomp.Directive.InvalidArgumentValue"

	// Symbol documentation
	IDParameterNotFound      = "org.doccomp.DocumentedParameterNotFound"
	IDMissingParameterDoc    = "org.doccomp.MissingParameterDocumentation"
	IDDuplicateParameterDoc  = "org.doccomp.DuplicateParameterDocumentation"
	IDUnresolvedSymbolLink   = "org.doccomp.UnresolvedSymbolLink"
	IDDuplicateHTTPResponse  = "org.doccomp.HTTP.DuplicateResponse"
	IDDuplicatePossibleValue = "org.doccomp.DuplicatePossibleValue"
	IDUnknownPossibleValue   = "org.doccomp.UnknownPossibleValue"
)

var descriptions = map[string]string{
	IDUnresolvedTopicReference:         "Topic reference could not be resolved",
	IDDuplicateCuration:                "Topic is curated more than once under the same parent",
	IDCyclicReference:                  "Curation would create a cycle in the topic hierarchy",
	IDCuratedIntoSelf:                  "Topic is curated under itself",
	IDDirectiveDuplicateArgument:       "Directive argument is specified more than once",
	IDDirectiveUnknownArgument:         "Directive does not accept this argument",
	IDDirectiveMissingRequiredArgument: "Directive is missing a required argument",
	IDDirectiveInvalidArgumentValue:    "Directive argument value is not allowed",
	IDParameterNotFound:                "Documented parameter is not in the declaration",
	IDMissingParameterDoc:              "Parameter is not documented",
	IDDuplicateParameterDoc:            "Parameter is documented more than once",
	IDUnresolvedSymbolLink:             "Symbol link could not be resolved",
	IDDuplicateHTTPResponse:            "HTTP response status is documented more than once",
	IDDuplicatePossibleValue:           "Possible value is documented more than once",
	IDUnknownPossibleValue:             "Documented value is not one of the allowed values",
}

// Describe returns a one-line description of a known identifier.
func Describe(id string) (string, bool) {
	d, ok := descriptions[id]
	return d, ok
}
