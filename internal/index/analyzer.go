package index

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// identifierAnalyzerName is the custom analyzer registered for the
// declaration/body/name fields: a regex tokenizer that splits identifiers
// into their constituent words, a length filter that drops tokens over 40
// characters, lowercasing, and an optional Snowball stemmer.
const identifierAnalyzerName = "identifier"

// identifierTokenizerName backs identifierAnalyzerName's splitting step.
const identifierTokenizerName = "identifier_regexp"

// identifierRegexp splits camelCase/PascalCase/snake_case identifiers into
// constituent word tokens. A run of capitals (SCREAMING_CASE) is split
// into single-letter tokens.
const identifierRegexp = `[a-z]+|[A-Z][a-z]*|[0-9]+|[^a-zA-Z0-9]+`

// supportedStemmingLanguages is the closed set of natural-language codes the
// index accepts for stemming.language.
var supportedStemmingLanguages = map[string]string{
	"english": "stemmer_en",
}

// SupportedStemmingLanguage reports whether lang is one of the closed set
// of stemming languages the index can configure.
func SupportedStemmingLanguage(lang string) bool {
	_, ok := supportedStemmingLanguages[lang]
	return ok
}

// buildMapping constructs the fixed document mapping and registers the
// identifier-splitting analyzer (with or without stemming) on the
// declaration, body and name fields. The extension field always uses
// bleve's built-in "keyword" analyzer for atomic (non-analyzed) indexing.
func buildMapping(stemmingEnabled bool, stemmingLanguage string) (*mapping.IndexMappingImpl, error) {
	im := bleve.NewIndexMapping()

	if err := im.AddCustomTokenizer(identifierTokenizerName, map[string]interface{}{
		"type":   "regexp",
		"regexp": identifierRegexp,
	}); err != nil {
		return nil, fmt.Errorf("register identifier tokenizer: %w", err)
	}

	filters := []interface{}{"to_lower", lengthFilterName}
	if err := im.AddCustomTokenFilter(lengthFilterName, map[string]interface{}{
		"type": "length",
		"min":  0.0,
		"max":  40.0,
	}); err != nil {
		return nil, fmt.Errorf("register length filter: %w", err)
	}

	if stemmingEnabled {
		stemmer, ok := supportedStemmingLanguages[stemmingLanguage]
		if !ok {
			return nil, fmt.Errorf("unsupported stemming language %q", stemmingLanguage)
		}
		filters = []interface{}{"to_lower", lengthFilterName, stemmer}
	}

	if err := im.AddCustomAnalyzer(identifierAnalyzerName, map[string]interface{}{
		"type":          "custom",
		"tokenizer":     identifierTokenizerName,
		"token_filters": filters,
	}); err != nil {
		return nil, fmt.Errorf("register identifier analyzer: %w", err)
	}

	identifierField := bleve.NewTextFieldMapping()
	identifierField.Analyzer = identifierAnalyzerName
	identifierField.Store = true
	identifierField.Index = true
	identifierField.IncludeTermVectors = true

	pathField := bleve.NewTextFieldMapping()
	pathField.Analyzer = "keyword"
	pathField.Store = true
	pathField.Index = true

	extensionField := bleve.NewTextFieldMapping()
	extensionField.Analyzer = "keyword"
	extensionField.Store = true
	extensionField.Index = true

	kindField := bleve.NewTextFieldMapping()
	kindField.Analyzer = "keyword"
	kindField.Store = true
	kindField.Index = true

	numericField := bleve.NewNumericFieldMapping()
	numericField.Store = true
	numericField.Index = false

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt(FieldPath, pathField)
	doc.AddFieldMappingsAt(FieldDeclaration, identifierField)
	doc.AddFieldMappingsAt(FieldBody, identifierField)
	doc.AddFieldMappingsAt(FieldName, identifierField)
	doc.AddFieldMappingsAt(FieldExtension, extensionField)
	doc.AddFieldMappingsAt(FieldKind, kindField)
	doc.AddFieldMappingsAt(FieldStartLine, numericField)
	doc.AddFieldMappingsAt(FieldEndLine, numericField)

	im.DefaultMapping = doc
	return im, nil
}

const lengthFilterName = "identifier_max_length"
