package store

import (
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/registry"

	shebeerrors "github.com/shebe-oss/shebe/internal/errors"
)

const (
	// contentAnalyzerName is the custom analyzer for the content field:
	// camelCase/snake_case-aware tokenization over chunk text.
	contentAnalyzerName = "shebe_content"
	// pathAnalyzerName is the custom analyzer for file_path: splits on
	// path separators in addition to identifier boundaries so "internal/
	// user_service.go" yields "internal", "user", "service", "userservice",
	// "go".
	pathAnalyzerName = "shebe_path"

	contentTokenizerName = "shebe_content_tokenizer"
	pathTokenizerName    = "shebe_path_tokenizer"
)

func init() {
	_ = registry.RegisterTokenizer(contentTokenizerName, newContentTokenizer)
	_ = registry.RegisterTokenizer(pathTokenizerName, newPathTokenizer)
}

// buildIndexMapping constructs the Bleve mapping implementing the document
// schema: file_path tokenized+stored, content tokenized+stored,
// chunk_index indexed+stored, byte_start/byte_end stored only.
func buildIndexMapping() (mapping.IndexMapping, error) {
	im := bleve.NewIndexMapping()

	if err := im.AddCustomAnalyzer(contentAnalyzerName, map[string]interface{}{
		"type":      custom.Name,
		"tokenizer": contentTokenizerName,
	}); err != nil {
		return nil, shebeerrors.Wrap(shebeerrors.Internal, err)
	}
	if err := im.AddCustomAnalyzer(pathAnalyzerName, map[string]interface{}{
		"type":      custom.Name,
		"tokenizer": pathTokenizerName,
	}); err != nil {
		return nil, shebeerrors.Wrap(shebeerrors.Internal, err)
	}
	im.DefaultAnalyzer = contentAnalyzerName

	docMapping := bleve.NewDocumentMapping()

	contentField := bleve.NewTextFieldMapping()
	contentField.Analyzer = contentAnalyzerName
	contentField.Store = true
	contentField.Index = true
	docMapping.AddFieldMappingsAt("content", contentField)

	pathField := bleve.NewTextFieldMapping()
	pathField.Analyzer = pathAnalyzerName
	pathField.Store = true
	pathField.Index = true
	docMapping.AddFieldMappingsAt("file_path", pathField)

	chunkIndexField := bleve.NewNumericFieldMapping()
	chunkIndexField.Store = true
	chunkIndexField.Index = true
	docMapping.AddFieldMappingsAt("chunk_index", chunkIndexField)

	byteStartField := bleve.NewNumericFieldMapping()
	byteStartField.Store = true
	byteStartField.Index = false
	byteStartField.IncludeInAll = false
	docMapping.AddFieldMappingsAt("byte_start", byteStartField)

	byteEndField := bleve.NewNumericFieldMapping()
	byteEndField.Store = true
	byteEndField.Index = false
	byteEndField.IncludeInAll = false
	docMapping.AddFieldMappingsAt("byte_end", byteEndField)

	im.DefaultMapping = docMapping

	return im, nil
}

func newContentTokenizer(_ map[string]interface{}, _ *registry.Cache) (analysis.Tokenizer, error) {
	return codeTokenizer{split: tokenizeContent}, nil
}

func newPathTokenizer(_ map[string]interface{}, _ *registry.Cache) (analysis.Tokenizer, error) {
	return codeTokenizer{split: tokenizePath}, nil
}

// codeTokenizer adapts our own word-splitting functions to Bleve's
// analysis.Tokenizer interface, following the teacher's pattern of
// wrapping a plain tokenize function in a position-tracking tokenizer.
type codeTokenizer struct {
	split func(string) []string
}

func (t codeTokenizer) Tokenize(input []byte) analysis.TokenStream {
	text := string(input)
	lower := strings.ToLower(text)
	tokens := t.split(text)

	stream := make(analysis.TokenStream, 0, len(tokens))
	pos := 1
	offset := 0
	for _, tok := range tokens {
		start := strings.Index(lower[offset:], tok)
		if start == -1 {
			start = offset
		} else {
			start += offset
		}
		end := start + len(tok)
		stream = append(stream, &analysis.Token{
			Term:     []byte(tok),
			Start:    start,
			End:      end,
			Position: pos,
			Type:     analysis.AlphaNumeric,
		})
		pos++
		if end <= len(text) {
			offset = end
		}
	}
	return stream
}
