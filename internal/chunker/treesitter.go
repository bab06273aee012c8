package chunker

import (
	"fmt"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/pommel-dev/probe/internal/chunk"
)

// Processor turns file content into an ordered sequence of chunks for a
// fixed set of file extensions.
type Processor interface {
	Extensions() []string
	Chunk(content []byte) ([]chunk.Chunk, error)
}

// parserFor builds a fresh tree-sitter parser for the named grammar. Parsers
// are not thread-safe, so every worker (and every Processor instance used
// across goroutines) constructs its own.
func parserFor(lang string) (*sitter.Parser, error) {
	p := sitter.NewParser()
	switch lang {
	case "java":
		p.SetLanguage(java.GetLanguage())
	case "go":
		p.SetLanguage(golang.GetLanguage())
	default:
		return nil, fmt.Errorf("chunker: unsupported grammar %q", lang)
	}
	return p, nil
}

// parse runs the grammar's parser over content and returns the resulting
// tree. The tree borrows from content; callers must not let the tree
// outlive the byte slice it was parsed from.
func parse(lang string, content []byte) (*sitter.Tree, error) {
	p, err := parserFor(lang)
	if err != nil {
		return nil, err
	}
	tree := p.Parse(nil, content)
	if tree == nil || tree.RootNode() == nil {
		return nil, fmt.Errorf("chunker: %s parser produced no tree", lang)
	}
	return tree, nil
}

// nodeText returns the verbatim source text spanned by node.
func nodeText(node *sitter.Node, content []byte) string {
	return string(content[node.StartByte():node.EndByte()])
}

// startLine and endLine return the zero-based source lines on which node
// starts and ends.
func startLine(node *sitter.Node) int {
	return int(node.StartPoint().Row)
}

func endLine(node *sitter.Node) int {
	return int(node.EndPoint().Row)
}

// lineStart returns the byte offset of the first character of the line
// containing pos.
func lineStart(content []byte, pos uint32) uint32 {
	for pos > 0 && content[pos-1] != '\n' {
		pos--
	}
	return pos
}

// compactHeaderLine collapses a (possibly multi-line) header's internal
// whitespace runs into single spaces, producing the "one line each" form
// required for ancestor-container headers in a nested declaration.
func compactHeaderLine(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// headerThroughBrace returns the text from the start of node's declaration
// up to and including the opening brace of its body, or the full node text
// if body is nil (e.g. an abstract or interface method with no body).
func headerThroughBrace(node, body *sitter.Node, content []byte) string {
	start := node.StartByte()
	if body == nil {
		return string(content[start:node.EndByte()])
	}
	return string(content[start : body.StartByte()+1])
}

// bodyContent returns the text inside body's braces: opening brace
// stripped, closing brace retained.
func bodyContent(body *sitter.Node, content []byte) string {
	if body == nil {
		return ""
	}
	return string(content[body.StartByte()+1 : body.EndByte()])
}

// leadingDocComment walks backward over contiguous doc-comment and
// annotation siblings immediately preceding node (separated only by
// whitespace), returning the byte offset of the earliest one, or node's own
// start offset if there is none.
func leadingDocComment(node *sitter.Node, content []byte, commentTypes map[string]bool) uint32 {
	start := node.StartByte()
	cur := node.PrevSibling()
	for cur != nil {
		if !commentTypes[cur.Type()] {
			break
		}
		between := content[cur.EndByte():start]
		if strings.TrimSpace(string(between)) != "" {
			break
		}
		start = cur.StartByte()
		cur = cur.PrevSibling()
	}
	return start
}

// parserPools caches grammar-name -> sync.Pool of parsers so workers can
// reuse parser instances without sharing one across goroutines.
var parserPools sync.Map

func pooledParser(lang string) (*sitter.Parser, func(), error) {
	v, _ := parserPools.LoadOrStore(lang, &sync.Pool{})
	pool := v.(*sync.Pool)
	if p, ok := pool.Get().(*sitter.Parser); ok {
		return p, func() { pool.Put(p) }, nil
	}
	p, err := parserFor(lang)
	if err != nil {
		return nil, nil, err
	}
	return p, func() { pool.Put(p) }, nil
}
