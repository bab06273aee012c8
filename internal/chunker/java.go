package chunker

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/pommel-dev/probe/internal/chunk"
)

// javaCommentTypes are the node types treated as doc-comment/annotation
// lookback candidates when computing a container's or callable's
// declaration start.
var javaCommentTypes = map[string]bool{
	"line_comment":      true,
	"block_comment":     true,
	"marker_annotation": true,
	"annotation":        true,
}

// javaContainerTypes map to Class chunks, except interface_declaration which
// maps to Interface.
var javaContainerTypes = map[string]chunk.Kind{
	"class_declaration":     chunk.KindClass,
	"interface_declaration": chunk.KindInterface,
	"enum_declaration":      chunk.KindClass,
	"record_declaration":    chunk.KindClass,
}

var javaCallableTypes = map[string]bool{
	"method_declaration":      true,
	"constructor_declaration": true,
}

// JavaProcessor extracts chunks from Java source using tree-sitter, carrying
// an explicit stack of enclosing containers so that a nested method's
// declaration can include its ancestors' compacted header lines.
type JavaProcessor struct{}

// NewJavaProcessor constructs a Java chunk processor.
func NewJavaProcessor() *JavaProcessor {
	return &JavaProcessor{}
}

func (p *JavaProcessor) Extensions() []string { return []string{".java"} }

func (p *JavaProcessor) Chunk(content []byte) ([]chunk.Chunk, error) {
	tree, err := parse("java", content)
	if err != nil {
		return nil, err
	}
	w := &javaWalker{content: content}
	w.walk(tree.RootNode())
	return w.chunks, nil
}

// containerFrame records one enclosing container's compacted header line,
// used to prefix a nested callable's or nested container's declaration.
type containerFrame struct {
	headerLine string
}

type javaWalker struct {
	content []byte
	stack   []containerFrame
	chunks  []chunk.Chunk
}

func (w *javaWalker) ancestorPrefix() string {
	var b []byte
	for _, f := range w.stack {
		b = append(b, []byte(f.headerLine)...)
		b = append(b, '\n')
	}
	return string(b)
}

func (w *javaWalker) walk(node *sitter.Node) {
	if node == nil {
		return
	}
	nodeType := node.Type()

	if kind, ok := javaContainerTypes[nodeType]; ok {
		w.emitContainer(node, kind)
		return
	}

	if javaCallableTypes[nodeType] {
		w.emitCallable(node)
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		w.walk(node.Child(i))
	}
}

func (w *javaWalker) emitContainer(node *sitter.Node, kind chunk.Kind) {
	nameNode := node.ChildByFieldName("name")
	name := ""
	if nameNode != nil {
		name = nodeText(nameNode, w.content)
	}

	body := node.ChildByFieldName("body")

	declStart := lineStart(w.content, leadingDocComment(node, w.content, javaCommentTypes))

	var ownDecl string
	if body != nil {
		ownDecl = string(w.content[declStart : body.StartByte()+1])
	} else {
		ownDecl = string(w.content[declStart:node.EndByte()])
	}

	declaration := w.ancestorPrefix() + ownDecl
	headerLine := compactHeaderLine(headerThroughBrace(node, body, w.content))

	w.stack = append(w.stack, containerFrame{headerLine: headerLine})

	bodyText := w.containerBodyWithoutCallables(body)

	w.chunks = append(w.chunks, chunk.Chunk{
		Kind:        kind,
		Name:        name,
		StartLine:   startLine(node),
		EndLine:     endLine(node),
		Declaration: declaration,
		Content:     bodyText,
	})

	if body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			w.walk(body.Child(i))
		}
	}

	w.stack = w.stack[:len(w.stack)-1]
}

// containerBodyWithoutCallables returns the container's body text with every
// direct-child method/constructor declaration's byte span removed, leaving
// fields, nested container headers, initializers and annotations with their
// original whitespace.
func (w *javaWalker) containerBodyWithoutCallables(body *sitter.Node) string {
	if body == nil {
		return ""
	}
	base := body.StartByte() + 1
	// inner runs through the body's closing brace, which is kept.
	inner := w.content[base:body.EndByte()]

	type span struct{ start, end uint32 }
	var spans []span
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)
		if javaCallableTypes[child.Type()] {
			spans = append(spans, span{child.StartByte() - base, child.EndByte() - base})
		}
	}

	out := append([]byte{}, inner...)
	for i := len(spans) - 1; i >= 0; i-- {
		s := spans[i]
		out = append(out[:s.start], out[s.end:]...)
	}
	return string(out)
}

func (w *javaWalker) emitCallable(node *sitter.Node) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return // unnamed callable: skipped
	}
	name := nodeText(nameNode, w.content)

	body := node.ChildByFieldName("body")
	declStart := lineStart(w.content, leadingDocComment(node, w.content, javaCommentTypes))

	// The header text before the body is right-trimmed and joined to the
	// opening brace with a single space, so "foo(){" reads "foo() {".
	var ownDecl string
	if body != nil {
		ownDecl = strings.TrimRight(string(w.content[declStart:body.StartByte()]), " \t\r\n") + " {"
	} else {
		ownDecl = string(w.content[declStart:node.EndByte()])
	}

	declaration := w.ancestorPrefix() + ownDecl

	w.chunks = append(w.chunks, chunk.Chunk{
		Kind:        chunk.KindMethod,
		Name:        name,
		StartLine:   startLine(node),
		EndLine:     endLine(node),
		Declaration: declaration,
		Content:     bodyContent(body, w.content),
	})
}
