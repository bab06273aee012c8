package chunker

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/pommel-dev/probe/internal/chunk"
)

// GoProcessor extracts chunks from Go source. Go has no nested-class
// container context to compose (spec.md §9's "simpler languages may use
// query-based extraction"), so it walks flat: top-level function, method,
// struct and interface declarations each become one chunk with no ancestor
// header prefix.
type GoProcessor struct{}

// NewGoProcessor constructs a Go chunk processor.
func NewGoProcessor() *GoProcessor {
	return &GoProcessor{}
}

func (p *GoProcessor) Extensions() []string { return []string{".go"} }

func (p *GoProcessor) Chunk(content []byte) ([]chunk.Chunk, error) {
	tree, err := parse("go", content)
	if err != nil {
		return nil, err
	}
	var chunks []chunk.Chunk
	root := tree.RootNode()
	for i := 0; i < int(root.ChildCount()); i++ {
		chunks = append(chunks, extractGoTopLevel(root.Child(i), content)...)
	}
	return chunks, nil
}

func extractGoTopLevel(node *sitter.Node, content []byte) []chunk.Chunk {
	switch node.Type() {
	case "function_declaration":
		if c, ok := goCallableChunk(node, content, chunk.KindFunction); ok {
			return []chunk.Chunk{c}
		}
	case "method_declaration":
		if c, ok := goCallableChunk(node, content, chunk.KindMethod); ok {
			return []chunk.Chunk{c}
		}
	case "type_declaration":
		return goTypeSpecs(node, content)
	}
	return nil
}

func goTypeSpecs(node *sitter.Node, content []byte) []chunk.Chunk {
	var out []chunk.Chunk
	for i := 0; i < int(node.ChildCount()); i++ {
		spec := node.Child(i)
		if spec.Type() != "type_spec" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		typeNode := spec.ChildByFieldName("type")
		if nameNode == nil || typeNode == nil {
			continue
		}
		var kind chunk.Kind
		switch typeNode.Type() {
		case "struct_type":
			kind = chunk.KindStruct
		case "interface_type":
			kind = chunk.KindInterface
		default:
			continue
		}

		declStart := lineStart(content, spec.StartByte())
		var declaration, bodyText string
		if brace, ok := firstBraceOffset(typeNode, content); ok {
			declaration = string(content[declStart : brace+1])
			bodyText = string(content[brace+1:typeNode.EndByte()-1]) + "}"
		} else {
			declaration = string(content[declStart:spec.EndByte()])
		}

		out = append(out, chunk.Chunk{
			Kind:        kind,
			Name:        nodeText(nameNode, content),
			StartLine:   startLine(node),
			EndLine:     endLine(node),
			Declaration: declaration,
			Content:     bodyText,
		})
	}
	return out
}

// firstBraceOffset scans typeNode's own text for its first '{', returning
// its absolute byte offset in content.
func firstBraceOffset(typeNode *sitter.Node, content []byte) (uint32, bool) {
	start, end := typeNode.StartByte(), typeNode.EndByte()
	for i := start; i < end; i++ {
		if content[i] == '{' {
			return i, true
		}
	}
	return 0, false
}

func goCallableChunk(node *sitter.Node, content []byte, kind chunk.Kind) (chunk.Chunk, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return chunk.Chunk{}, false
	}
	body := node.ChildByFieldName("body")
	declStart := lineStart(content, node.StartByte())

	var declaration string
	if body != nil {
		declaration = string(content[declStart : body.StartByte()+1])
	} else {
		declaration = string(content[declStart:node.EndByte()])
	}

	return chunk.Chunk{
		Kind:        kind,
		Name:        nodeText(nameNode, content),
		StartLine:   startLine(node),
		EndLine:     endLine(node),
		Declaration: declaration,
		Content:     bodyContent(body, content),
	}, true
}
