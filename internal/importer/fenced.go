package importer

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// fencedBlock is the body of a fenced code block and the byte range of its
// lines in the source
type fencedBlock struct {
	body       []byte
	start, end int
}

// contains reports whether source offset pos lies inside the block body
func (b *fencedBlock) contains(pos int) bool {
	return pos >= b.start && pos < b.end
}

// fencedObject returns the first fenced code block that holds a '{'.
// Blocks tagged json win over untagged ones.
func fencedObject(source []byte) (*fencedBlock, bool) {
	if !bytes.Contains(source, []byte("```")) && !bytes.Contains(source, []byte("~~~")) {
		return nil, false
	}

	doc := markdown.Parser().Parse(text.NewReader(source))

	var first, tagged *fencedBlock
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		fb := newFencedBlock(block, source)
		if bytes.IndexByte(fb.body, '{') < 0 {
			return ast.WalkSkipChildren, nil
		}
		if first == nil {
			first = fb
		}
		if strings.EqualFold(string(block.Language(source)), "json") {
			tagged = fb
			return ast.WalkStop, nil
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, false
	}

	switch {
	case tagged != nil:
		return tagged, true
	case first != nil:
		return first, true
	}
	return nil, false
}

func newFencedBlock(block *ast.FencedCodeBlock, source []byte) *fencedBlock {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}

	fb := &fencedBlock{body: buf.Bytes()}
	if lines.Len() > 0 {
		fb.start = lines.At(0).Start
		fb.end = lines.At(lines.Len() - 1).Stop
	}
	return fb
}
