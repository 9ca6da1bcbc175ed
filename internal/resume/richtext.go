package resume

import "strings"

// 富文本以显式的块/跨度结构存储，而不是标记字符串，
// 这样字数统计与导出都不依赖字符串解析。

// BlockKind 是富文本块类型的封闭枚举。
type BlockKind string

const (
	BlockParagraph  BlockKind = "paragraph"
	BlockBulletList BlockKind = "bullet_list"
)

// SpanStyle 是行内文本样式的封闭枚举。
type SpanStyle string

const (
	SpanPlain  SpanStyle = ""
	SpanBold   SpanStyle = "bold"
	SpanItalic SpanStyle = "italic"
	SpanLink   SpanStyle = "link"
)

// Span 是一段带统一样式的行内文本。
type Span struct {
	Text  string    `json:"text"`
	Style SpanStyle `json:"style,omitempty"`
	Href  string    `json:"href,omitempty"`
}

// Block 是富文本中的一个块：段落持有 Spans，列表持有 Items（每项一行 Spans）。
type Block struct {
	Kind  BlockKind `json:"kind"`
	Spans []Span    `json:"spans,omitempty"`
	Items [][]Span  `json:"items,omitempty"`
}

// Document 是一段完整的富文本。
type Document struct {
	Blocks []Block `json:"blocks,omitempty"`
}

// Paragraph 用纯文本构造单段落文档，便于测试与默认内容。
func Paragraph(text string) Document {
	if strings.TrimSpace(text) == "" {
		return Document{}
	}
	return Document{Blocks: []Block{{
		Kind:  BlockParagraph,
		Spans: []Span{{Text: text}},
	}}}
}

// IsEmpty 判断文档是否没有任何可见文本。
func (d Document) IsEmpty() bool {
	return strings.TrimSpace(d.PlainText()) == ""
}

// PlainText 拼接全部文本内容，块之间以换行分隔。
func (d Document) PlainText() string {
	var b strings.Builder
	for i, block := range d.Blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		switch block.Kind {
		case BlockBulletList:
			for j, item := range block.Items {
				if j > 0 {
					b.WriteString("\n")
				}
				writeSpans(&b, item)
			}
		default:
			writeSpans(&b, block.Spans)
		}
	}
	return b.String()
}

func writeSpans(b *strings.Builder, spans []Span) {
	for _, span := range spans {
		b.WriteString(span.Text)
	}
}

// WordCount 返回按空白切分的单词数，空文档为 0。
func (d Document) WordCount() int {
	return len(strings.Fields(d.PlainText()))
}
