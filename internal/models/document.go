package models

// BlockType discriminates the kinds of structural blocks a section's text
// parses into.
type BlockType string

const (
	BlockHeading    BlockType = "heading"
	BlockParagraph  BlockType = "paragraph"
	BlockBulletList BlockType = "bullet_list"
	BlockTable      BlockType = "table"
	BlockRule       BlockType = "rule"
)

// Block is one structural element of a parsed section. Only the fields
// relevant to its Type are populated: Level and Text for headings, Text for
// paragraphs, Items for bullet lists, Headers and Rows for tables. Table
// rows are always as wide as Headers.
type Block struct {
	Type    BlockType
	Level   int
	Text    string
	Items   []string
	Headers []string
	Rows    [][]string
}

// Document is an ordered block sequence, the common input to the markdown
// and PDF renderers.
type Document []Block
