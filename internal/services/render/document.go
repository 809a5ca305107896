package render

import (
	"strings"

	"github.com/greenmeansgo/verdant/internal/models"
)

// ToDocument parses markdown-ish section text into a structural block
// sequence. Chunks are blank-line delimited and classified in priority
// order: heading, rule, table, bullet list, paragraph. Inline emphasis
// markers are retained in paragraph and cell text for the renderers.
func ToDocument(sectionText string) models.Document {
	var doc models.Document
	for _, chunk := range splitChunks(sectionText) {
		doc = append(doc, classifyChunk(chunk)...)
	}
	return doc
}

// splitChunks breaks text into blank-line-delimited chunks of non-blank lines.
func splitChunks(text string) [][]string {
	var chunks [][]string
	var current []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				chunks = append(chunks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}

// classifyChunk converts one chunk into blocks. A chunk usually maps to a
// single block, but a heading line followed directly by body lines (no blank
// separator) yields a heading plus whatever the remainder classifies as.
func classifyChunk(lines []string) []models.Block {
	first := strings.TrimSpace(lines[0])

	if level, text, ok := parseHeading(first); ok {
		blocks := []models.Block{{Type: models.BlockHeading, Level: level, Text: text}}
		if len(lines) > 1 {
			blocks = append(blocks, classifyChunk(lines[1:])...)
		}
		return blocks
	}

	if isRule(first) && len(lines) == 1 {
		return []models.Block{{Type: models.BlockRule}}
	}

	if headers, rows, ok := parseTable(lines); ok {
		return []models.Block{{Type: models.BlockTable, Headers: headers, Rows: rows}}
	}

	if items, ok := parseBulletList(lines); ok {
		return []models.Block{{Type: models.BlockBulletList, Items: items}}
	}

	texts := make([]string, 0, len(lines))
	for _, line := range lines {
		texts = append(texts, strings.TrimSpace(line))
	}
	return []models.Block{{Type: models.BlockParagraph, Text: strings.Join(texts, " ")}}
}

func parseHeading(line string) (level int, text string, ok bool) {
	if !strings.HasPrefix(line, "#") {
		return 0, "", false
	}
	level = 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level > 4 {
		return 0, "", false
	}
	rest := strings.TrimSpace(line[level:])
	if rest == "" {
		return 0, "", false
	}
	return level, rest, true
}

func isRule(line string) bool {
	return line == "---" || line == "***"
}

// tableSeparator matches lines like |---|:---:|---| between header and rows.
func tableSeparator(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	seen := false
	for _, r := range trimmed {
		switch r {
		case '-':
			seen = true
		case '|', ':', ' ':
		default:
			return false
		}
	}
	return seen
}

func splitCells(line string) []string {
	parts := strings.Split(line, "|")
	// A leading or trailing pipe produces empty boundary cells.
	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

// parseTable recognizes a pipe table: a header line, a separator line, then
// zero or more row lines. Row widths are coerced to the header width, so
// table parsing never fails once the shape is recognized.
func parseTable(lines []string) (headers []string, rows [][]string, ok bool) {
	if len(lines) < 2 || !strings.Contains(lines[0], "|") || !tableSeparator(lines[1]) {
		return nil, nil, false
	}
	headers = splitCells(lines[0])
	if len(headers) == 0 {
		return nil, nil, false
	}
	for _, line := range lines[2:] {
		row := splitCells(line)
		for len(row) < len(headers) {
			row = append(row, "")
		}
		rows = append(rows, row[:len(headers)])
	}
	return headers, rows, true
}

// parseBulletList recognizes a chunk whose first line carries the "- "
// marker. Later lines without the marker continue the previous item, so a
// rendered list parses back to the same items.
func parseBulletList(lines []string) ([]string, bool) {
	if !strings.HasPrefix(strings.TrimSpace(lines[0]), "- ") {
		return nil, false
	}
	items := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "- ") {
			items = append(items, strings.TrimSpace(trimmed[2:]))
			continue
		}
		items[len(items)-1] += " " + trimmed
	}
	return items, true
}
