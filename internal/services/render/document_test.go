package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greenmeansgo/verdant/internal/models"
)

func TestToDocumentClassification(t *testing.T) {
	text := `## Environmental Impact Analysis

The assessment covers **three** impact categories.

- Global warming
- Water consumption
- Land use

| Category | Value | Unit |
|----------|-------|------|
| Global warming | 1234.5678 | kg CO2 eq |
| Water consumption | 42.1000 | m3 |

---

Closing remarks.`

	doc := ToDocument(text)

	assert.Equal(t, models.Document{
		{Type: models.BlockHeading, Level: 2, Text: "Environmental Impact Analysis"},
		{Type: models.BlockParagraph, Text: "The assessment covers **three** impact categories."},
		{Type: models.BlockBulletList, Items: []string{"Global warming", "Water consumption", "Land use"}},
		{Type: models.BlockTable,
			Headers: []string{"Category", "Value", "Unit"},
			Rows: [][]string{
				{"Global warming", "1234.5678", "kg CO2 eq"},
				{"Water consumption", "42.1000", "m3"},
			}},
		{Type: models.BlockRule},
		{Type: models.BlockParagraph, Text: "Closing remarks."},
	}, doc)
}

func TestToDocumentHeadingWithAttachedBody(t *testing.T) {
	doc := ToDocument("### Hotspots\nMaize dominates emissions.")

	assert.Equal(t, models.Document{
		{Type: models.BlockHeading, Level: 3, Text: "Hotspots"},
		{Type: models.BlockParagraph, Text: "Maize dominates emissions."},
	}, doc)
}

func TestToDocumentTableRowCoercion(t *testing.T) {
	text := `| A | B | C |
|---|---|---|
| 1 | 2 |
| 1 | 2 | 3 | 4 |`

	doc := ToDocument(text)

	assert.Len(t, doc, 1)
	table := doc[0]
	assert.Equal(t, models.BlockTable, table.Type)
	assert.Equal(t, []string{"A", "B", "C"}, table.Headers)
	assert.Equal(t, [][]string{
		{"1", "2", ""},
		{"1", "2", "3"},
	}, table.Rows)
}

func TestToDocumentMultilineParagraphJoins(t *testing.T) {
	doc := ToDocument("First line\nsecond line\nthird line.")

	assert.Equal(t, models.Document{
		{Type: models.BlockParagraph, Text: "First line second line third line."},
	}, doc)
}

func TestToDocumentBulletContinuationLines(t *testing.T) {
	doc := ToDocument("- first item\nwraps onto a second line\n- second item")

	assert.Equal(t, models.Document{
		{Type: models.BlockBulletList, Items: []string{"first item wraps onto a second line", "second item"}},
	}, doc)
}

func TestToDocumentDeepHeadingIsParagraph(t *testing.T) {
	// Five or more hash marks are not a recognized heading level.
	doc := ToDocument("##### Too deep")
	assert.Equal(t, models.BlockParagraph, doc[0].Type)
}

func TestToDocumentEmptyInput(t *testing.T) {
	assert.Empty(t, ToDocument(""))
	assert.Empty(t, ToDocument("\n\n   \n"))
}
