package pdftotext

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/finsight-cli/internal/core/domain"
)

// columnGap splits a layout-mode line into cells. pdftotext pads
// columns with runs of spaces; two or more is a column boundary.
var columnGap = regexp.MustCompile(`\s{2,}`)

// minTableRows is the minimum consecutive aligned lines treated as a
// table. A lone two-column line is almost always a heading with a page
// number, not data.
const minTableRows = 3

// detectTables recovers tables from layout-preserved text. pdftotext
// separates pages with form feeds; within a page, a run of consecutive
// lines that split into the same number of columns is read as one
// table, first line as headers.
func detectTables(text string) []domain.Table {
	var tables []domain.Table
	for pageNum, page := range strings.Split(text, "\f") {
		index := 1
		for _, block := range alignedBlocks(page) {
			tables = append(tables, domain.Table{
				Page:    pageNum + 1,
				Index:   index,
				Headers: block[0],
				Rows:    block[1:],
			})
			index++
		}
	}
	return tables
}

// alignedBlocks groups a page's lines into runs of equal column count.
func alignedBlocks(page string) [][][]string {
	var blocks [][][]string
	var current [][]string

	flush := func() {
		if len(current) >= minTableRows {
			blocks = append(blocks, current)
		}
		current = nil
	}

	for _, line := range strings.Split(page, "\n") {
		cells := splitColumns(line)
		if len(cells) < 2 {
			flush()
			continue
		}
		if len(current) > 0 && len(cells) != len(current[0]) {
			flush()
		}
		current = append(current, cells)
	}
	flush()
	return blocks
}

func splitColumns(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	return columnGap.Split(line, -1)
}
