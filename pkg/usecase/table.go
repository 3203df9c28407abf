package usecase

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/m-mizutani/playbell/pkg/domain/interfaces"
)

type summaryTable struct {
	style table.Style
}

// NewSummaryTable creates a TableRenderer producing a plain ASCII grid that
// keeps the header text as given
func NewSummaryTable() interfaces.TableRenderer {
	style := table.StyleDefault
	style.Format.Header = text.FormatDefault
	return &summaryTable{style: style}
}

// Render formats header and rows with every cell centred
func (s *summaryTable) Render(header []string, rows [][]string) string {
	columns := len(header)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(s.style)

	h := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		h[i] = header[i]
	}
	tw.AppendHeader(h)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignCenter,
			AlignHeader: text.AlignCenter,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
