package usecase_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/playbell/pkg/domain/model"
	"github.com/m-mizutani/playbell/pkg/usecase"
)

func TestSummaryTable(t *testing.T) {
	t.Run("Render keeps header case and row order", func(t *testing.T) {
		stats := model.Stats{
			"web1": {OK: 5, Changed: 2},
			"db1":  {OK: 3, Unreachable: 1},
		}

		out := usecase.NewSummaryTable().Render(model.SummaryHeader, stats.Rows())
		gt.True(t, strings.Contains(out, "Host"))
		gt.True(t, strings.Contains(out, "Unreachable"))
		gt.True(t, strings.Contains(out, "Failures"))
		gt.False(t, strings.Contains(out, "HOST"))

		db := strings.Index(out, "db1")
		web := strings.Index(out, "web1")
		gt.True(t, db > 0)
		gt.True(t, web > db)
	})

	t.Run("Render uses ASCII borders", func(t *testing.T) {
		out := usecase.NewSummaryTable().Render([]string{"Host"}, [][]string{{"web1"}})
		lines := strings.Split(out, "\n")
		gt.Equal(t, len(lines), 5)
		gt.True(t, strings.HasPrefix(lines[0], "+-"))
		gt.True(t, strings.HasPrefix(lines[3], "| web1"))
	})

	t.Run("Render centres cells", func(t *testing.T) {
		out := usecase.NewSummaryTable().Render([]string{"Host", "Changed"}, [][]string{{"db", "1"}})
		lines := strings.Split(out, "\n")
		gt.Equal(t, len(lines), 5)
		gt.Equal(t, lines[1], "| Host | Changed |")
		gt.Equal(t, lines[3], "|  db  |    1    |")
	})

	t.Run("Render pads short rows", func(t *testing.T) {
		out := usecase.NewSummaryTable().Render([]string{"Host", "Ok"}, [][]string{{"web1"}})
		gt.True(t, strings.Contains(out, "web1"))
	})

	t.Run("Render without header", func(t *testing.T) {
		gt.Equal(t, usecase.NewSummaryTable().Render(nil, nil), "")
	})
}
