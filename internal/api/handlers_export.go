package api

import (
	"net/http"

	"lavka/internal/export"
	"lavka/internal/store"
)

func (s *HTTPServer) handleExportItems(w http.ResponseWriter, r *http.Request) {
	// Zero limit covers the whole catalog; deleted rows are included and
	// carry their flag in a column.
	items := s.items.List(store.ItemFilter{ShowDeleted: true})

	f, err := export.BuildItemsWorkbook(items)
	if err != nil {
		s.logger.Error().Err(err).Msg("build items workbook")
		writeError(w, http.StatusInternalServerError, "failed to build export")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="items.xlsx"`)
	if err := f.Write(w); err != nil {
		s.logger.Error().Err(err).Msg("write items workbook")
	}
}
