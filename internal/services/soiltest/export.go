package soiltest

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"
)

var csvHeader = []string{
	"ID", "Location", "Latitude", "Longitude", "pH",
	"Nitrogen (ppm)", "Phosphorus (ppm)", "Potassium (ppm)", "Test Date", "Notes",
}

// GET /api/soil-tests/export streams all records as a CSV attachment.
func (s *Service) handleExport(w http.ResponseWriter, r *http.Request) {
	tests, err := s.store.List(r.Context())
	if err != nil {
		log.Printf("soiltest: export error: %v", err)
		writeError(w, http.StatusInternalServerError, "could not export soil tests")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=soil_tests_%s.csv", time.Now().Format("20060102")))

	cw := csv.NewWriter(w)
	_ = cw.Write(csvHeader)
	for _, t := range tests {
		_ = cw.Write([]string{
			strconv.FormatInt(t.ID, 10),
			t.Location,
			fmtOptional(t.Latitude),
			fmtOptional(t.Longitude),
			fmtFloat(t.PH),
			fmtFloat(t.Nitrogen),
			fmtFloat(t.Phosphorus),
			fmtFloat(t.Potassium),
			t.TestDate,
			t.Notes,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Printf("soiltest: csv write error: %v", err)
	}
}

func fmtFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func fmtOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return fmtFloat(*v)
}
