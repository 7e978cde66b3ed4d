package service

import (
	"bytes"
	"strings"

	"github.com/SimonMage/TravelSobolev/internal/domain"
)

var exportHeader = []string{"Trip Name", "Start Date", "End Date", "Stop Name", "Stop Date", "City", "Region", "Notes"}

// ExportTripCSV renders trip as CSV: a header line, then one line per stop in
// the order of trip.Stops. Every field is double-quoted with inner quotes
// doubled, and every line ends in "\n".
func ExportTripCSV(trip domain.Trip) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(exportHeader, ","))
	buf.WriteByte('\n')
	for _, row := range exportRows(trip) {
		writeQuotedRow(&buf, row.Fields())
	}
	return buf.Bytes()
}

// ExportFileName is the attachment name of a trip export.
func ExportFileName(tripName string) string {
	return "trip_" + tripName + ".csv"
}

func exportRows(trip domain.Trip) []domain.ExportRow {
	rows := make([]domain.ExportRow, 0, len(trip.Stops))
	for _, s := range trip.Stops {
		rows = append(rows, domain.ExportRow{
			TripName:      trip.Name,
			TripStartDate: trip.StartDate.Format(dateLayout),
			TripEndDate:   trip.EndDate.Format(dateLayout),
			StopName:      s.Name,
			StopDate:      s.StopDate.Format(dateLayout),
			City:          s.CityName,
			Region:        s.RegionName,
			Notes:         s.Notes,
		})
	}
	return rows
}

// writeQuotedRow is hand-rolled because encoding/csv only quotes fields that need it.
func writeQuotedRow(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}
