package domain

// ExportRow is a single row of a trip's CSV export.
// It is a flat, denormalized view: one row per stop, with the trip fields
// repeated on every row. Dates are "2006-01-02" formatted.
type ExportRow struct {
	TripName      string
	TripStartDate string
	TripEndDate   string
	StopName      string
	StopDate      string
	City          string
	Region        string
	Notes         string
}

// Fields returns the row in CSV column order.
func (r ExportRow) Fields() []string {
	return []string{
		r.TripName,
		r.TripStartDate,
		r.TripEndDate,
		r.StopName,
		r.StopDate,
		r.City,
		r.Region,
		r.Notes,
	}
}
