package imports

// RowError explains why one input row was not stored.
type RowError struct {
	RowIndex int    `json:"row_index"`
	Reason   string `json:"reason"`
}

// Report summarises a bulk import.
type Report struct {
	TotalRows int        `json:"total_rows"`
	Succeeded int        `json:"succeeded"`
	Failed    int        `json:"failed"`
	Errors    []RowError `json:"errors"`
}

func newReport(total int) *Report {
	return &Report{TotalRows: total, Errors: []RowError{}}
}

func (r *Report) reject(index int, reason string) {
	r.Failed++
	r.Errors = append(r.Errors, RowError{RowIndex: index, Reason: reason})
}
