package dto

type SkippedRowResponse struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type ImportResponse struct {
	Imported int                  `json:"imported"`
	Skipped  []SkippedRowResponse `json:"skipped"`
}
