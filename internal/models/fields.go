package models

// Fields holds the editable send form inputs. Amount is kept exactly as typed.
type Fields struct {
	Address string
	Amount  string
	Message string
}

// Progress is the send pipeline's report. Progress ranges over [0, 1].
type Progress struct {
	Progress float64
	Title    string
}

// Settings carries the display settings used for the fiat equivalent.
type Settings struct {
	Currency       string
	ConversionRate float64
	USDPrice       float64
}
