// Package units holds the denomination legend and the display formatters for
// token and fiat amounts. Nothing here takes part in amount coercion.
package units

// Denomination is one row of the unit legend.
type Denomination struct {
	Symbol     string
	Multiplier int64
	Name       string
}

// largest to smallest
var table = []Denomination{
	{Symbol: "Ti", Multiplier: 1_000_000_000_000, Name: "trillion"},
	{Symbol: "Gi", Multiplier: 1_000_000_000, Name: "billion"},
	{Symbol: "Mi", Multiplier: 1_000_000, Name: "million"},
	{Symbol: "Ki", Multiplier: 1_000, Name: "thousand"},
	{Symbol: "i", Multiplier: 1, Name: "one"},
}

// Table returns a copy of the denomination table, largest unit first.
func Table() []Denomination {
	out := make([]Denomination, len(table))
	copy(out, table)
	return out
}

// Base returns the smallest unit.
func Base() Denomination {
	return table[len(table)-1]
}

// Best returns the largest denomination not exceeding amount. Amounts below
// one base unit map to the base unit.
func Best(amount int64) Denomination {
	if amount < 0 {
		amount = -amount
	}
	for _, d := range table {
		if amount >= d.Multiplier {
			return d
		}
	}
	return Base()
}
