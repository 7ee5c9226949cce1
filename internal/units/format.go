package units

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FiatUnit is the number of base units the market price is quoted for.
const FiatUnit = 1_000_000

var printer = message.NewPrinter(language.English)

// FormatTokenAmount renders a base-unit amount with digit grouping,
// e.g. 1000000 -> "1,000,000 i".
func FormatTokenAmount(amount int64) string {
	return printer.Sprintf("%d %s", amount, Base().Symbol)
}

// FormatShort renders amount in its best denomination, e.g. 1500000 -> "1.5 Mi".
func FormatShort(amount int64) string {
	d := Best(amount)
	v := decimal.NewFromInt(amount).Div(decimal.NewFromInt(d.Multiplier))
	return v.Round(2).String() + " " + d.Symbol
}

// FormatFiatValue converts amount to fiat at price per FiatUnit and renders it
// with two decimals and the currency code, e.g. "0.28 USD".
func FormatFiatValue(amount int64, price float64, currency string) string {
	v := decimal.NewFromInt(amount).
		Mul(decimal.NewFromFloat(price)).
		Div(decimal.NewFromInt(FiatUnit))
	return v.StringFixed(2) + " " + currency
}
