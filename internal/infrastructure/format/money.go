// Package format presenta los valores del motor de precios para pantalla y PDF:
// moneda con agrupación india (1,23,456.78), porcentajes y monto en letras.
// Nunca se usa para volver a calcular.
package format

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formatea montos con el símbolo de moneda configurado.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// New crea un formatter en locale en-IN. symbol vacío usa "₹".
func New(symbol string) *Formatter {
	if symbol == "" {
		symbol = "₹"
	}
	return &Formatter{symbol: symbol, printer: message.NewPrinter(language.MustParse("en-IN"))}
}

// Number monto con 2 decimales y agrupación lakh/crore, sin símbolo.
// Los dígitos salen de StringFixed, nunca de un float64.
func (f *Formatter) Number(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	intPart, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")

	var grouped string
	if n, err := strconv.ParseInt(intPart, 10, 64); err == nil {
		grouped = f.printer.Sprint(number.Decimal(n))
	} else {
		grouped = groupIndian(intPart)
	}
	return sign + grouped + "." + frac
}

// groupIndian agrupa dígitos como 12,34,56,789: tres al final y luego de dos en dos.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	parts = append([]string{head}, parts...)
	return strings.Join(append(parts, tail), ",")
}

// Money monto con símbolo: ₹1,23,456.78; los negativos llevan el signo delante del símbolo.
func (f *Formatter) Money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + f.symbol + f.Number(d.Neg())
	}
	return f.symbol + f.Number(d)
}

// Percent tasa sin ceros sobrantes: 18 → "18%", 2.5 → "2.5%".
func Percent(d decimal.Decimal) string {
	return d.String() + "%"
}

// Quantity cantidad sin ceros sobrantes (hasta 3 decimales).
func Quantity(d decimal.Decimal) string {
	s := d.Round(3).StringFixed(3)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
