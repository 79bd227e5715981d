// Package format holds the presentation formatting helpers shared by
// every section of the site: grouped integers, pt-BR dates and
// abbreviated view counts. All functions are pure and total.
package format

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

var longMonths = [12]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var shortMonths = [12]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// Number renders an integer with pt-BR thousands grouping ("1.234.567").
func Number(n int) string {
	return printer.Sprintf("%d", n)
}

// Date renders an ISO timestamp as "2 de janeiro de 2024". The date
// components are used as given, without timezone conversion. Malformed
// input is returned unchanged.
func Date(iso string) string {
	return formatDate(iso, longMonths)
}

// DateShort renders an ISO timestamp as "2 de jan de 2024".
func DateShort(iso string) string {
	return formatDate(iso, shortMonths)
}

func formatDate(iso string, months [12]string) string {
	date, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}

	return fmt.Sprintf("%d de %s de %d", date.Day(), months[date.Month()-1], date.Year())
}

// Views abbreviates a view count with a thousand/million suffix and one
// decimal place, or returns the raw integer below a thousand.
func Views(views int) string {
	switch {
	case views >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(views)/1_000_000)
	case views >= 1_000:
		return fmt.Sprintf("%.1fk", float64(views)/1_000)
	default:
		return strconv.Itoa(views)
	}
}

// ViewsWithLabel appends the pt-BR label to an abbreviated view count.
func ViewsWithLabel(views int) string {
	return Views(views) + " visualizações"
}
