package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/7svn/smeta-backend/internal/estimates/aggregate"
	"github.com/7svn/smeta-backend/internal/estimates/domain"
)

const (
	TotalBanner  = "Итоговая стоимость всех работ по смете:"
	PrintFooter  = "Смета сформирована в 7svn. Данные носят информационный характер."
	breakdownTit = "Структура затрат"
)

// Raw HTML in the markdown source is dropped since WithUnsafe is not set.
var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

var ruPrinter = message.NewPrinter(language.Russian)

func money(v float64) string {
	return ruPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(2))) + " ₽"
}

func amount(v float64) string {
	return ruPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

func percent(v float64) string {
	return ruPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(1))) + "%"
}

const mdSpecial = "\\`*_{}[]<>()#+-.!|~"

// mdText escapes user text for a markdown table cell.
func mdText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(mdSpecial, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// PrintMarkdown is the markdown source of the print view.
func PrintMarkdown(p domain.RenovationProject, printedAt time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", mdText(p.Name))
	fmt.Fprintf(&b, "Дата: %s\n\n", printedAt.Format(DateLayout))

	for _, g := range aggregate.Grouped(p.Items) {
		fmt.Fprintf(&b, "## %s\n\n", mdText(g.Name))
		b.WriteString("| " + strings.Join(Header, " | ") + " |\n")
		b.WriteString("| --- | --- | ---: | ---: | ---: |\n")
		for _, it := range g.Items {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				mdText(it.Name), mdText(string(it.Unit)), amount(it.Quantity), money(it.PricePerUnit), money(it.LineTotal()))
		}
		fmt.Fprintf(&b, "|  |  |  | **%s** | **%s** |\n\n", subtotalLabel, money(g.Subtotal))
	}

	if shares := aggregate.Breakdown(p.Items); len(shares) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", breakdownTit)
		b.WriteString("| Раздел | Сумма (₽) | Доля |\n| --- | ---: | ---: |\n")
		for _, s := range shares {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", mdText(s.Name), money(s.Value), percent(s.Percent))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "**%s** %s\n\n", TotalBanner, money(aggregate.Total(p.Items)))
	if p.AIAdvice != "" {
		fmt.Fprintf(&b, "> %s\n\n", mdText(p.AIAdvice))
	}
	b.WriteString("---\n\n")
	b.WriteString(PrintFooter + "\n")
	return b.String()
}

var printPage = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html lang="ru">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; color: #0f172a; margin: 2rem; }
table { border-collapse: collapse; width: 100%; margin-bottom: 1.5rem; }
th, td { border: 1px solid #cbd5e1; padding: 4px 8px; }
th { background: #eff6ff; }
h2 { color: #1e40af; text-transform: uppercase; font-size: 1rem; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// RenderPrintHTML writes a standalone printable page for p.
func RenderPrintHTML(w io.Writer, p domain.RenovationProject, printedAt time.Time) error {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(PrintMarkdown(p, printedAt)), &body); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	return printPage.Execute(w, struct {
		Title string
		Body  template.HTML
	}{
		Title: p.Name,
		// safe: goldmark drops raw HTML without html.WithUnsafe
		Body: template.HTML(body.String()),
	})
}
