package formatting

import (
	"fmt"
	"html"
	"strings"
)

// Link ссылка в разделе дополнительных материалов
type Link struct {
	Title string
	URL   string
}

// DefaultMaterialsContact контакт преподавателя, если в конфиге раздел материалов не задан
const DefaultMaterialsContact = "@Lock1ng1"

// DefaultMaterialLinks ссылки раздела материалов по умолчанию
func DefaultMaterialLinks() []Link {
	return []Link{
		{Title: "Сайт с учебными материалами", URL: "https://example.com"},
		{Title: "Видеоуроки на YouTube", URL: "https://youtube.com"},
		{Title: "Документы и файлы", URL: "https://drive.google.com"},
	}
}

// FormatMaterials форматирует раздел "Дополнительные материалы" в HTML
func FormatMaterials(links []Link, contact string) string {
	var sb strings.Builder
	sb.WriteString("Дополнительные материалы:\n\n")

	for i, link := range links {
		fmt.Fprintf(&sb, "%d. <a href=\"%s\">%s</a>\n",
			i+1, html.EscapeString(link.URL), html.EscapeString(link.Title))
	}

	if contact != "" {
		sb.WriteString("\nПо всем вопросам обращайтесь к преподавателю ")
		sb.WriteString(html.EscapeString(contact))
	}

	return strings.TrimRight(sb.String(), "\n")
}
