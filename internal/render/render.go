// Package render turns recipes and remix outcomes into the HTML fragments the
// browser view drops into its display regions. All functions are pure:
// rendering the same value twice produces identical markup.
package render

import (
	"html/template"
	"strings"

	"github.com/remixlab/mealremix/internal/mealdb"
	"github.com/remixlab/mealremix/internal/service"
)

// Recipe renders one recipe as a fragment for the recipe region: title,
// thumbnail, ingredient list and instructions, in that order.
func Recipe(r *mealdb.Recipe) string {
	var b strings.Builder

	b.WriteString("<h2>")
	b.WriteString(escape(r.Title))
	b.WriteString("</h2>\n")

	if r.Thumbnail != "" {
		b.WriteString(`<img src="`)
		b.WriteString(escape(r.Thumbnail))
		b.WriteString(`" alt="`)
		b.WriteString(escape(r.Title))
		b.WriteString("\">\n")
	}

	b.WriteString("<h3>Ingredients</h3>\n<ul>\n")
	for _, ing := range r.Ingredients() {
		b.WriteString("<li>")
		b.WriteString(escape(ingredientLine(ing.Measure, ing.Name)))
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")

	b.WriteString("<h3>Instructions</h3>\n<p>")
	b.WriteString(breaks(r.Instructions))
	b.WriteString("</p>\n")

	return b.String()
}

// RemixStructured renders a successfully extracted remix. original may be nil;
// it only feeds the title fallback.
func RemixStructured(result *service.RemixResult, original *mealdb.Recipe) string {
	var b strings.Builder

	b.WriteString("<h2>")
	b.WriteString(escape(remixTitle(result, original)))
	b.WriteString("</h2>\n")

	if result.Note != "" {
		b.WriteString("<p class=\"remix-note\"><em>")
		b.WriteString(escape(result.Note))
		b.WriteString("</em></p>\n")
	}

	b.WriteString("<h3>Ingredients</h3>\n<ul>\n")
	for _, ing := range result.Ingredients {
		b.WriteString("<li>")
		line := escape(ingredientLine(ing.Measure, ing.Name))
		if ing.Changed {
			line = "<strong>" + line + "</strong>"
		}
		b.WriteString(line)
		if ing.Note != "" {
			b.WriteString(" <em>(")
			b.WriteString(escape(ing.Note))
			b.WriteString(")</em>")
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")

	b.WriteString("<h3>Instructions</h3>\n<p>")
	b.WriteString(breaks(result.Instructions))
	b.WriteString("</p>\n")

	return b.String()
}

// RemixFallback renders the degraded view shown when extraction failed: a
// short notice plus the assistant's raw text, preformatted and escaped.
func RemixFallback(raw string) string {
	var b strings.Builder
	b.WriteString("<p class=\"notice\">The remix came back in an unexpected shape, so here it is as written:</p>\n<pre>")
	b.WriteString(escape(raw))
	b.WriteString("</pre>\n")
	return b.String()
}

// Notice renders a user-facing message for a display region.
func Notice(text string) string {
	return "<p class=\"notice\">" + escape(text) + "</p>\n"
}

func remixTitle(result *service.RemixResult, original *mealdb.Recipe) string {
	if strings.TrimSpace(result.Title) != "" {
		return result.Title
	}
	if original != nil && strings.TrimSpace(original.Title) != "" {
		return original.Title + " (remix)"
	}
	return "Remixed recipe"
}

func ingredientLine(measure, name string) string {
	if measure == "" {
		return name
	}
	return measure + " " + name
}

// breaks escapes text and then converts newlines to <br>. Escaping happens
// first so model or API output can never inject markup.
func breaks(text string) string {
	escaped := escape(text)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return strings.ReplaceAll(escaped, "\n", "<br>")
}

func escape(text string) string {
	return template.HTMLEscapeString(text)
}
