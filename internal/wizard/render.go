package wizard

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Template kinds. Each kind has a matching pair of .html.tmpl and .txt.tmpl
// files so the two representations stay in sync.
const (
	kindNotification = "notification"
	kindConfirmation = "confirmation"
)

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html.tmpl"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt.tmpl"))
)

// Rendered holds the two parallel representations of one email body.
type Rendered struct {
	HTML string
	Text string
}

// render executes the HTML and text templates of one kind against the same
// data. Output is deterministic: the same data yields byte-identical results.
func render(kind string, data any) (Rendered, error) {
	var html bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&html, kind+".html.tmpl", data); err != nil {
		return Rendered{}, fmt.Errorf("render %s html: %w", kind, err)
	}

	var text bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&text, kind+".txt.tmpl", data); err != nil {
		return Rendered{}, fmt.Errorf("render %s text: %w", kind, err)
	}

	return Rendered{HTML: html.String(), Text: text.String()}, nil
}

// RenderNotification renders the internal notification email bodies.
func RenderNotification(sub Submission) (Rendered, error) {
	return render(kindNotification, sub.notificationView())
}

// RenderConfirmation renders the customer thank-you email bodies.
func RenderConfirmation(sub Submission) (Rendered, error) {
	return render(kindConfirmation, sub.confirmationView())
}
