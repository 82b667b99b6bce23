package template

import (
	"io"
)

// TemplateRenderer is the subset of the github.com/goliatone/go-template
// engine contract the menu renderer relies on.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
