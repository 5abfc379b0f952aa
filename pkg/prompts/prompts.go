// Package prompts renders the prompt templates the turn pipeline feeds to the
// language model. Rendering is pure string templating; the templates carry no
// orchestration logic.
package prompts

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/mikeboe/workplace-chat/pkg/chat"
	"github.com/mikeboe/workplace-chat/pkg/history"
)

const condenseTemplate = `Given the conversation below and a follow-up question, rephrase the follow-up question so it is a standalone, self-contained question. Do not answer it.

Chat history:
{{range .History}}{{.Role}}: {{.Content}}
{{end}}
Follow-up question: {{.Question}}

Standalone question:`

const ragTemplate = `You are a helpful workplace assistant. Answer the question using only the passages below from the internal knowledge base. If the passages do not contain the answer, say so.

{{range .Documents}}[Source]: {{.Source}}
[Content]: {{.Content}}

{{end}}{{if .History}}Chat history:
{{range .History}}{{.Role}}: {{.Content}}
{{end}}
{{end}}Question: {{.Question}}

Answer:`

const ragWebTemplate = `You are a helpful workplace assistant. Answer the question using the context below. The context mixes passages from the internal knowledge base with live web search results; prefer internal passages where they conflict and cite the source you used.

{{range .Documents}}[Source]: {{.Source}}
[Content]: {{.Content}}

{{end}}{{if .History}}Chat history:
{{range .History}}{{.Role}}: {{.Content}}
{{end}}
{{end}}Question: {{.Question}}

Answer:`

var templates = map[chat.TemplateID]*template.Template{
	chat.TemplateRAG:    template.Must(template.New(string(chat.TemplateRAG)).Parse(ragTemplate)),
	chat.TemplateRAGWeb: template.Must(template.New(string(chat.TemplateRAGWeb)).Parse(ragWebTemplate)),
}

var condense = template.Must(template.New("condense").Parse(condenseTemplate))

type templateData struct {
	Question  string
	Documents []chat.Document
	History   []history.Message
}

// Renderer implements chat.Renderer over text/template.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Condense(question string, msgs []history.Message) (string, error) {
	return render(condense, templateData{Question: question, History: msgs})
}

func (r *Renderer) Answer(id chat.TemplateID, question string, docs []chat.Document, msgs []history.Message) (string, error) {
	tmpl, ok := templates[id]
	if !ok {
		return "", fmt.Errorf("unknown prompt template: %s", id)
	}
	return render(tmpl, templateData{Question: question, Documents: docs, History: msgs})
}

func render(tmpl *template.Template, data templateData) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}
