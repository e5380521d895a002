package story

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// PromptFile is the name of the editable prompt template inside the prompts directory.
const PromptFile = "story_prompt.tmpl"

// DefaultPromptTemplate is written to disk on first start and used whenever
// no template file can be read.
const DefaultPromptTemplate = `Write an engaging sci-fi story for typing practice. Make it exactly {{.WordCount}}. Include space adventures, aliens, futuristic technology, or other sci-fi elements. Make it exciting but appropriate for all ages. Focus on action and adventure. Don't include quotation marks or special characters that might be hard to type.`

// PromptData is the data available to the story prompt template.
type PromptData struct {
	WordCount string
	Length    Length
}

// ParsePromptTemplate parses text as a story prompt with the sprig function map.
func ParsePromptTemplate(text string) (*template.Template, error) {
	return template.New("story").Funcs(sprig.FuncMap()).Parse(text)
}

// LoadPromptTemplate reads the story prompt from dir, creating the directory
// and writing the default template if the file does not exist yet.
func LoadPromptTemplate(dir string) (*template.Template, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create prompts directory: %w", err)
	}

	path := filepath.Join(dir, PromptFile)
	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read story template %s: %w", path, err)
		}
		log.Warnf("Could not find %s, using default template", path)
		content = []byte(DefaultPromptTemplate)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write default story template to disk: %w", err)
		}
	}

	tmpl, err := ParsePromptTemplate(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse story template %s: %w", path, err)
	}
	return tmpl, nil
}

func renderPrompt(tmpl *template.Template, length Length) (string, error) {
	var promptBuffer bytes.Buffer
	err := tmpl.Execute(&promptBuffer, PromptData{
		WordCount: length.WordRange(),
		Length:    length,
	})
	if err != nil {
		return "", fmt.Errorf("error executing story template: %w", err)
	}
	return promptBuffer.String(), nil
}
