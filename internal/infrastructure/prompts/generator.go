package prompts

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"

	"travel-agent/internal/application/port/output"
)

type ToolInfo struct {
	Name        string
	Description string
}

type SystemPromptData struct {
	Tools []ToolInfo
}

// SynthesisPromptData carries the tool outcomes the pipeline embeds in the
// synthesis prompt. Exactly one of WeatherJSON and WeatherError is set, and
// likewise for the attraction fields.
type SynthesisPromptData struct {
	Destination      string
	WeatherJSON      string
	WeatherError     string
	Attractions      string
	AttractionCount  int
	AttractionsError string
}

func GenerateSystemPrompt(baseTemplate string, registry output.ToolRegistry) (string, error) {
	tools := registry.All()
	infos := make([]ToolInfo, 0, len(tools))

	for _, tool := range tools {
		infos = append(infos, ToolInfo{
			Name:        tool.Name(),
			Description: tool.Description(),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})

	return render("system", baseTemplate, SystemPromptData{Tools: infos})
}

func GenerateSynthesisPrompt(baseTemplate string, data SynthesisPromptData) (string, error) {
	return render("synthesis", baseTemplate, data)
}

// UserInput is the human turn sent for a destination.
func UserInput(destination string) string {
	return fmt.Sprintf("Destination: %s. Please provide the weather and a list of top attractions with brief notes.", destination)
}

func render(name, baseTemplate string, data any) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(baseTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
