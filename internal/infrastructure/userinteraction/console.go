package userinteraction

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"travel-agent/internal/application/port/output"
	"travel-agent/internal/domain/entity"

	"github.com/fatih/color"
)

var _ output.UserInteractionPort = (*ConsoleUserInteraction)(nil)

const DestinationPrompt = "Enter a destination city (e.g., 'Paris'): "

// ConsoleUserInteraction reads the destination from in and writes progress to
// out. When quiet is set only the destination prompt is printed.
type ConsoleUserInteraction struct {
	reader *bufio.Reader
	out    io.Writer
	quiet  bool
}

func NewConsoleUserInteraction(in io.Reader, out io.Writer, quiet bool) *ConsoleUserInteraction {
	return &ConsoleUserInteraction{
		reader: bufio.NewReader(in),
		out:    out,
		quiet:  quiet,
	}
}

func (u *ConsoleUserInteraction) AskDestination(ctx context.Context) (string, error) {
	fmt.Fprint(u.out, DestinationPrompt)

	type line struct {
		text string
		err  error
	}
	read := make(chan line, 1)
	go func() {
		text, err := u.reader.ReadString('\n')
		read <- line{text: text, err: err}
	}()

	// The reader goroutine stays blocked on stdin after a cancel; the
	// process is about to exit at that point.
	select {
	case <-ctx.Done():
		fmt.Fprintln(u.out)
		return "", ctx.Err()
	case got := <-read:
		if got.err != nil && !errors.Is(got.err, io.EOF) {
			return "", fmt.Errorf("failed to read user input: %w", got.err)
		}
		return strings.TrimSpace(got.text), nil
	}
}

func (u *ConsoleUserInteraction) ShowIteration(ctx context.Context, iteration, maxIterations int) {
	if u.quiet {
		return
	}
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(u.out, "\n━━━ Step %d/%d ━━━\n", iteration, maxIterations)
}

func (u *ConsoleUserInteraction) ShowToolStart(ctx context.Context, toolName, input string) {
	if u.quiet {
		return
	}
	icon, name := getToolDisplay(toolName)

	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprintf(u.out, "\n%s %s\n", icon, name)

	if summary := formatToolInput(input); summary != "" {
		dim := color.New(color.Faint)
		dim.Fprintf(u.out, "   %s\n", summary)
	}
}

func (u *ConsoleUserInteraction) ShowToolResult(ctx context.Context, toolName, result string, isError bool) {
	if u.quiet {
		return
	}
	if isError {
		red := color.New(color.FgRed)
		red.Fprint(u.out, "❌ Error: ")

		dim := color.New(color.Faint)
		dim.Fprintln(u.out, truncate(result, 300))
		return
	}

	green := color.New(color.FgGreen)
	green.Fprintf(u.out, "✓ %s\n", formatToolResult(toolName, result))
}

func getToolDisplay(toolName string) (string, string) {
	displays := map[entity.ToolName][2]string{
		entity.ToolGetWeather:        {"🌤️", "Weather"},
		entity.ToolSearchAttractions: {"🔎", "Attractions"},
	}

	if display, ok := displays[entity.ToolName(toolName)]; ok {
		return display[0], display[1]
	}
	return "🔧", toolName
}

func formatToolInput(input string) string {
	var args struct {
		Destination string `json:"destination"`
	}
	if err := json.Unmarshal([]byte(input), &args); err == nil {
		input = args.Destination
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	return "Destination: " + truncate(input, 80)
}

func formatToolResult(toolName, result string) string {
	switch entity.ToolName(toolName) {
	case entity.ToolGetWeather:
		var summary entity.WeatherSummary
		if err := json.Unmarshal([]byte(result), &summary); err != nil {
			return truncate(result, 100)
		}
		parts := []string{}
		if summary.Location.Name != nil {
			parts = append(parts, *summary.Location.Name)
		}
		if summary.Current.Condition != nil {
			parts = append(parts, *summary.Current.Condition)
		}
		if summary.Current.TempC != nil {
			parts = append(parts, fmt.Sprintf("%.1f°C", *summary.Current.TempC))
		}
		parts = append(parts, fmt.Sprintf("%d-day forecast", len(summary.Forecast)))
		return strings.Join(parts, " | ")

	case entity.ToolSearchAttractions:
		count := strings.Count(result, "Title: ")
		if count == 0 {
			return truncate(result, 100)
		}
		return fmt.Sprintf("Found %d result(s)", count)
	}

	return truncate(result, 100)
}

// truncate cuts s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
