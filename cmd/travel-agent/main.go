package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"travel-agent/internal/di"
	"travel-agent/internal/domain/entity"
	"travel-agent/internal/infrastructure/config"
	"travel-agent/internal/infrastructure/env"
	"travel-agent/internal/infrastructure/report"
	"travel-agent/internal/infrastructure/userinteraction"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Config    string   `name:"config" help:"Optional config file (YAML, TOML or JSON)"`
	Mode      string   `name:"mode" help:"Orchestration mode: pipeline or agent"`
	Results   int      `name:"results" help:"Maximum number of attraction search results"`
	OutputDir string   `name:"output-dir" default:"." help:"Directory for the JSON run dump"`
	Quiet     bool     `name:"quiet" help:"Suppress progress lines"`
	EnvDir    string   `name:"env-dir" default:"." hidden:"" help:"Directory holding .env files"`
	Words     []string `arg:"" optional:"" name:"destination" help:"Destination, e.g. Paris or 'Kyoto, Japan'"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("travel-agent"),
		kong.Description("Weather-aware travel recommendations for a destination"),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	envs, err := env.NewEnvService(cli.EnvDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	app, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if cli.Mode != "" {
		app.Agent.Mode = entity.AgentMode(cli.Mode)
	}
	if cli.Results != 0 {
		app.Search.Results = cli.Results
	}
	if err := app.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	ui := userinteraction.NewConsoleUserInteraction(stdin, stderr, cli.Quiet)

	destination := strings.TrimSpace(strings.Join(cli.Words, " "))
	if destination == "" {
		destination, err = ui.AskDestination(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	if destination == "" {
		fmt.Fprintln(stdout, "No destination provided.")
		return 1
	}

	if app.LLM.APIKey == "" {
		fmt.Fprintln(stderr, "Warning: GEMINI_API_KEY not set. Set it to use the gemini model.")
		fmt.Fprintln(stderr, "export GEMINI_API_KEY='...'")
	}

	container, err := di.NewContainer(di.Config{
		App:         app,
		Destination: destination,
		UI:          ui,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer container.Close()
	container.Logger.Info("Environment loaded", "app_env", envs.AppEnv(), "files", envs.Loaded())

	result, err := container.TaskExecutor.Execute(ctx, destination)
	if err != nil {
		fmt.Fprintf(stderr, "\nError: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, "\n=== Travel Assistant Result ===")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, result.Output)

	path, err := report.Write(cli.OutputDir, result)
	if err != nil {
		container.Logger.Error("Failed to save agent output", "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	container.Logger.Info("Agent output saved", "path", path)
	fmt.Fprintf(stdout, "\nSaved raw agent output to: %s\n", path)

	return 0
}
