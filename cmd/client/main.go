// client is the interactive terminal front end of the task store service.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/astromechza/task-tracker/pkg/client"
	"github.com/astromechza/task-tracker/pkg/config"
	"github.com/astromechza/task-tracker/pkg/tui"
)

func main() {
	if err := mainInner(); err != nil {
		slog.Error(err.Error())
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func mainInner() error {
	flagSet := pflag.NewFlagSet("client", pflag.ContinueOnError)
	apiURLVar := flagSet.String("api-url", config.DefaultAPIURL, "base address of the task store service")
	configVar := flagSet.String("config", "", "path to a yaml config file (default: $"+config.EnvVar+")")
	logFileVar := flagSet.String("log-file", "", "write logs to this file (default: discarded)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}

	// The terminal belongs to the UI, so logs only go to an explicit file.
	var logOutput io.Writer = io.Discard
	if *logFileVar != "" {
		f, err := os.OpenFile(*logFileVar, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOutput = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{})))

	cfg, err := config.Load(*configVar)
	if err != nil {
		return err
	}
	if flagSet.Changed("api-url") {
		cfg.Client.APIURL = *apiURLVar
	}

	c, err := client.New(cfg.Client.APIURL)
	if err != nil {
		return err
	}
	slog.Info("starting client", "api", c.BaseURL())

	program := tea.NewProgram(tui.NewModel(c), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run ui: %w", err)
	}
	return nil
}
