// debug inspects a journal dump written by the server with --dump.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/astromechza/task-tracker/pkg/journal"
	"github.com/astromechza/task-tracker/pkg/viz"
)

func main() {
	if err := mainInner(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func mainInner() error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{})))

	flagSet := pflag.NewFlagSet("debug", pflag.ContinueOnError)
	dotVar := flagSet.Bool("dot", false, "print a digraph of the change log")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() != 1 {
		return fmt.Errorf("expected one position argument: the file to read")
	}
	f, err := os.Open(flagSet.Arg(0))
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()
	buff, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	j, err := journal.Load(buff)
	if err != nil {
		return err
	}
	buff = nil

	doc, err := j.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to snapshot journal: %w", err)
	}
	slog.Info("loaded heads", "heads", doc.Heads())

	changes, err := doc.Changes()
	if err != nil {
		return fmt.Errorf("failed to generate changes: %w", err)
	}
	for i, change := range changes {
		slog.Info("change", "i", fmt.Sprintf("%4d", i), "hash", change.Hash(), "actor", change.ActorID(), "msg", change.Message(), "dep", change.Dependencies())
	}

	tasks, err := j.Tasks()
	if err != nil {
		return fmt.Errorf("failed to read tasks: %w", err)
	}
	enc := json.NewEncoder(os.Stdout)
	for _, t := range tasks {
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("failed to write task: %w", err)
		}
	}

	if !*dotVar {
		return nil
	}
	fmt.Println(`digraph "log" {`)
	for _, change := range changes {
		label, err := viz.Label(doc, change)
		if err != nil {
			return err
		}
		fmt.Printf("    \"%s\" [label=%q]\n", change.Hash(), label)
		for _, hash := range change.Dependencies() {
			fmt.Printf("    \"%s\" -> \"%s\"\n", hash, change.Hash())
		}
	}
	fmt.Println("}")
	return nil
}
