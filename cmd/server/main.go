// server is the task store service. Tasks live in memory and are lost when the process
// exits.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/astromechza/task-tracker/pkg/api"
	"github.com/astromechza/task-tracker/pkg/config"
	"github.com/astromechza/task-tracker/pkg/journal"
	"github.com/astromechza/task-tracker/pkg/task"
	"github.com/astromechza/task-tracker/pkg/viz"
)

func main() {
	if err := mainInner(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func mainInner() error {
	flagSet := pflag.NewFlagSet("server", pflag.ContinueOnError)
	addrVar := flagSet.String("addr", config.DefaultAddr, "the address to listen on")
	configVar := flagSet.String("config", "", "path to a yaml config file (default: $"+config.EnvVar+")")
	dumpVar := flagSet.Bool("dump", false, "write the change journal and its history graph to the temp dir on shutdown")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}

	cfg, err := config.Load(*configVar)
	if err != nil {
		return err
	}
	if flagSet.Changed("addr") {
		cfg.Server.Addr = *addrVar
	}
	if flagSet.Changed("dump") {
		cfg.Server.Dump = *dumpVar
	}

	j, err := journal.New()
	if err != nil {
		return fmt.Errorf("failed to start journal: %w", err)
	}
	store := task.NewStore().WithObserver(j)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg := new(sync.WaitGroup)
	failed := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("listening", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- fmt.Errorf("server listen failed: %w", err)
		}
	}()

	exit := make(chan os.Signal, 1) // we need to reserve to buffer size 1, so the notifier are not blocked
	signal.Notify(exit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-exit:
		slog.Info("Signal caught", "sig", sig)
	case err := <-failed:
		return err
	}
	_ = httpServer.Close()
	wg.Wait()

	if cfg.Server.Dump {
		dump(j)
	}
	return nil
}

// dump writes the journal and a rendering of its history to the temp dir.
func dump(j *journal.Journal) {
	tf := filepath.Join(os.TempDir(), fmt.Sprintf("tasks-%d.automerge", os.Getpid()))
	if err := os.WriteFile(tf, j.Save(), 0o644); err != nil {
		slog.Error("failed to dump", "err", err)
		return
	}
	slog.Info("dumped", "path", tf)

	doc, err := j.Snapshot()
	if err != nil {
		slog.Error("failed to snapshot journal", "err", err)
		return
	}
	if svgPath, err := viz.RenderToTemp(doc); err != nil {
		slog.Error("failed to render", "err", err)
	} else {
		slog.Info("rendered", "path", "file://"+svgPath)
	}
}
