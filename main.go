package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/martinsuchenak/wmisweep/internal/config"
	"github.com/martinsuchenak/wmisweep/internal/filters"
	"github.com/martinsuchenak/wmisweep/internal/log"
	"github.com/martinsuchenak/wmisweep/internal/wmi"
	"github.com/paularlott/cli"
)

func main() {
	cmd := &cli.Command{
		Name:        "wmisweep",
		Usage:       "Inventory and remove WMI event filter registrations",
		Description: "Walks WMI namespaces for __EventFilter instances, prints them, and optionally removes them after confirmation",
		Flags:       config.GetFlags(),
		Run:         run,
	}

	if err := cmd.Execute(context.Background()); err != nil {
		if errors.Is(err, filters.ErrDeclined) {
			log.Info("Aborted by operator, nothing removed")
		} else {
			log.Error("Run failed", "error", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.Load()
	log.Configure(cfg.LogLevel, cfg.LogFormat)

	runID := uuid.NewString()
	log.Info("Starting event filter sweep", "run_id", runID, "namespace", cfg.Namespace, "raw", cfg.Raw)

	if !wmi.IsElevated() {
		log.Warn("Process is not elevated; subscription namespaces may be unreadable")
	}

	store := wmi.NewStore()
	stdin := bufio.NewReader(os.Stdin)

	if cfg.IsRemoveRequested() {
		// Removal searches only the one namespace the operator names;
		// it never recurses.
		namespace := cfg.Namespace
		if namespace == "" {
			fmt.Print("Namespace to remove from: ")
			var err error
			namespace, err = filters.ReadLine(stdin)
			if err != nil {
				return fmt.Errorf("reading namespace: %w", err)
			}
		}

		remover := &filters.Remover{Store: store, In: stdin, Out: os.Stdout}
		if err := remover.Run(namespace, cfg.Remove, cfg.Like); err != nil {
			return err
		}
	}

	var namespaces []string
	if cfg.Namespace != "" {
		namespaces = append([]string{cfg.Namespace}, filters.Walk(store, cfg.Namespace, true)...)
	} else {
		namespaces = filters.Walk(store, wmi.RootNamespace, true)
	}

	lister := &filters.Lister{Store: store, Out: os.Stdout, Raw: cfg.Raw}
	total := 0
	for _, namespace := range namespaces {
		total += lister.List(namespace)
	}

	log.Info("Sweep complete", "run_id", runID, "namespaces", len(namespaces), "filters", total)
	return nil
}
