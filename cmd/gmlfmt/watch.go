package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gmlfmt/gmlfmt/cmd/internal/cliutil"
	"github.com/gmlfmt/gmlfmt/internal/config"
	"github.com/gmlfmt/gmlfmt/internal/types"
)

// cmdWatch re-runs lint on the given paths whenever one of their files
// changes on disk, debouncing bursts of writes the way a build step does.
func cmdWatch(paths []string, flags cliutil.Flags, cfg config.Config, logger *types.Logger) int {
	files, err := collectFiles(paths, cfg.Extensions)
	if err != nil {
		cliutil.PrintError("%v", err)
		return exitError
	}
	if len(files) == 0 {
		cliutil.PrintError("no .gml files found")
		return exitError
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		cliutil.PrintError("fsnotify: %v", err)
		return exitError
	}
	defer watcher.Close()

	watchedDirs := make(map[string]struct{})
	for _, f := range files {
		dir := filepath.Dir(f)
		if _, ok := watchedDirs[dir]; ok {
			continue
		}
		watchedDirs[dir] = struct{}{}
		if err := watcher.Add(dir); err != nil {
			cliutil.PrintError("watch %s: %v", dir, err)
			return exitError
		}
	}

	tracked := make(map[string]struct{}, len(files))
	for _, f := range files {
		tracked[f] = struct{}{}
	}

	fmt.Printf("watching %d file(s)\n", len(files))
	cmdLint(paths, flags, cfg, logger)

	var debounce *time.Timer
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return exitOK
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if _, ok := tracked[ev.Name]; !ok {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(300*time.Millisecond, func() {
				fmt.Printf("%s changed, re-linting\n", ev.Name)
				cmdLint(paths, flags, cfg, logger)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return exitOK
			}
			cliutil.PrintError("watcher error: %v", err)
		}
	}
}
