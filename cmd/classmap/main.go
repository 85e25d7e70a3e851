// # cmd/classmap/main.go
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"classmap/internal/config"
	"classmap/internal/index"
	"classmap/internal/output"
	"classmap/internal/store"
)

var (
	configPath = flag.String("config", "./classmap.toml", "Path to config file")
	className  = flag.String("name", "", "Look up the file declaring a class name")
	filePath   = flag.String("file", "", "Look up the class declared by a file")
	deps       = flag.Bool("deps", false, "Print dependencies instead of locations for -name/-file")
	all        = flag.Bool("all", false, "Print the full class map")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("classmap v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = config.Default()
		} else {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	if flag.NArg() > 0 {
		cfg.Roots = flag.Args()
	}

	idx, err := index.New(cfg.Roots, cfg.Exclude.Dirs, cfg.Exclude.Files, cfg.PHPVersion)
	if err != nil {
		slog.Error("failed to initialize index", "error", err)
		os.Exit(1)
	}

	switch {
	case *className != "":
		if *deps {
			printList(idx.DependenciesByName(*className))
		} else if path := idx.FilePathByName(*className); path != "" {
			fmt.Println(path)
		} else {
			fmt.Fprintf(os.Stderr, "class %q not found\n", *className)
			os.Exit(1)
		}
	case *filePath != "":
		if *deps {
			printList(idx.DependenciesByFile(*filePath))
		} else if name := idx.NameByFilePath(*filePath); name != "" {
			fmt.Println(name)
		} else {
			fmt.Fprintf(os.Stderr, "no indexed class declared in %q\n", *filePath)
			os.Exit(1)
		}
	case *all:
		names := idx.AllMappedNames()
		sorted := make([]string, 0, len(names))
		for name := range names {
			sorted = append(sorted, name)
		}
		sort.Strings(sorted)
		for _, name := range sorted {
			fmt.Printf("%s\t%s\n", name, names[name])
		}
	default:
		fmt.Printf("indexed %d classes across %d files\n",
			len(idx.AllMappedNames()), len(idx.AllFileDependencies()))
	}

	if err := writeOutputs(cfg, idx); err != nil {
		slog.Error("failed to write outputs", "error", err)
		os.Exit(1)
	}

	if cfg.Store.Enabled {
		if err := persistIndex(cfg, idx); err != nil {
			slog.Error("failed to persist class map", "error", err)
			os.Exit(1)
		}
	}
}

func writeOutputs(cfg *config.Config, idx *index.Index) error {
	type job struct {
		path     string
		generate func() (string, error)
	}

	jobs := []job{
		{cfg.Output.TSV, output.NewTSVGenerator(idx).Generate},
		{cfg.Output.DOT, output.NewDOTGenerator(idx).Generate},
		{cfg.Output.JSON, output.NewJSONGenerator(idx).Generate},
	}

	for _, j := range jobs {
		if j.path == "" {
			continue
		}
		content, err := j.generate()
		if err != nil {
			return err
		}
		if err := os.WriteFile(j.path, []byte(content), 0o644); err != nil {
			return err
		}
		slog.Info("wrote output", "path", j.path)
	}
	return nil
}

func persistIndex(cfg *config.Config, idx *index.Index) error {
	st, err := store.Open(cfg.Store.Path, cfg.Store.Project)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SaveIndex(idx); err != nil {
		return err
	}
	slog.Info("persisted class map", "path", cfg.Store.Path, "project", cfg.Store.Project)
	return nil
}

func printList(items []string) {
	for _, item := range items {
		fmt.Println(item)
	}
}
