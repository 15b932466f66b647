// cmd/minirel/main.go
//
// minirel - interactive shell for the minirel relational engine.
//
// Usage:
//
//	minirel [-config path] [script]
//
// With a script argument, commands are read from the file; otherwise an
// interactive line editor starts. Use HELP for available commands.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"

	"minirel/pkg/cli"
	"minirel/pkg/config"
)

func main() {
	cfgPath := flag.String("config", "minirel.yaml", "Path to the engine config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	kind, err := cfg.IndexKind()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	engine := cli.NewEngine(kind, os.Stdout)

	// scripted mode
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		engine.Run(f)
		return
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if f, err := os.Open(cfg.HistoryFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("minirel (%s index)\n", kind)
	fmt.Println("Type HELP for available commands.")

	for {
		input, err := line.Prompt("minirel> ")
		if err != nil {
			// ctrl-c or EOF
			fmt.Println()
			break
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if err := engine.Execute(input); err != nil {
			if errors.Is(err, cli.ErrExit) {
				break
			}
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}

	if f, err := os.Create(cfg.HistoryFile); err == nil {
		line.WriteHistory(f)
		f.Close()
	}
}
