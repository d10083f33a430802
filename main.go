package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/isesword/arrow-cdata-bridge/bridge"
	"github.com/isesword/arrow-cdata-bridge/inspect"
)

func main() {
	libPath := flag.String("lib", "", "producer library to load (default $"+bridge.LibEnvVar+")")
	asJSON := flag.Bool("json", false, "print descriptor trees as JSON")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := runLocalDemo(*asJSON); err != nil {
		slog.Error("local demo failed", "error", err)
		os.Exit(1)
	}

	if *libPath == "" && os.Getenv(bridge.LibEnvVar) == "" {
		slog.Info("no producer library configured, skipping", "env", bridge.LibEnvVar)
		return
	}
	if err := runLibraryDemo(*libPath, *asJSON); err != nil {
		slog.Error("library demo failed", "error", err)
		os.Exit(1)
	}
}

// runLibraryDemo takes a value from the library, prints it and hands it back.
func runLibraryDemo(libPath string, asJSON bool) error {
	brg, err := bridge.LoadBridge(libPath)
	if err != nil {
		return err
	}
	fmt.Printf("ABI Version: %d (%s)\n", brg.AbiVersion(), brg.Path())

	b, err := brg.Export()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := printTree(b.Schema, b.Array, asJSON); err != nil {
		b.Release()
		return err
	}
	if err := brg.Consume(b); err != nil {
		b.Release()
		return fmt.Errorf("consume: %w", err)
	}
	fmt.Println("✅ value handed back to the library")
	return nil
}

func printTree(s *bridge.ArrowSchema, a *bridge.ArrowArray, asJSON bool) error {
	if asJSON {
		out, err := inspect.JSON(s, a)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}
	printNode(s, a, 0)
	return nil
}

func printNode(s *bridge.ArrowSchema, a *bridge.ArrowArray, depth int) {
	indent := strings.Repeat("  ", depth)
	name := s.Name()
	if name == "" {
		name = "-"
	}
	fmt.Printf("%s%s %q", indent, name, s.Format())
	if s.Flags() != 0 {
		fmt.Printf(" [%s]", s.Flags())
	}
	if a != nil {
		fmt.Printf(" length=%d null_count=%d buffers=%d", a.Len(), a.NullCount(), a.NumBuffers())
	}
	fmt.Println()

	for i, c := range s.Children() {
		var ac *bridge.ArrowArray
		if a != nil && i < a.NumChildren() {
			ac = a.Child(i)
		}
		printNode(c, ac, depth+1)
	}
	if d := s.Dictionary(); d != nil {
		var ad *bridge.ArrowArray
		if a != nil {
			ad = a.Dictionary()
		}
		fmt.Printf("%s  dictionary:\n", indent)
		printNode(d, ad, depth+2)
	}
}
