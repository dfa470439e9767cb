// Command dlbounds records a YAML op script into a display list and prints
// the conservative device-space bounds of every draw op and of the whole
// list.
//
// Usage:
//
//	dlbounds [-v] [-cull x,y,w,h] script.yaml
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/displaylist"
)

func main() {
	var (
		verbose = flag.Bool("v", false, "log debug messages to stderr")
		cull    = flag.String("cull", "", "cull rect as x,y,w,h; overrides the script's cull")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: dlbounds [-v] [-cull x,y,w,h] script.yaml\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	displaylist.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(os.Stdout, flag.Arg(0), *cull); err != nil {
		log.Fatalf("dlbounds: %v", err)
	}
}

func run(w io.Writer, path, cullFlag string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	s, err := parseScript(data)
	if err != nil {
		return err
	}
	var cull *displaylist.Rect
	if cullFlag != "" {
		r, err := parseCullFlag(cullFlag)
		if err != nil {
			return err
		}
		cull = &r
	}
	dl, err := record(s, cull)
	if err != nil {
		return err
	}
	return report(w, dl)
}

// report prints one line per draw op followed by the list's bounds.
func report(w io.Writer, dl *displaylist.DisplayList) error {
	var lines []displaylist.OpBounds
	opts := []displaylist.CalculatorOption{
		displaylist.WithOpObserver(func(ob displaylist.OpBounds) {
			lines = append(lines, ob)
		}),
	}
	if r, ok := dl.CullRect(); ok {
		opts = append(opts, displaylist.WithCullRect(r))
	}
	c := displaylist.NewBoundsCalculator(opts...)
	c.Process(dl.Ops())

	for _, ob := range lines {
		name := strings.Repeat("  ", ob.Depth) + ob.Op.Kind().String()
		if _, err := fmt.Fprintf(w, "%4d  %-24s %s\n", ob.Index, name, boundsText(ob.Bounds, ob.Unbounded)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "bounds: %s\n", boundsText(c.Bounds(), c.IsUnbounded()))
	return err
}

func boundsText(r displaylist.Rect, unbounded bool) string {
	switch {
	case unbounded:
		return "unbounded"
	case r.IsEmpty():
		return "empty"
	}
	return r.String()
}
