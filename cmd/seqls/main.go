// seqls lists directories, grouping numbered files into sequences.
//
// Usage:
//
//	seqls [options] [dir ...]
//
// Options:
//
//	-c <mode>    sequence grouping (Off, Sparse, Range) - default: Sparse
//	-l           long listing with image size and pixel
//	-x <exts>    group only these comma separated extensions
//	-v           verbose output
//	-version     show version information
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/mrjoshuak/go-imageseq/container"
	"github.com/mrjoshuak/go-imageseq/fileseq"
	"github.com/mrjoshuak/go-imageseq/imageio"
	"github.com/mrjoshuak/go-imageseq/internal/parallel"
	"github.com/mrjoshuak/go-imageseq/seq"
)

const version = "1.0.0"

func main() {
	mode := seq.CompressSparse
	flag.TextVar(&mode, "c", mode, "sequence grouping ("+strings.Join(seq.LabelsCompress(), ", ")+")")
	long := flag.Bool("l", false, "long listing with image size and pixel")
	exts := flag.String("x", "", "group only these comma separated extensions, e.g. .exr,.dpx")
	verbose := flag.Bool("v", false, "verbose output")
	showVersion := flag.Bool("version", false, "show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: seqls [options] [dir ...]\n\n")
		fmt.Fprintf(os.Stderr, "List directories, grouping numbered files into sequences.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("seqls version %s\n", version)
		os.Exit(0)
	}

	logger := newLogger(*verbose)
	imageio.SetLogger(logger)

	dirs := flag.Args()
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	extList := parseExts(*exts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	failed := false
	for _, dir := range dirs {
		if len(dirs) > 1 {
			fmt.Printf("%s:\n", dir)
		}
		if err := list(ctx, dir, mode, extList, *long, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func list(ctx context.Context, dir string, mode seq.Compress, exts []string, long bool, logger *slog.Logger) error {
	files, err := fileseq.ReadDir(dir, mode, exts...)
	if err != nil {
		return err
	}
	logger.Debug("read directory", "dir", dir, "entries", len(files))

	if !long {
		for _, f := range files {
			fmt.Println(display(f))
		}
		return nil
	}

	reg := imageio.Default()
	lines, err := parallel.Map(ctx, parallel.DefaultConfig(), len(files), func(i int) (string, error) {
		f := files[i]
		first := f.Name(f.Seq.Start())
		info, err := reg.Info(ctx, first)
		if err != nil {
			if !imageio.IsUnsupported(err) {
				logger.Warn("cannot read image info", "file", first, "err", err)
			}
			return fmt.Sprintf("%-40s %-5s", display(f), f.Type), nil
		}
		return fmt.Sprintf("%-40s %-5s %5dx%-5d %-9s %d",
			display(f), f.Type, info.Size.X, info.Size.Y, info.Pixel, max(f.Seq.Len(), 1)), nil
	})
	if err != nil {
		return err
	}
	for _, l := range lines {
		fmt.Println(l)
	}
	return nil
}

// display returns the name of f without its directory.
func display(f fileseq.File) string {
	f.Path = ""
	return f.String()
}

// parseExts normalizes a comma separated extension list to unique
// lower-case extensions with a leading dot.
func parseExts(s string) []string {
	var exts container.List[string]
	for _, ext := range strings.Split(s, ",") {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts.Add(ext)
	}
	return exts.Unique().Slice()
}
