// imginfo prints the description of image files and sequences.
//
// Usage:
//
//	imginfo [options] file ...
//
// A file may name a sequence, such as plate.1-10.raw or plate.####.raw.
// Each file prints on one line as
//
//	name widthxheight:aspect pixel duration@speed
//
// Options:
//
//	-a           print every frame of a sequence
//	-speed <r>   playback rate of sequences (default 24)
//	-u <units>   time units: Timecode or Frames (default Timecode)
//	-v           verbose output, including tags
//	-version     show version information
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/mrjoshuak/go-imageseq/fileseq"
	"github.com/mrjoshuak/go-imageseq/imageio"
	"github.com/mrjoshuak/go-imageseq/imgdata"
	"github.com/mrjoshuak/go-imageseq/seq"
)

const version = "1.1.0"

type options struct {
	all     bool
	verbose bool
	speed   seq.Speed
	units   seq.Units
}

func main() {
	opts := options{speed: seq.NewSpeed(seq.DefaultFPS)}
	flag.BoolVar(&opts.all, "a", false, "print every frame of a sequence")
	flag.TextVar(&opts.speed, "speed", opts.speed, "playback rate ("+strings.Join(seq.LabelsFPS(), ", ")+")")
	flag.TextVar(&opts.units, "u", seq.UnitsTimecode, "time units ("+strings.Join(seq.LabelsUnits(), ", ")+")")
	flag.BoolVar(&opts.verbose, "v", false, "verbose output, including tags")
	showVersion := flag.Bool("version", false, "show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: imginfo [options] file ...\n\n")
		fmt.Fprintf(os.Stderr, "Print the description of image files and sequences.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("imginfo version %s\n", version)
		os.Exit(0)
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	imageio.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reg := imageio.Default()
	failed := false
	for _, arg := range flag.Args() {
		if err := printInfo(ctx, os.Stdout, reg, arg, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func printInfo(ctx context.Context, w io.Writer, reg *imageio.Registry, arg string, opts options) error {
	f, err := fileseq.Resolve(arg)
	if err != nil {
		return err
	}
	if !f.Seq.Speed.Valid() {
		f.Seq.Speed = opts.speed
	}
	names := f.Expand()
	info, err := reg.Info(ctx, names[0])
	if err != nil {
		return err
	}

	if opts.verbose {
		for _, line := range verbose(f, info, opts.units) {
			fmt.Fprintln(w, line)
		}
	} else {
		fmt.Fprintln(w, summary(f, info, opts.units))
	}
	if !opts.all || len(names) < 2 {
		return nil
	}
	for _, name := range names {
		info, err := reg.Info(ctx, name)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "  "+describe(info))
	}
	return nil
}

func frames(f fileseq.File) seq.Seq {
	s := f.Seq
	if s.IsEmpty() {
		s.Frames = []int64{0}
	}
	return s
}

func aspect(info imgdata.Info) float64 {
	if info.Size.Y == 0 {
		return 0
	}
	return float64(info.Size.X) / float64(info.Size.Y)
}

// summary formats one line: name, size and aspect, pixel, then the length
// of the sequence at its speed.
func summary(f fileseq.File, info imgdata.Info, units seq.Units) string {
	s := frames(f)
	sp := s.Speed.Resolve()
	return fmt.Sprintf("%s %dx%d:%.2f %v %s@%.2f",
		f, info.Size.X, info.Size.Y, aspect(info), info.Pixel,
		seq.FormatUnits(int64(s.Len()), sp, units), sp.Float())
}

func verbose(f fileseq.File, info imgdata.Info, units seq.Units) []string {
	s := frames(f)
	sp := s.Speed.Resolve()
	lines := []string{
		f.String(),
		"Layer = " + info.LayerName,
		fmt.Sprintf("  Width = %d", info.Size.X),
		fmt.Sprintf("  Height = %d", info.Size.Y),
		fmt.Sprintf("  Aspect = %.2f", aspect(info)),
		fmt.Sprintf("  Pixel = %v", info.Pixel),
		"Start = " + seq.FormatUnits(s.Start(), sp, units),
		"End = " + seq.FormatUnits(s.End(), sp, units),
		"Duration = " + seq.FormatUnits(int64(s.Len()), sp, units),
		"Speed = " + sp.String(),
	}
	for _, tag := range info.Tags {
		lines = append(lines, fmt.Sprintf("Tag %s = %s", tag.Key, tag.Value))
	}
	return lines
}

func describe(info imgdata.Info) string {
	s := fmt.Sprintf("%s: %dx%d %v", info.FileName, info.Size.X, info.Size.Y, info.Pixel)
	if info.LayerName != "" && info.LayerName != "Default" {
		s += " layer=" + info.LayerName
	}
	if info.BGR {
		s += " bgr"
	}
	if info.Mirror.X || info.Mirror.Y {
		s += fmt.Sprintf(" mirror=%v,%v", info.Mirror.X, info.Mirror.Y)
	}
	if !info.Endian.IsNative() {
		s += " endian=" + info.Endian.String()
	}
	return s
}
