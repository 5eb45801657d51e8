// imgconv converts images and image sequences between formats and pixels.
//
// Usage:
//
//	imgconv [options] input output
//
// input may name a sequence, such as plate.1-10.raw or plate.####.raw.
// When it holds more than one frame, output must be a numbered template
// such as out.####.png; each frame keeps its number.
//
// Options:
//
//	-pixel <p>     convert to pixel, e.g. "RGBA U16" - default: keep
//	-proxy <p>     load reduced (None, 1/2, 1/4, 1/8)
//	-resize <WxH>  resize with a Lanczos filter; 0 keeps the aspect ratio
//	-c <method>    compression for raw output (none, rle, zip, zstd)
//	-quality <q>   JPEG and JPEG 2000 quality, 1-100
//	-frames <seq>  frames to convert, e.g. 1-10,20
//	-j <n>         frames converted at once - default: CPU count
//	-v             verbose output
//	-version       show version information
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/mrjoshuak/go-imageseq/compression"
	"github.com/mrjoshuak/go-imageseq/fileseq"
	"github.com/mrjoshuak/go-imageseq/imageio"
	"github.com/mrjoshuak/go-imageseq/imgdata"
	"github.com/mrjoshuak/go-imageseq/internal/parallel"
	"github.com/mrjoshuak/go-imageseq/pixel"
	"github.com/mrjoshuak/go-imageseq/seq"
)

const version = "1.0.0"

type options struct {
	pixel   pixel.Pixel
	convert bool
	proxy   imgdata.Proxy
	width   int
	height  int
	resize  bool
	save    imageio.SaveOptions
	frames  *seq.Seq
	workers int
}

func main() {
	var opts options
	pixelStr := flag.String("pixel", "", "convert to pixel, e.g. \"RGBA U16\"")
	flag.TextVar(&opts.proxy, "proxy", imgdata.ProxyNone, "load reduced ("+strings.Join(imgdata.LabelsProxy(), ", ")+")")
	resize := flag.String("resize", "", "resize to WxH with a Lanczos filter; 0 keeps the aspect ratio")
	flag.TextVar(&opts.save.Compression, "c", compression.ZIP, "compression for raw output ("+strings.Join(compression.Labels(), ", ")+")")
	flag.IntVar(&opts.save.Quality, "quality", 0, "JPEG and JPEG 2000 quality, 1-100")
	frames := flag.String("frames", "", "frames to convert, e.g. 1-10,20")
	flag.IntVar(&opts.workers, "j", 0, "frames converted at once (0 = CPU count)")
	verbose := flag.Bool("v", false, "verbose output")
	showVersion := flag.Bool("version", false, "show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: imgconv [options] input output\n\n")
		fmt.Fprintf(os.Stderr, "Convert images and image sequences.\n\n")
		fmt.Fprintf(os.Stderr, "Pixels: %s\n", strings.Join(pixel.Labels(), ", "))
		fmt.Fprintf(os.Stderr, "Formats: %s\n\n", strings.Join(imageio.Default().Names(), ", "))
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("imgconv version %s\n", version)
		os.Exit(0)
	}
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	if err := parseOptions(&opts, *pixelStr, *resize, *frames); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	imageio.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, flag.Arg(0), flag.Arg(1), opts, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseOptions(opts *options, pixelStr, resize, frames string) error {
	if pixelStr != "" {
		p, err := pixel.Parse(pixelStr)
		if err != nil {
			return err
		}
		opts.pixel, opts.convert = p, true
	}
	if resize != "" {
		w, h, err := parseSize(resize)
		if err != nil {
			return err
		}
		opts.width, opts.height, opts.resize = w, h, true
	}
	if frames != "" {
		s, err := seq.Parse(frames)
		if err != nil {
			return err
		}
		opts.frames = &s
	}
	return nil
}

// parseSize parses "WxH".
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, want WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if w < 0 || h < 0 || (w == 0 && h == 0) {
		return 0, 0, fmt.Errorf("invalid size %q", s)
	}
	return w, h, nil
}

// job is one frame to convert.
type job struct {
	in, out string
}

func plan(input, output string, opts options) ([]job, error) {
	in, err := fileseq.Resolve(input)
	if err != nil {
		return nil, err
	}
	out := fileseq.Parse(output)

	if opts.frames != nil {
		in.Type = fileseq.TypeSeq
		in.Seq.Frames = opts.frames.Frames
		in.Seq.Pad = max(in.Seq.Pad, opts.frames.Pad)
	}
	if in.Type != fileseq.TypeSeq || in.Seq.IsEmpty() {
		return []job{{in: in.String(), out: output}}, nil
	}
	if in.Seq.Len() > 1 && out.Number == "" {
		return nil, errors.New("output must be a numbered template such as out.####.png")
	}
	if out.Number != "" {
		out.Type = fileseq.TypeSeq
		if !out.IsWildcard() {
			out.Seq.Pad = in.Seq.Pad
		}
	}

	jobs := make([]job, in.Seq.Len())
	for i, frame := range in.Seq.Frames {
		jobs[i] = job{in: in.Name(frame), out: out.Name(frame)}
	}
	return jobs, nil
}

func run(ctx context.Context, input, output string, opts options, logger *slog.Logger) error {
	jobs, err := plan(input, output, opts)
	if err != nil {
		return err
	}
	reg := imageio.Default()
	cfg := parallel.Config{Workers: opts.workers, Grain: 1}
	return parallel.ForErr(ctx, cfg, len(jobs), func(ctx context.Context, i int) error {
		j := jobs[i]
		if err := convert(ctx, reg, j, opts); err != nil {
			return err
		}
		logger.Info("converted", "in", j.in, "out", j.out)
		return nil
	})
}

func convert(ctx context.Context, reg *imageio.Registry, j job, opts options) error {
	d, err := reg.Load(ctx, j.in, imageio.WithProxy(opts.proxy))
	if err != nil {
		return err
	}
	if opts.convert && d.Pixel() != opts.pixel {
		if d, err = imgdata.Converted(d, opts.pixel); err != nil {
			return err
		}
	}
	if opts.resize {
		if d, err = imgdata.Resize(d, opts.width, opts.height); err != nil {
			return err
		}
	}
	return reg.Save(ctx, j.out, d, opts.save)
}
