package imageio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/mrjoshuak/go-imageseq/container"
	"github.com/mrjoshuak/go-imageseq/imgdata"
)

// Registry maps file extensions to codecs. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec
	exts   map[string]Codec
	names  container.List[string]
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithCodec registers c when the registry is built.
func WithCodec(c Codec) RegistryOption {
	return func(r *Registry) { r.Register(c) }
}

// WithBuiltins registers every codec shipped with the package.
func WithBuiltins() RegistryOption {
	return func(r *Registry) {
		for _, c := range Builtins() {
			r.Register(c)
		}
	}
}

// NewRegistry returns a registry holding the codecs added by opts.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		codecs: make(map[string]Codec),
		exts:   make(map[string]Codec),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Default returns a new registry holding the built-in codecs.
func Default() *Registry {
	return NewRegistry(WithBuiltins())
}

// Builtins returns new instances of the built-in codecs.
func Builtins() []Codec {
	return []Codec{
		Raw{},
		NewJP2(),
		NewJ2K(),
		PNG(),
		JPEG(),
		GIF(),
		TIFF(),
		BMP(),
		WebP(),
	}
}

// Register adds c, replacing any codec with the same name. Extensions
// already claimed by another codec move to c.
func (r *Registry) Register(c Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ext, old := range r.exts {
		if old.Name() == c.Name() {
			delete(r.exts, ext)
		}
	}
	r.codecs[c.Name()] = c
	if !r.names.Contains(c.Name()) {
		r.names.Add(c.Name())
	}
	for _, ext := range c.Extensions() {
		r.exts[strings.ToLower(ext)] = c
	}
	Logger().Debug("imageio: register codec", "name", c.Name(), "extensions", c.Extensions())
}

// Names returns the codec names in the order they were first registered.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return container.NewList(r.names...).Slice()
}

// Codec returns the codec registered under name.
func (r *Registry) Codec(name string) (Codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codecs[name]
	return c, ok
}

// ForFile returns the codec for the extension of name.
func (r *Registry) ForFile(name string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(name))
	r.mu.RLock()
	c, ok := r.exts[ext]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return c, nil
}

// Extensions returns the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.exts))
	for ext := range r.exts {
		out = append(out, ext)
	}
	slices.Sort(out)
	return out
}

// LoadOption configures Registry.Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	proxy imgdata.Proxy
}

// WithProxy loads the image reduced by p.
func WithProxy(p imgdata.Proxy) LoadOption {
	return func(c *loadConfig) { c.proxy = p }
}

// Info reads the description of the image at path.
func (r *Registry) Info(ctx context.Context, path string) (imgdata.Info, error) {
	if err := ctx.Err(); err != nil {
		return imgdata.Info{}, err
	}
	c, err := r.ForFile(path)
	if err != nil {
		return imgdata.Info{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return imgdata.Info{}, err
	}
	defer f.Close()

	info, err := c.Info(bufio.NewReader(f))
	if err != nil {
		return imgdata.Info{}, fmt.Errorf("imageio: %s: %w", path, err)
	}
	info.FileName = path
	return info, nil
}

// Load decodes the image at path.
func (r *Registry) Load(ctx context.Context, path string, opts ...LoadOption) (*imgdata.Data, error) {
	var cfg loadConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := r.ForFile(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	Logger().Debug("imageio: load", "path", path, "codec", c.Name(), "proxy", cfg.proxy)
	d, err := load(c, bufio.NewReader(f), cfg.proxy)
	if err != nil {
		return nil, fmt.Errorf("imageio: %s: %w", path, err)
	}
	info := d.Info()
	info.FileName = path
	if err := d.Set(info); err != nil {
		return nil, err
	}
	return d, nil
}

func load(c Codec, rd *bufio.Reader, proxy imgdata.Proxy) (*imgdata.Data, error) {
	if proxy == imgdata.ProxyNone {
		return c.Load(rd)
	}
	if pl, ok := c.(ProxyLoader); ok {
		return pl.LoadProxy(rd, proxy)
	}
	full, err := c.Load(rd)
	if err != nil {
		return nil, err
	}
	info := full.Info()
	info.Size = proxy.ScaleSize(info.Size)
	info.Proxy = proxy
	d, err := imgdata.New(info)
	if err != nil {
		return nil, err
	}
	if err := imgdata.ProxyScale(full, d, proxy); err != nil {
		return nil, err
	}
	return d, nil
}

// Save encodes d to path, replacing any existing file. A partially written
// file is removed on error.
func (r *Registry) Save(ctx context.Context, path string, d *imgdata.Data, opts SaveOptions) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	c, err := r.ForFile(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	Logger().Debug("imageio: save", "path", path, "codec", c.Name(), "pixel", d.Pixel())
	w := bufio.NewWriter(f)
	if err := c.Save(w, d, opts); err != nil {
		return fmt.Errorf("imageio: %s: %w", path, err)
	}
	return w.Flush()
}

// IsUnsupported reports whether err means a codec could not handle the
// request, as opposed to an I/O failure.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnknownFormat) || errors.Is(err, ErrUnsupportedPixel)
}
