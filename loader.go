package hoverfx

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Fetcher opens asset sources.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (io.ReadCloser, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, source string) (io.ReadCloser, error)

// Fetch calls f(ctx, source).
func (f FetcherFunc) Fetch(ctx context.Context, source string) (io.ReadCloser, error) {
	return f(ctx, source)
}

// ErrHTTPStatus is returned for a non-2xx response.
var ErrHTTPStatus = errors.New("unexpected HTTP status")

// DefaultFetcher reads http(s) URLs with net/http and everything else from
// the local file system.
func DefaultFetcher() Fetcher {
	return FetcherFunc(func(ctx context.Context, source string) (io.ReadCloser, error) {
		if isURL(source) {
			return fetchHTTP(ctx, source)
		}
		f, err := os.Open(filepath.Clean(source))
		if err != nil {
			return nil, fmt.Errorf("hoverfx: open %s: %w", source, err)
		}
		return f, nil
	})
}

// FSFetcher reads http(s) URLs with net/http and everything else from fsys.
func FSFetcher(fsys fs.FS) Fetcher {
	return FetcherFunc(func(ctx context.Context, source string) (io.ReadCloser, error) {
		if isURL(source) {
			return fetchHTTP(ctx, source)
		}
		f, err := fsys.Open(strings.TrimPrefix(filepath.ToSlash(source), "/"))
		if err != nil {
			return nil, fmt.Errorf("hoverfx: open %s: %w", source, err)
		}
		return f, nil
	})
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func fetchHTTP(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("hoverfx: fetch %s: %w", url, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hoverfx: fetch %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("hoverfx: fetch %s: %w: %s", url, ErrHTTPStatus, resp.Status)
	}
	return resp.Body, nil
}

// loader decodes assets on background goroutines and hands the results back
// to the update goroutine through Poll. Decoding goroutines never touch
// textures; they only queue completion funcs.
type loader struct {
	ctx    context.Context
	cancel context.CancelFunc
	fetch  Fetcher
	video  VideoDecoder

	results chan func()

	// Fields below are owned by the update goroutine.
	pending  int
	textures []*Texture
	players  []*VideoPlayer
	closed   bool
}

func newLoader(fetch Fetcher, video VideoDecoder) *loader {
	if fetch == nil {
		fetch = DefaultFetcher()
	}
	if video == nil {
		video = DecodeGIF
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &loader{
		ctx:     ctx,
		cancel:  cancel,
		fetch:   fetch,
		video:   video,
		results: make(chan func(), 16),
	}
}

// LoadTexture returns an empty texture at once and fills it when source has
// been decoded. onLoad runs on the update goroutine after the pixels are set.
// A failed load leaves the texture empty and is only logged at Debug level.
func (l *loader) LoadTexture(source string, onLoad func(*Texture)) *Texture {
	tex := newTexture(source)
	if l.closed {
		return tex
	}
	l.textures = append(l.textures, tex)
	l.start(source, func(r io.Reader) (func(), error) {
		img, _, err := image.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("hoverfx: decode %s: %w", source, err)
		}
		return func() {
			tex.setPixels(img)
			if onLoad != nil {
				onLoad(tex)
			}
		}, nil
	})
	return tex
}

// LoadVideo returns a player at once. When the clip's first frame is
// decoded the player gets a fresh texture and onFirstFrame runs on the
// update goroutine.
func (l *loader) LoadVideo(source string, onFirstFrame func(*VideoPlayer, *Texture)) *VideoPlayer {
	p := newVideoPlayer(source)
	if l.closed {
		return p
	}
	l.players = append(l.players, p)
	l.start(source, func(r io.Reader) (func(), error) {
		clip, err := l.video(r)
		if err != nil {
			return nil, fmt.Errorf("hoverfx: decode video %s: %w", source, err)
		}
		if err := clip.normalize(); err != nil {
			return nil, fmt.Errorf("hoverfx: decode video %s: %w", source, err)
		}
		return func() {
			if p.disposed {
				return
			}
			tex := p.setClip(clip)
			l.textures = append(l.textures, tex)
			if onFirstFrame != nil {
				onFirstFrame(p, tex)
			}
		}, nil
	})
	return p
}

// start fetches source on a goroutine and queues the completion produced by
// decode.
func (l *loader) start(source string, decode func(io.Reader) (func(), error)) {
	l.pending++
	go func() {
		var apply func()
		rc, err := l.fetch.Fetch(l.ctx, source)
		if err == nil {
			apply, err = decode(rc)
			_ = rc.Close()
		}

		done := func() {
			l.pending--
			if err != nil {
				Logger().Debug("hoverfx: load failed", slog.String("source", source), slog.Any("error", err))
				return
			}
			apply()
		}
		select {
		case l.results <- done:
		case <-l.ctx.Done():
		}
	}()
}

// Poll applies every queued completion without blocking and returns how
// many ran.
func (l *loader) Poll() int {
	n := 0
	for {
		select {
		case done := <-l.results:
			if l.closed {
				continue
			}
			done()
			n++
		default:
			return n
		}
	}
}

// Pending returns the number of loads whose completion has not been applied.
func (l *loader) Pending() int {
	return l.pending
}

// Wait blocks until every pending load has completed or ctx is done,
// applying completions as they arrive.
func (l *loader) Wait(ctx context.Context) error {
	for l.pending > 0 && !l.closed {
		select {
		case done := <-l.results:
			done()
		case <-ctx.Done():
			return fmt.Errorf("hoverfx: wait for assets: %w", ctx.Err())
		}
	}
	return nil
}

// Close cancels outstanding fetches and releases every texture and player.
// Completions still in flight are dropped.
func (l *loader) Close() {
	if l.closed {
		return
	}
	l.closed = true
	l.cancel()
	for _, p := range l.players {
		p.dispose()
	}
	for _, t := range l.textures {
		t.Dispose()
	}
	l.players = nil
	l.textures = nil
}
