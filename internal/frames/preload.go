package frames

import (
	"context"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 8

// Preloader fetches and decodes every frame once. Readiness is an
// all-settle join: a frame that fails to load is recorded and skipped.
type Preloader struct {
	fsys    fs.FS
	workers int
	log     *zap.Logger

	once   sync.Once
	ready  chan struct{}
	store  *Store
	mu     sync.Mutex
	failed []Index
}

type Option func(*Preloader)

// WithWorkers bounds the number of concurrent loads.
func WithWorkers(n int) Option {
	return func(p *Preloader) {
		if n > 0 {
			p.workers = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Preloader) { p.log = l }
}

// NewPreloader reads frames named by Name from the root of fsys.
func NewPreloader(fsys fs.FS, opts ...Option) *Preloader {
	p := &Preloader{
		fsys:    fsys,
		workers: defaultWorkers,
		log:     zap.NewNop(),
		ready:   make(chan struct{}),
		store:   NewStore(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Preload loads all frames and returns the populated store. Only the first
// call does work; later calls wait for it and return the same store.
func (p *Preloader) Preload(ctx context.Context) *Store {
	p.once.Do(func() {
		start := time.Now()
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.workers)
		for i := First; i <= Last; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					p.fail(i, err)
					return nil
				}
				img, err := p.load(i)
				if err != nil {
					p.fail(i, err)
					return nil
				}
				p.store.Put(i, img)
				return nil
			})
		}
		_ = g.Wait()

		p.log.Info("avatar frames preloaded",
			zap.Int("loaded", p.store.Loaded()),
			zap.Int("failed", len(p.Failed())),
			zap.Duration("took", time.Since(start)),
		)
		close(p.ready)
	})
	<-p.ready
	return p.store
}

// Ready is closed once every load attempt has settled.
func (p *Preloader) Ready() <-chan struct{} { return p.ready }

// Store returns the frames if preloading has finished.
func (p *Preloader) Store() (*Store, bool) {
	select {
	case <-p.ready:
		return p.store, true
	default:
		return nil, false
	}
}

// Failed lists the frames that could not be loaded, in order.
func (p *Preloader) Failed() []Index {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := append([]Index(nil), p.failed...)
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

func (p *Preloader) load(i Index) (image.Image, error) {
	f, err := p.fsys.Open(Name(i))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", Name(i), err)
	}
	return img, nil
}

func (p *Preloader) fail(i Index, err error) {
	p.log.Warn("avatar frame unavailable", zap.Int("frame", int(i)), zap.Error(err))
	p.mu.Lock()
	p.failed = append(p.failed, i)
	p.mu.Unlock()
}
