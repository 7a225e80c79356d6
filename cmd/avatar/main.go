// Command avatar plays the language transition of the site avatar in a
// terminal. Press l or space to switch language, m to toggle reduced motion
// and q to quit.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Zachkp/diary/internal/avatar"
	"github.com/Zachkp/diary/internal/frames"
	"github.com/Zachkp/diary/internal/lang"
	"github.com/Zachkp/diary/internal/logging"
	"github.com/Zachkp/diary/internal/render"
)

type viewer struct {
	screen    tcell.Screen
	surface   *render.Surface
	anim      *avatar.Animator
	state     *lang.State
	reduced   atomic.Bool
	missing   int
	ox, oy    int
	canvasLen int
}

func main() {
	var (
		framesDir string
		statePath string
		logPath   string
		reduced   bool
		workers   int
	)
	flag.StringVar(&framesDir, "frames", filepath.Join("public", "avatar", "sequence"), "Directory holding the frame sequence")
	flag.StringVar(&statePath, "state", "", "Language preference file (default: user config dir)")
	flag.StringVar(&logPath, "log", "", "Write logs to this file")
	flag.BoolVar(&reduced, "reduced", false, "Start with reduced motion")
	flag.IntVar(&workers, "workers", 8, "Concurrent frame loads")
	flag.Parse()

	logger := zap.NewNop()
	if logPath != "" {
		l, err := logging.New("debug", false, logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
			os.Exit(1)
		}
		logger = l
	}
	defer func() { _ = logger.Sync() }()

	if err := run(framesDir, statePath, reduced, workers, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(framesDir, statePath string, reduced bool, workers int, logger *zap.Logger) error {
	store, err := preferenceStore(statePath)
	if err != nil {
		logger.Warn("language preference will not persist", zap.Error(err))
	}
	var stateOpts []lang.StateOption
	stateOpts = append(stateOpts, lang.WithLogger(logger.Named("lang")))
	if store != nil {
		stateOpts = append(stateOpts, lang.WithStore(store))
	}
	state := lang.NewState(stateOpts...)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v := &viewer{screen: screen, state: state}
	v.reduced.Store(reduced)

	w, h := screen.Size()
	drawText(screen, 1, 0, "loading avatar frames…", tcell.StyleDefault)
	screen.Show()

	preloader := frames.NewPreloader(os.DirFS(framesDir),
		frames.WithWorkers(workers),
		frames.WithLogger(logger.Named("frames")),
	)
	src := preloader.Preload(context.Background())
	v.missing = len(preloader.Failed())

	side, ox, oy := layout(w, h)
	v.surface = render.NewSurface(src, side, side, 1)
	v.ox, v.oy, v.canvasLen = ox, oy, side

	painter := avatar.PainterFunc(func(i frames.Index) {
		v.surface.Paint(i)
		_ = screen.PostEvent(tcell.NewEventInterrupt(i))
	})
	v.anim = avatar.NewAnimator(
		avatar.NewController(painter, avatar.WithInitialLanguage(state.Language())),
		avatar.WithReducedMotion(v.reduced.Load),
		avatar.WithLogger(logger.Named("avatar")),
	)
	defer v.anim.Close()
	state.Subscribe(v.anim.SetLanguage)
	v.anim.Ready()

	return v.loop()
}

func preferenceStore(path string) (*lang.FileStore, error) {
	if path != "" {
		return &lang.FileStore{Path: path}, nil
	}
	return lang.DefaultFileStore()
}

func (v *viewer) loop() error {
	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			side, ox, oy := layout(ev.Size())
			v.surface.Resize(side, side, 1)
			v.ox, v.oy, v.canvasLen = ox, oy, side
			v.draw()
			v.screen.Sync()
		case *tcell.EventInterrupt:
			v.draw()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
				return nil
			case ev.Rune() == 'l', ev.Rune() == ' ':
				v.state.Toggle()
				v.draw()
			case ev.Rune() == 'm':
				v.reduced.Store(!v.reduced.Load())
				v.draw()
			}
		}
	}
}

func (v *viewer) draw() {
	v.screen.Clear()
	if v.canvasLen > 0 {
		blit(v.screen, v.surface.Snapshot(), v.ox, v.oy)
	}
	_, h := v.screen.Size()
	st := status{
		frame:     int(v.anim.Frame()),
		total:     frames.Count,
		lang:      v.state.Language().String(),
		target:    v.state.Target().String(),
		animating: v.anim.Animating(),
		reduced:   v.reduced.Load(),
		missing:   v.missing,
	}
	drawText(v.screen, 0, h-1, st.String(), tcell.StyleDefault.Reverse(true))
	v.screen.Show()
}
