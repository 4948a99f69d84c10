package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/pagescope"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultRecycleAfter is the number of rendered pages after which Chrome is
// restarted. Chrome's memory baseline grows with every page and never
// returns to its initial level.
const DefaultRecycleAfter = 75

// browser owns one headless Chrome process. Chrome is launched on first use
// and restarted once recycleAfter pages have been rendered and no page is
// open. It is safe for concurrent use.
type browser struct {
	bin          string
	userAgent    string
	recycleAfter int64

	mu       sync.Mutex
	rod      *rod.Browser
	launcher *launcher.Launcher
	rendered int64
	open     int
	closed   bool
}

// page opens a blank tab. The returned release func closes the tab and
// must be called exactly once.
func (b *browser) page() (*rod.Page, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, nil, errClosed
	}
	if b.rod != nil && b.open == 0 && b.recycleAfter > 0 && b.rendered >= b.recycleAfter {
		_ = b.shutdown()
	}
	if b.rod == nil {
		if err := b.launch(); err != nil {
			return nil, nil, pagescope.Errorf(pagescope.EUNAVAILABLE, "start browser (Chrome or Chromium must be installed): %v", err)
		}
	}

	p, err := b.rod.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, nil, fmt.Errorf("open page: %w", err)
	}
	if b.userAgent != "" {
		if err := p.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: b.userAgent}); err != nil {
			_ = p.Close()
			return nil, nil, fmt.Errorf("set user agent: %w", err)
		}
	}
	b.open++

	var once sync.Once
	release := func() {
		once.Do(func() {
			_ = p.Close()
			b.mu.Lock()
			b.open--
			b.rendered++
			b.mu.Unlock()
		})
	}
	return p, release, nil
}

// launch starts Chrome with flags that keep background tabs from being
// throttled. Must be called with mu held.
func (b *browser) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	if b.bin != "" {
		l = l.Bin(b.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}

	r := rod.New().ControlURL(u)
	if err := r.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connect to browser: %w", err)
	}

	b.rod = r
	b.launcher = l
	b.rendered = 0
	return nil
}

// shutdown stops Chrome. Must be called with mu held.
func (b *browser) shutdown() error {
	var err error
	if b.rod != nil {
		err = b.rod.Close()
		b.rod = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}

func (b *browser) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	return b.shutdown()
}

func (b *browser) pid() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}
