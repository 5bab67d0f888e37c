// Package processor runs the main loop: capture when asked, render when
// asked, then sleep.
package processor

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/eteq/rp2040-spectro/control"
	"github.com/eteq/rp2040-spectro/dsp"
	"github.com/eteq/rp2040-spectro/graphic"
)

type Capturer interface {
	Capture() ([]byte, error)
}

type Analyzer interface {
	Analyze([]byte) (dsp.Spectrum, error)
}

type Renderer interface {
	Bitmap() *graphic.Bitmap
	Time(samples []byte, spacing int) error
	Spectrum(bins []byte, spacing int) error
	Zoom(bins []byte, peak int) error
}

type Output interface {
	Show(*graphic.Bitmap) error
}

type Config struct {
	Capturer     Capturer
	Analyzer     Analyzer
	Renderer     Renderer
	Output       Output
	State        *control.State
	PollInterval time.Duration // sleep between iterations
	Logger       *log.Logger   // nil logs to log.Default()
	// OnCapture sees every successful capture before it is rendered.
	OnCapture func(samples []byte)
}

type Processor struct {
	cfg     Config
	log     *log.Logger
	samples []byte
}

func New(cfg Config) *Processor {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Millisecond
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Processor{cfg: cfg, log: logger}
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// Process runs Step every poll interval until ctx is done.
func (p *Processor) Process(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		p.Step()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Step runs one loop iteration without the sleep. Failures are logged and
// leave the loop running; a failed capture keeps the previous samples.
func (p *Processor) Step() (captured, drew bool) {
	state := p.cfg.State
	continuous := state.Continuous()

	if state.TakeCapture() || continuous {
		captured = p.capture()
	}

	if state.TakeDraw() || continuous {
		drew = p.draw(state.Snapshot())
	}

	return captured, drew
}

func (p *Processor) capture() bool {
	samples, err := p.cfg.Capturer.Capture()
	if err != nil {
		p.log.Println("capture:", err)
		return false
	}

	p.samples = samples
	if p.cfg.OnCapture != nil {
		p.cfg.OnCapture(samples)
	}

	return true
}

func (p *Processor) draw(m control.Mode) bool {
	if p.samples == nil {
		return false
	}

	if err := p.render(m); err != nil {
		p.log.Println("render:", err)
		return false
	}

	if err := p.cfg.Output.Show(p.cfg.Renderer.Bitmap()); err != nil {
		p.log.Println("display:", err)
		return false
	}

	return true
}

func (p *Processor) render(m control.Mode) error {
	if !m.Frequency {
		return p.cfg.Renderer.Time(p.samples, m.Spacing)
	}

	spectrum, err := p.cfg.Analyzer.Analyze(p.samples)
	if err != nil {
		return err
	}

	if m.Zoomed() {
		return p.cfg.Renderer.Zoom(spectrum.Bins, spectrum.Peak)
	}

	return p.cfg.Renderer.Spectrum(spectrum.Bins, m.Spacing)
}
