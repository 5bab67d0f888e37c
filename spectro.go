// Package spectro wires a sample source, a panel and three buttons into a
// running spectrometer.
package spectro

import (
	"context"
	"log"
	"time"

	"github.com/eteq/rp2040-spectro/config"
	"github.com/eteq/rp2040-spectro/control"
	"github.com/eteq/rp2040-spectro/display"
	"github.com/eteq/rp2040-spectro/dsp"
	"github.com/eteq/rp2040-spectro/dsp/window"
	"github.com/eteq/rp2040-spectro/graphic"
	"github.com/eteq/rp2040-spectro/input"
	"github.com/eteq/rp2040-spectro/processor"
	"github.com/pkg/errors"
)

// AppName is the app name
const AppName = "spectro"

// blinkPhase is how long the LED stays in each state of a startup blink.
const blinkPhase = 250 * time.Millisecond

// SplashHint is the second line of the boot screen.
const SplashHint = "A:run B:x C:f"

type Config struct {
	// Runtime parameters, sanitized by New
	Params config.Config
	// Where samples come from. Configured by New
	Source input.SampleSource
	// Stimulus line. When nil and Source is an input.Stimulator, its pin is used
	Stimulus input.Pin
	// Status LED. Nil for none
	LED input.Pin
	// Bus the panel is attached to
	Transport display.Transport
	// Hold timers for the buttons. Nil means control.SystemTimers
	Timers control.Timers
	// Logger for recovered failures. Nil means log.Default()
	Logger *log.Logger
	// Function to call with every successful capture
	OnCapture func(samples []byte)
	// Function to call while blinking. Nil means time.Sleep
	Sleep func(time.Duration)
}

// Spectro is an assembled instrument. Build with New, then Run.
type Spectro struct {
	cfg Config

	capturer *input.Capturer
	analyzer *dsp.Analyzer
	renderer *graphic.Renderer
	panel    *display.Panel
	state    *control.State
	buttons  *control.Buttons
}

func New(cfg Config) (*Spectro, error) {
	if cfg.Source == nil {
		return nil, errors.New("no sample source")
	}

	if cfg.Transport == nil {
		return nil, errors.New("no panel transport")
	}

	if err := cfg.Params.Sanitize(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	p := cfg.Params

	win, err := window.Lookup(p.Window)
	if err != nil {
		return nil, err
	}

	if cfg.Stimulus == nil {
		if st, ok := cfg.Source.(input.Stimulator); ok {
			cfg.Stimulus = st.Stimulus()
		}
	}

	if cfg.LED == nil {
		cfg.LED = input.NopPin{}
	}

	if cfg.Timers == nil {
		cfg.Timers = control.SystemTimers{}
	}

	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}

	if err := cfg.Source.Configure(p.Channel, input.Divider(p.SampleRate)); err != nil {
		return nil, errors.Wrap(err, "failed to configure source")
	}

	analyzer := dsp.NewAnalyzer(dsp.AnalyzerConfig{
		SampleRate: p.SampleRate,
		SampleSize: p.SampleSize,
		Windower:   win,
	})

	s := &Spectro{
		cfg: cfg,
		capturer: input.NewCapturer(input.CapturerConfig{
			Source:     cfg.Source,
			Stimulus:   cfg.Stimulus,
			LED:        cfg.LED,
			SampleSize: p.SampleSize,
		}),
		analyzer: analyzer,
		renderer: graphic.NewRenderer(graphic.RendererConfig{
			SampleRate: p.SampleRate,
			SampleSize: p.SampleSize,
			Frequency:  analyzer.Frequency,
		}),
		panel: display.NewPanel(cfg.Transport, p.PanelAddress),
		state: control.NewState(control.Limits{
			MaxSpacing:         p.MaxSpacing(),
			MaxSpectrumSpacing: p.MaxSpectrumSpacing(),
		}),
	}

	s.buttons = control.NewButtons(control.ButtonsConfig{
		Timers:      cfg.Timers,
		HoldTimeout: p.HoldTimeout,
		OnClick:     s.state.Click,
	})

	return s, nil
}

// Buttons returns the button state machines. Feed them edges with Interrupt
// or Send.
func (s *Spectro) Buttons() *control.Buttons {
	return s.buttons
}

// State returns the mode state.
func (s *Spectro) State() *control.State {
	return s.state
}

// Capture runs a single capture cycle outside the loop.
func (s *Spectro) Capture() ([]byte, error) {
	return s.capturer.Capture()
}

// Start blinks the LED, brings up the panel and draws the boot screen.
func (s *Spectro) Start() error {
	for i := 0; i < s.cfg.Params.StartupBlinks; i++ {
		s.cfg.LED.High()
		s.cfg.Sleep(blinkPhase)
		s.cfg.LED.Low()
		s.cfg.Sleep(blinkPhase)
	}

	if err := s.panel.Init(); err != nil {
		return errors.Wrap(err, "failed to init panel")
	}

	s.renderer.Splash(AppName, SplashHint)

	return errors.Wrap(s.panel.Show(s.renderer.Bitmap()), "failed to draw splash")
}

// Run starts the instrument and loops until ctx is done.
func (s *Spectro) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}

	go s.buttons.Run(ctx, s.cfg.Params.PollInterval)

	processor.New(processor.Config{
		Capturer:     s.capturer,
		Analyzer:     s.analyzer,
		Renderer:     s.renderer,
		Output:       s.panel,
		State:        s.state,
		PollInterval: s.cfg.Params.PollInterval,
		Logger:       s.cfg.Logger,
		OnCapture:    s.cfg.OnCapture,
	}).Process(ctx)

	return nil
}

// Run builds a Spectro from cfg and runs it until ctx is done.
func Run(ctx context.Context, cfg Config) error {
	s, err := New(cfg)
	if err != nil {
		return err
	}

	return s.Run(ctx)
}
