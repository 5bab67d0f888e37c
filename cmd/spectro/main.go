package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	spectro "github.com/eteq/rp2040-spectro"
	"github.com/eteq/rp2040-spectro/control"
	"github.com/eteq/rp2040-spectro/display"
	"github.com/eteq/rp2040-spectro/display/window"
	dspwindow "github.com/eteq/rp2040-spectro/dsp/window"
	"github.com/eteq/rp2040-spectro/input"

	_ "github.com/eteq/rp2040-spectro/input/all"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"
)

// AppDesc is the app description
const AppDesc = "Impulse spectrometer on a 128x64 panel"

// AppSite is the app website
const AppSite = "https://github.com/eteq/rp2040-spectro"

var version = "unknown"

func main() {
	log.SetFlags(0)

	cfg := newZeroConfig()

	cmd := doFlags(&cfg)
	if cmd == cmdDone {
		return
	}

	chk(cfg.Sanitize(), "invalid config")

	// Root Context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if cmd == cmdCapture {
		chk(capture(&cfg), "failed to capture")
		return
	}

	chk(run(ctx, &cfg), "failed to run spectro")
}

type command int

const (
	cmdRun command = iota
	cmdCapture
	cmdDone
)

func doFlags(cfg *cliConfig) command {

	parser := flaggy.NewParser(spectro.AppName)
	parser.Description = AppDesc
	parser.AdditionalHelpPrepend = AppSite
	parser.Version = version

	listBackendsCmd := flaggy.Subcommand{
		Name:                 "list-backends",
		ShortName:            "lb",
		Description:          "list all supported backends",
		AdditionalHelpAppend: "\nuse the full name after the '-'",
	}

	parser.AttachSubcommand(&listBackendsCmd, 1)

	listDevicesCmd := flaggy.Subcommand{
		Name:                 "list-devices",
		ShortName:            "ld",
		Description:          "list all devices for a backend",
		AdditionalHelpAppend: "\nuse the full name after the '-'",
	}

	parser.AttachSubcommand(&listDevicesCmd, 1)

	listWindowsCmd := flaggy.Subcommand{
		Name:        "list-windows",
		ShortName:   "lw",
		Description: "list the window functions applied before the fft",
	}

	parser.AttachSubcommand(&listWindowsCmd, 1)

	captureCmd := flaggy.Subcommand{
		Name:        "capture",
		ShortName:   "c",
		Description: "run one capture cycle and print the samples",
	}

	parser.AttachSubcommand(&captureCmd, 1)

	p := &cfg.params
	addr := int(p.PanelAddress)

	parser.String(&cfg.backend, "b", "backend", "backend name")
	parser.String(&cfg.device, "d", "device", "device name")
	parser.Float64(&p.SampleRate, "r", "rate", "sample rate")
	parser.Int(&p.SampleSize, "n", "samples", "sample size (power of two)")
	parser.Int(&p.Channel, "ch", "channel", "adc channel")
	parser.String(&p.Window, "w", "window", "window function, see list-windows")
	parser.Duration(&p.HoldTimeout, "ht", "hold", "time a button must stay down to count as held")
	parser.Duration(&p.PollInterval, "p", "poll", "main loop sleep")
	parser.Int(&p.StartupBlinks, "sb", "blinks", "startup led blinks")
	parser.Int(&addr, "a", "address", "panel i2c address")
	parser.String(&cfg.ui, "u", "ui", "panel view (terminal, window, none)")
	parser.Int(&cfg.scale, "s", "scale", "window pixels per panel pixel")
	parser.String(&cfg.logFile, "l", "log", "log file, needed to see logs under the terminal ui")
	parser.String(&cfg.pinFile, "pf", "pins", "raspberry pi pin map file")
	parser.Bool(&cfg.board, "pi", "board", "use raspberry pi gpio for stimulus, led and buttons")
	parser.Bool(&cfg.dump, "dp", "dump", "print every capture to stdout")

	chk(parser.Parse(), "failed to parse arguments")

	p.PanelAddress = uint16(addr)

	switch {
	case listBackendsCmd.Used:
		for _, backend := range input.Backends {
			fmt.Printf("- %s\n", backend.Name)
		}

		return cmdDone

	case listDevicesCmd.Used:
		backend, err := input.InitBackend(cfg.backend)
		chk(err, "failed to init backend")

		devices, err := backend.Devices()
		chk(err, "failed to get devices")

		// We don't really need the default device to be indicated.
		defaultDevice, _ := backend.DefaultDevice()

		fmt.Printf("all devices for %q backend. '*' marks default\n", cfg.backend)

		for idx := range devices {
			star := ' '
			if defaultDevice != nil && devices[idx].String() == defaultDevice.String() {
				star = '*'
			}

			fmt.Printf("- %v %c\n", devices[idx], star)
		}

		return cmdDone

	case listWindowsCmd.Used:
		for _, name := range dspwindow.Names() {
			fmt.Printf("- %s\n", name)
		}

		return cmdDone

	case captureCmd.Used:
		return cmdCapture
	}

	return cmdRun
}

// instrument is everything run and capture share.
type instrument struct {
	spectro *spectro.Spectro
	em      *display.Emulator
	led     *display.Indicator
	board   board
	meter   *meter
	closers []func() error
}

func (in *instrument) Close() {
	for i := len(in.closers) - 1; i >= 0; i-- {
		if err := in.closers[i](); err != nil {
			log.Println("close:", err)
		}
	}
}

func open(cfg *cliConfig, logger *log.Logger) (*instrument, error) {
	in := &instrument{
		em:    display.NewEmulator(cfg.params.PanelAddress),
		led:   &display.Indicator{},
		meter: newMeter(32),
	}

	backend, err := input.InitBackend(cfg.backend)
	if err != nil {
		return nil, err
	}
	in.closers = append(in.closers, backend.Close)

	device, err := input.GetDevice(backend, cfg.device)
	if err != nil {
		in.Close()
		return nil, err
	}

	src, err := backend.Open(input.SourceConfig{Device: device, SampleSize: cfg.params.SampleSize})
	if err != nil {
		in.Close()
		return nil, errors.Wrap(err, "failed to open the input backend")
	}

	scfg := spectro.Config{
		Params:    cfg.params,
		Source:    src,
		LED:       in.led,
		Transport: in.em,
		Logger:    logger,
		OnCapture: func(samples []byte) {
			in.meter.mark(time.Now())
			if cfg.dump {
				if err := writeSamples(os.Stdout, samples); err != nil {
					logger.Println("dump:", err)
				}
			}
		},
	}

	if cfg.board {
		if in.board, err = openBoard(cfg.pinFile); err != nil {
			in.Close()
			return nil, errors.Wrap(err, "failed to open board")
		}
		in.closers = append(in.closers, in.board.Close)

		stimulus, led := in.board.Pins()
		scfg.Stimulus = stimulus
		scfg.LED = pins{in.led, led}
	}

	if in.spectro, err = spectro.New(scfg); err != nil {
		in.Close()
		return nil, err
	}

	return in, nil
}

func capture(cfg *cliConfig) error {
	in, err := open(cfg, log.Default())
	if err != nil {
		return err
	}
	defer in.Close()

	buf, err := in.spectro.Capture()
	if err != nil {
		return err
	}

	return writeSamples(os.Stdout, buf)
}

func run(ctx context.Context, cfg *cliConfig) error {
	logger, closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	in, err := open(cfg, logger)
	if err != nil {
		return err
	}
	defer in.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	buttons := in.spectro.Buttons()
	send := func(id control.Button, e control.Edge) { buttons.Send(ctx, id, e) }

	if in.board != nil {
		if err := in.board.WatchButtons(send); err != nil {
			return err
		}
	}

	if cfg.ui == "none" {
		return in.spectro.Run(ctx)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- in.spectro.Run(ctx)
		cancel()
	}()

	var uiErr error

	switch cfg.ui {
	case "terminal":
		uiErr = display.NewTerminal(display.TerminalConfig{
			Emulator: in.em,
			LED:      in.led,
			Buttons:  send,
			Hold:     cfg.params.HoldTimeout,
			Status:   func() string { return status(in.spectro.State(), in.meter) },
		}).Run(ctx)

	case "window":
		uiErr = window.Run(ctx, window.Config{
			Emulator: in.em,
			LED:      in.led,
			Buttons:  send,
			Title:    spectro.AppName,
			Scale:    cfg.scale,
		})
	}

	cancel()

	if err := <-errc; err != nil {
		return err
	}

	return uiErr
}

// openLog picks where the log goes. A UI that owns the terminal gets a
// discarded log unless a file was given.
func openLog(cfg *cliConfig) (*log.Logger, func(), error) {
	if cfg.logFile == "" {
		if cfg.ui == "terminal" {
			return log.New(io.Discard, "", 0), func() {}, nil
		}
		return log.Default(), func() {}, nil
	}

	f, err := os.OpenFile(cfg.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open log file")
	}

	return log.New(f, "", log.LstdFlags), func() { f.Close() }, nil
}

func status(s *control.State, m *meter) string {
	mode := s.Snapshot()

	domain := "time"
	if mode.Frequency {
		domain = "freq"
	}

	spacing := fmt.Sprintf("x%d", mode.Spacing)
	if mode.Zoomed() {
		spacing = "zoom"
	}

	run := "single"
	if mode.Continuous {
		run = "cont"
	}

	return fmt.Sprintf("%s %s %s %v", domain, spacing, run, m)
}

func chk(err error, wrap string) {
	if err != nil {
		log.Fatalln(wrap+": ", err)
	}
}
