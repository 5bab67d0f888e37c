// Package execread provides a sample source that reads unsigned 8-bit frames
// from the stdout of a child process, one process per capture.
package execread

import (
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/eteq/rp2040-spectro/input"
	"github.com/pkg/errors"
)

// Argv builds the command line for one capture at the given rate. The child
// must write interleaved u8 frames of the given channel count to stdout.
type Argv func(rate float64, channels int) []string

// Source runs Argv for every capture and keeps the configured channel.
type Source struct {
	// Stderr receives the child's stderr. Nil discards it.
	Stderr io.Writer

	argv    Argv
	channel int
	rate    float64

	buf  []byte
	raw  []byte
	cmd  *exec.Cmd
	done chan error
}

// New creates a source. It never returns an error.
func New(argv Argv) *Source {
	return &Source{
		argv: argv,
		rate: input.DividerRate(0),
	}
}

// Rate returns the sample rate the child is asked for.
func (s *Source) Rate() float64 {
	return s.rate
}

func (s *Source) Configure(channel int, divider float64) error {
	if channel < 0 {
		return errors.Errorf("invalid channel %d", channel)
	}

	s.channel = channel
	s.rate = input.DividerRate(divider)
	return nil
}

func (s *Source) Arm(buf []byte) error {
	if len(buf) == 0 {
		return input.ErrBufferSize
	}

	s.buf = buf
	if need := len(buf) * (s.channel + 1); cap(s.raw) < need {
		s.raw = make([]byte, need)
	} else {
		s.raw = s.raw[:need]
	}

	return nil
}

func (s *Source) Start() error {
	if s.buf == nil {
		return errors.New("source not armed")
	}

	args := s.argv(s.rate, s.channel+1)
	if len(args) < 1 {
		return errors.New("argv has no arg0")
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stderr = s.Stderr

	o, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "failed to get stdout pipe")
	}

	// We need o as an *os.File for SetReadDeadline.
	of, ok := o.(*os.File)
	if !ok {
		return errors.New("stdout pipe is not an *os.File (bug)")
	}

	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "failed to start "+args[0])
	}

	// Sound servers take a while to open a stream, so allow a generous
	// multiple of the capture duration on top of a fixed startup time.
	captureDuration := time.Duration(float64(len(s.buf)) / s.rate * float64(time.Second))
	if err := of.SetReadDeadline(time.Now().Add(2*time.Second + 6*captureDuration)); err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		return errors.Wrap(err, "failed to set read deadline")
	}

	s.cmd = cmd
	s.done = make(chan error, 1)

	go func() {
		_, err := io.ReadFull(of, s.raw)
		s.done <- err
	}()

	return nil
}

func (s *Source) Wait() error {
	if s.done == nil {
		return errors.New("source not started")
	}

	err := <-s.done
	s.done = nil

	switch {
	case err == nil:
	case errors.Is(err, os.ErrDeadlineExceeded):
		return errors.Wrap(err, "timed out waiting for samples")
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return errors.Wrap(err, "sample stream ended early")
	default:
		return err
	}

	frame := s.channel + 1
	for i := range s.buf {
		s.buf[i] = s.raw[i*frame+s.channel]
	}

	return nil
}

func (s *Source) Stop() error {
	if s.cmd == nil {
		return nil
	}

	cmd := s.cmd
	s.cmd = nil

	// the child keeps streaming until killed; its exit status is meaningless
	cmd.Process.Kill()
	cmd.Wait()

	return nil
}

// Drain waits for a reader left behind by a failed start.
func (s *Source) Drain() error {
	if s.done != nil {
		<-s.done
		s.done = nil
	}
	return nil
}
