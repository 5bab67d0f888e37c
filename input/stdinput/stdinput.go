// Package stdinput captures raw unsigned 8-bit samples from stdin.
package stdinput

import (
	"io"
	"os"

	"github.com/eteq/rp2040-spectro/input"
	"github.com/pkg/errors"
)

func init() {
	input.RegisterBackend("stdin", StdinBackend{})
}

type StdinBackend struct{}

func (b StdinBackend) Init() error {
	return nil
}

func (b StdinBackend) Close() error {
	return nil
}

func (b StdinBackend) Devices() ([]input.Device, error) {
	return []input.Device{StdInputDevice{}}, nil
}

func (b StdinBackend) DefaultDevice() (input.Device, error) {
	return StdInputDevice{}, nil
}

func (b StdinBackend) Open(input.SourceConfig) (input.SampleSource, error) {
	return NewSource(os.Stdin), nil
}

type StdInputDevice struct{}

func (d StdInputDevice) String() string {
	return "stdin"
}

// Source reads one capture worth of bytes from r per cycle. The stream is
// taken to be a single channel, so Configure only checks its arguments.
type Source struct {
	r    io.Reader
	buf  []byte
	done chan error
}

func NewSource(r io.Reader) *Source {
	return &Source{r: r}
}

func (s *Source) Configure(channel int, divider float64) error {
	if channel != 0 {
		return errors.Errorf("stdin carries one channel, not %d", channel+1)
	}
	return nil
}

func (s *Source) Arm(buf []byte) error {
	if len(buf) == 0 {
		return input.ErrBufferSize
	}
	s.buf = buf
	return nil
}

func (s *Source) Start() error {
	if s.buf == nil {
		return errors.New("source not armed")
	}

	s.done = make(chan error, 1)
	go func() {
		_, err := io.ReadFull(s.r, s.buf)
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

	if err != nil {
		return errors.Wrap(err, "failed to read samples")
	}
	return nil
}

func (s *Source) Stop() error {
	return nil
}

func (s *Source) Drain() error {
	return nil
}
