package transport

import (
	"sync"

	"github.com/CodedInternet/gonxt/nxt"
	"go.uber.org/zap"
)

// Simulated stands in for a brick. It keeps a copy of every write and logs
// the frames it sees.
type Simulated struct {
	lock   sync.Mutex
	writes [][]byte
	closed bool
	logger *zap.SugaredLogger
}

func NewSimulated(logger *zap.SugaredLogger) *Simulated {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Simulated{logger: logger}
}

func (s *Simulated) Write(buf []byte) (int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.closed {
		return 0, ErrClosed
	}

	raw := make([]byte, len(buf))
	copy(raw, buf)
	s.writes = append(s.writes, raw)

	for i := 0; i+nxt.FrameLength <= len(raw); i += nxt.FrameLength {
		frame := raw[i : i+nxt.FrameLength]
		s.logger.Infow("simulated frame",
			"port", nxt.Motor(frame[4]).String(),
			"power", int8(frame[5]),
			"mode", nxt.Mode(frame[6]).String(),
			"regulation", nxt.RegulationMode(frame[7]).String(),
			"runstate", nxt.RunState(frame[9]).String(),
		)
	}
	if len(raw)%nxt.FrameLength != 0 {
		s.logger.Warnw("trailing bytes after last frame", "length", len(raw))
	}

	return len(buf), nil
}

// Writes returns a copy of every buffer written so far.
func (s *Simulated) Writes() [][]byte {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make([][]byte, len(s.writes))
	copy(out, s.writes)
	return out
}

func (s *Simulated) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.closed = true
	return nil
}
