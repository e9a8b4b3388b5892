package tmcl

import "time"

// Option configures a Session.
type Option func(*Session)

// WithConfig replaces the whole configuration. It is validated when the
// port is opened.
func WithConfig(cfg Config) Option {
	return func(s *Session) {
		s.cfg = cfg
	}
}

// WithBaudRate sets the line speed applied on open.
func WithBaudRate(baud int) Option {
	return func(s *Session) {
		if baud > 0 {
			s.cfg.BaudRate = baud
		}
	}
}

// WithReadTimeout sets the read timeout. Non-positive values are ignored.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.cfg.ReadTimeout = d
		}
	}
}

// WithWriteTimeout sets the write timeout. Non-positive values are ignored.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.cfg.WriteTimeout = d
		}
	}
}

// WithPairingDelay sets the pause between writing a command and reading
// the reply.
func WithPairingDelay(d time.Duration) Option {
	return func(s *Session) {
		if d >= 0 {
			s.cfg.PairingDelay = d
		}
	}
}

// WithChecksumVerification makes Send and Get reject replies with a bad
// checksum.
func WithChecksumVerification(verify bool) Option {
	return func(s *Session) {
		s.cfg.VerifyChecksum = verify
	}
}

// WithRecorder records every frame sent and received.
func WithRecorder(r *Recorder) Option {
	return func(s *Session) {
		s.rec = r
	}
}
