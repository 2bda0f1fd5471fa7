package engine

import "time"

// timerSlot is a cancellable one-shot timer whose expiry runs fn on the
// engine loop. Each arm or cancel bumps the token; an expiry carrying an
// older token is dropped, so a timer that fires concurrently with cancel
// never runs fn.
//
// All methods must be called from the loop goroutine.
type timerSlot struct {
	name  string
	post  func(func()) bool
	fn    func()
	token uint64
	timer *time.Timer
}

func newTimerSlot(name string, post func(func()) bool, fn func()) *timerSlot {
	return &timerSlot{name: name, post: post, fn: fn}
}

func (s *timerSlot) arm(d time.Duration) {
	s.cancel()
	token := s.token
	s.timer = time.AfterFunc(d, func() {
		s.post(func() {
			if token != s.token {
				return
			}
			s.timer = nil
			s.fn()
		})
	})
}

func (s *timerSlot) cancel() {
	s.token++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *timerSlot) armed() bool {
	return s.timer != nil
}
