package subsystem

import "runtime/debug"

// Release releases every live handle in reverse acquisition order. It keeps
// going after failures and returns a *TeardownError listing them. Handles
// already released are skipped, so calling Release twice is harmless.
func Release(s *Set) error {
	if s == nil {
		return nil
	}
	var failures []ReleaseFailure
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := &s.entries[i]
		if e.released {
			continue
		}
		e.released = true
		if err := releaseOne(e.handle); err != nil {
			failures = append(failures, ReleaseFailure{Kind: e.kind, Err: err})
			continue
		}
		s.log.Debug().Stringer("kind", e.kind).Msg("subsystem released")
	}
	if len(failures) == 0 {
		return nil
	}
	return &TeardownError{Failures: failures}
}

func releaseOne(h Handle) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return h.Release()
}
