package apiclient

import "sync"

// Navigator is the client's view of where the user is in the application.
// On unrecoverable auth failure the client navigates to the login path; while
// the current path is the login path a 401 is never treated as an expired token.
type Navigator interface {
	CurrentPath() string
	Navigate(path string)
}

// Location is an in-process Navigator that remembers the current path and
// notifies an optional listener on every navigation.
type Location struct {
	mu         sync.RWMutex
	path       string
	history    []string
	onNavigate func(path string)
}

var _ Navigator = (*Location)(nil)

type LocationOption func(*Location)

// OnNavigate registers fn to be called after every navigation.
func OnNavigate(fn func(path string)) LocationOption {
	return func(l *Location) {
		l.onNavigate = fn
	}
}

func NewLocation(initial string, options ...LocationOption) *Location {
	l := &Location{path: initial}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *Location) CurrentPath() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.path
}

func (l *Location) Navigate(path string) {
	l.mu.Lock()
	l.path = path
	l.history = append(l.history, path)
	fn := l.onNavigate
	l.mu.Unlock()

	if fn != nil {
		fn(path)
	}
}

// History returns every path navigated to, oldest first.
func (l *Location) History() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.history...)
}
