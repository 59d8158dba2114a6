package tui

import (
	"net/url"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// navigatedMsg reports that the location changed and the listing is stale
type navigatedMsg struct {
	rawQuery string
}

// location is the browser's current URL. Replace is called from the debounce
// timer goroutine and hands the change to the program as a message.
type location struct {
	mu     sync.Mutex
	path   string
	params url.Values
	send   func(tea.Msg)
}

func newLocation(path string) *location {
	return &location{path: path, params: url.Values{}}
}

func (l *location) setSend(send func(tea.Msg)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.send = send
}

func (l *location) CurrentParams() url.Values {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.params
}

func (l *location) Replace(target string) {
	u, err := url.Parse(target)
	if err != nil {
		return
	}

	l.mu.Lock()
	l.path = u.Path
	l.params = u.Query()
	send := l.send
	l.mu.Unlock()

	if send != nil {
		send(navigatedMsg{rawQuery: u.RawQuery})
	}
}

func (l *location) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}
