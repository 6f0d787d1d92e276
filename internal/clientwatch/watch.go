// Package clientwatch checks whether a game client process is running. The
// result is advisory: a missing client produces a warning, never a refusal.
package clientwatch

import (
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// Watcher scans running processes for known client names.
type Watcher struct {
	names     []string
	listNames func() ([]string, error)
}

// New creates a watcher matching the given name fragments, case-insensitive.
func New(names []string) *Watcher {
	return newWithSource(names, systemProcessNames)
}

func newWithSource(names []string, listNames func() ([]string, error)) *Watcher {
	lowered := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(strings.ToLower(n))
		if n != "" {
			lowered = append(lowered, n)
		}
	}

	return &Watcher{
		names:     lowered,
		listNames: listNames,
	}
}

// ClientRunning returns the first matching process name. Scan failures and
// empty watch lists report as not found.
func (w *Watcher) ClientRunning() (string, bool) {
	if len(w.names) == 0 {
		return "", false
	}

	procs, err := w.listNames()
	if err != nil {
		return "", false
	}

	for _, proc := range procs {
		lowered := strings.ToLower(proc)
		for _, name := range w.names {
			if strings.Contains(lowered, name) {
				return proc, true
			}
		}
	}

	return "", false
}

func systemProcessNames() ([]string, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
