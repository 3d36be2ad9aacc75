//go:build !amd64 || !cgo

package device

// No simulation window outside desktop builds.
type simulationWindow struct{}

func (s *simulationWindow) start(d *Display) {
}

func (s *simulationWindow) invalidate() {
}

func (s *simulationWindow) close() {
}
