//go:build amd64 && cgo

package device

import (
	"log"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
)

type simulationWindow struct {
	window *app.Window
}

func (s *simulationWindow) start(d *Display) {
	s.window = app.NewWindow(
		app.Title("vekimoji"),
		app.Size(unit.Px(float32(2*d.width)), unit.Px(float32(2*d.height))),
		app.MinSize(unit.Px(float32(d.width)), unit.Px(float32(d.height))),
	)
	go func() {
		if err := s.gioloop(d); err != nil {
			log.Fatal(err)
		}
	}()
	go app.Main()
}

func (s *simulationWindow) invalidate() {
	if s.window != nil {
		s.window.Invalidate()
	}
}

func (s *simulationWindow) close() {
	if s.window != nil {
		s.window.Close()
	}
}

func (s *simulationWindow) gioloop(d *Display) error {
	var ops op.Ops
	for {
		e := <-s.window.Events()
		switch e := e.(type) {
		case system.DestroyEvent:
			return e.Err
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)

			img := widget.Image{Src: paint.NewImageOp(d.LastImage()), Fit: widget.Contain}
			img.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}
