// Command springtrace plots the step response of a scalar spring in the
// terminal. Arrow keys retune it live.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/springs/spring"
)

type viewer struct {
	screen  tcell.Screen
	initial Params
	params  Params
	trace   Trace
}

func main() {
	omega := flag.Float64("omega", 6, "angular frequency")
	zeta := flag.Float64("zeta", 0.3, "damping ratio")
	target := flag.Float64("target", 1, "target the spring is released toward from 0")
	dt := flag.Float64("dt", 1.0/60, "seconds per step")
	seconds := flag.Float64("seconds", 3, "seconds to simulate")
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	p := Params{Omega: *omega, Zeta: *zeta, Target: *target, Dt: *dt, Seconds: *seconds}
	v := &viewer{screen: screen, initial: p, params: p}
	v.retrace()
	v.run()
}

func (v *viewer) run() {
	for {
		v.draw()
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if !v.handleKey(ev) {
				return
			}
		}
	}
}

func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		v.params.Omega = max(0, v.params.Omega-1)
	case tcell.KeyRight:
		v.params.Omega++
	case tcell.KeyUp:
		v.params.Zeta += 0.05
	case tcell.KeyDown:
		v.params.Zeta = max(0, v.params.Zeta-0.05)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'r':
			v.params = v.initial
		default:
			return true
		}
	default:
		return true
	}
	v.retrace()
	return true
}

func (v *viewer) retrace() {
	v.trace = Run(v.params)
}

func (v *viewer) draw() {
	s := v.screen
	s.Clear()
	width, height := s.Size()

	header := fmt.Sprintf("ω=%.2f ζ=%.2f target=%g dt=%.4f  regime: %s", v.params.Omega, v.params.Zeta, v.params.Target, v.trace.Dt, v.trace.Regime)
	settle := "settle: never"
	if v.trace.Settle >= 0 {
		settle = fmt.Sprintf("settle: %.3fs", v.trace.Settle)
	}
	stats := fmt.Sprintf("%s  overshoot: %.4f (%.1f%%)", settle, v.trace.Overshoot, v.trace.OvershootPercent())
	help := "←/→ ω  ↑/↓ ζ  r reset  q quit"

	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	putString(s, 0, 0, header, tcell.StyleDefault.Bold(true))
	putString(s, 0, 1, stats, tcell.StyleDefault)
	putString(s, 0, height-1, help, dim)

	top, bottom := 3, height-2
	if bottom-top < 2 || width < 2 {
		s.Show()
		return
	}

	lo, hi := v.trace.Bounds()
	row := func(val float64) int {
		frac := (val - lo) / (hi - lo)
		return bottom - int(math.Round(frac*float64(bottom-top)))
	}

	targetRow := row(v.params.Target)
	for x := 0; x < width; x += 2 {
		s.SetContent(x, targetRow, '─', nil, dim)
	}

	style := tcell.StyleDefault.Foreground(regimeColor(v.trace))
	for x := 0; x < width; x++ {
		val, ok := v.trace.Column(x, width)
		if !ok || math.IsNaN(val) || math.IsInf(val, 0) {
			continue
		}
		s.SetContent(x, row(val), '•', nil, style)
	}

	s.Show()
}

func regimeColor(t Trace) tcell.Color {
	switch t.Regime {
	case spring.UnderDamped:
		return tcell.ColorRed
	case spring.CriticallyDamped:
		return tcell.ColorYellow
	case spring.OverDamped:
		return tcell.ColorBlue
	}
	return tcell.ColorGray
}

func putString(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
