package anchor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"atomicgo.dev/cursor"
	"github.com/fatih/color"
	"github.com/streambinder/mediadownloader/sys"
)

const (
	Black   = color.FgBlack
	Blue    = color.FgBlue
	Cyan    = color.FgCyan
	Green   = color.FgGreen
	Magenta = color.FgMagenta
	Normal  = color.Reset
	Red     = color.FgRed
	White   = color.FgWhite
	Yellow  = color.FgYellow
	_
	cursorAnchor = -iota
	cursorDefault
)

// Window keeps a stack of anchored lines (completed items)
// on top of a set of lots (one per concurrent worker)
type Window struct {
	anchors        []*anchor
	lots           []*Lot
	aliases        map[string]int
	anchorColor    *color.Color
	lotHeaderColor *color.Color
	out            io.Writer
	in             io.Reader
	lock           sync.RWMutex
	plain          bool
}

type anchor struct {
	data   string
	window *Window
}

func New(anchorColors ...color.Attribute) *Window {
	return &Window{
		anchors:        []*anchor{},
		lots:           []*Lot{},
		aliases:        make(map[string]int),
		anchorColor:    color.New(sys.First(anchorColors, Normal)),
		lotHeaderColor: color.New(color.Bold),
		out:            os.Stdout,
		in:             os.Stdin,
		plain:          false,
	}
}

func (window *Window) EnablePlainMode() {
	window.lock.Lock()
	defer window.lock.Unlock()
	window.anchorColor = color.New(Normal)
	window.anchorColor.DisableColor()
	window.lotHeaderColor = color.New(Normal)
	window.lotHeaderColor.DisableColor()
	for _, lot := range window.lots {
		lot.style = window.lotHeaderColor
	}
	window.plain = true
}

// SetIO replaces the terminal the window draws on and reads from
func (window *Window) SetIO(out io.Writer, in io.Reader) {
	window.lock.Lock()
	defer window.lock.Unlock()
	window.out = out
	window.in = in
}

func (window *Window) Plain() bool {
	window.lock.RLock()
	defer window.lock.RUnlock()
	return window.plain
}

// Lot returns the lot registered under alias, creating it if needed
func (window *Window) Lot(alias string) *Lot {
	window.lock.Lock()
	defer window.lock.Unlock()

	if id, ok := window.aliases[alias]; ok {
		return window.lots[id]
	}

	lot := &Lot{
		anchor: anchor{
			data:   idle,
			window: window,
		},
		id:    len(window.lots),
		alias: alias,
		style: window.lotHeaderColor,
	}
	window.aliases[alias] = len(window.lots)
	window.lots = append(window.lots, lot)

	if !window.plain {
		fmt.Fprintln(window.out)
	}
	return lot
}

func (window *Window) Printf(format string, a ...any) {
	window.print(false, fmt.Sprintf(format, a...))
}

func (window *Window) AnchorPrintf(format string, a ...any) {
	window.print(true, window.anchorColor.Sprintf(format, a...))
}

// Alert anchors a titled message, the way top-level failures are reported
func (window *Window) Alert(attribute color.Attribute, title, message string) {
	style := color.New(attribute, color.Bold)
	if window.Plain() {
		style.DisableColor()
	}
	window.print(true, style.Sprint(title+": ")+message)
}

func (window *Window) up(lines ...int) {
	cursor.UpAndClear(sys.First(lines, 1))
	cursor.StartOfLine()
}

func (window *Window) down() {
	cursor.DownAndClear(1)
	cursor.StartOfLine()
}

func (window *Window) shift(lines int) {
	if lines <= 0 && lines != cursorAnchor && lines != cursorDefault {
		return
	}

	fmt.Fprintln(window.out)
	window.up()

	switch lines {
	case cursorAnchor:
		lines = len(window.lots)
	case cursorDefault:
		lines = len(window.lots) + len(window.anchors)
	}

	for i := 0; i < lines; i++ {
		if i < len(window.lots) {
			window.lots[len(window.lots)-1-i].write()
		} else {
			fmt.Fprint(window.out, window.anchors[len(window.anchors)-1-(i-len(window.lots))].data)
		}
		window.up()
	}
}

func (window *Window) print(doAnchor bool, data string) {
	window.lock.Lock()
	defer window.lock.Unlock()

	if window.plain {
		fmt.Fprintln(window.out, data)
		return
	}

	defer cursor.Bottom()
	if doAnchor {
		window.anchors = append(window.anchors, &anchor{data, window})
		window.shift(cursorAnchor)
	} else {
		window.shift(cursorDefault)
	}
	fmt.Fprint(window.out, data)
}

func (window *Window) Reads(label string, a ...any) string {
	window.lock.Lock()
	defer window.lock.Unlock()

	if !window.plain {
		defer cursor.Bottom()
		window.shift(cursorDefault)
	}

	fmt.Fprintf(window.out, label+" ", a...)
	value := sys.ErrWrap("")(bufio.NewReader(window.in).ReadString('\n'))
	value = strings.TrimSpace(value)

	// wipe the blank line left by the newline, keeping the prompt
	if !window.plain {
		cursor.ClearLine()
		cursor.Up(1)
		cursor.StartOfLine()
	}

	return value
}
