package anchor

import (
	"fmt"

	"atomicgo.dev/cursor"
	"github.com/fatih/color"
	"github.com/streambinder/mediadownloader/sys"
)

const idle = "idle"

var idleColor = color.New(color.FgWhite)

// Lot is a single line of the window owned by one worker
type Lot struct {
	anchor
	id    int
	alias string
	style *color.Color
}

func formatAlias(alias string) string {
	return fmt.Sprintf("(%s) ", alias)
}

func (lot *Lot) Print(message string) {
	lot.window.lock.Lock()
	defer lot.window.lock.Unlock()

	lot.data = message
	if lot.window.plain {
		lot.write()
		fmt.Fprintln(lot.window.out)
		return
	}

	defer cursor.Bottom()
	lot.window.up(len(lot.window.lots))
	for _, lot := range lot.window.lots {
		lot.write()
		lot.window.down()
	}
}

func (lot *Lot) Printf(format string, a ...any) {
	lot.Print(fmt.Sprintf(format, a...))
}

func (lot *Lot) Close(messages ...string) {
	lot.window.lock.Lock()
	lot.style = color.New(color.FgWhite)
	lot.window.lock.Unlock()
	lot.Print(sys.First(messages, "done"))
}

func (lot *Lot) write() {
	if lot.window.plain {
		fmt.Fprint(lot.window.out, formatAlias(lot.alias), lot.data)
		return
	}

	dataStyle := lot.style
	if lot.data == idle {
		dataStyle = idleColor
	}
	fmt.Fprint(lot.window.out, lot.style.Sprint(formatAlias(lot.alias)), dataStyle.Sprint(lot.data))
}
