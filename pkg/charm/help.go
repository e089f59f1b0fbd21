package charm

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/brimdata/tabq/pkg/terminal"
	"github.com/kr/text"
)

const tab = "    "

// flagMap maps each name in the comma-separated list flags to true.
func flagMap(flags string) map[string]bool {
	m := make(map[string]bool)
	for _, name := range strings.Split(flags, ",") {
		if name = strings.TrimSpace(name); name != "" {
			m[name] = true
		}
	}
	return m
}

type helpWriter struct {
	w     io.Writer
	bold  bool
	width int
}

func (h *helpWriter) header(heading string) string {
	if h.bold {
		return "\033[1m" + heading + "\033[0m"
	}
	return heading
}

func (h *helpWriter) item(heading, body string) {
	fmt.Fprint(h.w, h.header(heading)+"\n"+tab+body+"\n\n")
}

func (h *helpWriter) list(heading string, lines []string) {
	if len(lines) == 0 {
		return
	}
	h.item(heading, strings.Join(lines, "\n"+tab))
}

func (h *helpWriter) desc(heading, body string) {
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}
	fmt.Fprint(h.w, h.header(heading)+"\n"+formatParagraphs(body, h.width-len(tab)-5))
}

func formatParagraphs(body string, width int) string {
	var chunks []string
	for _, para := range strings.Split(body, "\n\n") {
		para = strings.TrimSpace(para)
		if len(para) >= width {
			para = text.Wrap(para, width)
		}
		chunks = append(chunks, strings.ReplaceAll(para, "\n", "\n"+tab))
	}
	return tab + strings.Join(chunks, "\n\n"+tab) + "\n\n"
}

// options collects the flags of every command on the path, innermost
// first, with the flags of each enclosing command under its own heading.
func (p path) options() []string {
	lines := p.last().options()
	if len(lines) == 0 {
		lines = []string{"no flags for this command"}
	}
	for k := len(p) - 2; k >= 0; k-- {
		opts := p[k].options()
		if len(opts) == 0 {
			continue
		}
		lines = append(lines, "", "["+p[:k+1].pathname()+" flags]")
		lines = append(lines, opts...)
	}
	return lines
}

func (p path) commands() []string {
	var lines []string
	for _, spec := range p.last().spec.children {
		if !spec.Hidden {
			lines = append(lines, spec.Name+" - "+spec.Short)
		}
	}
	return lines
}

func (p path) help(w io.Writer) {
	h := &helpWriter{w: w, width: terminal.Width()}
	if f, ok := w.(*os.File); ok {
		h.bold = terminal.IsTerminalFile(f)
	}
	spec := p.last().spec
	h.item("NAME", spec.Name+" - "+spec.Short)
	h.desc("USAGE", spec.Usage)
	h.list("OPTIONS", p.options())
	h.list("COMMANDS", p.commands())
	h.desc("DESCRIPTION", spec.Long)
}
