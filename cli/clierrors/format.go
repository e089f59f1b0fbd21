package clierrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brimdata/tabq/filterexpr"
)

// Format decorates a filter expression syntax error in err with the
// offending source line and a marker under the failing column.  Other
// errors are returned unchanged.
func Format(src string, err error) error {
	var serr *filterexpr.SyntaxError
	if err == nil || !errors.As(err, &serr) {
		return err
	}
	var b strings.Builder
	col := serr.Offset + 1
	fmt.Fprintf(&b, "%s (column %d):\n%s\n", serr.Msg, col, src)
	formatPointError(&b, col)
	return errors.New(b.String())
}

func formatPointError(b *strings.Builder, col int) {
	col--
	for k := 0; k < col; k++ {
		if k >= col-4 && k != col-1 {
			b.WriteByte('=')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString("^ ===")
}
