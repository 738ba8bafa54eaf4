// Package confirm asks the operator a yes/no question on a terminal.
package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	ierr "github.com/gaurav-prasanna/issueboss/core/errors"
)

// Ask writes "prompt (y/N) " to out and reads one line from in. Only "y"
// (any case, surrounding whitespace ignored) is a yes; end of input is a no.
func Ask(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s (y/N) ", prompt); err != nil {
		return false, ierr.IO(err, "writing prompt")
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, ierr.IO(err, "reading answer")
	}
	return strings.EqualFold(strings.TrimSpace(line), "y"), nil
}
