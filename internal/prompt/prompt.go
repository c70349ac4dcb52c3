// Package prompt implements blocking line-oriented console questions with
// input validation and optional defaults. It exists for the single
// create-file confirmation asked by the store, but is generic enough for any
// yes/no style interaction.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// YesNo accepts a single y/n character in either case.
func YesNo(input string) bool {
	return len(input) == 1 && strings.ContainsAny(input, "YyNn")
}

// IsYes reports whether a YesNo-validated answer means yes.
func IsYes(answer string) bool {
	return answer == "y" || answer == "Y"
}

// Asker reads operator answers from In and writes questions to Out.
type Asker struct {
	In  io.Reader
	Out io.Writer
}

// Ask prints question and reads lines from In until one of them satisfies
// validate. A blank line resolves to def when def is non-empty; a blank line
// without a default re-asks. The accepted input is returned verbatim.
//
// Ask blocks on In; when In is exhausted before a valid answer arrives, def
// is returned (empty or not) so callers never spin on a closed stream.
func (a Asker) Ask(question string, validate func(string) bool, def string) string {
	scanner := bufio.NewScanner(a.In)
	for {
		fmt.Fprint(a.Out, question)
		if !scanner.Scan() {
			return def
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			if def != "" {
				return def
			}
			continue
		}
		if validate(input) {
			return input
		}
	}
}
