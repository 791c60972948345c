package review

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
)

// Prompt is printed once after all entries.
const Prompt = "\nProceed with installation? [y/N]: "

type answer struct {
	line string
	err  error
}

// Confirm prints the prompt to w and reads one line from r. Only "y", in
// either case and with surrounding whitespace, approves. End of input counts
// as a refusal. Cancelling ctx refuses without waiting for the line.
func Confirm(ctx context.Context, r io.Reader, w io.Writer) (bool, error) {
	if _, err := io.WriteString(w, Prompt); err != nil {
		return false, fmt.Errorf("writing prompt: %w", err)
	}

	// The read cannot be interrupted; on cancel it is left to finish when
	// the process exits.
	ch := make(chan answer, 1)
	go func() {
		line, err := bufio.NewReader(r).ReadString('\n')
		ch <- answer{line, err}
	}()

	var a answer
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case a = <-ch:
	}
	if a.err != nil && !errors.Is(a.err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", a.err)
	}
	return cases.Fold().String(strings.TrimSpace(a.line)) == "y", nil
}
