package workspace

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ConfirmFunc asks a yes/no question and reports whether the answer was
// affirmative. It returns ctx.Err() when ctx is done before an answer
// arrives.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

type line struct {
	text string
	err  error
}

// PromptConfirm writes the prompt to out and reads one line from in. Only
// an answer starting with y or Y is affirmative; an empty line or end of
// input means no.
//
// Lines are read by a single background reader that starts with the first
// question, so a cancelled question leaves the input stream intact for the
// next one.
func PromptConfirm(in io.Reader, out io.Writer) ConfirmFunc {
	var once sync.Once
	lines := make(chan line)
	start := func() {
		go func() {
			defer close(lines)
			reader := bufio.NewReader(in)
			for {
				text, err := reader.ReadString('\n')
				lines <- line{text: text, err: err}
				if err != nil {
					return
				}
			}
		}()
	}

	return func(ctx context.Context, prompt string) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if _, err := fmt.Fprint(out, prompt); err != nil {
			return false, err
		}
		once.Do(start)
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case l, ok := <-lines:
			if ok && l.err != nil && l.err != io.EOF {
				return false, l.err
			}
			return IsAffirmative(strings.TrimRight(l.text, "\r\n")), nil
		}
	}
}

func IsAffirmative(answer string) bool {
	return len(answer) > 0 && strings.ToUpper(answer[:1]) == "Y"
}

// AssumeYes answers every question with yes.
func AssumeYes(context.Context, string) (bool, error) {
	return true, nil
}
