package cpu

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"strconv"
	"strings"
)

// Program is a loaded memory image.
type Program struct {
	Words []int64
}

// ParseProgram reads a program of comma separated decimal integers.
// Whitespace around the whole text is ignored.
func ParseProgram(r io.Reader) (prog *Program, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}

	text := strings.TrimSpace(string(data))

	prog = &Program{}
	for n, token := range strings.Split(text, ",") {
		var word int64
		word, err = strconv.ParseInt(token, 10, 64)
		if err != nil {
			prog = nil
			err = ErrParseNumber{Index: n, Token: token}
			return
		}
		prog.Words = append(prog.Words, word)
	}

	return
}

// Cpu creates a new CPU with the program loaded.
func (prog *Program) Cpu() *Cpu {
	return NewCpu(prog.Words)
}

// Defines for the program.
func (prog *Program) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"LENGTH": fmt.Sprintf("%d", len(prog.Words)),
	})
}

// String returns the program in its load format.
func (prog *Program) String() string {
	words := make([]string, len(prog.Words))
	for n, word := range prog.Words {
		words[n] = strconv.FormatInt(word, 10)
	}

	return strings.Join(words, ",")
}
