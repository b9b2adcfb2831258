// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Patch is a memory write applied to the program before it runs.
type Patch struct {
	Addr  int64
	Value int64
}

func (patch Patch) String() string {
	return fmt.Sprintf("%d=%d", patch.Addr, patch.Value)
}

// ParsePatch parses an 'addr=value' patch. Both sides are integer
// expressions, and may refer to the emulator's defines.
func (emu *Emulator) ParsePatch(text string) (patch Patch, err error) {
	addr, value, ok := strings.Cut(text, "=")
	if !ok {
		err = ErrPatchSyntax(text)
		return
	}

	patch.Addr, err = emu.eval(addr)
	if err != nil {
		err = errors.Join(ErrPatchSyntax(text), err)
		return
	}

	patch.Value, err = emu.eval(value)
	if err != nil {
		err = errors.Join(ErrPatchSyntax(text), err)
		return
	}

	return
}

// eval evaluates an integer expression.
func (emu *Emulator) eval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "patch"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range emu.Defines() {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}

	prog := "rc=" + strings.TrimSpace(expr) + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "patch", prog, pred)
	if err != nil {
		return
	}

	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}
