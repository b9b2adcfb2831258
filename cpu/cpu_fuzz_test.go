package cpu

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzCpu(f *testing.F) {
	for _, op := range []CodeOp{OP_ADD, OP_MUL, OP_IN, OP_OUT, OP_JT, OP_JF, OP_LT, OP_EQ, OP_ARB, OP_HALT, 0, 42} {
		for mode := range CodeMode(4) {
			code := int32(MakeCode(op, mode, mode, mode))
			f.Add(code, int64(1), int64(-1), int64(5), int64(0), true)
			f.Add(code, int64(7), int64(3), int64(200), int64(-3), false)
			f.Add(code, int64(math.MaxInt64), int64(1<<62), int64(math.MaxInt64), int64(0), true)
			f.Add(code, int64(MEMORY_MAX), int64(1), int64(MEMORY_MAX), int64(1<<62), false)
		}
	}

	f.Fuzz(func(t *testing.T, word int32, a int64, b int64, c int64, rb int64, supply bool) {
		assert := assert.New(t)

		code := Code(word)

		cpu := NewCpu([]int64{int64(word), a, b, c, 99, 11, 22, 33})
		cpu.RelativeBase = rb
		mem := slices.Clone(cpu.Memory.Data)

		var input *int64
		if supply {
			value := int64(0x5a5a)
			input = &value
		}

		yield, result, err := cpu.Execute(code, input)
		if err != nil {
			assert.True(errors.Is(err, ErrDecode) || errors.Is(err, ErrOperand), err)
			assert.True(errors.Is(err, ErrOpcode(0)))
			// Faulting instructions do not modify the cpu.
			assert.Equal(int64(0), cpu.Ip)
			assert.Equal(rb, cpu.RelativeBase)
			assert.Equal(mem, cpu.Memory.Data)
			assert.Equal(0, cpu.Ticks)
			return
		}

		op := code.Op()
		assert.True(op.Valid())
		assert.GreaterOrEqual(cpu.Ip, int64(0))
		assert.GreaterOrEqual(cpu.Memory.Len(), int64(len(mem)))
		assert.LessOrEqual(cpu.Memory.Len(), MEMORY_MAX)

		switch op {
		case OP_IN:
			if supply {
				assert.False(yield)
				assert.Equal(int64(2), cpu.Ip)
			} else {
				assert.True(yield)
				assert.Equal(STATE_WAITING, result.State)
				assert.Equal(int64(0), cpu.Ip)
				assert.Equal(mem, cpu.Memory.Data)
			}
		case OP_OUT:
			assert.True(yield)
			assert.Equal(STATE_OUTPUT, result.State)
			assert.Equal(int64(2), cpu.Ip)
		case OP_HALT:
			assert.True(yield)
			assert.Equal(STATE_FINISHED, result.State)
			assert.Equal(int64(0), cpu.Ip)
		case OP_JT, OP_JF:
			assert.False(yield)
		default:
			assert.False(yield)
			assert.Equal(op.Width(), cpu.Ip)
		}
	})
}
