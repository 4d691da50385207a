package exec

import (
    "os"
    "path/filepath"
    "strconv"
    "strings"
    "testing"

    "github.com/kazzmir/wasmexpr/lib/ast"
    "github.com/kazzmir/wasmexpr/lib/memory"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func evaluate(t *testing.T, input string, locals []uint64, heap *memory.Memory) RuntimeValue {
    expr, err := ast.ParseExpression(input)
    require.NoError(t, err, "could not parse '%v'", input)
    return EvaluateOne(expr, locals, heap)
}

func TestConstAndArithmetic(t *testing.T) {
    result := evaluate(t, "(i32.add (i32.const 2) (i32.const 3))", nil, nil)
    assert.Equal(t, MakeI32(5), result)

    result = evaluate(t, "(i32.mul (i32.sub (i32.const 10) (i32.const 4)) (i32.const 7))", nil, nil)
    assert.Equal(t, MakeI32(42), result)

    result = evaluate(t, "(f64.add (f64.const 1.25) (f64.const 2.5))", nil, nil)
    assert.Equal(t, MakeF64(3.75), result)
}

func TestStoreProducesLittleEndianBytes(t *testing.T) {
    heap := memory.NewMemory(4)

    result := evaluate(t, "(i32.store (i32.const 0) (i32.add (i32.const 2) (i32.const 3)))", nil, heap)
    assert.Equal(t, MakeI32(5), result)
    assert.Equal(t, []byte{0x05, 0x00, 0x00, 0x00}, heap.Bytes)
}

func TestLoad(t *testing.T) {
    heap := memory.NewMemory(16)
    heap.WriteUint32(4, 99)
    heap.WriteFloat64(8, 2.5)

    result := evaluate(t, "(i32.load (i32.const 4))", nil, heap)
    assert.Equal(t, MakeI32(99), result)

    result = evaluate(t, "(f64.load (i32.const 8))", nil, heap)
    assert.Equal(t, MakeF64(2.5), result)
}

func TestLocals(t *testing.T) {
    locals := make([]uint64, 1)

    /* assignment is itself an expression and produces the stored value */
    result := evaluate(t, "(local.set 0 (i32.const 7))", locals, nil)
    assert.Equal(t, MakeI32(7), result)
    assert.Equal(t, uint64(7), locals[0])

    result = evaluate(t, "(local.get 0)", locals, nil)
    assert.Equal(t, MakeI32(7), result)
}

func TestLocalSetComparisonResult(t *testing.T) {
    locals := make([]uint64, 1)

    /* a comparison produces 0/1 in its own lane, so the value written by
     * local.set is the value the expression returns and local.get reads back
     */
    result := evaluate(t, "(local.set 0 (i64.lt_s (i64.const -1) (i64.const 1)))", locals, nil)
    assert.Equal(t, MakeI64(1), result)
    assert.Equal(t, uint64(1), locals[0])

    result = evaluate(t, "(local.get 0)", locals, nil)
    assert.Equal(t, MakeI32(1), result)

    machine := NewMachine()
    frame := Frame{Locals: locals}
    back := machine.Evaluate(&ast.LocalGetExpression{Local: 0}, ast.I64, &frame)
    assert.Equal(t, MakeI64(1), back)
}

func TestConditional(t *testing.T) {
    result := evaluate(t, "(if (i32.const 0) (i32.const 1) (i32.const 9))", nil, nil)
    assert.Equal(t, MakeI32(9), result)

    result = evaluate(t, "(if (i32.const 3) (i32.const 1) (i32.const 9))", nil, nil)
    assert.Equal(t, MakeI32(1), result)

    /* a false condition with no else produces the default value */
    result = evaluate(t, "(if (i32.const 0) (i32.const 1))", nil, nil)
    assert.Equal(t, MakeI32(0), result)
}

func TestConditionalShortCircuit(t *testing.T) {
    heap := memory.NewMemory(4)

    /* the untaken branch must not run its store */
    result := evaluate(t, "(if (i32.const 0) (i32.store (i32.const 0) (i32.const 1)))", nil, heap)
    assert.Equal(t, MakeI32(0), result)
    assert.Equal(t, []byte{0, 0, 0, 0}, heap.Bytes)

    evaluate(t, "(if (i32.const 1) (i32.store (i32.const 0) (i32.const 1)) (i32.store (i32.const 0) (i32.const 2)))", nil, heap)
    assert.Equal(t, []byte{1, 0, 0, 0}, heap.Bytes)
}

func TestGrowMemory(t *testing.T) {
    heap := memory.NewMemory(10)

    result := evaluate(t, "(memory.grow (i32.const 4))", nil, heap)
    assert.Equal(t, MakeI32(10), result)
    assert.Equal(t, uint32(14), heap.Size())
    for i := uint32(10); i < 14; i++ {
        assert.Equal(t, byte(0), heap.Bytes[i])
    }
}

func TestNop(t *testing.T) {
    result := evaluate(t, "(nop)", nil, nil)
    assert.Equal(t, MakeI32(0), result)
}

func TestEqz(t *testing.T) {
    result := evaluate(t, "(i32.eqz (i32.const 0))", nil, nil)
    assert.Equal(t, MakeI32(1), result)

    result = evaluate(t, "(i32.eqz (i32.const 5))", nil, nil)
    assert.Equal(t, MakeI32(0), result)
}

func TestDivideByZeroTraps(t *testing.T) {
    expr, err := ast.ParseExpression("(i32.div_u (i32.const 5) (i32.const 0))")
    require.NoError(t, err)

    assert.Panics(t, func(){
        EvaluateOne(expr, nil, nil)
    })
}

func TestOutOfBoundsTraps(t *testing.T) {
    heap := memory.NewMemory(2)
    expr, err := ast.ParseExpression("(i32.load (i32.const 0))")
    require.NoError(t, err)

    assert.Panics(t, func(){
        EvaluateOne(expr, nil, heap)
    })
}

func TestPartialMachine(t *testing.T) {
    machine := NewI32Machine()
    frame := Frame{}

    result := machine.Evaluate(&ast.I32ConstExpression{N: 11}, ast.I32, &frame)
    assert.Equal(t, MakeI32(11), result)

    /* an i32-only machine has no f64 lane, so an f64 expression is fatal */
    expr, err := ast.ParseExpression("(f64.add (f64.const 1) (f64.const 2))")
    require.NoError(t, err)

    defer func(){
        trap, ok := recover().(Trap)
        require.True(t, ok, "expected a trap")
        assert.Contains(t, trap.Error(), "no f64 lane")
    }()
    machine.Evaluate(expr, ast.F64, &frame)
}

func TestTypeErrorTraps(t *testing.T) {
    /* a float literal in an i32 context has no conversion */
    expr := &ast.BinOpExpression{
        Type: ast.I32,
        Op: ast.Add,
        Left: &ast.F32ConstExpression{N: 1},
        Right: &ast.I32ConstExpression{N: 2},
    }

    assert.PanicsWithError(t, "type error: unexpected f32 constant", func(){
        EvaluateOne(expr, nil, nil)
    })
}

func TestLocalRawReinterpretation(t *testing.T) {
    locals := make([]uint64, 1)
    heap := memory.NewMemory(8)

    /* store an f64 into a local, then read the same slot back as an f64 */
    result := evaluate(t, "(local.set 0 (f64.const -0.125))", locals, heap)
    assert.Equal(t, MakeF64(-0.125), result)

    machine := NewMachine()
    frame := Frame{Locals: locals, Memory: heap}
    back := machine.Evaluate(&ast.LocalGetExpression{Local: 0}, ast.F64, &frame)
    assert.Equal(t, MakeF64(-0.125), back)
}

/* each testdata script is a wat expression preceded by directives:
 *   ;; locals: <count>
 *   ;; memory: <bytes>
 *   ;; expect: <value, in RuntimeValue notation>
 */
func TestScripts(t *testing.T) {
    paths, err := filepath.Glob(filepath.Join("testdata", "*.wat"))
    require.NoError(t, err)
    require.NotEmpty(t, paths)

    for _, path := range paths {
        path := path
        t.Run(filepath.Base(path), func(t *testing.T){
            data, err := os.ReadFile(path)
            require.NoError(t, err)

            expected := ""
            locals := 0
            memorySize := 0
            for _, line := range strings.Split(string(data), "\n") {
                if value, found := strings.CutPrefix(line, ";; expect: "); found {
                    expected = strings.TrimSpace(value)
                }
                if value, found := strings.CutPrefix(line, ";; locals: "); found {
                    locals, err = strconv.Atoi(strings.TrimSpace(value))
                    require.NoError(t, err)
                }
                if value, found := strings.CutPrefix(line, ";; memory: "); found {
                    memorySize, err = strconv.Atoi(strings.TrimSpace(value))
                    require.NoError(t, err)
                }
            }
            require.NotEmpty(t, expected, "script has no ;; expect directive")

            result := evaluate(t, string(data), make([]uint64, locals), memory.NewMemory(uint32(memorySize)))
            assert.Equal(t, expected, result.String())
        })
    }
}
