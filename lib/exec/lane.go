package exec

import (
    "math"
    "math/bits"

    "github.com/kazzmir/wasmexpr/lib/ast"
)

/* a lane is the complete operator and conversion semantics for one value
 * representation. a machine carries one lane per representation it supports
 */
type Lane interface {
    Binop(op ast.BinOp, lhs RuntimeValue, rhs RuntimeValue) RuntimeValue
    Unop(op ast.UnaryOp, arg RuntimeValue) RuntimeValue

    /* lift a constant of the given literal kind into this lane */
    FromI32(value uint32) RuntimeValue
    FromI64(value uint64) RuntimeValue
    FromF32(value float32) RuntimeValue
    FromF64(value float64) RuntimeValue

    /* reinterpret to and from the raw 64-bit local slot */
    FromRaw(raw uint64) RuntimeValue
    ToRaw(value RuntimeValue) uint64

    Default() RuntimeValue
}

/* embed BaseLane to get constant lifting that traps with a type error,
 * then override only the literal kinds the lane natively accepts
 */
type BaseLane struct {
}

func (lane BaseLane) FromI32(value uint32) RuntimeValue {
    RaiseTrap("type error: unexpected i32 constant")
    return RuntimeValue{}
}

func (lane BaseLane) FromI64(value uint64) RuntimeValue {
    RaiseTrap("type error: unexpected i64 constant")
    return RuntimeValue{}
}

func (lane BaseLane) FromF32(value float32) RuntimeValue {
    RaiseTrap("type error: unexpected f32 constant")
    return RuntimeValue{}
}

func (lane BaseLane) FromF64(value float64) RuntimeValue {
    RaiseTrap("type error: unexpected f64 constant")
    return RuntimeValue{}
}

func boolValue(b bool) uint32 {
    if b {
        return 1
    }

    return 0
}

/* the i32 lane. signedness is a property of the operator, not the value,
 * so operands are reinterpreted as signed only where the operator asks for it
 */
type I32Lane struct {
    BaseLane
}

func (lane I32Lane) Binop(op ast.BinOp, lhs RuntimeValue, rhs RuntimeValue) RuntimeValue {
    a := lhs.I32
    b := rhs.I32

    switch op {
        case ast.Add: return MakeI32(a + b)
        case ast.Sub: return MakeI32(a - b)
        case ast.Mul: return MakeI32(a * b)
        case ast.DivU: return MakeI32(a / b)
        case ast.DivS: return MakeI32(uint32(int32(a) / int32(b)))
        case ast.RemU: return MakeI32(a % b)
        case ast.RemS: return MakeI32(uint32(int32(a) % int32(b)))
        case ast.And: return MakeI32(a & b)
        case ast.Or: return MakeI32(a | b)
        case ast.Xor: return MakeI32(a ^ b)
        case ast.Shl: return MakeI32(a << (b & 31))
        case ast.ShrU: return MakeI32(a >> (b & 31))
        case ast.ShrS: return MakeI32(uint32(int32(a) >> (b & 31)))
        case ast.RotL: return MakeI32(bits.RotateLeft32(a, int(b & 31)))
        case ast.RotR: return MakeI32(bits.RotateLeft32(a, -int(b & 31)))
        case ast.Eq: return MakeI32(boolValue(a == b))
        case ast.Ne: return MakeI32(boolValue(a != b))
        case ast.LtU: return MakeI32(boolValue(a < b))
        case ast.LtS: return MakeI32(boolValue(int32(a) < int32(b)))
        case ast.LeU: return MakeI32(boolValue(a <= b))
        case ast.LeS: return MakeI32(boolValue(int32(a) <= int32(b)))
        case ast.GtU: return MakeI32(boolValue(a > b))
        case ast.GtS: return MakeI32(boolValue(int32(a) > int32(b)))
        case ast.GeU: return MakeI32(boolValue(a >= b))
        case ast.GeS: return MakeI32(boolValue(int32(a) >= int32(b)))
    }

    RaiseTrap("no %v operator for i32", op)
    return RuntimeValue{}
}

func (lane I32Lane) Unop(op ast.UnaryOp, arg RuntimeValue) RuntimeValue {
    a := arg.I32

    switch op {
        case ast.Clz: return MakeI32(uint32(bits.LeadingZeros32(a)))
        case ast.Ctz: return MakeI32(uint32(bits.TrailingZeros32(a)))
        case ast.Popcnt: return MakeI32(uint32(bits.OnesCount32(a)))
        case ast.Eqz: return MakeI32(boolValue(a == 0))
    }

    RaiseTrap("no %v operator for i32", op)
    return RuntimeValue{}
}

func (lane I32Lane) FromI32(value uint32) RuntimeValue {
    return MakeI32(value)
}

func (lane I32Lane) FromRaw(raw uint64) RuntimeValue {
    return MakeI32(uint32(raw))
}

func (lane I32Lane) ToRaw(value RuntimeValue) uint64 {
    return uint64(value.I32)
}

func (lane I32Lane) Default() RuntimeValue {
    return MakeI32(0)
}

/* the i64 lane mirrors the i32 lane at 64 bits */
type I64Lane struct {
    BaseLane
}

func (lane I64Lane) Binop(op ast.BinOp, lhs RuntimeValue, rhs RuntimeValue) RuntimeValue {
    a := lhs.I64
    b := rhs.I64

    switch op {
        case ast.Add: return MakeI64(a + b)
        case ast.Sub: return MakeI64(a - b)
        case ast.Mul: return MakeI64(a * b)
        case ast.DivU: return MakeI64(a / b)
        case ast.DivS: return MakeI64(uint64(int64(a) / int64(b)))
        case ast.RemU: return MakeI64(a % b)
        case ast.RemS: return MakeI64(uint64(int64(a) % int64(b)))
        case ast.And: return MakeI64(a & b)
        case ast.Or: return MakeI64(a | b)
        case ast.Xor: return MakeI64(a ^ b)
        case ast.Shl: return MakeI64(a << (b & 63))
        case ast.ShrU: return MakeI64(a >> (b & 63))
        case ast.ShrS: return MakeI64(uint64(int64(a) >> (b & 63)))
        case ast.RotL: return MakeI64(bits.RotateLeft64(a, int(b & 63)))
        case ast.RotR: return MakeI64(bits.RotateLeft64(a, -int(b & 63)))
        case ast.Eq: return MakeI64(uint64(boolValue(a == b)))
        case ast.Ne: return MakeI64(uint64(boolValue(a != b)))
        case ast.LtU: return MakeI64(uint64(boolValue(a < b)))
        case ast.LtS: return MakeI64(uint64(boolValue(int64(a) < int64(b))))
        case ast.LeU: return MakeI64(uint64(boolValue(a <= b)))
        case ast.LeS: return MakeI64(uint64(boolValue(int64(a) <= int64(b))))
        case ast.GtU: return MakeI64(uint64(boolValue(a > b)))
        case ast.GtS: return MakeI64(uint64(boolValue(int64(a) > int64(b))))
        case ast.GeU: return MakeI64(uint64(boolValue(a >= b)))
        case ast.GeS: return MakeI64(uint64(boolValue(int64(a) >= int64(b))))
    }

    RaiseTrap("no %v operator for i64", op)
    return RuntimeValue{}
}

func (lane I64Lane) Unop(op ast.UnaryOp, arg RuntimeValue) RuntimeValue {
    a := arg.I64

    switch op {
        case ast.Clz: return MakeI64(uint64(bits.LeadingZeros64(a)))
        case ast.Ctz: return MakeI64(uint64(bits.TrailingZeros64(a)))
        case ast.Popcnt: return MakeI64(uint64(bits.OnesCount64(a)))
        case ast.Eqz: return MakeI64(uint64(boolValue(a == 0)))
    }

    RaiseTrap("no %v operator for i64", op)
    return RuntimeValue{}
}

func (lane I64Lane) FromI64(value uint64) RuntimeValue {
    return MakeI64(value)
}

func (lane I64Lane) FromRaw(raw uint64) RuntimeValue {
    return MakeI64(raw)
}

func (lane I64Lane) ToRaw(value RuntimeValue) uint64 {
    return value.I64
}

func (lane I64Lane) Default() RuntimeValue {
    return MakeI64(0)
}

/* the f32 lane supports arithmetic and comparisons. both signedness variants
 * of a comparison or division collapse to the single float operator,
 * comparisons produce 0/1 in-lane, and the bitwise and integer-count
 * operators trap
 */
type F32Lane struct {
    BaseLane
}

func (lane F32Lane) Binop(op ast.BinOp, lhs RuntimeValue, rhs RuntimeValue) RuntimeValue {
    a := lhs.F32
    b := rhs.F32

    switch op {
        case ast.Add: return MakeF32(a + b)
        case ast.Sub: return MakeF32(a - b)
        case ast.Mul: return MakeF32(a * b)
        case ast.DivU, ast.DivS: return MakeF32(a / b)
        case ast.Eq: return MakeF32(float32(boolValue(a == b)))
        case ast.Ne: return MakeF32(float32(boolValue(a != b)))
        case ast.LtU, ast.LtS: return MakeF32(float32(boolValue(a < b)))
        case ast.LeU, ast.LeS: return MakeF32(float32(boolValue(a <= b)))
        case ast.GtU, ast.GtS: return MakeF32(float32(boolValue(a > b)))
        case ast.GeU, ast.GeS: return MakeF32(float32(boolValue(a >= b)))
    }

    RaiseTrap("no %v operator for f32", op)
    return RuntimeValue{}
}

func (lane F32Lane) Unop(op ast.UnaryOp, arg RuntimeValue) RuntimeValue {
    RaiseTrap("no %v operator for f32", op)
    return RuntimeValue{}
}

func (lane F32Lane) FromF32(value float32) RuntimeValue {
    return MakeF32(value)
}

func (lane F32Lane) FromRaw(raw uint64) RuntimeValue {
    return MakeF32(math.Float32frombits(uint32(raw)))
}

func (lane F32Lane) ToRaw(value RuntimeValue) uint64 {
    return uint64(math.Float32bits(value.F32))
}

func (lane F32Lane) Default() RuntimeValue {
    return MakeF32(0)
}

type F64Lane struct {
    BaseLane
}

func (lane F64Lane) Binop(op ast.BinOp, lhs RuntimeValue, rhs RuntimeValue) RuntimeValue {
    a := lhs.F64
    b := rhs.F64

    switch op {
        case ast.Add: return MakeF64(a + b)
        case ast.Sub: return MakeF64(a - b)
        case ast.Mul: return MakeF64(a * b)
        case ast.DivU, ast.DivS: return MakeF64(a / b)
        case ast.Eq: return MakeF64(float64(boolValue(a == b)))
        case ast.Ne: return MakeF64(float64(boolValue(a != b)))
        case ast.LtU, ast.LtS: return MakeF64(float64(boolValue(a < b)))
        case ast.LeU, ast.LeS: return MakeF64(float64(boolValue(a <= b)))
        case ast.GtU, ast.GtS: return MakeF64(float64(boolValue(a > b)))
        case ast.GeU, ast.GeS: return MakeF64(float64(boolValue(a >= b)))
    }

    RaiseTrap("no %v operator for f64", op)
    return RuntimeValue{}
}

func (lane F64Lane) Unop(op ast.UnaryOp, arg RuntimeValue) RuntimeValue {
    RaiseTrap("no %v operator for f64", op)
    return RuntimeValue{}
}

func (lane F64Lane) FromF64(value float64) RuntimeValue {
    return MakeF64(value)
}

func (lane F64Lane) FromRaw(raw uint64) RuntimeValue {
    return MakeF64(math.Float64frombits(raw))
}

func (lane F64Lane) ToRaw(value RuntimeValue) uint64 {
    return math.Float64bits(value.F64)
}

func (lane F64Lane) Default() RuntimeValue {
    return MakeF64(0)
}
