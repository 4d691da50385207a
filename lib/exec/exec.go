package exec

import (
    "fmt"
    "reflect"

    "github.com/kazzmir/wasmexpr/lib/ast"
    "github.com/kazzmir/wasmexpr/lib/memory"
    "github.com/rs/zerolog"
)

type RuntimeValueKind int

const (
    RuntimeValueNone RuntimeValueKind = iota
    RuntimeValueI32
    RuntimeValueI64
    RuntimeValueF32
    RuntimeValueF64
)

/* represents values during the execution of the expression machine.
 * integers are kept unsigned, operators that want signed operands
 * reinterpret them
 */
type RuntimeValue struct {
    Kind RuntimeValueKind
    I32 uint32
    I64 uint64
    F32 float32
    F64 float64
}

func MakeI32(value uint32) RuntimeValue {
    return RuntimeValue{Kind: RuntimeValueI32, I32: value}
}

func MakeI64(value uint64) RuntimeValue {
    return RuntimeValue{Kind: RuntimeValueI64, I64: value}
}

func MakeF32(value float32) RuntimeValue {
    return RuntimeValue{Kind: RuntimeValueF32, F32: value}
}

func MakeF64(value float64) RuntimeValue {
    return RuntimeValue{Kind: RuntimeValueF64, F64: value}
}

func (value RuntimeValue) String() string {
    switch value.Kind {
        case RuntimeValueNone: return "none"
        case RuntimeValueI32: return fmt.Sprintf("%v:i32", value.I32)
        case RuntimeValueI64: return fmt.Sprintf("%v:i64", value.I64)
        case RuntimeValueF32: return fmt.Sprintf("%v:f32", value.F32)
        case RuntimeValueF64: return fmt.Sprintf("%v:f64", value.F64)
    }

    return "?"
}

/* a trap is an unrecoverable runtime condition: a representation mismatch,
 * an access past the end of memory, division by zero. traps abort the
 * evaluation as a panic and are never caught inside this core
 */
type Trap struct {
    Reason string
}

func (trap Trap) Error() string {
    return trap.Reason
}

func RaiseTrap(reason string, args ...any){
    panic(Trap{Reason: fmt.Sprintf(reason, args...)})
}

/* activation frame: the local slots and the linear memory, exclusively
 * owned by one evaluation call and mutated in place
 */
type Frame struct {
    Locals []uint64
    Memory *memory.Memory
}

/* a machine holds one lane per value representation. a nil entry means the
 * representation is not supported and any expression needing it traps, so a
 * partial machine can run programs that stay within the lanes it carries
 */
type Machine struct {
    Lanes [ast.NumValueTypes]Lane
    Trace zerolog.Logger
}

/* a machine with all four lanes */
func NewMachine() *Machine {
    machine := Machine{Trace: zerolog.Nop()}
    machine.Lanes[ast.I32] = I32Lane{}
    machine.Lanes[ast.I64] = I64Lane{}
    machine.Lanes[ast.F32] = F32Lane{}
    machine.Lanes[ast.F64] = F64Lane{}
    return &machine
}

/* a machine with only the i32 reference lane */
func NewI32Machine() *Machine {
    machine := Machine{Trace: zerolog.Nop()}
    machine.Lanes[ast.I32] = I32Lane{}
    return &machine
}

func (machine *Machine) lane(type_ ast.ValueType) Lane {
    lane := machine.Lanes[type_]
    if lane == nil {
        RaiseTrap("type error: no %v lane", type_)
    }

    return lane
}

/* addresses, conditions, and grow sizes are always evaluated in the i32 lane */
func (machine *Machine) evaluateI32(expr ast.Expression, frame *Frame) uint32 {
    return machine.Evaluate(expr, ast.I32, frame).I32
}

/* Evaluate walks 'expr' recursively and produces a value in the
 * representation 'want'. representation selection is syntax directed: nodes
 * that carry a type tag evaluate their children in that representation, and
 * nodes without one (local.get, local.set, if branches, nop) inherit the
 * representation demanded by their position in the tree.
 *
 * only control flow expressible in direct recursive style is handled here.
 * blocks, loops, branches and calls need a control flow graph and belong to
 * a different machine
 */
func (machine *Machine) Evaluate(expr ast.Expression, want ast.ValueType, frame *Frame) RuntimeValue {
    switch expr := expr.(type) {
        case *ast.BinOpExpression:
            lane := machine.lane(expr.Type)
            lhs := machine.Evaluate(expr.Left, expr.Type, frame)
            rhs := machine.Evaluate(expr.Right, expr.Type, frame)
            return lane.Binop(expr.Op, lhs, rhs)
        case *ast.UnaryOpExpression:
            lane := machine.lane(expr.Type)
            arg := machine.Evaluate(expr.Arg, expr.Type, frame)
            return lane.Unop(expr.Op, arg)
        case *ast.I32ConstExpression:
            return machine.lane(want).FromI32(expr.N)
        case *ast.I64ConstExpression:
            return machine.lane(want).FromI64(expr.N)
        case *ast.F32ConstExpression:
            return machine.lane(want).FromF32(expr.N)
        case *ast.F64ConstExpression:
            return machine.lane(want).FromF64(expr.N)
        case *ast.LocalGetExpression:
            return machine.lane(want).FromRaw(frame.Locals[expr.Local])
        case *ast.LocalSetExpression:
            lane := machine.lane(want)
            value := machine.Evaluate(expr.Value, want, frame)
            frame.Locals[expr.Local] = lane.ToRaw(value)
            return value
        case *ast.IfExpression:
            condition := machine.evaluateI32(expr.Condition, frame)
            if condition == 0 {
                if expr.Else == nil {
                    return machine.lane(want).Default()
                }
                return machine.Evaluate(expr.Else, want, frame)
            }
            return machine.Evaluate(expr.Then, want, frame)
        case *ast.LoadExpression:
            address := machine.evaluateI32(expr.Address, frame)
            machine.Trace.Debug().Stringer("type", expr.Type).Uint32("address", address).Msg("load")
            lane := machine.lane(expr.Type)
            switch expr.Type {
                case ast.I32: return lane.FromI32(frame.Memory.ReadUint32(address))
                case ast.I64: return lane.FromI64(frame.Memory.ReadUint64(address))
                case ast.F32: return lane.FromF32(frame.Memory.ReadFloat32(address))
                case ast.F64: return lane.FromF64(frame.Memory.ReadFloat64(address))
            }
        case *ast.StoreExpression:
            address := machine.evaluateI32(expr.Address, frame)
            value := machine.Evaluate(expr.Value, expr.Type, frame)
            machine.Trace.Debug().Stringer("type", expr.Type).Uint32("address", address).Stringer("value", value).Msg("store")
            switch expr.Type {
                case ast.I32: frame.Memory.WriteUint32(address, value.I32)
                case ast.I64: frame.Memory.WriteUint64(address, value.I64)
                case ast.F32: frame.Memory.WriteFloat32(address, value.F32)
                case ast.F64: frame.Memory.WriteFloat64(address, value.F64)
            }
            return value
        case *ast.GrowMemoryExpression:
            size := machine.evaluateI32(expr.Size, frame)
            previous := frame.Memory.Grow(size)
            machine.Trace.Debug().Uint32("delta", size).Uint32("previous", previous).Msg("memory.grow")
            return machine.lane(want).FromI32(previous)
        case *ast.NopExpression:
            return machine.lane(want).Default()
    }

    RaiseTrap("unhandled expression %v", reflect.TypeOf(expr))
    return RuntimeValue{}
}

/* evaluate a single expression against the given locals and memory with a
 * machine carrying all four lanes. the representation is read off the node
 */
func EvaluateOne(expr ast.Expression, locals []uint64, heap *memory.Memory) RuntimeValue {
    machine := NewMachine()
    frame := Frame{Locals: locals, Memory: heap}
    return machine.Evaluate(expr, ast.TypeOf(expr), &frame)
}
