package ast

import (
    "fmt"
)

/* the value representation an expression is evaluated in */
type ValueType int

const (
    I32 ValueType = iota
    I64
    F32
    F64
    NumValueTypes
)

func (type_ ValueType) String() string {
    switch type_ {
        case I32: return "i32"
        case I64: return "i64"
        case F32: return "f32"
        case F64: return "f64"
    }

    return "?"
}

type BinOp int

const (
    Add BinOp = iota
    Sub
    Mul
    DivU
    DivS
    RemU
    RemS
    And
    Or
    Xor
    Shl
    ShrU
    ShrS
    RotL
    RotR
    Eq
    Ne
    LtU
    LtS
    LeU
    LeS
    GtU
    GtS
    GeU
    GeS
)

func (op BinOp) String() string {
    switch op {
        case Add: return "add"
        case Sub: return "sub"
        case Mul: return "mul"
        case DivU: return "div_u"
        case DivS: return "div_s"
        case RemU: return "rem_u"
        case RemS: return "rem_s"
        case And: return "and"
        case Or: return "or"
        case Xor: return "xor"
        case Shl: return "shl"
        case ShrU: return "shr_u"
        case ShrS: return "shr_s"
        case RotL: return "rotl"
        case RotR: return "rotr"
        case Eq: return "eq"
        case Ne: return "ne"
        case LtU: return "lt_u"
        case LtS: return "lt_s"
        case LeU: return "le_u"
        case LeS: return "le_s"
        case GtU: return "gt_u"
        case GtS: return "gt_s"
        case GeU: return "ge_u"
        case GeS: return "ge_s"
    }

    return "?"
}

type UnaryOp int

const (
    Clz UnaryOp = iota
    Ctz
    Popcnt
    Eqz
)

func (op UnaryOp) String() string {
    switch op {
        case Clz: return "clz"
        case Ctz: return "ctz"
        case Popcnt: return "popcnt"
        case Eqz: return "eqz"
    }

    return "?"
}

type Expression interface {
    ConvertToWat() string
}

type BinOpExpression struct {
    Type ValueType
    Op BinOp
    Left Expression
    Right Expression
}

func (expr *BinOpExpression) ConvertToWat() string {
    return fmt.Sprintf("(%v.%v %v %v)", expr.Type, expr.Op, expr.Left.ConvertToWat(), expr.Right.ConvertToWat())
}

type UnaryOpExpression struct {
    Type ValueType
    Op UnaryOp
    Arg Expression
}

func (expr *UnaryOpExpression) ConvertToWat() string {
    return fmt.Sprintf("(%v.%v %v)", expr.Type, expr.Op, expr.Arg.ConvertToWat())
}

type I32ConstExpression struct {
    N uint32
}

func (expr *I32ConstExpression) ConvertToWat() string {
    return fmt.Sprintf("(i32.const %v)", expr.N)
}

type I64ConstExpression struct {
    N uint64
}

func (expr *I64ConstExpression) ConvertToWat() string {
    return fmt.Sprintf("(i64.const %v)", expr.N)
}

type F32ConstExpression struct {
    N float32
}

func (expr *F32ConstExpression) ConvertToWat() string {
    return fmt.Sprintf("(f32.const %v)", expr.N)
}

type F64ConstExpression struct {
    N float64
}

func (expr *F64ConstExpression) ConvertToWat() string {
    return fmt.Sprintf("(f64.const %v)", expr.N)
}

type LocalGetExpression struct {
    Local uint32
}

func (expr *LocalGetExpression) ConvertToWat() string {
    return fmt.Sprintf("(local.get %v)", expr.Local)
}

/* assigning a local is itself an expression: it produces the value it stored */
type LocalSetExpression struct {
    Local uint32
    Value Expression
}

func (expr *LocalSetExpression) ConvertToWat() string {
    return fmt.Sprintf("(local.set %v %v)", expr.Local, expr.Value.ConvertToWat())
}

/* Else may be nil, in which case a false condition produces the default value */
type IfExpression struct {
    Condition Expression
    Then Expression
    Else Expression
}

func (expr *IfExpression) ConvertToWat() string {
    if expr.Else == nil {
        return fmt.Sprintf("(if %v %v)", expr.Condition.ConvertToWat(), expr.Then.ConvertToWat())
    }

    return fmt.Sprintf("(if %v %v %v)", expr.Condition.ConvertToWat(), expr.Then.ConvertToWat(), expr.Else.ConvertToWat())
}

type LoadExpression struct {
    Type ValueType
    Address Expression
}

func (expr *LoadExpression) ConvertToWat() string {
    return fmt.Sprintf("(%v.load %v)", expr.Type, expr.Address.ConvertToWat())
}

type StoreExpression struct {
    Type ValueType
    Address Expression
    Value Expression
}

func (expr *StoreExpression) ConvertToWat() string {
    return fmt.Sprintf("(%v.store %v %v)", expr.Type, expr.Address.ConvertToWat(), expr.Value.ConvertToWat())
}

type GrowMemoryExpression struct {
    Size Expression
}

func (expr *GrowMemoryExpression) ConvertToWat() string {
    return fmt.Sprintf("(memory.grow %v)", expr.Size.ConvertToWat())
}

type NopExpression struct {
}

func (expr *NopExpression) ConvertToWat() string {
    return "(nop)"
}

/* the representation an expression naturally produces, read off the node tags.
 * nodes that take their representation from context (local.get, nop) default to i32
 */
func TypeOf(expr Expression) ValueType {
    switch expr := expr.(type) {
        case *BinOpExpression:
            return expr.Type
        case *UnaryOpExpression:
            return expr.Type
        case *I32ConstExpression:
            return I32
        case *I64ConstExpression:
            return I64
        case *F32ConstExpression:
            return F32
        case *F64ConstExpression:
            return F64
        case *LocalSetExpression:
            return TypeOf(expr.Value)
        case *IfExpression:
            return TypeOf(expr.Then)
        case *LoadExpression:
            return expr.Type
        case *StoreExpression:
            return expr.Type
    }

    return I32
}
