package ast

import (
    "fmt"
    "strconv"
    "strings"

    "github.com/kazzmir/wasmexpr/lib/sexp"
)

var valueTypeNames = map[string]ValueType{
    "i32": I32,
    "i64": I64,
    "f32": F32,
    "f64": F64,
}

var binOpNames = map[string]BinOp{
    "add": Add,
    "sub": Sub,
    "mul": Mul,
    "div_u": DivU,
    "div_s": DivS,
    "rem_u": RemU,
    "rem_s": RemS,
    "and": And,
    "or": Or,
    "xor": Xor,
    "shl": Shl,
    "shr_u": ShrU,
    "shr_s": ShrS,
    "rotl": RotL,
    "rotr": RotR,
    "eq": Eq,
    "ne": Ne,
    "lt_u": LtU,
    "lt_s": LtS,
    "le_u": LeU,
    "le_s": LeS,
    "gt_u": GtU,
    "gt_s": GtS,
    "ge_u": GeU,
    "ge_s": GeS,
}

var unaryOpNames = map[string]UnaryOp{
    "clz": Clz,
    "ctz": Ctz,
    "popcnt": Popcnt,
    "eqz": Eqz,
}

/* accepts both a plain unsigned literal and a negative literal, which is
 * reinterpreted into the unsigned value of the same width
 */
func parseIntLiteral(token string, bits int) (uint64, error) {
    value, err := strconv.ParseUint(token, 0, bits)
    if err == nil {
        return value, nil
    }

    signed, err := strconv.ParseInt(token, 0, bits)
    if err != nil {
        return 0, fmt.Errorf("could not parse integer literal '%v': %v", token, err)
    }

    if bits == 32 {
        return uint64(uint32(signed)), nil
    }

    return uint64(signed), nil
}

func literal(sexpr *sexp.SExpression, position int, what string) (string, error) {
    if position >= len(sexpr.Children) {
        return "", fmt.Errorf("%v: missing %v", sexpr.Name, what)
    }

    child := sexpr.Children[position]
    if child.Value == "" {
        return "", fmt.Errorf("%v: expected a literal %v but got %v", sexpr.Name, what, child.String())
    }

    return child.Value, nil
}

func subExpression(sexpr *sexp.SExpression, position int, what string) (Expression, error) {
    if position >= len(sexpr.Children) {
        return nil, fmt.Errorf("%v: missing %v", sexpr.Name, what)
    }

    return MakeExpression(sexpr.Children[position])
}

func localIndex(sexpr *sexp.SExpression) (uint32, error) {
    token, err := literal(sexpr, 0, "local index")
    if err != nil {
        return 0, err
    }

    index, err := strconv.ParseUint(token, 10, 32)
    if err != nil {
        return 0, fmt.Errorf("%v: bad local index '%v': %v", sexpr.Name, token, err)
    }

    return uint32(index), nil
}

func makeConstExpression(type_ ValueType, token string) (Expression, error) {
    switch type_ {
        case I32:
            value, err := parseIntLiteral(token, 32)
            if err != nil {
                return nil, err
            }
            return &I32ConstExpression{N: uint32(value)}, nil
        case I64:
            value, err := parseIntLiteral(token, 64)
            if err != nil {
                return nil, err
            }
            return &I64ConstExpression{N: value}, nil
        case F32:
            value, err := strconv.ParseFloat(token, 32)
            if err != nil {
                return nil, fmt.Errorf("could not parse float literal '%v': %v", token, err)
            }
            return &F32ConstExpression{N: float32(value)}, nil
        case F64:
            value, err := strconv.ParseFloat(token, 64)
            if err != nil {
                return nil, fmt.Errorf("could not parse float literal '%v': %v", token, err)
            }
            return &F64ConstExpression{N: value}, nil
    }

    return nil, fmt.Errorf("unknown constant type %v", type_)
}

/* build an expression tree out of a folded wat-style s-expression, such as
 *   (i32.store (i32.const 0) (i32.add (i32.const 2) (i32.const 3)))
 */
func MakeExpression(sexpr *sexp.SExpression) (Expression, error) {
    if sexpr.Value != "" {
        return nil, fmt.Errorf("expected an expression but got the bare token '%v'", sexpr.Value)
    }

    switch sexpr.Name {
        case "nop":
            return &NopExpression{}, nil
        case "local.get", "get_local":
            index, err := localIndex(sexpr)
            if err != nil {
                return nil, err
            }
            return &LocalGetExpression{Local: index}, nil
        case "local.set", "set_local":
            index, err := localIndex(sexpr)
            if err != nil {
                return nil, err
            }
            value, err := subExpression(sexpr, 1, "value")
            if err != nil {
                return nil, err
            }
            return &LocalSetExpression{Local: index, Value: value}, nil
        case "if":
            condition, err := subExpression(sexpr, 0, "condition")
            if err != nil {
                return nil, err
            }
            then, err := subExpression(sexpr, 1, "then branch")
            if err != nil {
                return nil, err
            }
            out := &IfExpression{Condition: condition, Then: then}
            if len(sexpr.Children) > 2 {
                out.Else, err = MakeExpression(sexpr.Children[2])
                if err != nil {
                    return nil, err
                }
            }
            return out, nil
        case "memory.grow", "grow_memory":
            size, err := subExpression(sexpr, 0, "size")
            if err != nil {
                return nil, err
            }
            return &GrowMemoryExpression{Size: size}, nil
    }

    /* everything else is type-prefixed, like i32.add or f64.store */
    dot := strings.IndexByte(sexpr.Name, '.')
    if dot == -1 {
        return nil, fmt.Errorf("unknown expression '%v'", sexpr.Name)
    }

    type_, ok := valueTypeNames[sexpr.Name[:dot]]
    if !ok {
        return nil, fmt.Errorf("unknown value type in '%v'", sexpr.Name)
    }

    opName := sexpr.Name[dot+1:]
    switch opName {
        case "const":
            token, err := literal(sexpr, 0, "constant")
            if err != nil {
                return nil, err
            }
            return makeConstExpression(type_, token)
        case "load":
            address, err := subExpression(sexpr, 0, "address")
            if err != nil {
                return nil, err
            }
            return &LoadExpression{Type: type_, Address: address}, nil
        case "store":
            address, err := subExpression(sexpr, 0, "address")
            if err != nil {
                return nil, err
            }
            value, err := subExpression(sexpr, 1, "value")
            if err != nil {
                return nil, err
            }
            return &StoreExpression{Type: type_, Address: address, Value: value}, nil
    }

    if op, ok := binOpNames[opName]; ok {
        left, err := subExpression(sexpr, 0, "left operand")
        if err != nil {
            return nil, err
        }
        right, err := subExpression(sexpr, 1, "right operand")
        if err != nil {
            return nil, err
        }
        return &BinOpExpression{Type: type_, Op: op, Left: left, Right: right}, nil
    }

    if op, ok := unaryOpNames[opName]; ok {
        arg, err := subExpression(sexpr, 0, "operand")
        if err != nil {
            return nil, err
        }
        return &UnaryOpExpression{Type: type_, Op: op, Arg: arg}, nil
    }

    return nil, fmt.Errorf("unknown operator '%v'", sexpr.Name)
}

/* convenience for tests and the cli: text all the way to a tree */
func ParseExpression(input string) (Expression, error) {
    sexpr, err := sexp.ParseSExpression(input)
    if err != nil {
        return nil, err
    }

    return MakeExpression(&sexpr)
}
