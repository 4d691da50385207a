package sexp

import (
    "fmt"
    "strings"

    "github.com/kazzmir/wasmexpr/lib/data"
)

type SExpression struct {
    Parent *SExpression
    Children []*SExpression
    Name string // (xyz sub1 sub2 ...) the name is 'xyz'
    Value string // if no parens, then this is just the token
}

func (sexpr *SExpression) Equal(other *SExpression) bool {
    if sexpr.Value != "" || other.Value != "" {
        return sexpr.Value == other.Value
    }

    if sexpr.Name != other.Name {
        return false
    }

    if len(sexpr.Children) != len(other.Children) {
        return false
    }

    for i := 0; i < len(sexpr.Children); i++ {
        if !sexpr.Children[i].Equal(other.Children[i]) {
            return false
        }
    }

    return true
}

func (sexpr *SExpression) String() string {
    if sexpr.Value != "" {
        return sexpr.Value
    }

    var out strings.Builder
    out.WriteByte('(')
    out.WriteString(sexpr.Name)
    for _, child := range sexpr.Children {
        out.WriteByte(' ')
        out.WriteString(child.String())
    }
    out.WriteByte(')')

    return out.String()
}

func (sexpr *SExpression) AddChild(child *SExpression){
    child.Parent = sexpr
    sexpr.Children = append(sexpr.Children, child)
}

type TokenKind int

const (
    TokenEOF TokenKind = iota
    TokenLeftParens
    TokenRightParens
    TokenWhitespace
    TokenIdentifier
)

type Token struct {
    Kind TokenKind
    Value string
}

func (token Token) String() string {
    switch token.Kind {
        case TokenEOF: return "<eof>"
        case TokenLeftParens: return "("
        case TokenRightParens: return ")"
        case TokenWhitespace: return "<space>"
        case TokenIdentifier: return token.Value
    }

    return "?"
}

/* scans parens, whitespace runs, and identifiers. ;; comments are skipped
 * up to the end of the line
 */
type Tokenizer struct {
    reader *strings.Reader
}

func NewTokenizer(input string) *Tokenizer {
    return &Tokenizer{
        reader: strings.NewReader(input),
    }
}

func isWhitespace(c byte) bool {
    return c == ' ' || c == '\n' || c == '\t' || c == '\r'
}

func (tokenizer *Tokenizer) skipLine(){
    for {
        next, err := tokenizer.reader.ReadByte()
        if err != nil || next == '\n' {
            return
        }
    }
}

func (tokenizer *Tokenizer) Next() Token {
    for {
        first, err := tokenizer.reader.ReadByte()
        if err != nil {
            return Token{Kind: TokenEOF}
        }

        if first == '(' {
            return Token{Kind: TokenLeftParens, Value: "("}
        }

        if first == ')' {
            return Token{Kind: TokenRightParens, Value: ")"}
        }

        if isWhitespace(first) {
            for {
                next, err := tokenizer.reader.ReadByte()
                if err != nil {
                    break
                }
                if !isWhitespace(next) {
                    tokenizer.reader.UnreadByte()
                    break
                }
            }
            return Token{Kind: TokenWhitespace, Value: " "}
        }

        /* a line comment starts with ;; */
        if first == ';' {
            next, err := tokenizer.reader.ReadByte()
            if err == nil && next == ';' {
                tokenizer.skipLine()
                continue
            }
            if err == nil {
                tokenizer.reader.UnreadByte()
            }
        }

        var out strings.Builder
        out.WriteByte(first)
        for {
            next, err := tokenizer.reader.ReadByte()
            if err != nil {
                break
            }

            if isWhitespace(next) || next == '(' || next == ')' {
                tokenizer.reader.UnreadByte()
                break
            }

            out.WriteByte(next)
        }
        return Token{Kind: TokenIdentifier, Value: out.String()}
    }
}

func ParseSExpression(input string) (SExpression, error) {
    tokenizer := NewTokenizer(input)

    var top *SExpression
    var open data.Stack[*SExpression]

    quit := false
    for !quit {
        token := tokenizer.Next()
        switch token.Kind {
            case TokenWhitespace:
                /* nothing */
            case TokenLeftParens:
                next := new(SExpression)
                if open.Size() > 0 {
                    open.Get(0).AddChild(next)
                } else if top != nil {
                    return SExpression{}, fmt.Errorf("more than one top level expression")
                } else {
                    top = next
                }
                open.Push(next)
            case TokenRightParens:
                if open.Size() == 0 {
                    return SExpression{}, fmt.Errorf("unbalanced right parens")
                }
                open.Pop()
            case TokenIdentifier:
                if open.Size() == 0 {
                    return SExpression{}, fmt.Errorf("token '%v' outside of parens", token.Value)
                }
                current := open.Get(0)
                if current.Name == "" {
                    current.Name = token.Value
                } else {
                    current.AddChild(&SExpression{Value: token.Value})
                }
            case TokenEOF:
                quit = true
        }
    }

    if open.Size() != 0 {
        return SExpression{}, fmt.Errorf("did not parse all parens")
    }

    if top == nil {
        return SExpression{}, fmt.Errorf("empty input")
    }

    return *top, nil
}
