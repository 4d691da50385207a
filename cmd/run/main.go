package main

import (
    "encoding/hex"
    "flag"
    "fmt"
    "os"

    "github.com/kazzmir/wasmexpr/lib/ast"
    "github.com/kazzmir/wasmexpr/lib/exec"
    "github.com/kazzmir/wasmexpr/lib/memory"
    "github.com/rs/zerolog"
)

func main(){
    expression := flag.String("e", "", "evaluate the given expression text instead of a file")
    localCount := flag.Int("locals", 8, "number of local slots")
    memorySize := flag.Int("memory", 64, "initial linear memory size in bytes")
    dump := flag.Bool("dump", false, "print the linear memory after evaluation")
    trace := flag.Bool("trace", false, "log memory effects during evaluation")
    flag.Parse()

    log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

    input := *expression
    if input == "" {
        if flag.NArg() < 1 {
            log.Fatal().Msg("give a wat expression file to evaluate, or pass one with -e")
        }

        data, err := os.ReadFile(flag.Arg(0))
        if err != nil {
            log.Fatal().Err(err).Msg("could not read input")
        }
        input = string(data)
    }

    expr, err := ast.ParseExpression(input)
    if err != nil {
        log.Fatal().Err(err).Msg("could not parse expression")
    }

    machine := exec.NewMachine()
    if *trace {
        machine.Trace = log.Level(zerolog.DebugLevel)
    }

    locals := make([]uint64, *localCount)
    heap := memory.NewMemory(uint32(*memorySize))

    /* traps abort the evaluation as panics. the cli is the surrounding
     * driver, so it catches them and reports instead of crashing
     */
    defer func(){
        if reason := recover(); reason != nil {
            log.Fatal().Msgf("trap: %v", reason)
        }
    }()

    result := machine.Evaluate(expr, ast.TypeOf(expr), &exec.Frame{Locals: locals, Memory: heap})
    fmt.Println(result)

    if *dump {
        fmt.Print(hex.Dump(heap.Bytes))
    }
}
