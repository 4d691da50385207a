package data

import (
    "testing"
)

func TestBasic(test *testing.T){
    var x Stack[int]

    x.Push(3)
    x.Push(4)

    if x.Size() != 2 {
        test.Fatalf("expected size to be 2")
    }

    if x.Get(0) != 4 {
        test.Fatalf("expected top of stack to be 4")
    }

    if x.Get(1) != 3 {
        test.Fatalf("expected second element to be 3")
    }

    if x.Pop() != 4 {
        test.Fatalf("expected 4")
    }

    if x.Pop() != 3 {
        test.Fatalf("expected 3")
    }

    if x.Size() != 0 {
        test.Fatalf("stack should be empty")
    }
}

func TestPopEmpty(test *testing.T){
    var x Stack[*int]

    if x.Pop() != nil {
        test.Fatalf("popping an empty stack should produce the zero value")
    }
}
