package eval

import (
	"fmt"

	"github.com/axel-lang/axel/objects"
)

// callBuiltin dispatches a call whose name has no binding in the
// Environment, per spec.md §4.3.2 step 4 and the built-in table in §6.
func (e *Evaluator) callBuiltin(name string, args []objects.Value) (objects.Value, error) {
	switch name {
	case "len":
		return builtinLen(args)
	case "first":
		return builtinFirst(args)
	case "last":
		return builtinLast(args)
	case "push":
		return builtinPush(args)
	case "print":
		return e.builtinPrint(args)
	default:
		return nil, newEvalError(BuiltinNotFound, "unknown built-in: %s", name)
	}
}

func builtinLen(args []objects.Value) (objects.Value, error) {
	if len(args) != 1 {
		return nil, newEvalError(BuiltinArgs, "len: expected 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case *objects.String:
		return &objects.Integer{Value: int32(len(v.Value))}, nil
	case *objects.Array:
		return &objects.Integer{Value: int32(len(v.Elements))}, nil
	default:
		return nil, newEvalError(BuiltinArgs, "len: unsupported argument type %s", v.Type())
	}
}

func builtinFirst(args []objects.Value) (objects.Value, error) {
	if len(args) != 1 {
		return nil, newEvalError(BuiltinArgs, "first: expected 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case *objects.String:
		if len(v.Value) == 0 {
			return nil, newEvalError(BuiltinArgs, "first: string is empty")
		}
		return &objects.String{Value: string(v.Value[0])}, nil
	case *objects.Array:
		if len(v.Elements) == 0 {
			return nil, newEvalError(BuiltinArgs, "first: array is empty")
		}
		return v.Elements[0], nil
	default:
		return nil, newEvalError(BuiltinArgs, "first: unsupported argument type %s", v.Type())
	}
}

func builtinLast(args []objects.Value) (objects.Value, error) {
	if len(args) != 1 {
		return nil, newEvalError(BuiltinArgs, "last: expected 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case *objects.String:
		if len(v.Value) == 0 {
			return nil, newEvalError(BuiltinArgs, "last: string is empty")
		}
		return &objects.String{Value: string(v.Value[len(v.Value)-1])}, nil
	case *objects.Array:
		if len(v.Elements) == 0 {
			return nil, newEvalError(BuiltinArgs, "last: array is empty")
		}
		return v.Elements[len(v.Elements)-1], nil
	default:
		return nil, newEvalError(BuiltinArgs, "last: unsupported argument type %s", v.Type())
	}
}

// builtinPush returns a new array with elem appended; it never mutates its
// argument (spec.md §6).
func builtinPush(args []objects.Value) (objects.Value, error) {
	if len(args) != 2 {
		return nil, newEvalError(BuiltinArgs, "push: expected 2 arguments, got %d", len(args))
	}
	arr, ok := args[0].(*objects.Array)
	if !ok {
		return nil, newEvalError(BuiltinArgs, "push: first argument must be an array, got %s", args[0].Type())
	}
	next := arr.Clone()
	next.Elements = append(next.Elements, args[1])
	return next, nil
}

func (e *Evaluator) builtinPrint(args []objects.Value) (objects.Value, error) {
	if len(args) != 1 {
		return nil, newEvalError(BuiltinArgs, "print: expected 1 argument, got %d", len(args))
	}
	fmt.Fprintln(e.writer(), args[0].Inspect())
	return &objects.String{Value: ""}, nil
}
