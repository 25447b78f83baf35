package errors

import "fmt"

// ErrInvalidArgument matches every InvalidArgumentError with errors.Is.
var ErrInvalidArgument error = InvalidArgumentError{}

// InvalidArgumentError is returned by a setter handed a value outside its
// accepted range. Nothing is clamped.
type InvalidArgumentError struct {
	Op    string
	Arg   string
	Value int
}

func (err InvalidArgumentError) Error() string {
	if len(err.Op) == 0 {
		return "invalid argument"
	}
	return fmt.Sprintf("%s: %s %d is not valid", err.Op, err.Arg, err.Value)
}

func (err InvalidArgumentError) Is(target error) bool {
	_, ok := target.(InvalidArgumentError)
	return ok
}

type UnknownMotorError struct {
	Name string
}

func (err UnknownMotorError) Error() string {
	return fmt.Sprintf("no such motor %s", err.Name)
}

type IncorrectPlatformError struct {
	Name   string
	Action string
}

func (err IncorrectPlatformError) Error() string {
	if len(err.Action) == 0 {
		err.Action = "UNKNOWN"
	}
	if len(err.Name) == 0 {
		err.Name = "UNKNOWN"
	}

	return fmt.Sprintf("incorrect platform; platform %s is unable to perform action %s", err.Name, err.Action)
}
