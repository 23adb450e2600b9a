package swtws

import (
	"errors"
	"fmt"
	"strings"
)

// Categorized is implemented by errors that belong to a named family.
type Categorized interface {
	Category() string
}

const (
	parseCategory    = "ParseError"
	commandCategory  = "CommandError"
	contractCategory = "ContractError"
)

// IllegalOptionError is returned for a flag-like token that is not an
// option of the command.
type IllegalOptionError struct {
	Token string
}

func (e IllegalOptionError) Error() string { return fmt.Sprintf("illegal option: %s", e.Token) }

func (IllegalOptionError) Category() string { return parseCategory }

// LackOfArgumentError is returned when an option's argument is missing.
type LackOfArgumentError struct {
	Option OptionName
}

func (e LackOfArgumentError) Error() string {
	return fmt.Sprintf("lack of argument for %s", e.Option)
}

func (LackOfArgumentError) Category() string { return parseCategory }

// IllegalArgumentFormatError is returned when an option's argument does not
// decode.
type IllegalArgumentFormatError struct {
	Option OptionName
	Value  string
	Err    error
}

func (e IllegalArgumentFormatError) Error() string {
	value := fmt.Sprintf("%q", e.Value)
	if e.Option == OptTwitter {
		value = "<redacted>"
	}
	return fmt.Sprintf("illegal argument format for %s: %s: %v", e.Option, value, e.Err)
}

func (e IllegalArgumentFormatError) Unwrap() error { return e.Err }

func (IllegalArgumentFormatError) Category() string { return parseCategory }

// NoInputError is returned when no tweets file is given.
type NoInputError struct{}

func (NoInputError) Error() string { return "no input file" }

func (NoInputError) Category() string { return commandCategory }

// MultipleInputsError is returned when more than one positional argument is given.
type MultipleInputsError struct {
	Inputs []string
}

func (e MultipleInputsError) Error() string {
	return fmt.Sprintf("multiple inputs: %s", strings.Join(e.Inputs, ", "))
}

func (MultipleInputsError) Category() string { return commandCategory }

// NoSuchFileError is returned when the tweets file cannot be read.
type NoSuchFileError struct {
	Path string
	Err  error
}

func (e NoSuchFileError) Error() string { return fmt.Sprintf("no such file: %s", e.Path) }

func (e NoSuchFileError) Unwrap() error { return e.Err }

func (NoSuchFileError) Category() string { return commandCategory }

// IllegalEncodingError is returned when the tweets file is not UTF-8.
type IllegalEncodingError struct {
	Path string
}

func (e IllegalEncodingError) Error() string { return fmt.Sprintf("illegal encoding: %s", e.Path) }

func (IllegalEncodingError) Category() string { return commandCategory }

// ContractError is returned when a collaborator hands back a different number
// of tweets or responses than it was given.
type ContractError struct {
	Stage string
	Want  int
	Got   int
}

func (e ContractError) Error() string {
	return fmt.Sprintf("%s returned %d item(s) for %d tweet(s)", e.Stage, e.Got, e.Want)
}

func (ContractError) Category() string { return contractCategory }

// Category returns the family name of err, or "Error" for uncategorized errors.
func Category(err error) string {
	var c Categorized
	if errors.As(err, &c) {
		return c.Category()
	}
	return "Error"
}

// Describe renders err as "[Category] message".
func Describe(err error) string {
	return fmt.Sprintf("[%s] %s", Category(err), err)
}
