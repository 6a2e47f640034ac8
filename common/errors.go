package common

// ConstError is an error type that can be used to define immutable error
// constants. Unlike errors created through errors.New, ConstError values
// can be declared as constants and compared with errors.Is.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}
