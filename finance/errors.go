package finance

import "fmt"

type (
	InvalidField struct {
		Field  string
		Reason string
	}
)

func (i InvalidField) Error() string {
	return fmt.Sprintf("%v %v", i.Field, i.Reason)
}
