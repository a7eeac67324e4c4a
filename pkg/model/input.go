package model

// Input is the narrow view a host passes to a field: the field name, the
// current value the host owns, and the callbacks used to propose changes.
// Fields never mutate Value directly.
type Input struct {
	Name     string
	Value    any
	OnChange func(value any)
	OnBlur   func(value any)
	OnFocus  func()
}

// Change invokes OnChange when set.
func (in Input) Change(value any) {
	if in.OnChange != nil {
		in.OnChange(value)
	}
}

// Blur invokes OnBlur when set.
func (in Input) Blur(value any) {
	if in.OnBlur != nil {
		in.OnBlur(value)
	}
}

// Focus invokes OnFocus when set.
func (in Input) Focus() {
	if in.OnFocus != nil {
		in.OnFocus()
	}
}
