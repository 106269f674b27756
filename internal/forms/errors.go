package forms

// Errors maps a field name to the ordered list of messages produced by
// the rules that failed on it. A nil or empty Errors means the input
// passed validation.
type Errors map[string][]string

// Add appends a message to the field's error list, preserving rule
// evaluation order.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Has reports whether the field collected at least one error.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Empty reports whether no field collected an error.
func (e Errors) Empty() bool {
	return len(e) == 0
}
