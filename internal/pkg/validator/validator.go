package validator

// Validator validates structs using their field tags.
type Validator interface {
	// Validate returns an error describing the first set of violations found.
	Validate(data any) error
}
