package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type builtinCategoryError struct {
	id string
}

func (e builtinCategoryError) Error() string {
	return fmt.Sprintf("category %s is built in and cannot be removed", e.id)
}
