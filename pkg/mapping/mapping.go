// Package mapping implements the field-copying capability used by the handler
// pipelines. Fields are matched by name, including fields promoted from
// embedded structs, and pointer fields are dereferenced onto value fields.
package mapping

import (
	"fmt"

	"github.com/jinzhu/copier"
)

// Copier maps between representations with github.com/jinzhu/copier.
//
// Merge treats a source field as unset when it holds its zero value: a nil
// pointer, an empty string, zero, or the zero time. Commands that need to
// assign an explicit zero declare the field as a pointer.
//
// Slices and maps are shared between source and destination.
type Copier struct{}

// New returns a Copier.
func New() *Copier {
	return &Copier{}
}

// Map copies every matching field of src into dst.
func (c *Copier) Map(src, dst any) error {
	if err := copier.Copy(dst, src); err != nil {
		return fmt.Errorf("map %T to %T: %w", src, dst, err)
	}
	return nil
}

// Merge copies the set fields of src into dst, leaving the rest of dst untouched.
func (c *Copier) Merge(src, dst any) error {
	if err := copier.CopyWithOption(dst, src, copier.Option{IgnoreEmpty: true}); err != nil {
		return fmt.Errorf("merge %T into %T: %w", src, dst, err)
	}
	return nil
}
