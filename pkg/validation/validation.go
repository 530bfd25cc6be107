// Package validation composes command validators from attribute rules.
// Rules report failures as *handlers.ValidationError.
package validation

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/JaimeStill/entity-handlers/pkg/handlers"
)

// Rule checks one aspect of a command. It returns nil when the command passes.
type Rule[C any] func(cmd C) *handlers.ValidationError

// Rules is an ordered set of rules. The first failing rule wins.
type Rules[C any] []Rule[C]

// Validate implements handlers.Validator.
func (r Rules[C]) Validate(_ context.Context, cmd C) error {
	for _, rule := range r {
		if err := rule(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Required fails when the attribute is blank.
func Required[C any](attr string, get func(C) string) Rule[C] {
	return func(cmd C) *handlers.ValidationError {
		if strings.TrimSpace(get(cmd)) == "" {
			return handlers.NewValidationError(attr, "is required")
		}
		return nil
	}
}

// MaxLength fails when the attribute exceeds n characters.
func MaxLength[C any](attr string, n int, get func(C) string) Rule[C] {
	return func(cmd C) *handlers.ValidationError {
		if utf8.RuneCountInString(get(cmd)) > n {
			return handlers.NewValidationError(attr, fmt.Sprintf("must be at most %d characters", n))
		}
		return nil
	}
}

// Range fails when a present attribute lies outside [lo, hi].
// A nil value passes; combine with a presence rule when the attribute is mandatory.
func Range[C any](attr string, lo, hi int, get func(C) *int) Rule[C] {
	return func(cmd C) *handlers.ValidationError {
		v := get(cmd)
		if v == nil {
			return nil
		}
		if *v < lo || *v > hi {
			return handlers.NewValidationError(attr, fmt.Sprintf("must be between %d and %d", lo, hi))
		}
		return nil
	}
}

// Email fails when a non-empty attribute is not a bare email address.
func Email[C any](attr string, get func(C) string) Rule[C] {
	return func(cmd C) *handlers.ValidationError {
		v := get(cmd)
		if v == "" {
			return nil
		}
		addr, err := mail.ParseAddress(v)
		if err != nil || addr.Address != v {
			return handlers.NewValidationError(attr, "must be a valid email address")
		}
		return nil
	}
}

// When applies rule only when cond holds.
func When[C any](cond func(C) bool, rule Rule[C]) Rule[C] {
	return func(cmd C) *handlers.ValidationError {
		if !cond(cmd) {
			return nil
		}
		return rule(cmd)
	}
}
