package members

import (
	"github.com/JaimeStill/entity-handlers/pkg/validation"
)

var createRules = validation.Rules[CreateCommand]{
	validation.Required("name", func(c CreateCommand) string { return c.Name }),
	validation.MaxLength("name", MaxNameLength, func(c CreateCommand) string { return c.Name }),
	validation.Required("email", func(c CreateCommand) string { return c.Email }),
	validation.Email("email", func(c CreateCommand) string { return c.Email }),
	validation.Range("age", MinAge, MaxAge, func(c CreateCommand) *int { return c.Age }),
	validation.MaxLength("bio", MaxBioLength, func(c CreateCommand) string { return c.Bio }),
}

var updateRules = validation.Rules[UpdateCommand]{
	validation.When(func(c UpdateCommand) bool { return c.Name != nil },
		validation.Required("name", func(c UpdateCommand) string { return *c.Name })),
	validation.When(func(c UpdateCommand) bool { return c.Name != nil },
		validation.MaxLength("name", MaxNameLength, func(c UpdateCommand) string { return *c.Name })),
	validation.When(func(c UpdateCommand) bool { return c.Email != nil },
		validation.Required("email", func(c UpdateCommand) string { return *c.Email })),
	validation.When(func(c UpdateCommand) bool { return c.Email != nil },
		validation.Email("email", func(c UpdateCommand) string { return *c.Email })),
	validation.Range("age", MinAge, MaxAge, func(c UpdateCommand) *int { return c.Age }),
	validation.When(func(c UpdateCommand) bool { return c.Bio != nil },
		validation.MaxLength("bio", MaxBioLength, func(c UpdateCommand) string { return *c.Bio })),
}
