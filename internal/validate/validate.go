package validate

// This package adds struct and field validation as a thin wrapper around the go-playground/validator package.
//
// e.g. internal/leaderboard/leaderboard.go
//   type Entry struct {
//       Name  string `validate:"playername"`
//       Score int    `validate:"min=0"`
//   }
//
// The playername alias keeps the name rule in one place for the leaderboard,
// the name prompt and replay scripts.

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// MaxNameLength is the longest player name accepted anywhere.
const MaxNameLength = 20

// validatorInstance is a shared validator for the application.
// It is initialized once and reused to avoid repeated allocations.
//
//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// get returns a process-wide singleton of the validator.
func get() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
		// alpha is ASCII-only: [A-Za-z].
		validatorInst.RegisterAlias("playername", "required,alpha,max=20")
	})
	return validatorInst
}

// Struct validates a struct using the shared validator instance.
func Struct(v any) error {
	return get().Struct(v)
}

// Var validates a single variable against the provided tag constraints.
func Var(field any, tag string) error {
	return get().Var(field, tag)
}

// PlayerName reports whether name is a storable player name.
func PlayerName(name string) error {
	return Var(name, "playername")
}
