package userservice

import (
	"strings"

	"github.com/mirrelia/quillpost/internal/common"
)

// The public contract only requires each field to be present; anything past
// that (charset, complexity) is left to the client.

func validateUsername(v *common.Validator, username string) {
	v.Check(strings.TrimSpace(username) != "", "username", "must be provided")
}

func validateEmail(v *common.Validator, email string) {
	v.Check(strings.TrimSpace(email) != "", "email", "must be provided")
}

func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
