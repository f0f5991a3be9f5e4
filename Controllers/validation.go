package Controllers

import (
	"github.com/go-playground/validator/v10"
)

// validate is shared by all controllers; validator.Validate is safe for
// concurrent use.
var validate = validator.New()
