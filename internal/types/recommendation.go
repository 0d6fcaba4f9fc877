package types

import "github.com/go-playground/validator/v10"

// MaxRecommendations bounds how many recommendations are ever surfaced
const MaxRecommendations = 10

// Recommendation is one extracted (title, description) pair from a model reply
type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Person seeds a synthetic profile
type Person struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age" validate:"required,gt=0"`
}

// Validate validates the Person using the validator.
func (p *Person) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
