package catalog

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	MsgNameRequired        = "Product name is required."
	MsgPriceInvalid        = "Valid price is required."
	MsgDescriptionRequired = "Description is required."
)

// Input holds the raw form fields of a create or update submission.
type Input struct {
	ID          string
	Name        string
	Price       string
	Description string
}

// Draft is an Input that passed validation.
type Draft struct {
	Name        string
	Price       float64
	Description string
}

// NormalizeInput trims the user-typed fields. The id comes from a hidden
// field and is passed through as submitted.
func NormalizeInput(id, name, price, description string) Input {
	return Input{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Price:       strings.TrimSpace(price),
		Description: strings.TrimSpace(description),
	}
}

// Validate checks every field and returns all failures, not just the first.
func Validate(in Input) (Draft, []string) {
	var errs []string

	if in.Name == "" {
		errs = append(errs, MsgNameRequired)
	}

	price, ok := parsePrice(in.Price)
	if !ok {
		errs = append(errs, MsgPriceInvalid)
	}

	if in.Description == "" {
		errs = append(errs, MsgDescriptionRequired)
	}

	if len(errs) > 0 {
		return Draft{}, errs
	}
	return Draft{Name: in.Name, Price: price, Description: in.Description}, nil
}

func parsePrice(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil || d.Sign() <= 0 {
		return 0, false
	}

	f := d.InexactFloat64()
	if math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return f, true
}
