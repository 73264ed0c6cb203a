package form

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/evlive/admin-console/internal/api"
)

// LocationDraft is the add-venue form's working state.
type LocationDraft struct {
	Name      string
	Address   string
	City      string
	Country   string
	Latitude  string
	Longitude string
}

// locationPayload is the parsed draft checked with struct tags before
// it becomes a request.
type locationPayload struct {
	Name      string  `validate:"required,max=120"`
	Address   string  `validate:"required,max=240"`
	City      string  `validate:"required,max=80"`
	Country   string  `validate:"required,max=80"`
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
}

// Validate checks the draft, reporting inline messages per field.
func (d *LocationDraft) Validate(validate *validator.Validate) Errors {
	if validate == nil {
		validate = validator.New()
	}
	errs := Errors{}

	payload := locationPayload{
		Name:    strings.TrimSpace(d.Name),
		Address: strings.TrimSpace(d.Address),
		City:    strings.TrimSpace(d.City),
		Country: strings.TrimSpace(d.Country),
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(d.Latitude), 64)
	if err != nil {
		errs["latitude"] = "Enter a numeric latitude"
	}
	payload.Latitude = lat
	lng, err := strconv.ParseFloat(strings.TrimSpace(d.Longitude), 64)
	if err != nil {
		errs["longitude"] = "Enter a numeric longitude"
	}
	payload.Longitude = lng

	if err := validate.Struct(payload); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			for _, fieldError := range fieldErrors {
				field := strings.ToLower(fieldError.Field()[:1]) + fieldError.Field()[1:]
				if _, taken := errs[field]; taken {
					continue
				}
				errs[field] = locationMessage(fieldError)
			}
		}
	}

	return errs
}

func locationMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return fieldError.Field() + " is required"
	case "max":
		return fieldError.Field() + " is too long"
	case "gte", "lte":
		if fieldError.Field() == "Latitude" {
			return "Latitude must be between -90 and 90"
		}
		return "Longitude must be between -180 and 180"
	default:
		return fieldError.Field() + " is invalid"
	}
}

// Payload converts a validated draft to the client's request shape.
func (d *LocationDraft) Payload() api.LocationPayload {
	lat, _ := strconv.ParseFloat(strings.TrimSpace(d.Latitude), 64)
	lng, _ := strconv.ParseFloat(strings.TrimSpace(d.Longitude), 64)
	return api.LocationPayload{
		Name:      strings.TrimSpace(d.Name),
		Address:   strings.TrimSpace(d.Address),
		City:      strings.TrimSpace(d.City),
		Country:   strings.TrimSpace(d.Country),
		Latitude:  lat,
		Longitude: lng,
	}
}
