// Package validate checks form payloads before they are submitted. It never
// performs network calls and never mutates its input, so screens are free to
// run it on every keystroke or only on submit.
package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a field name to the message shown next to it. An empty
// map means the payload is valid.
type FieldErrors map[string]string

// Validator wraps a validator.Validate instance with the console's custom
// rules registered.
type Validator struct {
	validate *validator.Validate
}

// New constructs a Validator with the custom rules registered.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Trimmed-required: whitespace-only input is still empty.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// Conservative local@domain.tld shape.
	_ = v.RegisterValidation("email_basic", func(fl validator.FieldLevel) bool {
		return validEmail(fl.Field().String())
	})

	// 7-15 digits after stripping a leading +countrycode or leading 0.
	_ = v.RegisterValidation("contact", func(fl validator.FieldLevel) bool {
		return validContact(fl.Field().String())
	})

	_ = v.RegisterValidation("mode", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(strings.TrimSpace(fl.Field().String())) {
		case "online", "physical", "hybrid":
			return true
		}
		return false
	})

	return &Validator{validate: v}
}

// Check validates a form and returns the per-field messages. The zero-length
// result means the form may be submitted.
func (v *Validator) Check(form any) FieldErrors {
	errs := FieldErrors{}
	err := v.validate.Struct(form)
	if err == nil {
		return errs
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["form"] = "invalid payload"
		return errs
	}

	for _, fe := range fieldErrs {
		// First message per field wins, matching inline rendering.
		if _, seen := errs[fe.Field()]; !seen {
			errs[fe.Field()] = message(fe)
		}
	}
	return errs
}

func message(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "notblank", "required":
		return label + " is required."
	case "email_basic":
		return "Enter a valid email address."
	case "contact":
		return "Contact should be 7-15 digits."
	case "mode":
		return "Mode must be Online, Physical or Hybrid."
	default:
		return label + " is invalid."
	}
}

func fieldLabel(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

func validEmail(raw string) bool {
	s := strings.TrimSpace(raw)
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if strings.ContainsAny(local, " \t") || strings.ContainsAny(domain, " \t") {
		return false
	}
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

func validContact(raw string) bool {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	if s == "" {
		return false
	}
	international := strings.HasPrefix(s, "+")
	if international {
		s = s[1:]
	} else if strings.HasPrefix(s, "0") {
		s = s[1:]
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	if !international {
		return len(s) >= 7 && len(s) <= 15
	}
	// The country code after + is 1 to 3 digits; the bound applies to the
	// national number left after it.
	for cc := 1; cc <= 3 && cc < len(s); cc++ {
		if n := len(s) - cc; n >= 7 && n <= 15 {
			return true
		}
	}
	return false
}
