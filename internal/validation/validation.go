// Package validation holds the form checks run before a client or case is
// saved. Storage accepts blank values; these rules are where required fields
// are enforced.
package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/JustJay7/smartlawyer/internal/database"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"golang.org/x/text/language"
)

var (
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phonePattern    = regexp.MustCompile(`^[+]?[0-9]{10,15}$`)
	caseYearPattern = regexp.MustCompile(`^[0-9]{4}$`)
	whitespace      = regexp.MustCompile(`\s`)
)

// IsValidEmail reports whether email has the local@domain.tld shape accepted
// on the client form.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPhone accepts 10 to 15 digits with an optional leading '+', ignoring
// whitespace.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(whitespace.ReplaceAllString(phone, ""))
}

func IsValidCaseYear(year string) bool {
	return caseYearPattern.MatchString(year)
}

// Result is the outcome of validating one form. Errors keeps the messages in
// field order; Fields maps the JSON field name to its message so a form can
// highlight the input.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []string          `json:"errors"`
	Fields map[string]string `json:"fields"`
}

// localized holds one message per supported language, in matcher order.
type localized [2]string

// Arabic is the app's own language and comes first, so it is also the
// fallback for unsupported tags.
var matcher = language.NewMatcher([]language.Tag{language.Arabic, language.English})

// messages is keyed by field then rule; "" is the fallback for the field.
var messages = map[string]map[string]localized{
	"name": {"": {"اسم العميل مطلوب", "client name is required"}},
	"phoneNumber": {
		"notblank": {"رقم الهاتف مطلوب", "phone number is required"},
		"phone":    {"رقم الهاتف غير صالح", "phone number is invalid"},
	},
	"email":      {"": {"البريد الإلكتروني غير صالح", "email address is invalid"}},
	"caseNumber": {"": {"رقم القضية مطلوب", "case number is required"}},
	"caseYear": {
		"notblank": {"سنة القضية مطلوبة", "case year is required"},
		"caseyear": {"سنة القضية يجب أن تكون 4 أرقام", "case year must be 4 digits"},
	},
	"registrationDate": {"": {"تاريخ القيد مطلوب", "registration date is required"}},
	"clientId":         {"": {"اختيار العميل مطلوب", "a client must be selected"}},
	"clientRole":       {"": {"صفة العميل مطلوبة", "client role is required"}},
	"opponentName":     {"": {"اسم الخصم مطلوب", "opponent name is required"}},
	"opponentRole":     {"": {"صفة الخصم مطلوبة", "opponent role is required"}},
	"caseSubject":      {"": {"موضوع القضية مطلوب", "case subject is required"}},
	"courtName":        {"": {"اسم المحكمة مطلوب", "court name is required"}},
}

var invalidField = localized{"قيمة غير صالحة: ", "invalid value: "}

func message(field, tag string, lang int) string {
	if byTag, ok := messages[field]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg[lang]
		}
		if msg, ok := byTag[""]; ok {
			return msg[lang]
		}
	}
	return invalidField[lang] + field
}

// Validator runs the form rules. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("caseyear", func(fl validator.FieldLevel) bool {
		return IsValidCaseYear(fl.Field().String())
	})
	// An optional email is only checked when something was typed.
	_ = v.RegisterValidation("clientemail", func(fl validator.FieldLevel) bool {
		email := fl.Field().String()
		return strings.TrimSpace(email) == "" || IsValidEmail(email)
	}, true)

	return &Validator{validate: v}
}

// Client checks the client form: name and phone number are required, the
// phone must look like a phone number and a non-blank email must be valid.
// Messages are in the closest supported preferred language, Arabic by default.
func (v *Validator) Client(c *database.Client, preferred ...language.Tag) Result {
	return v.run(c, preferred)
}

// Case checks the case form. Case type and first session date are optional.
func (v *Validator) Case(c *database.Case, preferred ...language.Tag) Result {
	return v.run(c, preferred)
}

// LoginEmail is the stricter address check used for sign-in and registration.
func (v *Validator) LoginEmail(email string) bool {
	return v.validate.Var(email, "required,email") == nil
}

func (v *Validator) run(s interface{}, preferred []language.Tag) Result {
	res := Result{Valid: true, Errors: []string{}, Fields: map[string]string{}}

	err := v.validate.Struct(s)
	if err == nil {
		return res
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Valid = false
		res.Errors = append(res.Errors, err.Error())
		return res
	}

	_, lang, _ := matcher.Match(preferred...)
	res.Valid = false
	for _, fe := range fieldErrs {
		msg := message(fe.Field(), fe.Tag(), lang)
		res.Errors = append(res.Errors, msg)
		res.Fields[fe.Field()] = msg
	}
	return res
}
