package validators

import (
	"os"
	"regexp"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	log "github.com/sirupsen/logrus"
	"github.com/truemail-rb/truemail-go"
)

const defaultVerifierEmail = "team@mail.gamereview.dev"

// Validator bundles the struct validator, the markup policy used to sanitize free text and the email
// deliverability check.
type Validator struct {
	Validate    *validator.Validate
	Policy      *bluemonday.Policy
	VerifyEmail func(email string) bool
}

var (
	instance      *Validator
	configuration *truemail.Configuration
	once          sync.Once
)

// GetValidator returns the process-wide Validator, building it on first use.
// The truemail validation type comes from EMAIL_VALIDATION_TYPE (regex, mx or smtp; regex when unset).
func GetValidator() *Validator {
	once.Do(func() {
		verifierEmail := os.Getenv("VERIFIER_EMAIL")
		if verifierEmail == "" {
			verifierEmail = defaultVerifierEmail
		}

		validationType := os.Getenv("EMAIL_VALIDATION_TYPE")
		if validationType == "" {
			validationType = "regex"
		}

		var err error
		configuration, err = truemail.NewConfiguration(truemail.ConfigurationAttr{
			VerifierEmail:         verifierEmail,
			ValidationTypeDefault: validationType,
			SmtpFailFast:          true,
		})
		if err != nil {
			log.Warn("Error configuring email verification, falling back to syntax checks: ", err)
		}

		instance = &Validator{
			Validate:    validator.New(validator.WithRequiredStructEnabled()),
			Policy:      bluemonday.StrictPolicy(),
			VerifyEmail: verifyEmail,
		}

		registerCustomValidators(instance.Validate)
	})

	return instance
}

func verifyEmail(email string) bool {
	if configuration == nil {
		return instance.Validate.Var(email, "email") == nil
	}
	return truemail.IsValid(email, configuration)
}

func registerCustomValidators(v *validator.Validate) {
	err := v.RegisterValidation("nickname_validation", nickNameValidation)
	if err != nil {
		log.Error("Error registering nickname validation: ", err)
		return
	}

	err = v.RegisterValidation("password_validation", passwordValidation)
	if err != nil {
		log.Error("Error registering password validation: ", err)
		return
	}
}

var nickNamePattern = regexp.MustCompile(`^[a-zA-Z0-9.\-_ ]+$`)

func nickNameValidation(fl validator.FieldLevel) bool {
	return nickNamePattern.MatchString(fl.Field().String())
}

func passwordValidation(fl validator.FieldLevel) bool {
	var upperLetter, lowerLetter, number, specialChar bool

	value := fl.Field().String()
	for _, r := range value {
		if r > unicode.MaxASCII {
			return false
		}

		switch {
		case unicode.IsUpper(r):
			upperLetter = true
		case unicode.IsLower(r):
			lowerLetter = true
		case unicode.IsNumber(r):
			number = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			specialChar = true
		}
	}

	return upperLetter && lowerLetter && number && specialChar
}
