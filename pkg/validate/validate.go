package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var txHashPattern = regexp.MustCompile(`^(0x)?[0-9a-fA-F]{64}$`)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		_ = instance.RegisterValidation("txhash", func(fl validator.FieldLevel) bool {
			return IsTxHash(fl.Field().String())
		})
	})
	return instance
}

// IsTxHash accepts a 32 byte transaction id in hex, with or without 0x.
func IsTxHash(s string) bool {
	return txHashPattern.MatchString(s)
}

// NormalizeTxHash lower-cases the hash and strips the 0x prefix explorers do not expect.
func NormalizeTxHash(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return strings.ToLower(s)
}

// Struct validates v against its `validate` tags and flattens the failures
// into one error naming every field.
func Struct(v any) error {
	err := get().Struct(v)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return errors.New(strings.Join(fields, "; "))
}
