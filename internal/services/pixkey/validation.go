package pixkey

import (
	"strings"

	"pixvault/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// ValidateKeyValue reports whether keyValue is a well-formed pix key
// of the given type. It is a pure function; unknown types are invalid.
func ValidateKeyValue(keyType, keyValue string) bool {
	switch keyType {
	case models.PixKeyTypeCPF:
		return isValidCPF(keyValue)
	case models.PixKeyTypeCNPJ:
		return isValidCNPJ(keyValue)
	case models.PixKeyTypeEmail:
		return isValidEmail(keyValue)
	case models.PixKeyTypePhone:
		return isValidPhone(keyValue)
	case models.PixKeyTypeRandom:
		return isValidRandomKey(keyValue)
	default:
		return false
	}
}

func extractDigits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSameDigits(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

// isValidCPF validates the 11-digit Brazilian individual taxpayer id.
// The last two digits are check digits: each is a weighted sum of the
// preceding digits mapped through (10*sum mod 11) mod 10.
func isValidCPF(value string) bool {
	cpf := extractDigits(value)
	if len(cpf) != 11 || allSameDigits(cpf) {
		return false
	}
	for position := 9; position < 11; position++ {
		sum := 0
		for i := 0; i < position; i++ {
			sum += int(cpf[i]-'0') * (position + 1 - i)
		}
		digit := (10 * sum % 11) % 10
		if int(cpf[position]-'0') != digit {
			return false
		}
	}
	return true
}

// isValidCNPJ validates the 14-digit Brazilian company taxpayer id.
// Check digits use weights cycling from 2 to 9, right to left, with
// remainder < 2 mapping to 0 and otherwise to 11-remainder.
func isValidCNPJ(value string) bool {
	cnpj := extractDigits(value)
	if len(cnpj) != 14 || allSameDigits(cnpj) {
		return false
	}
	if cnpjCheckDigit(cnpj, 12) != int(cnpj[12]-'0') {
		return false
	}
	return cnpjCheckDigit(cnpj, 13) == int(cnpj[13]-'0')
}

func cnpjCheckDigit(cnpj string, length int) int {
	sum := 0
	weight := length - 7
	for i := 0; i < length; i++ {
		sum += int(cnpj[i]-'0') * weight
		weight--
		if weight < 2 {
			weight = 9
		}
	}
	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

func isValidEmail(value string) bool {
	return validate.Var(value, "required,email") == nil
}

func isValidPhone(value string) bool {
	digits := extractDigits(value)
	return len(digits) >= 10 && len(digits) <= 13
}

// isValidRandomKey accepts only the canonical 36-character UUID form.
func isValidRandomKey(value string) bool {
	if len(value) != 36 {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}
