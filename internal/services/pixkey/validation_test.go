package pixkey

import (
	"testing"

	"pixvault/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateKeyValue(t *testing.T) {
	tests := []struct {
		name    string
		keyType string
		value   string
		want    bool
	}{
		// CPF
		{"cpf valid with punctuation", models.PixKeyTypeCPF, "529.982.247-25", true},
		{"cpf valid bare digits", models.PixKeyTypeCPF, "52998224725", true},
		{"cpf valid second fixture", models.PixKeyTypeCPF, "111.444.777-35", true},
		{"cpf repeated digits", models.PixKeyTypeCPF, "111.111.111-11", false},
		{"cpf wrong check digit", models.PixKeyTypeCPF, "529.982.247-26", false},
		{"cpf too short", models.PixKeyTypeCPF, "5299822472", false},
		{"cpf empty", models.PixKeyTypeCPF, "", false},

		// CNPJ
		{"cnpj valid with punctuation", models.PixKeyTypeCNPJ, "11.222.333/0001-81", true},
		{"cnpj valid bare digits", models.PixKeyTypeCNPJ, "11222333000181", true},
		{"cnpj repeated digits", models.PixKeyTypeCNPJ, "11.111.111/1111-11", false},
		{"cnpj wrong check digit", models.PixKeyTypeCNPJ, "11.222.333/0001-82", false},
		{"cnpj too short", models.PixKeyTypeCNPJ, "1122233300018", false},

		// Email
		{"email valid", models.PixKeyTypeEmail, "owner@example.com", true},
		{"email missing domain", models.PixKeyTypeEmail, "owner@", false},
		{"email plain string", models.PixKeyTypeEmail, "not-an-email", false},

		// Phone
		{"phone 11 digits", models.PixKeyTypePhone, "11987654321", true},
		{"phone formatted", models.PixKeyTypePhone, "(11) 98765-4321", true},
		{"phone with country code", models.PixKeyTypePhone, "+55 11 98765-4321", true},
		{"phone 10 digits", models.PixKeyTypePhone, "1133334444", true},
		{"phone too short", models.PixKeyTypePhone, "987654321", false},
		{"phone too long", models.PixKeyTypePhone, "55511987654321", false},

		// Random
		{"random canonical uuid", models.PixKeyTypeRandom, "123e4567-e89b-12d3-a456-426614174000", true},
		{"random uuid without hyphens", models.PixKeyTypeRandom, "123e4567e89b12d3a456426614174000", false},
		{"random not a uuid", models.PixKeyTypeRandom, "definitely-not-a-uuid-string-here-ok", false},

		// Unknown type
		{"unknown type", "iban", "DE89370400440532013000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateKeyValue(tt.keyType, tt.value))
		})
	}
}
