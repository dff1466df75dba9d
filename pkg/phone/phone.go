// Package phone normaliza telefones de leads para o formato E.164
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion é usada quando o número não traz código de país
const DefaultRegion = "BR"

// Normalize retorna o número em E.164 quando ele é válido para a região.
// Números que não puderem ser interpretados são mantidos como digitados, sem espaços nas pontas.
func Normalize(raw, region string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}

	if region == "" {
		region = DefaultRegion
	}

	parsed, err := phonenumbers.Parse(value, region)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return value
	}

	return phonenumbers.Format(parsed, phonenumbers.E164)
}

// NormalizePtr aplica Normalize preservando nil e convertendo vazio em nil
func NormalizePtr(raw *string, region string) *string {
	if raw == nil {
		return nil
	}

	normalized := Normalize(*raw, region)
	if normalized == "" {
		return nil
	}
	return &normalized
}
