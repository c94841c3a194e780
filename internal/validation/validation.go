package validation

import (
	"net/mail"
	"net/url"
	"strings"
)

// Violations maps a field name to an error code. Codes are translated by the
// i18n package at the presentation boundary.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// Digits strips everything that is not a decimal digit. "123.456.789-00"
// becomes "12345678900".
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// Documento checks a cpf/cnpj number after normalization. The digit count is
// fixed by the document type: 11 for cpf, 14 for cnpj.
func Documento(field, tipo, documento string, v Violations) {
	d := Digits(documento)
	if d == "" {
		v[field] = "required"
		return
	}
	switch tipo {
	case "cpf":
		if len(d) != 11 {
			v[field] = "cpf_length"
		}
	case "cnpj":
		if len(d) != 14 {
			v[field] = "cnpj_length"
		}
	default:
		v["tipo_documento"] = "tipo_documento_invalid"
	}
}

func Email(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v[field] = "email_invalid"
	}
}

// URL validates an optional absolute URL (logo, signature image).
func URL(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		return
	}
	u, err := url.Parse(value)
	if err != nil || !u.IsAbs() || u.Host == "" {
		v[field] = "url_invalid"
	}
}

func PositiveInt(field string, val int, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}
