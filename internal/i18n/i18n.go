// Package i18n maps validation error codes to user-facing messages.
// pt-BR is the default; en exists for API consumers that ask for it.
package i18n

import "strings"

var messages = map[string]map[string]string{
	"pt": {
		"required":               "Campo obrigatório",
		"cpf_length":             "CPF deve conter 11 dígitos",
		"cnpj_length":            "CNPJ deve conter 14 dígitos",
		"tipo_documento_invalid": "Tipo de documento deve ser cpf ou cnpj",
		"email_invalid":          "E-mail inválido",
		"url_invalid":            "URL inválida",
		"must_be_positive":       "Deve ser maior que zero",
		"must_not_be_negative":   "Não pode ser negativo",
		"status_invalid":         "Status deve ser pendente, aprovado ou rejeitado",
		"backend_not_configured": "Credenciais do banco não configuradas",
		"cliente_em_uso":         "Cliente possui orçamentos e não pode ser excluído",
		"status_conflict":        "Apenas orçamentos pendentes podem ser aprovados ou rejeitados",
	},
	"en": {
		"required":               "Field is required",
		"cpf_length":             "CPF must have 11 digits",
		"cnpj_length":            "CNPJ must have 14 digits",
		"tipo_documento_invalid": "Document type must be cpf or cnpj",
		"email_invalid":          "Invalid e-mail",
		"url_invalid":            "Invalid URL",
		"must_be_positive":       "Must be greater than zero",
		"must_not_be_negative":   "Must not be negative",
		"status_invalid":         "Status must be pendente, aprovado or rejeitado",
		"backend_not_configured": "Backend credentials are not configured",
		"cliente_em_uso":         "Client has quotes and cannot be deleted",
		"status_conflict":        "Only pending quotes can be approved or rejected",
	},
}

// DetectLanguage picks pt unless the Accept-Language header prefers en.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.ToLower(strings.TrimSpace(strings.SplitN(part, ";", 2)[0]))
		if strings.HasPrefix(tag, "en") {
			return "en"
		}
		if strings.HasPrefix(tag, "pt") {
			return "pt"
		}
	}
	return "pt"
}

// T translates a code; unknown codes fall through unchanged.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if msg, ok := m[code]; ok {
			return msg
		}
	}
	if msg, ok := messages["pt"][code]; ok {
		return msg
	}
	return code
}
