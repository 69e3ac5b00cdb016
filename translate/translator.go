package translate

import (
	"fmt"

	"lotobank/domain/errs"
)

// Translator renders client-facing error messages in a requested language.
// It is stateless; the language travels with each call, never with the
// translator.
type Translator struct {
	defaultLang string
}

// NewTranslator creates a translator falling back to defaultLang when a
// requested language is unknown.
func NewTranslator(defaultLang string) *Translator {
	if _, ok := catalogs[defaultLang]; !ok {
		defaultLang = "en"
	}
	return &Translator{defaultLang: defaultLang}
}

// Message renders the client message of a structured error in lang. Unknown
// languages fall back to the default language; unknown keys fall back to the
// key itself so a missing catalog entry never hides the error class.
func (t *Translator) Message(lang string, e *errs.Error) string {
	catalog, ok := catalogs[lang]
	if !ok {
		catalog = catalogs[t.defaultLang]
	}

	format, ok := catalog[e.ClientKey]
	if !ok {
		return e.ClientKey
	}

	if len(e.ClientArgs) == 0 {
		return format
	}
	return fmt.Sprintf(format, e.ClientArgs...)
}

var catalogs = map[string]map[string]string{
	"en": {
		"bank_not_found":               "bank not found",
		"seller_not_found":             "seller not found",
		"lottery_not_found":            "lottery not found",
		"draw_not_found":               "draw not found",
		"ticket_not_found":             "ticket not found",
		"winning_numbers_not_declared": "the winning numbers of the draw have not been declared",
		"draw_already_settled":         "the draw has already been settled",
		"not_allowed":                  "you are not allowed to perform this operation",
		"number_not_allowed":           "the number %d is restricted and cannot take this amount",
		"commission_not_parametrized":  "a seller of this draw has no commission agreement for the lottery",
		"seller_not_parametrized":      "the seller has no commission agreement for this lottery",
		"buyer_name_required":          "the buyer name is required",
		"empty_ticket":                 "the ticket must contain at least one bet",
		"invalid_bet_shape":            "the ticket bets do not match the draw type",
		"invalid_bet_amount":           "bet amounts must be greater than zero",
		"draw_closed":                  "the draw is closed for sales",
		"ticket_already_cancelled":     "the ticket is already cancelled",
		"ticket_already_settled":       "the ticket belongs to a settled draw",
		"invalid_outcome_shape":        "the declared outcome does not match the draw configuration",
		"balance_already_zero":         "the seller balance is already zero",
		"commission_percent_invalid":   "the commission percent cannot be negative",
		"closes_at_in_past":            "the draw closing time is in the past",
		"invalid_restriction_amount":   "the restricted amount cannot be negative",
		"unexpected_error":             "an unexpected error occurred",
	},
	"es": {
		"bank_not_found":               "banca no encontrada",
		"seller_not_found":             "vendedor no encontrado",
		"lottery_not_found":            "lotería no encontrada",
		"draw_not_found":               "sorteo no encontrado",
		"ticket_not_found":             "tiquete no encontrado",
		"winning_numbers_not_declared": "los números ganadores del sorteo no han sido declarados",
		"draw_already_settled":         "el sorteo ya fue calculado",
		"not_allowed":                  "no tiene permiso para realizar esta operación",
		"number_not_allowed":           "el número %d está restringido y no admite este monto",
		"commission_not_parametrized":  "un vendedor de este sorteo no tiene comisión parametrizada para la lotería",
		"seller_not_parametrized":      "el vendedor no tiene comisión parametrizada para esta lotería",
		"buyer_name_required":          "el nombre del comprador es obligatorio",
		"empty_ticket":                 "el tiquete debe contener al menos una jugada",
		"invalid_bet_shape":            "las jugadas del tiquete no corresponden al tipo de sorteo",
		"invalid_bet_amount":           "los montos de las jugadas deben ser mayores que cero",
		"draw_closed":                  "el sorteo está cerrado para ventas",
		"ticket_already_cancelled":     "el tiquete ya fue anulado",
		"ticket_already_settled":       "el tiquete pertenece a un sorteo calculado",
		"invalid_outcome_shape":        "el resultado declarado no corresponde a la configuración del sorteo",
		"balance_already_zero":         "el saldo del vendedor ya está en cero",
		"commission_percent_invalid":   "el porcentaje de comisión no puede ser negativo",
		"closes_at_in_past":            "la hora de cierre del sorteo ya pasó",
		"invalid_restriction_amount":   "el monto restringido no puede ser negativo",
		"unexpected_error":             "ocurrió un error inesperado",
	},
}
