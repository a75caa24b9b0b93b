// Package i18n holds the label catalog for the order ledger. Greek is the
// canonical shop-floor language; English is kept for exports and the API.
package i18n

import "strings"

var catalog = map[string]map[string]string{
	"el": {
		// category prefixes
		"prefix.M": "Μεταφορά",
		"prefix.T": "Τοποθέτηση",
		"prefix.Π": "Παραλαβή",
		"prefix.Κ": "Κατάστημα",
		"prefix.A": "Συνεργάτης",
		// order statuses
		"status.new":           "Νέα",
		"status.in_production": "Σε Παραγωγή",
		"status.completed":     "Ολοκληρωμένη",
		"status.delivered":     "Παραδομένη",
		// product types
		"product.glass":          "Γυαλί",
		"product.window_frame":   "Κούφωμα",
		"product.laminated_door": "Πόρτα Laminated",
		// report headers
		"report.order_code": "Κωδικός",
		"report.customer":   "Πελάτης",
		"report.price":      "Ποσό",
		"report.advance":    "Προκαταβολή",
		"report.balance":    "Υπόλοιπο",
		"report.supplier":   "Προμηθευτής",
		"report.received":   "Παραλήφθηκε",
		// generic
		"required": "Υποχρεωτικό",
	},
	"en": {
		"prefix.M": "Transportation",
		"prefix.T": "Installation",
		"prefix.Π": "Pick-up",
		"prefix.Κ": "Retail",
		"prefix.A": "Special Client",

		"status.new":           "New",
		"status.in_production": "In Production",
		"status.completed":     "Completed",
		"status.delivered":     "Delivered",

		"product.glass":          "Glass",
		"product.window_frame":   "Window Frame",
		"product.laminated_door": "Laminated Door",

		"report.order_code": "Order Code",
		"report.customer":   "Customer",
		"report.price":      "Price",
		"report.advance":    "Advance",
		"report.balance":    "Balance",
		"report.supplier":   "Supplier",
		"report.received":   "Received",

		"required": "Required",
	},
}

// T translates a code for a language. Unknown languages fall back to
// Greek; unknown codes fall back to the code itself.
func T(lang, code string) string {
	m, ok := catalog[lang]
	if !ok {
		m = catalog["el"]
	}
	if s, ok := m[code]; ok {
		return s
	}
	if s, ok := catalog["el"][code]; ok {
		return s
	}
	return code
}

// DetectLanguage picks a supported language from an Accept-Language
// header, defaulting to Greek.
func DetectLanguage(header string) string {
	h := strings.ToLower(header)
	for _, part := range strings.Split(h, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if strings.HasPrefix(tag, "en") {
			return "en"
		}
		if strings.HasPrefix(tag, "el") {
			return "el"
		}
	}
	return "el"
}
