package order

import "strings"

// PhoneDigits strips everything but digits
func PhoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone renders Brazilian landline and mobile numbers for display:
// 10 digits as (XX) XXXX-XXXX, 11 digits as (XX) XXXXX-XXXX. Anything else
// is returned unchanged, and an empty phone reads "Telefone Não Informado".
func FormatPhone(phone string) string {
	if strings.TrimSpace(phone) == "" {
		return "Telefone Não Informado"
	}
	d := PhoneDigits(phone)
	switch len(d) {
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	default:
		return phone
	}
}
