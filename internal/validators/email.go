package validators

import (
	"net"
	"net/mail"
	"strings"
)

func IsEmailSyntaxValid(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// IsEmailDomainValid checks that the domain behind the address can
// actually receive mail (MX record, or at least resolves).
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
