package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid confere se o domínio do e-mail resolve (MX ou, na
// falta, um registro de endereço). Não valida a caixa postal; só barra
// domínios inexistentes no cadastro.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	host := email[at+1:]

	if mx, err := net.LookupMX(host); err == nil && len(mx) > 0 {
		return true
	}
	if ips, err := net.LookupIP(host); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
