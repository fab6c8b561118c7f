package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509/pkix"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/khanhnv2901/scope-intel/internal/intel"
)

// TLSProbe opens a TLS connection on the standard HTTPS port and records
// the peer certificate and negotiated cipher. A failed handshake is a
// first-class outcome: certificate_valid=false plus the error reason.
type TLSProbe struct {
	Timeout time.Duration
	Logger  *zap.SugaredLogger

	// Clock lets tests pin "now" for days-until-expiry math.
	Clock func() time.Time
}

func (p *TLSProbe) Collect(ctx context.Context, domain string, rec *intel.Record) {
	info := &intel.SSLInfo{CertificateValid: false}
	rec.SSLInfo = info

	timeout := effectiveTimeout(p.Timeout)
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: timeout},
		Config:    &tls.Config{ServerName: domain},
	}

	conn, err := dialer.DialContext(dialCtx, "tcp", net.JoinHostPort(domain, "443"))
	if err != nil {
		if p.Logger != nil {
			p.Logger.Warnf("TLS handshake failed for %s: %v", domain, err)
		}
		info.Error = err.Error()
		return
	}
	defer conn.Close()

	state := conn.(*tls.Conn).ConnectionState()
	if len(state.PeerCertificates) == 0 {
		info.Error = "no peer certificate presented"
		return
	}

	now := time.Now
	if p.Clock != nil {
		now = p.Clock
	}

	cert := state.PeerCertificates[0]
	cipherName := tls.CipherSuiteName(state.CipherSuite)
	versionName := tlsVersionName(state.Version)

	info.CertificateValid = true
	info.Subject = pkixNameMap(cert.Subject)
	info.Issuer = pkixNameMap(cert.Issuer)
	info.NotBefore = cert.NotBefore.UTC().Format(time.RFC3339)
	info.NotAfter = cert.NotAfter.UTC().Format(time.RFC3339)
	info.DaysUntilExpiry = int(cert.NotAfter.Sub(now()).Hours() / 24)
	info.CipherSuite = cipherName
	info.CipherVersion = versionName
	info.CipherBits = cipherBits(cipherName)
	info.ProtocolVersion = versionName
	info.SANDomains = append([]string{}, cert.DNSNames...)
}

func pkixNameMap(name pkix.Name) map[string]string {
	m := map[string]string{}
	if name.CommonName != "" {
		m["common_name"] = name.CommonName
	}
	if len(name.Organization) > 0 {
		m["organization"] = name.Organization[0]
	}
	if len(name.OrganizationalUnit) > 0 {
		m["organizational_unit"] = name.OrganizationalUnit[0]
	}
	if len(name.Country) > 0 {
		m["country"] = name.Country[0]
	}
	if len(name.Locality) > 0 {
		m["locality"] = name.Locality[0]
	}
	if len(name.Province) > 0 {
		m["province"] = name.Province[0]
	}
	return m
}

func tlsVersionName(version uint16) string {
	switch version {
	case tls.VersionTLS13:
		return "TLSv1.3"
	case tls.VersionTLS12:
		return "TLSv1.2"
	case tls.VersionTLS11:
		return "TLSv1.1"
	case tls.VersionTLS10:
		return "TLSv1.0"
	default:
		return "unknown"
	}
}

// cipherBits derives the symmetric key size from the negotiated suite name.
func cipherBits(cipherName string) int {
	switch {
	case strings.Contains(cipherName, "256") || strings.Contains(cipherName, "CHACHA20"):
		return 256
	case strings.Contains(cipherName, "128"):
		return 128
	default:
		return 0
	}
}

func (p *TLSProbe) Name() string {
	return "probe tls"
}
