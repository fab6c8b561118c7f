package probe

import (
	"context"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/khanhnv2901/scope-intel/internal/intel"
)

// DNSSecurityProbe resolves A, AAAA, MX, TXT, CNAME and NS records and
// searches for the SPF and DMARC email-authentication policies. Every
// record type is looked up independently; an unresolvable type stays an
// empty list rather than failing the probe.
type DNSSecurityProbe struct {
	Timeout    time.Duration
	Logger     *zap.SugaredLogger
	NameServer []string // optional custom nameservers
}

func (p *DNSSecurityProbe) Collect(ctx context.Context, domain string, rec *intel.Record) {
	info := &intel.DNSInfo{
		ARecords:     []string{},
		AAAARecords:  []string{},
		MXRecords:    []string{},
		TXTRecords:   []string{},
		CNAMERecords: []string{},
		NSRecords:    []string{},
	}
	rec.DNSInfo = info

	resolver := p.resolver()
	timeout := effectiveTimeout(p.Timeout)

	lookup := func(fn func(context.Context)) {
		lookupCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		fn(lookupCtx)
	}

	lookup(func(c context.Context) {
		ips, err := resolver.LookupIP(c, "ip4", domain)
		if err != nil {
			p.warn("A", domain, err)
			return
		}
		for _, ip := range ips {
			info.ARecords = append(info.ARecords, ip.String())
		}
	})

	lookup(func(c context.Context) {
		ips, err := resolver.LookupIP(c, "ip6", domain)
		if err != nil {
			p.warn("AAAA", domain, err)
			return
		}
		for _, ip := range ips {
			info.AAAARecords = append(info.AAAARecords, ip.String())
		}
	})

	lookup(func(c context.Context) {
		mxs, err := resolver.LookupMX(c, domain)
		if err != nil {
			p.warn("MX", domain, err)
			return
		}
		for _, mx := range mxs {
			info.MXRecords = append(info.MXRecords, strings.TrimSuffix(mx.Host, "."))
		}
	})

	lookup(func(c context.Context) {
		txts, err := resolver.LookupTXT(c, domain)
		if err != nil {
			p.warn("TXT", domain, err)
			return
		}
		info.TXTRecords = append(info.TXTRecords, txts...)
		for _, txt := range txts {
			if strings.Contains(txt, "v=spf1") {
				info.SPFRecord = txt
				break
			}
		}
	})

	lookup(func(c context.Context) {
		txts, err := resolver.LookupTXT(c, "_dmarc."+domain)
		if err != nil {
			p.warn("DMARC", domain, err)
			return
		}
		for _, txt := range txts {
			if strings.Contains(txt, "v=DMARC1") {
				info.DMARCRecord = txt
				break
			}
		}
	})

	lookup(func(c context.Context) {
		cname, err := resolver.LookupCNAME(c, domain)
		if err != nil {
			p.warn("CNAME", domain, err)
			return
		}
		cname = strings.TrimSuffix(cname, ".")
		if cname != "" && cname != domain {
			info.CNAMERecords = append(info.CNAMERecords, cname)
		}
	})

	lookup(func(c context.Context) {
		nss, err := resolver.LookupNS(c, domain)
		if err != nil {
			p.warn("NS", domain, err)
			return
		}
		for _, ns := range nss {
			info.NSRecords = append(info.NSRecords, strings.TrimSuffix(ns.Host, "."))
		}
	})
}

func (p *DNSSecurityProbe) resolver() *net.Resolver {
	resolver := &net.Resolver{PreferGo: true}
	if len(p.NameServer) > 0 {
		dialer := &net.Dialer{Timeout: effectiveTimeout(p.Timeout)}
		resolver.Dial = func(ctx context.Context, network, address string) (net.Conn, error) {
			// Use first nameserver for now
			return dialer.DialContext(ctx, network, p.NameServer[0])
		}
	}
	return resolver
}

func (p *DNSSecurityProbe) warn(recordType, domain string, err error) {
	if p.Logger != nil {
		p.Logger.Warnf("could not resolve %s records for %s: %v", recordType, domain, err)
	}
}

func (p *DNSSecurityProbe) Name() string {
	return "probe dns"
}
