package probe

import (
	"context"
	"fmt"
	"strings"
	"time"

	whois "github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
	"go.uber.org/zap"

	"github.com/khanhnv2901/scope-intel/internal/intel"
)

// RegistryProbe resolves domain registration data (registrar, lifecycle
// dates, name servers, contacts) from public WHOIS records.
type RegistryProbe struct {
	Timeout time.Duration
	Logger  *zap.SugaredLogger
}

type registryOutcome struct {
	info whoisparser.WhoisInfo
	err  error
}

// Collect performs the WHOIS lookup. Any lookup or parse failure yields a
// structured error on the basic_info section.
func (p *RegistryProbe) Collect(ctx context.Context, domain string, rec *intel.Record) {
	info := &intel.BasicInfo{
		NameServers: []string{},
		Status:      []string{},
		Emails:      []string{},
	}
	rec.BasicInfo = info

	timeout := effectiveTimeout(p.Timeout)

	// The whois client enforces its own dial timeout but does not take a
	// context; the select below keeps the collection deadline authoritative.
	ch := make(chan registryOutcome, 1)
	go func() {
		ch <- lookupRegistry(domain, timeout)
	}()

	lookupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case <-lookupCtx.Done():
		info.Error = fmt.Sprintf("registry lookup timed out: %v", lookupCtx.Err())
		return
	case out := <-ch:
		if out.err != nil {
			if p.Logger != nil {
				p.Logger.Warnf("registry lookup failed for %s: %v", domain, out.err)
			}
			info.Error = out.err.Error()
			return
		}
		fillBasicInfo(info, out.info)
	}
}

func lookupRegistry(domain string, timeout time.Duration) registryOutcome {
	out := queryRegistry(domain, timeout)
	if out.err == nil {
		return out
	}

	// Subdomains have no registration of their own; retry on the
	// registrable parent before giving up.
	if parent := parentDomain(domain); parent != "" {
		if parentOut := queryRegistry(parent, timeout); parentOut.err == nil {
			return parentOut
		}
	}
	return out
}

func queryRegistry(domain string, timeout time.Duration) registryOutcome {
	client := whois.NewClient()
	client.SetTimeout(timeout)

	raw, err := client.Whois(domain)
	if err != nil {
		return registryOutcome{err: fmt.Errorf("whois query: %w", err)}
	}

	parsed, err := whoisparser.Parse(raw)
	if err != nil {
		return registryOutcome{err: fmt.Errorf("whois parse: %w", err)}
	}
	return registryOutcome{info: parsed}
}

// parentDomain strips the leftmost label, returning "" once only the
// registrable domain (two labels) remains.
func parentDomain(domain string) string {
	labels := strings.Split(domain, ".")
	if len(labels) <= 2 {
		return ""
	}
	return strings.Join(labels[1:], ".")
}

func fillBasicInfo(info *intel.BasicInfo, parsed whoisparser.WhoisInfo) {
	if d := parsed.Domain; d != nil {
		info.CreationDate = d.CreatedDate
		info.ExpirationDate = d.ExpirationDate
		info.UpdatedDate = d.UpdatedDate
		if len(d.NameServers) > 0 {
			info.NameServers = append(info.NameServers, d.NameServers...)
		}
		if len(d.Status) > 0 {
			info.Status = append(info.Status, d.Status...)
		}
	}
	if r := parsed.Registrar; r != nil {
		info.Registrar = r.Name
	}
	if c := parsed.Registrant; c != nil {
		info.Org = c.Organization
		info.Country = c.Country
		if c.Email != "" {
			info.Emails = append(info.Emails, c.Email)
		}
	}
	if a := parsed.Administrative; a != nil && a.Email != "" {
		info.Emails = appendUnique(info.Emails, a.Email)
	}
	if t := parsed.Technical; t != nil && t.Email != "" {
		info.Emails = appendUnique(info.Emails, t.Email)
	}
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

func (p *RegistryProbe) Name() string {
	return "probe registry"
}
