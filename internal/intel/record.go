package intel

import "time"

// Record holds all intelligence collected for a single vendor domain.
// It is assembled once per collection and never mutated afterwards;
// re-collection produces a fresh record.
type Record struct {
	Domain              string           `json:"domain"`
	CollectionTimestamp time.Time        `json:"collection_timestamp"`
	BasicInfo           *BasicInfo       `json:"basic_info"`
	SSLInfo             *SSLInfo         `json:"ssl_info"`
	DNSInfo             *DNSInfo         `json:"dns_info"`
	HTTPHeaders         *HTTPHeaders     `json:"http_headers"`
	PortScan            *PortScan        `json:"port_scan"`
	ShodanData          *ShodanData      `json:"shodan_data"`
	DarkWebExposure     *DarkWebExposure `json:"dark_web_exposure"`
	Scores              ScoreSet         `json:"scores"`
}

// ScoreSet contains the five normalized sub-scores, each clamped to [0,100].
// It is always populated, even when every contributing probe failed.
type ScoreSet struct {
	SSLScore         int `json:"ssl_score"`
	DNSEmailScore    int `json:"dns_email_score"`
	HTTPHeadersScore int `json:"http_headers_score"`
	OpenPortsScore   int `json:"open_ports_score"`
	ReputationScore  int `json:"reputation_score"`
}

// BasicInfo carries domain registration data from the registry lookup.
type BasicInfo struct {
	Registrar      string   `json:"registrar,omitempty"`
	CreationDate   string   `json:"creation_date,omitempty"`
	ExpirationDate string   `json:"expiration_date,omitempty"`
	UpdatedDate    string   `json:"updated_date,omitempty"`
	NameServers    []string `json:"name_servers"`
	Status         []string `json:"status"`
	Emails         []string `json:"emails"`
	Org            string   `json:"org,omitempty"`
	Country        string   `json:"country,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// SSLInfo carries certificate and cipher details from the TLS handshake.
// A failed handshake is a first-class outcome: CertificateValid is false
// and Error explains why.
type SSLInfo struct {
	CertificateValid bool              `json:"certificate_valid"`
	Subject          map[string]string `json:"subject,omitempty"`
	Issuer           map[string]string `json:"issuer,omitempty"`
	NotBefore        string            `json:"not_before,omitempty"`
	NotAfter         string            `json:"not_after,omitempty"`
	DaysUntilExpiry  int               `json:"days_until_expiry"`
	CipherSuite      string            `json:"cipher_suite,omitempty"`
	CipherVersion    string            `json:"cipher_version,omitempty"`
	CipherBits       int               `json:"cipher_bits,omitempty"`
	ProtocolVersion  string            `json:"protocol_version,omitempty"`
	SANDomains       []string          `json:"san_domains,omitempty"`
	Error            string            `json:"error,omitempty"`
}

// DNSInfo carries resolved DNS records and the email-authentication
// policies published for the domain. Unresolvable record types stay empty.
type DNSInfo struct {
	ARecords     []string `json:"a_records"`
	AAAARecords  []string `json:"aaaa_records"`
	MXRecords    []string `json:"mx_records"`
	TXTRecords   []string `json:"txt_records"`
	SPFRecord    string   `json:"spf_record,omitempty"`
	DMARCRecord  string   `json:"dmarc_record,omitempty"`
	CNAMERecords []string `json:"cname_records"`
	NSRecords    []string `json:"ns_records"`
	Error        string   `json:"error,omitempty"`
}

// SecurityHeaders tracks the response headers inspected by the HTTP probe.
type SecurityHeaders struct {
	StrictTransportSecurity string `json:"strict_transport_security,omitempty"`
	ContentSecurityPolicy   string `json:"content_security_policy,omitempty"`
	XFrameOptions           string `json:"x_frame_options,omitempty"`
	XContentTypeOptions     string `json:"x_content_type_options,omitempty"`
	XXSSProtection          string `json:"x_xss_protection,omitempty"`
	ReferrerPolicy          string `json:"referrer_policy,omitempty"`
	PermissionsPolicy       string `json:"permissions_policy,omitempty"`
	CacheControl            string `json:"cache_control,omitempty"`
	Server                  string `json:"server,omitempty"`
	XPoweredBy              string `json:"x_powered_by,omitempty"`
}

// HTTPHeaders carries the header inspection outcome. URL records which
// scheme ultimately answered (HTTPS first, HTTP fallback).
type HTTPHeaders struct {
	URL             string            `json:"url,omitempty"`
	StatusCode      int               `json:"status_code,omitempty"`
	SecurityHeaders SecurityHeaders   `json:"security_headers"`
	AllHeaders      map[string]string `json:"all_headers,omitempty"`
	Error           string            `json:"error,omitempty"`
}

// PortScan carries the TCP connect scan outcome.
type PortScan struct {
	IPAddress         string `json:"ip_address,omitempty"`
	OpenPorts         []int  `json:"open_ports"`
	TotalPortsScanned int    `json:"total_ports_scanned"`
	Error             string `json:"error,omitempty"`
}

// ShodanData carries the external threat-feed response for the domain.
type ShodanData struct {
	Subdomains []string                 `json:"subdomains"`
	Tags       []string                 `json:"tags"`
	Data       []map[string]interface{} `json:"data"`
	Error      string                   `json:"error,omitempty"`
}

// BreachRecord summarizes one breach disclosure tied to the domain.
type BreachRecord struct {
	Type   string `json:"type"`
	Source string `json:"source"`
	Date   string `json:"date"`
	Count  int    `json:"count"`
}

// DarkWebExposure carries the exposure-signal outcome. The reference feed
// is a simulator; production deployments plug a real feed behind the same
// contract.
type DarkWebExposure struct {
	Exposed       bool           `json:"exposed"`
	ExposureTypes []string       `json:"exposure_types"`
	BreachData    []BreachRecord `json:"breach_data"`
	LastChecked   time.Time      `json:"last_checked"`
	Error         string         `json:"error,omitempty"`
}
