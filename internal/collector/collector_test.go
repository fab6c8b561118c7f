package collector

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/khanhnv2901/scope-intel/internal/intel"
	"github.com/khanhnv2901/scope-intel/internal/probe"
)

// stubProbe writes a canned section mutation and counts invocations.
type stubProbe struct {
	name    string
	calls   int32
	collect func(rec *intel.Record)
}

func (s *stubProbe) Collect(ctx context.Context, domain string, rec *intel.Record) {
	atomic.AddInt32(&s.calls, 1)
	if s.collect != nil {
		s.collect(rec)
	}
}

func (s *stubProbe) Name() string { return s.name }

func TestCollector_RunsAllProbes(t *testing.T) {
	dns := &stubProbe{name: "probe dns", collect: func(rec *intel.Record) {
		rec.DNSInfo = &intel.DNSInfo{
			SPFRecord:   "v=spf1 -all",
			DMARCRecord: "v=DMARC1; p=reject",
			MXRecords:   []string{"mx.example.com"},
			ARecords:    []string{"93.184.216.34"},
		}
	}}
	tls := &stubProbe{name: "probe tls", collect: func(rec *intel.Record) {
		rec.SSLInfo = &intel.SSLInfo{
			CertificateValid: true,
			CipherSuite:      "TLS_AES_256_GCM_SHA384",
			DaysUntilExpiry:  180,
		}
	}}
	ports := &stubProbe{name: "probe ports", collect: func(rec *intel.Record) {
		rec.PortScan = &intel.PortScan{OpenPorts: []int{443}}
	}}

	c := NewWithProbes([]probe.Probe{dns, tls, ports}, 5*time.Second, nil)
	rec := c.Collect(context.Background(), "HTTPS://Example.com/path")

	if rec.Domain != "example.com" {
		t.Errorf("Expected normalized domain, got %q", rec.Domain)
	}
	if rec.CollectionTimestamp.IsZero() {
		t.Error("Expected a collection timestamp")
	}

	for _, s := range []*stubProbe{dns, tls, ports} {
		if atomic.LoadInt32(&s.calls) != 1 {
			t.Errorf("Probe %s ran %d times, want 1", s.name, s.calls)
		}
	}

	if rec.Scores.DNSEmailScore != 100 {
		t.Errorf("Expected DNS score 100, got %d", rec.Scores.DNSEmailScore)
	}
	if rec.Scores.SSLScore != 90 {
		t.Errorf("Expected SSL score 90, got %d", rec.Scores.SSLScore)
	}
	if rec.Scores.OpenPortsScore != 100 {
		t.Errorf("Expected port score 100, got %d", rec.Scores.OpenPortsScore)
	}
}

func TestCollector_AllProbesFailStillCompletes(t *testing.T) {
	failing := []probe.Probe{
		&stubProbe{name: "probe tls", collect: func(rec *intel.Record) {
			rec.SSLInfo = &intel.SSLInfo{Error: "handshake failed"}
		}},
		&stubProbe{name: "probe dns", collect: func(rec *intel.Record) {
			rec.DNSInfo = &intel.DNSInfo{Error: "resolution failed"}
		}},
		&stubProbe{name: "probe http-headers", collect: func(rec *intel.Record) {
			rec.HTTPHeaders = &intel.HTTPHeaders{Error: "could not connect to domain"}
		}},
	}

	c := NewWithProbes(failing, 5*time.Second, nil)
	rec := c.Collect(context.Background(), "example.com")

	if rec == nil {
		t.Fatal("Expected a record even when every probe fails")
	}

	// Default scores for a record with no usable sections.
	if rec.Scores.SSLScore != 0 {
		t.Errorf("Expected SSL score 0, got %d", rec.Scores.SSLScore)
	}
	if rec.Scores.OpenPortsScore != 100 {
		t.Errorf("Expected port score 100, got %d", rec.Scores.OpenPortsScore)
	}
	if rec.Scores.ReputationScore != 50 {
		t.Errorf("Expected reputation score 50, got %d", rec.Scores.ReputationScore)
	}
}

func TestCollector_ProbesRunConcurrently(t *testing.T) {
	var running int32
	var peak int32

	slow := func(rec *intel.Record) {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
		atomic.AddInt32(&running, -1)
	}

	probes := []probe.Probe{
		&stubProbe{name: "a", collect: slow},
		&stubProbe{name: "b", collect: slow},
		&stubProbe{name: "c", collect: slow},
	}

	c := NewWithProbes(probes, 5*time.Second, nil)
	c.Collect(context.Background(), "example.com")

	if atomic.LoadInt32(&peak) < 2 {
		t.Errorf("Expected probes to overlap, peak concurrency was %d", peak)
	}
}

func TestNew_WiresFullProbeSet(t *testing.T) {
	c := New(Config{}, nil)
	if len(c.probes) != 7 {
		t.Errorf("Expected 7 probes, got %d", len(c.probes))
	}
}
