package probe

import (
	"context"
	"fmt"
	"net"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/khanhnv2901/scope-intel/internal/intel"
	"github.com/khanhnv2901/scope-intel/internal/shared/constants"
)

// PortScanProbe resolves the domain and attempts a TCP connect against a
// fixed candidate port list. Resolution failure is the only top-level
// error; a port that refuses or times out is simply not open.
type PortScanProbe struct {
	DialTimeout time.Duration
	Logger      *zap.SugaredLogger
	Ports       []int // candidate ports, defaults to constants.ScanPorts
	MaxWorkers  int   // concurrent port dials

	// Host overrides the dial target, used by tests against a local listener.
	Host string
}

func (p *PortScanProbe) Collect(ctx context.Context, domain string, rec *intel.Record) {
	scan := &intel.PortScan{OpenPorts: []int{}}
	rec.PortScan = scan

	ports := p.Ports
	if len(ports) == 0 {
		ports = constants.ScanPorts
	}
	scan.TotalPortsScanned = len(ports)

	host := p.Host
	if host == "" {
		ip, err := resolveIPv4(ctx, domain)
		if err != nil {
			if p.Logger != nil {
				p.Logger.Warnf("port scan resolution failed for %s: %v", domain, err)
			}
			scan.Error = fmt.Sprintf("could not resolve IP for %s", domain)
			return
		}
		scan.IPAddress = ip
		host = ip
	} else {
		scan.IPAddress = host
	}

	scan.OpenPorts = p.scanPorts(ctx, host, ports)
}

// resolveIPv4 prefers an IPv4 address, falling back to the first result.
func resolveIPv4(ctx context.Context, domain string) (string, error) {
	resolver := &net.Resolver{PreferGo: true}
	ips, err := resolver.LookupIPAddr(ctx, domain)
	if err != nil {
		return "", err
	}
	if len(ips) == 0 {
		return "", fmt.Errorf("no addresses for %s", domain)
	}
	for _, ip := range ips {
		if ip.IP.To4() != nil {
			return ip.IP.String(), nil
		}
	}
	return ips[0].IP.String(), nil
}

func (p *PortScanProbe) scanPorts(ctx context.Context, host string, ports []int) []int {
	maxWorkers := p.MaxWorkers
	if maxWorkers == 0 {
		maxWorkers = 10
	}

	portChan := make(chan int, len(ports))
	resultChan := make(chan int, len(ports))
	var wg sync.WaitGroup

	for i := 0; i < maxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for port := range portChan {
				if p.checkPort(ctx, host, port) {
					resultChan <- port
				}
			}
		}()
	}

	go func() {
		defer close(portChan)
		for _, port := range ports {
			select {
			case portChan <- port:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	open := []int{}
	for port := range resultChan {
		open = append(open, port)
	}
	sort.Ints(open)
	return open
}

func (p *PortScanProbe) checkPort(ctx context.Context, host string, port int) bool {
	timeout := p.DialTimeout
	if timeout == 0 {
		timeout = constants.DefaultPortDialTimeout
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(dialCtx, "tcp", net.JoinHostPort(host, fmt.Sprintf("%d", port)))
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (p *PortScanProbe) Name() string {
	return "probe ports"
}
