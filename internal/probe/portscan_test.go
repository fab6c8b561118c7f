package probe

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/khanhnv2901/scope-intel/internal/intel"
)

func TestPortScanProbe_FindsOpenPort(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to open listener: %v", err)
	}
	defer listener.Close()
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	openPort := listener.Addr().(*net.TCPAddr).Port

	// Grab a second port and close it again so it is almost certainly shut.
	closedListener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to open second listener: %v", err)
	}
	closedPort := closedListener.Addr().(*net.TCPAddr).Port
	closedListener.Close()

	p := &PortScanProbe{
		DialTimeout: time.Second,
		Host:        "127.0.0.1",
		Ports:       []int{openPort, closedPort},
	}

	rec := &intel.Record{Domain: "localtest"}
	p.Collect(context.Background(), "localtest", rec)

	scan := rec.PortScan
	if scan == nil {
		t.Fatal("Expected port_scan section to be populated")
	}
	if scan.Error != "" {
		t.Fatalf("Unexpected error: %s", scan.Error)
	}
	if scan.IPAddress != "127.0.0.1" {
		t.Errorf("Expected IP 127.0.0.1, got %s", scan.IPAddress)
	}
	if scan.TotalPortsScanned != 2 {
		t.Errorf("Expected 2 scanned ports, got %d", scan.TotalPortsScanned)
	}
	if len(scan.OpenPorts) != 1 || scan.OpenPorts[0] != openPort {
		t.Errorf("Expected open ports [%d], got %v", openPort, scan.OpenPorts)
	}
}

func TestPortScanProbe_ResolutionFailure(t *testing.T) {
	p := &PortScanProbe{
		DialTimeout: time.Second,
		Ports:       []int{80},
	}

	rec := &intel.Record{Domain: "definitely-not-resolvable.invalid"}
	p.Collect(context.Background(), "definitely-not-resolvable.invalid", rec)

	scan := rec.PortScan
	if scan == nil {
		t.Fatal("Expected port_scan section even on failure")
	}
	if scan.Error != "could not resolve IP for definitely-not-resolvable.invalid" {
		t.Errorf("Unexpected error: %q", scan.Error)
	}
	if len(scan.OpenPorts) != 0 {
		t.Errorf("Expected no open ports, got %v", scan.OpenPorts)
	}
}

func TestPortScanProbe_SortedResults(t *testing.T) {
	var ports []int
	for i := 0; i < 3; i++ {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("failed to open listener: %v", err)
		}
		defer l.Close()
		ports = append(ports, l.Addr().(*net.TCPAddr).Port)
		go func(l net.Listener) {
			for {
				conn, err := l.Accept()
				if err != nil {
					return
				}
				conn.Close()
			}
		}(l)
	}

	p := &PortScanProbe{
		DialTimeout: time.Second,
		Host:        "127.0.0.1",
		Ports:       ports,
		MaxWorkers:  3,
	}

	rec := &intel.Record{Domain: "localtest"}
	p.Collect(context.Background(), "localtest", rec)

	open := rec.PortScan.OpenPorts
	if len(open) != len(ports) {
		t.Fatalf("Expected %d open ports, got %v", len(ports), open)
	}
	for i := 1; i < len(open); i++ {
		if open[i-1] > open[i] {
			t.Errorf("Open ports not sorted: %v", open)
			break
		}
	}
}
