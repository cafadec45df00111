package sysconfig

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/berrysetup/berrysetup/internal/domain/entities"
	"github.com/berrysetup/berrysetup/internal/domain/interfaces"
)

// File locations relative to the system root
const (
	hostapdConfPath = "etc/hostapd/hostapd.conf"
	dnsmasqConfPath = "etc/dnsmasq.d/berrysetup-hotspot.conf"
	networkConfPath = "etc/systemd/network/25-berrysetup-ap.network"
)

// HotspotWriter renders the Wi-Fi fallback access point configuration:
// hostapd, a dnsmasq fragment and a systemd-networkd unit. The files are
// consumed by the external daemons; whether the AP actually comes up when
// no known network is reachable is their business.
type HotspotWriter struct {
	systemRoot string
	log        interfaces.Logger
}

// NewHotspotWriter creates a writer rooted at systemRoot (normally "/";
// tests point it at a temp dir)
func NewHotspotWriter(systemRoot string, log interfaces.Logger) *HotspotWriter {
	if log == nil {
		log = &interfaces.NoOpLogger{}
	}
	return &HotspotWriter{systemRoot: systemRoot, log: log}
}

// Apply validates cfg and writes the three configuration files
func (w *HotspotWriter) Apply(cfg entities.HotspotConfig) error {
	if err := validateHotspot(cfg); err != nil {
		return err
	}

	files := map[string][]byte{
		hostapdConfPath: renderHostapd(cfg),
		dnsmasqConfPath: renderDnsmasq(cfg),
		networkConfPath: renderNetwork(cfg),
	}

	for rel, content := range files {
		path := filepath.Join(w.systemRoot, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", rel, err)
		}
		// hostapd.conf carries the passphrase, keep it out of group/other
		mode := os.FileMode(0644)
		if rel == hostapdConfPath {
			mode = 0600
		}
		if err := os.WriteFile(path, content, mode); err != nil {
			return fmt.Errorf("failed to write %s: %w", rel, err)
		}
		w.log.Info("hotspot file written", interfaces.F("path", path))
	}

	return nil
}

func validateHotspot(cfg entities.HotspotConfig) error {
	if cfg.Interface == "" {
		return fmt.Errorf("hotspot interface is required")
	}
	if len(cfg.SSID) == 0 || len(cfg.SSID) > 32 {
		return fmt.Errorf("SSID must be 1-32 bytes, got %d", len(cfg.SSID))
	}
	if len(cfg.Passphrase) < 8 || len(cfg.Passphrase) > 63 {
		return fmt.Errorf("WPA2 passphrase must be 8-63 characters, got %d", len(cfg.Passphrase))
	}
	if cfg.Channel < 1 || cfg.Channel > 13 {
		return fmt.Errorf("channel must be 1-13, got %d", cfg.Channel)
	}
	if len(cfg.CountryCode) != 2 {
		return fmt.Errorf("country code must be two letters, got %q", cfg.CountryCode)
	}
	if cfg.AddressCIDR == "" || cfg.DHCPRange == "" {
		return fmt.Errorf("AP address and DHCP range are required")
	}
	return nil
}

func renderHostapd(cfg entities.HotspotConfig) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "interface=%s\n", cfg.Interface)
	fmt.Fprintln(&buf, "driver=nl80211")
	fmt.Fprintf(&buf, "ssid=%s\n", cfg.SSID)
	fmt.Fprintln(&buf, "hw_mode=g")
	fmt.Fprintf(&buf, "channel=%d\n", cfg.Channel)
	fmt.Fprintf(&buf, "country_code=%s\n", cfg.CountryCode)
	fmt.Fprintln(&buf, "wmm_enabled=0")
	fmt.Fprintln(&buf, "macaddr_acl=0")
	fmt.Fprintln(&buf, "auth_algs=1")
	fmt.Fprintln(&buf, "ignore_broadcast_ssid=0")
	fmt.Fprintln(&buf, "wpa=2")
	fmt.Fprintf(&buf, "wpa_passphrase=%s\n", cfg.Passphrase)
	fmt.Fprintln(&buf, "wpa_key_mgmt=WPA-PSK")
	fmt.Fprintln(&buf, "rsn_pairwise=CCMP")
	return buf.Bytes()
}

func renderDnsmasq(cfg entities.HotspotConfig) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "interface=%s\n", cfg.Interface)
	fmt.Fprintln(&buf, "bind-dynamic")
	fmt.Fprintln(&buf, "domain-needed")
	fmt.Fprintln(&buf, "bogus-priv")
	fmt.Fprintf(&buf, "dhcp-range=%s\n", cfg.DHCPRange)
	return buf.Bytes()
}

func renderNetwork(cfg entities.HotspotConfig) []byte {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "[Match]")
	fmt.Fprintf(&buf, "Name=%s\n", cfg.Interface)
	fmt.Fprintln(&buf, "")
	fmt.Fprintln(&buf, "[Network]")
	fmt.Fprintf(&buf, "Address=%s\n", cfg.AddressCIDR)
	fmt.Fprintln(&buf, "DHCPServer=no")
	fmt.Fprintln(&buf, "IPForward=yes")
	return buf.Bytes()
}
