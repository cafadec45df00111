package entities

// DisplayConfig describes a GPIO display overlay written into the boot
// configuration file
type DisplayConfig struct {
	Overlay  string // dtoverlay name, e.g. "piscreen"
	Rotation int    // Degrees: 0, 90, 180, 270
	SpeedHz  int    // SPI clock, 0 means overlay default
	Params   map[string]string
}

// HotspotConfig describes the Wi-Fi fallback access point. The values are
// rendered into hostapd, dnsmasq and systemd-networkd configuration text;
// daemon management stays with the system.
type HotspotConfig struct {
	Interface   string // Wireless interface, e.g. "wlan0"
	SSID        string
	Passphrase  string // WPA2-PSK, 8-63 characters
	Channel     int
	CountryCode string // Regulatory domain, e.g. "GB"
	AddressCIDR string // Static AP address, e.g. "192.168.50.1/24"
	DHCPRange   string // dnsmasq range, e.g. "192.168.50.50,192.168.50.150,12h"
}
