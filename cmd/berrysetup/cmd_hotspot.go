package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/berrysetup/berrysetup/internal/domain-adapters/sysconfig"
	"github.com/berrysetup/berrysetup/internal/domain/entities"
)

// newHotspotCmd creates the `hotspot` command.
// Usage: berrysetup hotspot --ssid my-pi --passphrase secret123
func newHotspotCmd() *cobra.Command {
	var (
		iface      string
		ssid       string
		passphrase string
		channel    int
		country    string
		address    string
		dhcpRange  string
	)

	cmd := &cobra.Command{
		Use:   "hotspot",
		Short: "Write a Wi-Fi access point configuration",
		Long: `Renders hostapd, dnsmasq and systemd-networkd configuration for a
fallback access point. The files only take effect once the respective
services are enabled.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			cfg := entities.HotspotConfig{
				Interface:   iface,
				SSID:        ssid,
				Passphrase:  passphrase,
				Channel:     channel,
				CountryCode: country,
				AddressCIDR: address,
				DHCPRange:   dhcpRange,
			}

			writer := sysconfig.NewHotspotWriter(a.cfg.SystemRoot, a.log)
			if err := writer.Apply(cfg); err != nil {
				return err
			}
			fmt.Println("Hotspot configuration written. Enable hostapd and dnsmasq to bring it up.")
			return nil
		},
	}

	cmd.Flags().StringVar(&iface, "interface", "wlan0", "Wireless interface to host the AP on")
	cmd.Flags().StringVar(&ssid, "ssid", "", "Network name (1-32 bytes)")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "WPA2 passphrase (8-63 characters)")
	cmd.Flags().IntVar(&channel, "channel", 7, "2.4 GHz channel (1-13)")
	cmd.Flags().StringVar(&country, "country", "US", "Two-letter regulatory country code")
	cmd.Flags().StringVar(&address, "address", "192.168.50.1/24", "AP address in CIDR notation")
	cmd.Flags().StringVar(&dhcpRange, "dhcp-range", "192.168.50.50,192.168.50.150,12h", "dnsmasq DHCP range")

	return cmd
}
