package entities

// SoftwareEntry represents one installable package from the YAML catalog
type SoftwareEntry struct {
	ID             string
	Description    string
	InstallCommand string // Shell command template; "{url}" is replaced with the resolved URL
	ResourceHeavy  bool
	Requires64Bit  bool
	Release        ReleaseQuery
	Verify         VerifyConfig
}

// VerifyConfig holds optional GPG verification sources for downloaded assets
type VerifyConfig struct {
	SignatureURL string // Armored detached signature for the asset
	KeysURL      string // Armored public keys (KEYS-file style)
}

// NeedsResolution reports whether the entry requires a release lookup
// before it can be installed
func (e *SoftwareEntry) NeedsResolution() bool {
	return e.Release.Provider != "" && e.Release.Provider != ProviderStatic
}

// NeedsVerification reports whether a downloaded asset must pass GPG
// signature verification
func (e *SoftwareEntry) NeedsVerification() bool {
	return e.Verify.SignatureURL != "" && e.Verify.KeysURL != ""
}
