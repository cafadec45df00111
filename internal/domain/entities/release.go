package entities

// ProviderKind selects the extraction strategy used to resolve an entry's
// latest release asset
type ProviderKind string

// Supported release providers
const (
	// ProviderGitHub resolves against the GitHub latest-release API
	ProviderGitHub ProviderKind = "github-release"
	// ProviderPage scans a raw listing page for matching download links
	ProviderPage ProviderKind = "page-scan"
	// ProviderStatic needs no resolution; the entry installs without a
	// resolved URL or with a fixed one
	ProviderStatic ProviderKind = "static"
)

// ReleaseQuery describes where and how to find the newest download URL for
// a software entry. Constructed once per entry and never mutated.
type ReleaseQuery struct {
	Provider     ProviderKind
	Source       string // "owner/repo" for github-release, page URL for page-scan
	AssetPattern string // Regex matched against asset filenames, listing order
	FallbackURL  string // Offered to the operator when resolution fails
}

// ResolutionKind tags how a download URL was obtained
type ResolutionKind string

// Resolution outcomes
const (
	// KindResolved means the URL came from the provider or the accepted fallback
	KindResolved ResolutionKind = "resolved"
	// KindUserProvided means the operator typed the URL at the prompt
	KindUserProvided ResolutionKind = "user-provided"
	// KindSkipped means the entry must be omitted from the install batch
	KindSkipped ResolutionKind = "skipped"
)

// Resolution is the outcome of the resolver + negotiator pipeline for one
// entry. It is consumed immediately by the dispatcher and never persisted.
type Resolution struct {
	Kind ResolutionKind
	URL  string
}

// Resolved builds an automatic (or fallback-accepted) resolution
func Resolved(url string) Resolution {
	return Resolution{Kind: KindResolved, URL: url}
}

// UserProvided builds a resolution from an operator-typed URL
func UserProvided(url string) Resolution {
	return Resolution{Kind: KindUserProvided, URL: url}
}

// Skip builds the omit-this-entry resolution
func Skip() Resolution {
	return Resolution{Kind: KindSkipped}
}

// Skipped reports whether the entry must be left out of the install batch
func (r Resolution) Skipped() bool {
	return r.Kind == KindSkipped
}
