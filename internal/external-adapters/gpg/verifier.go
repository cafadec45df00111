// Package gpg provides GPG signature verification capabilities.
package gpg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	// Some projects publish large KEYS files with every maintainer key
	maxKeysBytes = 10 * 1024 * 1024
	// GPG signatures are typically < 1KB
	maxSignatureBytes = 10 * 1024
)

// Verifier checks detached GPG signatures using ProtonMail's go-crypto,
// a maintained, modern fork of golang.org/x/crypto/openpgp. Keys and
// signatures are fetched from the URLs a catalog entry declares; nothing
// touches the host keyring.
type Verifier struct {
	httpClient *retryablehttp.Client
}

// NewVerifier creates a new GPG verifier
func NewVerifier() *Verifier {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.HTTPClient.Timeout = 30 * time.Second
	return &Verifier{httpClient: client}
}

// VerifyDetached checks payload against the detached signature at
// signatureURL using the armored keyring published at keysURL
func (v *Verifier) VerifyDetached(ctx context.Context, payload io.Reader, signatureURL, keysURL string) error {
	keyring, err := v.fetchKeyring(ctx, keysURL)
	if err != nil {
		return err
	}

	sigData, err := v.fetch(ctx, signatureURL, maxSignatureBytes)
	if err != nil {
		return fmt.Errorf("failed to download signature: %w", err)
	}
	if len(sigData) < 10 {
		return fmt.Errorf("signature file too small to be a valid GPG signature")
	}

	// Armored signatures start with -----BEGIN PGP SIGNATURE-----
	isArmored := bytes.HasPrefix(sigData, []byte("-----BEGIN PGP SIGNATURE---"))

	var verifyErr error
	if isArmored {
		_, verifyErr = openpgp.CheckArmoredDetachedSignature(keyring, payload, bytes.NewReader(sigData), nil)
	} else {
		_, verifyErr = openpgp.CheckDetachedSignature(keyring, payload, bytes.NewReader(sigData), nil)
	}
	if verifyErr != nil {
		return fmt.Errorf("signature verification failed: %w", verifyErr)
	}

	return nil
}

func (v *Verifier) fetchKeyring(ctx context.Context, keysURL string) (openpgp.EntityList, error) {
	data, err := v.fetch(ctx, keysURL, maxKeysBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to download keys file: %w", err)
	}

	keyring, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		// Try reading as binary
		keyring, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse keys file: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("no keys found in keys file")
	}

	return keyring, nil
}

func (v *Verifier) fetch(ctx context.Context, url string, limit int64) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return data, nil
}
