package gateways

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/berrysetup/berrysetup/internal/domain/entities"
	"github.com/berrysetup/berrysetup/internal/domain/interfaces/gateways"
)

func negotiate(t *testing.T, input string, req gateways.NegotiationRequest) (entities.Resolution, string) {
	t.Helper()
	var out bytes.Buffer
	n := NewPromptNegotiator(strings.NewReader(input), &out, nil)
	return n.Negotiate(context.Background(), req), out.String()
}

func defaultRequest() gateways.NegotiationRequest {
	return gateways.NegotiationRequest{
		Software:          "app",
		SourceDescription: "ownerA/repoA",
		FallbackURL:       "http://example.com/app.deb",
		Reason:            "resolution failed after 3 attempts",
	}
}

func TestPromptNegotiator_CustomURL(t *testing.T) {
	res, _ := negotiate(t, "1\nhttps://dl.example.com/app.deb\n", defaultRequest())
	assert.Equal(t, entities.KindUserProvided, res.Kind)
	assert.Equal(t, "https://dl.example.com/app.deb", res.URL)
}

func TestPromptNegotiator_FallbackBecomesResolved(t *testing.T) {
	res, _ := negotiate(t, "2\n", defaultRequest())
	assert.Equal(t, entities.KindResolved, res.Kind)
	assert.Equal(t, "http://example.com/app.deb", res.URL)
}

func TestPromptNegotiator_Skip(t *testing.T) {
	res, _ := negotiate(t, "3\n", defaultRequest())
	assert.True(t, res.Skipped())
}

func TestPromptNegotiator_AbortedPromptSkips(t *testing.T) {
	// empty input: immediate EOF
	res, _ := negotiate(t, "", defaultRequest())
	assert.True(t, res.Skipped())
}

func TestPromptNegotiator_InvalidURLRepromptsOnceThenSkips(t *testing.T) {
	res, out := negotiate(t, "1\nftp://x\nnot-a-url\n", defaultRequest())
	assert.True(t, res.Skipped(), "two invalid URLs must never yield UserProvided")
	assert.Equal(t, 2, strings.Count(out, "Invalid URL"))
}

func TestPromptNegotiator_InvalidThenValidURL(t *testing.T) {
	res, _ := negotiate(t, "1\nftp://x\nhttp://dl.example.com/a.deb\n", defaultRequest())
	assert.Equal(t, entities.KindUserProvided, res.Kind)
	assert.Equal(t, "http://dl.example.com/a.deb", res.URL)
}

func TestPromptNegotiator_EmptyURLNeverAccepted(t *testing.T) {
	res, _ := negotiate(t, "1\n\n\n", defaultRequest())
	assert.NotEqual(t, entities.KindUserProvided, res.Kind)
	assert.True(t, res.Skipped())
}

func TestPromptNegotiator_HidesFallbackWhenAbsent(t *testing.T) {
	req := defaultRequest()
	req.FallbackURL = ""

	res, out := negotiate(t, "2\n3\n", req)
	assert.True(t, res.Skipped(), "choice 2 is not available without a fallback")
	assert.NotContains(t, out, "[2]")
}

func TestPromptNegotiator_UnrecognizedChoiceReprompts(t *testing.T) {
	res, out := negotiate(t, "potato\n3\n", defaultRequest())
	assert.True(t, res.Skipped())
	assert.Contains(t, out, "Unrecognized choice")
}

func TestPromptNegotiator_NamesSoftwareAndReason(t *testing.T) {
	_, out := negotiate(t, "3\n", defaultRequest())
	assert.Contains(t, out, "app")
	assert.Contains(t, out, "ownerA/repoA")
	assert.Contains(t, out, "resolution failed after 3 attempts")
}
