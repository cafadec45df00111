package gateways

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/berrysetup/berrysetup/internal/domain/entities"
	"github.com/berrysetup/berrysetup/internal/domain/interfaces"
	"github.com/berrysetup/berrysetup/internal/domain/interfaces/gateways"
)

// PromptNegotiator implements the interactive fallback flow on a plain
// line-based prompt. Reads block until the operator answers; EOF or an
// abort means skip. A URL is never substituted without an explicit
// operator choice.
type PromptNegotiator struct {
	in  *bufio.Reader
	out io.Writer
	log interfaces.Logger
}

// NewPromptNegotiator creates a negotiator over the given streams,
// usually stdin and stdout
func NewPromptNegotiator(in io.Reader, out io.Writer, log interfaces.Logger) *PromptNegotiator {
	if log == nil {
		log = &interfaces.NoOpLogger{}
	}
	return &PromptNegotiator{
		in:  bufio.NewReader(in),
		out: out,
		log: log,
	}
}

// Negotiate presents the three-way choice: custom URL, fallback URL, or
// skip. An invalid custom URL is re-prompted once, then the entry is
// skipped.
func (n *PromptNegotiator) Negotiate(_ context.Context, req gateways.NegotiationRequest) entities.Resolution {
	fmt.Fprintf(n.out, "\nCould not resolve a download for %s (%s)\n", req.Software, req.SourceDescription)
	fmt.Fprintf(n.out, "Reason: %s\n\n", req.Reason)

	hasFallback := req.FallbackURL != ""

	for {
		fmt.Fprintln(n.out, "  [1] Enter a download URL manually")
		if hasFallback {
			fmt.Fprintf(n.out, "  [2] Use the fallback URL (%s)\n", req.FallbackURL)
		}
		fmt.Fprintln(n.out, "  [3] Skip this package")
		fmt.Fprint(n.out, "Choice: ")

		choice, err := n.readLine()
		if err != nil {
			// Operator aborted the prompt
			return entities.Skip()
		}

		switch choice {
		case "1":
			return n.promptCustomURL(req.Software)
		case "2":
			if !hasFallback {
				continue
			}
			// Accepted fallback is equivalent to an automatic resolution
			return entities.Resolved(req.FallbackURL)
		case "3", "s", "skip":
			return entities.Skip()
		default:
			fmt.Fprintf(n.out, "Unrecognized choice %q\n", choice)
		}
	}
}

// promptCustomURL reads an operator-typed URL, allowing one retry on an
// invalid value before skipping
func (n *PromptNegotiator) promptCustomURL(software string) entities.Resolution {
	for attempt := 0; attempt < 2; attempt++ {
		fmt.Fprintf(n.out, "Download URL for %s: ", software)
		line, err := n.readLine()
		if err != nil {
			return entities.Skip()
		}
		if isHTTPURL(line) {
			return entities.UserProvided(line)
		}
		fmt.Fprintf(n.out, "Invalid URL %q: must start with http:// or https://\n", line)
	}

	n.log.Warn("invalid URL twice, skipping entry", interfaces.F("software", software))
	return entities.Skip()
}

func (n *PromptNegotiator) readLine() (string, error) {
	line, err := n.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
