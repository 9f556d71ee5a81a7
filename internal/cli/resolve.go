package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveInitiativeID accepts a short ID (case-insensitive), a full UUID or
// a unique UUID prefix.
func resolveInitiativeID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("initiative ID is required")
	}

	initiatives, err := app.Initiatives.List(ctx, true)
	if err != nil {
		return "", err
	}

	for _, i := range initiatives {
		if strings.EqualFold(i.ShortID, input) || i.ID == input {
			return i.ID, nil
		}
	}

	var matches []string
	for _, i := range initiatives {
		if strings.HasPrefix(i.ID, input) {
			matches = append(matches, i.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("initiative not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("initiative ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
