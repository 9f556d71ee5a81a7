package cli

import (
	"github.com/charmbracelet/huh"
)

// confirm asks a yes/no question. Non-interactive sessions never prompt and
// get false, so destructive commands need an explicit --yes there.
func (a *App) confirm(title, description string) (bool, error) {
	if !a.interactive() {
		return false, nil
	}
	if a.Confirm != nil {
		return a.Confirm(title, description)
	}

	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
