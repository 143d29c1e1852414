package main

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// Prompter asks the user for input on the terminal.
type Prompter interface {
	Prompt(label string, secret bool, validate func(string) error) (string, error)
	Confirm(label string) (bool, error)
}

// promptUI implements [Prompter] with promptui.
type promptUI struct{}

func (promptUI) Prompt(label string, secret bool, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{Label: label, Validate: validate}
	if secret {
		prompt.Mask = '*'
	}
	return prompt.Run()
}

// Confirm reports false without error when the user answers no.
func (promptUI) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{Label: label, IsConfirm: true}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

