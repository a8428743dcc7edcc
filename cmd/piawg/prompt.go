package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/manifoldco/promptui"
)

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// prompter asks the user for whatever was not given on the command line.
type prompter interface {
	Credentials() (credentials, error)
	Confirm(label string) bool
	Select(label string, items []string) (int, error)
}

type terminalPrompter struct{}

func (terminalPrompter) Credentials() (credentials, error) {
	usernamePrompt := promptui.Prompt{
		Label:    "Username",
		Validate: validateUsername,
	}

	username, err := usernamePrompt.Run()
	if err != nil {
		return credentials{}, err
	}

	passwordPrompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
	}

	password, err := passwordPrompt.Run()
	if err != nil {
		return credentials{}, err
	}

	return credentials{Username: username, Password: password}, nil
}

func (terminalPrompter) Confirm(label string) bool {
	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := p.Run()
	return err == nil
}

func (terminalPrompter) Select(label string, items []string) (int, error) {
	p := promptui.Select{
		Label: label,
		Items: items,
		Size:  15,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
		},
	}
	i, _, err := p.Run()
	return i, err
}

// validateUsername accepts PIA usernames: "p" followed by digits.
func validateUsername(input string) error {
	if !strings.HasPrefix(input, "p") || len(input) < 2 {
		return errors.New("invalid username, it should starts from 'p'")
	}

	if _, err := strconv.Atoi(input[1:]); err != nil {
		return errors.New("invalid username")
	}

	return nil
}
