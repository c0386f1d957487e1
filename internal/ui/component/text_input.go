package component

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/despectus/despectus/internal/ui/styles"
)

var (
	errAPIKeyInvalid = errors.New("invalid api key")
	errNumber        = errors.New("invalid number")
)

type InputValidator interface {
	Validate(string) error
}

func NewValidatingTextInputModel(label string, value string, placeholder string, validators ...InputValidator) *ValidatingTextInputModel {
	input := NewTextInputModel(value, placeholder)

	if len(validators) > 0 {
		input.Validate = func(s string) error {
			for _, validator := range validators {
				if err := validator.Validate(s); err != nil {
					return err
				}
			}

			return nil
		}
	}

	return &ValidatingTextInputModel{Input: input, Label: label}
}

type ValidatingTextInputModel struct {
	Label string
	Input textinput.Model
}

func (m *ValidatingTextInputModel) Init() tea.Cmd {
	return nil
}

func (m *ValidatingTextInputModel) Update(msg tea.Msg) (*ValidatingTextInputModel, tea.Cmd) {
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)

	return m, cmd
}

func (m *ValidatingTextInputModel) View() string {
	var errRow string
	if m.Input.Err != nil {
		errRow = lipgloss.NewStyle().Foreground(styles.Loss).Render("Validation Error: " + m.Input.Err.Error())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.PanelLabel.Render(m.Label+": "),
		lipgloss.JoinVertical(lipgloss.Top, m.Input.View(), errRow))
}

func (m *ValidatingTextInputModel) Focus() tea.Cmd {
	m.Input.PromptStyle = styles.FocusedStyle
	m.Input.TextStyle = styles.FocusedStyle

	return m.Input.Focus()
}

func (m *ValidatingTextInputModel) Blur() {
	m.Input.PromptStyle = styles.NoStyle
	m.Input.TextStyle = styles.NoStyle
	m.Input.Blur()
}

// Masked hides the value while typing.
func (m *ValidatingTextInputModel) Masked() *ValidatingTextInputModel {
	m.Input.EchoMode = textinput.EchoPassword
	m.Input.EchoCharacter = '•'

	return m
}

// APIKeyValidator accepts an empty key, which disables match history, or a single token.
type APIKeyValidator struct{}

func (v APIKeyValidator) Validate(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	if strings.ContainsAny(value, " \t") {
		return fmt.Errorf("%w: cannot contain spaces", errAPIKeyInvalid)
	}

	return nil
}

type IntRangeValidator struct {
	Min int
	Max int
}

func (v IntRangeValidator) Validate(value string) error {
	parsed, errParse := strconv.Atoi(strings.TrimSpace(value))
	if errParse != nil {
		return errors.Join(errParse, errNumber)
	}

	if parsed < v.Min || parsed > v.Max {
		return fmt.Errorf("%w: must be between %d and %d", errNumber, v.Min, v.Max)
	}

	return nil
}
