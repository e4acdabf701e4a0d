package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spurtek/spurtek-leads/internal/validation"
	"github.com/spurtek/spurtek-leads/internal/wizard"
	"github.com/spurtek/spurtek-leads/internal/wizard/client"
)

const incompleteMessage = "Please fill in the required fields."

// submitResultMsg carries the outcome of the network call back into Update.
type submitResultMsg struct {
	conf wizard.Confirmation
	err  error
}

// replaySubmitter hands an already received result to wizard.Submit so the
// state transition happens on the Update goroutine.
type replaySubmitter submitResultMsg

func (r replaySubmitter) SubmitContact(context.Context, validation.ContactInput) (wizard.Confirmation, error) {
	return r.conf, r.err
}

type model struct {
	wiz       *wizard.Wizard
	submitter wizard.Submitter

	inputs    map[string]textinput.Model
	selects   map[string]int
	focus     int
	pending   bool
	status    string
	fieldErrs map[string]string
}

func newModel(wiz *wizard.Wizard, submitter wizard.Submitter) model {
	m := model{
		wiz:       wiz,
		submitter: submitter,
		inputs:    make(map[string]textinput.Model),
		selects:   make(map[string]int),
		fieldErrs: make(map[string]string),
	}
	for _, step := range []wizard.Step{wizard.StepIndustry, wizard.StepDetails, wizard.StepContact} {
		for _, f := range wizard.Fields(step) {
			if f.Kind == wizard.FieldSelect {
				m.selects[f.Name] = 0
				continue
			}
			ti := textinput.New()
			ti.Prompt = "> "
			ti.Placeholder = f.Placeholder
			ti.CharLimit = 500
			ti.SetValue(wiz.Value(f.Name))
			m.inputs[f.Name] = ti
		}
	}
	m.syncFocus()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		m.handleResult(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.wiz.Submitted() {
			if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc || msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
		if m.pending {
			return m, nil
		}

		switch msg.Type {
		case tea.KeyTab, tea.KeyDown:
			m.moveFocus(1)
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.moveFocus(-1)
			return m, nil
		case tea.KeyEsc, tea.KeyCtrlB:
			if m.wiz.Back() {
				m.focus = 0
				m.status = ""
				m.syncFocus()
			}
			return m, nil
		case tea.KeyEnter:
			return m.advance()
		case tea.KeyLeft, tea.KeyRight:
			if f, ok := m.focusedField(); ok && f.Kind == wizard.FieldSelect {
				delta := 1
				if msg.Type == tea.KeyLeft {
					delta = -1
				}
				m.cycleSelect(f, delta)
				return m, nil
			}
		}
		return m.updateInput(msg)
	}
	return m, nil
}

func (m *model) fields() []wizard.Field {
	return wizard.Fields(m.wiz.Step())
}

func (m *model) focusedField() (wizard.Field, bool) {
	fields := m.fields()
	if m.focus < 0 || m.focus >= len(fields) {
		return wizard.Field{}, false
	}
	return fields[m.focus], true
}

func (m *model) moveFocus(delta int) {
	n := len(m.fields())
	if n == 0 {
		return
	}
	m.focus = (m.focus + delta + n) % n
	m.syncFocus()
}

func (m *model) syncFocus() {
	focused, _ := m.focusedField()
	for name, ti := range m.inputs {
		if name == focused.Name {
			ti.Focus()
		} else {
			ti.Blur()
		}
		m.inputs[name] = ti
	}
}

func (m *model) cycleSelect(f wizard.Field, delta int) {
	n := len(f.Options) + 1
	idx := (m.selects[f.Name] + delta + n) % n
	m.selects[f.Name] = idx
	value := ""
	if idx > 0 {
		value = f.Options[idx-1].Value
	}
	_ = m.wiz.Set(f.Name, value)
	delete(m.fieldErrs, f.Name)
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f, ok := m.focusedField()
	if !ok || f.Kind == wizard.FieldSelect {
		return m, nil
	}
	ti, cmd := m.inputs[f.Name].Update(msg)
	m.inputs[f.Name] = ti
	_ = m.wiz.Set(f.Name, ti.Value())
	delete(m.fieldErrs, f.Name)
	return m, cmd
}

// advance moves to the next field, then the next step, then submits.
func (m model) advance() (tea.Model, tea.Cmd) {
	if m.focus < len(m.fields())-1 {
		m.moveFocus(1)
		return m, nil
	}
	if m.wiz.Step() != wizard.LastInputStep {
		if !m.wiz.Next() {
			m.status = incompleteMessage
			return m, nil
		}
		m.status = ""
		m.focus = 0
		m.syncFocus()
		return m, nil
	}
	if !m.wiz.CanAdvance() {
		m.status = incompleteMessage
		return m, nil
	}
	m.pending = true
	m.status = ""
	return m, submitCmd(m.submitter, m.wiz.Input())
}

func submitCmd(s wizard.Submitter, in validation.ContactInput) tea.Cmd {
	return func() tea.Msg {
		conf, err := s.SubmitContact(context.Background(), in)
		return submitResultMsg{conf: conf, err: err}
	}
}

// handleResult applies a finished submission. Server field errors send the
// user back to the earliest step holding one.
func (m *model) handleResult(msg submitResultMsg) {
	m.pending = false
	err := m.wiz.Submit(context.Background(), replaySubmitter(msg))
	if err == nil {
		return
	}

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		m.status = "Failed to submit form. Please try again."
		return
	}
	m.status = "Error: " + apiErr.Message
	for _, issue := range apiErr.Details {
		m.fieldErrs[issue.Field] = issue.Message
	}
	if target := apiErr.EarliestStep(); target != 0 {
		for m.wiz.Step() > target && m.wiz.Back() {
		}
		m.focus = 0
		m.syncFocus()
	}
}

func (m model) View() string {
	if m.wiz.Submitted() {
		var b strings.Builder
		b.WriteString(titleStyle.Render(wizard.ThankYouTitle))
		b.WriteString("\n\n")
		b.WriteString(wizard.ThankYouMessage)
		if msg := m.wiz.Result().Message; msg != "" {
			b.WriteString("\n\n")
			b.WriteString(descriptionStyle.Render(msg))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("press enter to exit"))
		return frameStyle.Render(b.String())
	}

	step := m.wiz.Step()
	var b strings.Builder
	b.WriteString(m.stepIndicator())
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render(step.Name()))
	b.WriteString("\n")
	b.WriteString(descriptionStyle.Render(step.Description()))
	b.WriteString("\n\n")

	for i, f := range m.fields() {
		label := f.Label
		if f.Required {
			label += " *"
		}
		if i == m.focus {
			b.WriteString(focusedStyle.Render(label))
		} else {
			b.WriteString(labelStyle.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(m.renderControl(f, i == m.focus))
		b.WriteString("\n")
		if msg, ok := m.fieldErrs[f.Name]; ok {
			b.WriteString(errorStyle.Render(msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.pending {
		b.WriteString(descriptionStyle.Render("Submitting..."))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help()))
	return frameStyle.Render(b.String())
}

func (m model) renderControl(f wizard.Field, focused bool) string {
	if f.Kind != wizard.FieldSelect {
		return m.inputs[f.Name].View()
	}
	text := f.Placeholder
	if idx := m.selects[f.Name]; idx > 0 {
		text = f.Options[idx-1].Label
	}
	control := fmt.Sprintf("‹ %s ›", text)
	if focused {
		return focusedStyle.Render(control)
	}
	return control
}

func (m model) stepIndicator() string {
	parts := make([]string, 0, 3)
	for _, s := range []wizard.Step{wizard.StepIndustry, wizard.StepDetails, wizard.StepContact} {
		style := stepTodoStyle
		if s <= m.wiz.Step() {
			style = stepDoneStyle
		}
		parts = append(parts, style.Render(fmt.Sprintf("%d", s)))
	}
	return strings.Join(parts, " ─ ")
}

func (m model) help() string {
	keys := []string{"tab next field", "enter continue"}
	if m.wiz.Step() == wizard.LastInputStep {
		keys[1] = "enter submit"
	}
	if f, ok := m.focusedField(); ok && f.Kind == wizard.FieldSelect {
		keys = append(keys, "←/→ choose")
	}
	if m.wiz.Step() > wizard.StepIndustry {
		keys = append(keys, "esc back")
	}
	keys = append(keys, "ctrl+c quit")
	return strings.Join(keys, " • ")
}
