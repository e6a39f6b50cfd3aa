package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/jni-bridge/fakevm"
	"github.com/wippyai/jni-bridge/jni"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	classStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	sigStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))
)

type modelState int

const (
	stateSelectClass modelState = iota
	stateSelectCtor
	stateInputArgs
	stateShowResult
)

type classInfo struct {
	name  string
	ctors []string
}

type explorerModel struct {
	err      error
	vm       *fakevm.FakeVM
	classes  []classInfo
	handles  []*jni.Object // constructed instances, kept so globals stay live
	result   string
	inputs   []textinput.Model
	params   []string
	selected int
	ctorIdx  int
	focusIdx int
	state    modelState
}

type constructedMsg struct {
	err    error
	obj    *jni.Object
	result string
}

func newExplorerModel(vm *fakevm.FakeVM) *explorerModel {
	names := vm.ClassNames()
	sort.Strings(names)

	classes := make([]classInfo, 0, len(names))
	for _, name := range names {
		ctors := vm.ClassConstructors(name)
		sort.Strings(ctors)
		classes = append(classes, classInfo{name: name, ctors: ctors})
	}

	return &explorerModel{vm: vm, classes: classes, state: stateSelectClass}
}

func (m *explorerModel) Init() tea.Cmd {
	return nil
}

func (m *explorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			for _, h := range m.handles {
				h.Close()
			}
			return m, tea.Quit

		case "up", "k":
			switch m.state {
			case stateSelectClass:
				if m.selected > 0 {
					m.selected--
				}
			case stateSelectCtor:
				if m.ctorIdx > 0 {
					m.ctorIdx--
				}
			}

		case "down", "j":
			switch m.state {
			case stateSelectClass:
				if m.selected < len(m.classes)-1 {
					m.selected++
				}
			case stateSelectCtor:
				if m.ctorIdx < len(m.classes[m.selected].ctors)-1 {
					m.ctorIdx++
				}
			}

		case "enter":
			switch m.state {
			case stateSelectClass:
				m.ctorIdx = 0
				m.state = stateSelectCtor

			case stateSelectCtor:
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.construct
				}
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.construct

			case stateShowResult:
				m.state = stateSelectClass
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateSelectCtor:
				m.state = stateSelectClass
			case stateInputArgs:
				m.state = stateSelectCtor
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectClass
				m.result = ""
				m.err = nil
			}
		}

	case constructedMsg:
		if msg.obj != nil {
			m.handles = append(m.handles, msg.obj)
		}
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *explorerModel) prepareInputs() {
	descriptor := m.classes[m.selected].ctors[m.ctorIdx]
	params, ok := splitParams(descriptor)
	if !ok {
		params = nil
	}
	m.params = params

	m.inputs = make([]textinput.Model, len(params))
	for i, p := range params {
		ti := textinput.New()
		ti.Placeholder = p
		ti.Prompt = fmt.Sprintf("arg%d: ", i)
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *explorerModel) construct() tea.Msg {
	ci := m.classes[m.selected]

	cls, err := jni.FindClass(ci.name)
	if err != nil {
		return constructedMsg{err: err}
	}
	defer cls.Close()

	args := make([]any, len(m.inputs))
	for i, input := range m.inputs {
		v, err := convertArg(input.Value(), m.params[i])
		if err != nil {
			return constructedMsg{err: err}
		}
		args[i] = v
	}

	obj, err := cls.NewInstance(args...)
	if err != nil {
		return constructedMsg{err: err}
	}

	return constructedMsg{
		obj:    obj,
		result: fmt.Sprintf("%s @ %#x", ci.name, obj.Handle()),
	}
}

func (m *explorerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("JNI Explorer"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectClass:
		b.WriteString("Select a class:\n\n")
		for i, ci := range m.classes {
			line := classStyle.Render(ci.name) + sigStyle.Render(fmt.Sprintf("  (%d constructors)", len(ci.ctors)))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + ci.name))
				b.WriteString(sigStyle.Render(fmt.Sprintf("  (%d constructors)", len(ci.ctors))))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter choose • q quit"))

	case stateSelectCtor:
		ci := m.classes[m.selected]
		b.WriteString(fmt.Sprintf("Constructors of %s:\n\n", classStyle.Render(ci.name)))
		for i, sig := range ci.ctors {
			line := "<init>" + sig
			if i == m.ctorIdx {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + sigStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter choose • esc back"))

	case stateInputArgs:
		ci := m.classes[m.selected]
		b.WriteString(fmt.Sprintf("Constructing %s%s\n\n",
			classStyle.Render(ci.name),
			sigStyle.Render(" <init>"+ci.ctors[m.ctorIdx])))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(sigStyle.Render(m.params[i]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter construct • esc back"))

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString("Constructed ")
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	st := m.vm.Stats()
	b.WriteString("\n\n")
	b.WriteString(statsStyle.Render(fmt.Sprintf(
		"refs  globals: %d live (%d/%d)  locals: %d live (%d/%d)  bad releases: %d",
		st.GlobalsLive, st.GlobalsCreated, st.GlobalsDeleted,
		st.LocalsLive, st.LocalsCreated, st.LocalsDeleted,
		st.BadReleases)))

	return b.String()
}

func runInteractive(vm *fakevm.FakeVM) error {
	p := tea.NewProgram(newExplorerModel(vm), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
