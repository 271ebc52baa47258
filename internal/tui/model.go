package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lifecomm/commission-calculator/internal/calculation"
	"github.com/lifecomm/commission-calculator/internal/domain"
	"github.com/lifecomm/commission-calculator/internal/master"
)

// scene selects which screen the program renders.
type scene int

const (
	sceneForm scene = iota
	sceneResults
)

// Policy-field row indices in the form. Entry rows and the add-product row
// follow after these.
const (
	fieldYear = iota
	fieldMonth
	fieldActivity
	fieldRetention1
	fieldRetention13
	fieldRetention25
	fieldRefundPerf
	fieldRefundAmt
	fieldRecruits
	fieldCount
)

// Model is the interactive calculation session: the policy-input form, the
// contract-entry list and the rendered result.
type Model struct {
	table   *master.Table
	session *domain.Session
	inputs  domain.PolicyInputs
	engine  *calculation.Engine

	scene  scene
	cursor int // row index: 0..fieldCount-1 policy, then entries, then add row
	width  int
	height int

	// Premium editing.
	editing      bool
	premiumInput textinput.Model

	// Product choice on the add row.
	productIdx int

	// Rendered report and its scroll offset.
	report       string
	reportOffset int

	err error
}

// NewModel creates the session model. A nil scenario starts an empty session
// with the delegation month defaulted to the current month.
func NewModel(table *master.Table, scenario *domain.Scenario) Model {
	ti := textinput.New()
	ti.Placeholder = "0"
	ti.CharLimit = 12
	ti.Width = 14

	m := Model{
		table:        table,
		session:      domain.NewSession(),
		engine:       calculation.NewEngine(),
		premiumInput: ti,
	}

	now := time.Now()
	m.inputs = domain.PolicyInputs{
		CommissionYear:  now.Year(),
		CommissionMonth: int(now.Month()),
		Retention13th:   90,
		Retention25th:   85,
	}
	if scenario != nil {
		m.inputs = scenario.PolicyInputs
		m.session = domain.NewSessionFromEntries(scenario.Entries)
	}
	m.inputs.Clamp()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// rowCount is the number of navigable form rows: policy fields, one row per
// entry, and the add-product row.
func (m Model) rowCount() int {
	return fieldCount + m.session.Len() + 1
}

// entryAt maps a cursor row to an entry, or nil for policy/add rows.
func (m Model) entryAt(row int) *domain.ContractEntry {
	idx := row - fieldCount
	entries := m.session.Entries()
	if idx < 0 || idx >= len(entries) {
		return nil
	}
	return &entries[idx]
}

func (m Model) onAddRow() bool {
	return m.cursor == m.rowCount()-1
}

// addEntry appends an entry for the currently picked product with the default
// type and payyear, mirroring the on-select behavior of the original form.
func (m *Model) addEntry() {
	products := m.table.Products()
	if len(products) == 0 {
		return
	}
	if m.productIdx >= len(products) {
		m.productIdx = 0
	}
	product := products[m.productIdx]
	types := m.table.Types(product)
	typ := ""
	payYear := ""
	if len(types) > 0 {
		typ = types[0]
		if pys := m.table.PayYears(product, typ); len(pys) > 0 {
			payYear = pys[0]
		}
	}
	m.session.Add(product, typ, payYear)
}

// calculate runs the engine and renders the report for the results scene.
func (m *Model) calculate() {
	m.inputs.Clamp()
	result := m.engine.Calculate(m.session, m.inputs, time.Now(), m.table)
	m.report = renderReport(result)
	m.reportOffset = 0
	m.scene = sceneResults
}

// Run starts the interactive session.
func Run(table *master.Table, scenario *domain.Scenario) error {
	p := tea.NewProgram(NewModel(table, scenario), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
