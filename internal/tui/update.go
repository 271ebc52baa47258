package tui

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/lifecomm/commission-calculator/internal/config"
	"github.com/lifecomm/commission-calculator/internal/domain"
)

// amountStep is the left/right increment for the refund amount fields.
var amountStep = decimal.NewFromInt(100_000)

func stepAmount(v decimal.Decimal, delta int) decimal.Decimal {
	out := v.Add(amountStep.Mul(decimal.NewFromInt(int64(delta))))
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.scene == sceneResults {
			return m.updateResults(msg)
		}
		if m.editing {
			return m.updatePremiumEdit(msg)
		}
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.rowCount()-1 {
			m.cursor++
		}
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)
	case "enter", " ":
		switch {
		case m.onAddRow():
			m.addEntry()
		case m.cursor == fieldActivity:
			m.inputs.StandardActivity = !m.inputs.StandardActivity
		case m.entryAt(m.cursor) != nil:
			m.startPremiumEdit()
			return m, nil
		}
	case "t":
		if e := m.entryAt(m.cursor); e != nil {
			m.cycleType(e, 1)
		}
	case "y":
		if e := m.entryAt(m.cursor); e != nil {
			m.cyclePayYear(e, 1)
		}
	case "p":
		if m.entryAt(m.cursor) != nil {
			m.startPremiumEdit()
			return m, nil
		}
	case "d", "delete":
		if e := m.entryAt(m.cursor); e != nil {
			m.session.Remove(e.ID)
			if m.cursor >= m.rowCount() {
				m.cursor = m.rowCount() - 1
			}
		}
	case "c":
		m.calculate()
	}
	return m, nil
}

// adjust applies a left/right step to the focused row.
func (m *Model) adjust(delta int) {
	switch {
	case m.onAddRow():
		n := len(m.table.Products())
		if n > 0 {
			m.productIdx = (m.productIdx + delta + n) % n
		}
	case m.cursor == fieldYear:
		m.inputs.CommissionYear = clamp(m.inputs.CommissionYear+delta,
			config.EarliestDelegationYear, time.Now().Year())
	case m.cursor == fieldMonth:
		m.inputs.CommissionMonth = wrap(m.inputs.CommissionMonth+delta, 1, 12)
	case m.cursor == fieldActivity:
		m.inputs.StandardActivity = !m.inputs.StandardActivity
	case m.cursor == fieldRetention1:
		m.inputs.Retention1st += delta
	case m.cursor == fieldRetention13:
		m.inputs.Retention13th += delta
	case m.cursor == fieldRetention25:
		m.inputs.Retention25th += delta
	case m.cursor == fieldRefundPerf:
		m.inputs.RefundPerformance = stepAmount(m.inputs.RefundPerformance, delta)
	case m.cursor == fieldRefundAmt:
		m.inputs.RefundAmount = stepAmount(m.inputs.RefundAmount, delta)
	case m.cursor == fieldRecruits:
		m.inputs.DirectRecruits += delta
	default:
		if e := m.entryAt(m.cursor); e != nil {
			m.cycleProduct(e, delta)
		}
	}
	m.inputs.Clamp()
}

func (m *Model) startPremiumEdit() {
	e := m.entryAt(m.cursor)
	if e == nil {
		return
	}
	m.editing = true
	m.premiumInput.SetValue(strconv.FormatInt(e.Premium, 10))
	m.premiumInput.Focus()
	m.premiumInput.CursorEnd()
}

func (m Model) updatePremiumEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if e := m.entryAt(m.cursor); e != nil {
			e.Premium = parsePremium(m.premiumInput.Value())
		}
		m.editing = false
		m.premiumInput.Blur()
		return m, nil
	case "esc":
		m.editing = false
		m.premiumInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.premiumInput, cmd = m.premiumInput.Update(msg)
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "enter":
		m.scene = sceneForm
	case "up", "k":
		if m.reportOffset > 0 {
			m.reportOffset--
		}
	case "down", "j":
		if m.reportOffset < strings.Count(m.report, "\n") {
			m.reportOffset++
		}
	}
	return m, nil
}

// cycleProduct moves an entry to the adjacent product, resetting type and
// payyear to that product's defaults.
func (m *Model) cycleProduct(e *domain.ContractEntry, delta int) {
	products := m.table.Products()
	if len(products) == 0 {
		return
	}
	idx := 0
	for i, p := range products {
		if p == e.Product {
			idx = i
			break
		}
	}
	e.Product = products[wrapIdx(idx+delta, len(products))]
	types := m.table.Types(e.Product)
	if len(types) > 0 {
		e.Type = types[0]
	} else {
		e.Type = ""
	}
	m.resetPayYear(e)
}

func (m *Model) cycleType(e *domain.ContractEntry, delta int) {
	types := m.table.Types(e.Product)
	if len(types) == 0 {
		return
	}
	idx := 0
	for i, t := range types {
		if t == e.Type {
			idx = i
			break
		}
	}
	e.Type = types[wrapIdx(idx+delta, len(types))]
	m.resetPayYear(e)
}

func (m *Model) cyclePayYear(e *domain.ContractEntry, delta int) {
	pys := m.table.PayYears(e.Product, e.Type)
	if len(pys) == 0 {
		return
	}
	idx := 0
	for i, p := range pys {
		if p == e.PayYear {
			idx = i
			break
		}
	}
	e.PayYear = pys[wrapIdx(idx+delta, len(pys))]
}

func (m *Model) resetPayYear(e *domain.ContractEntry) {
	if pys := m.table.PayYears(e.Product, e.Type); len(pys) > 0 {
		e.PayYear = pys[0]
	} else {
		e.PayYear = ""
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func wrap(v, lo, hi int) int {
	if v < lo {
		return hi
	}
	if v > hi {
		return lo
	}
	return v
}

func wrapIdx(i, n int) int {
	return ((i % n) + n) % n
}

func parsePremium(raw string) int64 {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
