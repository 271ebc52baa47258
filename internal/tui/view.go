package tui

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lifecomm/commission-calculator/internal/domain"
	"github.com/lifecomm/commission-calculator/internal/output"
)

// renderReport renders the calculation result with the shared console report.
func renderReport(r *domain.CalculationResult) string {
	return output.NewReportGenerator().ConsoleReport(r)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.scene == sceneResults {
		return m.viewResults()
	}
	return m.viewForm()
}

func (m Model) viewForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("당월 수수료 계산기") + "\n")

	b.WriteString(sectionStyle.Render("기본 정보") + "\n")
	for f := 0; f < fieldCount; f++ {
		b.WriteString(m.policyRow(f) + "\n")
	}

	b.WriteString("\n" + sectionStyle.Render("상품 목록") + "\n")
	if m.session.Len() == 0 {
		b.WriteString(labelStyle.Render("  (상품을 추가하세요)") + "\n")
	}
	for i, e := range m.session.Entries() {
		row := fieldCount + i
		marker := "  "
		line := m.entryLine(e, row)
		if m.cursor == row {
			marker = "▸ "
			line = focusedStyle.Render(line)
		}
		b.WriteString(marker + line + "\n")
	}

	addLine := m.addRowLine()
	if m.onAddRow() {
		b.WriteString("▸ " + focusedStyle.Render(addLine) + "\n")
	} else {
		b.WriteString("  " + addLine + "\n")
	}

	help := "↑/↓ 이동  ←/→ 변경  enter 선택/추가  t 유형  y 납입년도  p 보험료  d 삭제  c 계산  q 종료"
	if m.editing {
		help = "보험료 입력 후 enter, 취소는 esc"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (m Model) policyRow(field int) string {
	var label, value string
	switch field {
	case fieldYear:
		label, value = "위임년도", fmt.Sprintf("%d", m.inputs.CommissionYear)
	case fieldMonth:
		label, value = "위임월", fmt.Sprintf("%d", m.inputs.CommissionMonth)
	case fieldActivity:
		label = "당월 표준활동 달성"
		if m.inputs.StandardActivity {
			value = okStyle.Render("달성")
		} else {
			value = "미달성"
		}
	case fieldRetention1:
		label, value = "당월 유지율", fmt.Sprintf("%d%%", m.inputs.Retention1st)
	case fieldRetention13:
		label, value = "13회차 예상 유지율", fmt.Sprintf("%d%%", m.inputs.Retention13th)
	case fieldRetention25:
		label, value = "25회차 예상 유지율", fmt.Sprintf("%d%%", m.inputs.Retention25th)
	case fieldRefundPerf:
		label, value = "당월 예상 환수성적", output.FormatPoints(m.inputs.RefundPerformance)
	case fieldRefundAmt:
		label, value = "당월 예상 환수금", output.FormatCurrency(m.inputs.RefundAmount)
	case fieldRecruits:
		label, value = "당월 직도입 인원", fmt.Sprintf("%d명", m.inputs.DirectRecruits)
	}
	line := fmt.Sprintf("%s: %s", labelStyle.Render(label), value)
	if m.cursor == field {
		return "▸ " + focusedStyle.Render(fmt.Sprintf("%s: %s", label, value))
	}
	return "  " + line
}

func (m Model) entryLine(e domain.ContractEntry, row int) string {
	premium := output.FormatCurrency(decimal.NewFromInt(e.Premium))
	if m.editing && m.cursor == row {
		premium = m.premiumInput.View()
	}
	tag := ""
	if m.table.IsStrategic(e.Product) {
		tag = strategicStyle.Render(" [전략건강]")
	}
	return fmt.Sprintf("%s (%s / %s) 월초 보험료 %s%s", e.Product, e.Type, e.PayYear, premium, tag)
}

func (m Model) addRowLine() string {
	products := m.table.Products()
	if len(products) == 0 {
		return labelStyle.Render("상품 마스터가 비어 있습니다")
	}
	idx := m.productIdx
	if idx >= len(products) {
		idx = 0
	}
	return fmt.Sprintf("+ 상품 추가: ◂ %s ▸ (enter로 추가)", products[idx])
}

func (m Model) viewResults() string {
	lines := strings.Split(m.report, "\n")
	visible := len(lines)
	if m.height > 8 {
		visible = m.height - 6
	}
	start := m.reportOffset
	if start > len(lines) {
		start = len(lines)
	}
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("계산 결과") + "\n")
	b.WriteString(reportStyle.Render(strings.Join(lines[start:end], "\n")) + "\n")
	b.WriteString(helpStyle.Render("↑/↓ 스크롤  esc 돌아가기  q 종료"))
	return b.String()
}
