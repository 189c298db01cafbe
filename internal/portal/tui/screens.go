package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/uplink/internal/flow"
)

// View renders the current screen. It reads the controller snapshot and never
// mutates state.
func (m AppModel) View() string {
	snap := m.Controller.Snapshot()

	var panel string
	var keys help.KeyMap
	accent := false

	switch snap.Screen {
	case flow.ScreenLanding:
		panel, keys = m.renderLanding(), m.Keys.Landing
	case flow.ScreenSignup, flow.ScreenLogin:
		panel, keys = m.renderForm(snap), m.Keys.Form
	case flow.ScreenPostLoginChoice:
		panel, keys = m.renderChoice(), m.Keys.Choice
	case flow.ScreenProvisioning:
		panel, keys = m.renderProvisioning(snap), m.Keys.Provisioning
	case flow.ScreenPaymentPending:
		panel, keys, accent = m.renderPending(), m.Keys.Pending, true
	case flow.ScreenPayment:
		panel, keys = m.renderPayment(snap), m.Keys.Payment
	case flow.ScreenSuccessValidation:
		panel, keys, accent = m.renderValidation(snap), m.Keys.Validation, true
	default:
		panel, keys = "Unknown screen", m.Keys.Validation
	}

	card := PanelStyle(m.Width, accent).Render(panel)
	return RenderApplicationContainer(card, m.Help.View(keys), snap.CanGoBack, m.Width, m.Height)
}

func (m AppModel) renderLanding() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Portal de Ativação"))
	b.WriteString("\n")
	b.WriteString(RenderSubtitle("Conecte-se à rede de satélites. Inicie seu provisionamento abaixo."))
	b.WriteString("\n\n")
	b.WriteString(RenderMenuItem("CRIAR NOVA CONTA", m.Cursor == 0))
	b.WriteString("\n")
	b.WriteString(RenderMenuItem("JÁ TENHO UMA CONTA", m.Cursor == 1))

	return b.String()
}

func (m AppModel) renderForm(snap flow.Snapshot) string {
	var b strings.Builder

	title, action := "Acessar Conta", "ENTRAR E VALIDAR"
	if snap.Screen == flow.ScreenSignup {
		title, action = "Novo Acesso", "PROVISIONAR"
	}

	b.WriteString(RenderTitle(title))
	b.WriteString("\n")
	b.WriteString(RenderSubtitle("Insira suas credenciais para vincular ao terminal."))
	b.WriteString("\n\n")

	b.WriteString(renderField("E-MAIL CADASTRADO", m.Form.Email.View(), m.Form.Focus == fieldEmail, missing(snap, "email")))
	b.WriteString("\n\n")
	b.WriteString(renderField("SENHA DE ACESSO", m.Form.Password.View(), m.Form.Focus == fieldPassword, missing(snap, "password")))
	b.WriteString("\n\n")
	b.WriteString(ButtonStyle.Render(action + " →"))

	return b.String()
}

func renderField(label, input string, focused, missing bool) string {
	labelStyle := LabelStyle
	if focused {
		labelStyle = FocusedInputStyle
	}
	line := labelStyle.Render(label)
	if missing {
		line += "  " + ErrorTextStyle.Render("obrigatório")
	}
	return line + "\n" + input
}

func missing(snap flow.Snapshot, field string) bool {
	for _, f := range snap.MissingFields {
		if f == field {
			return true
		}
	}
	return false
}

func (m AppModel) renderChoice() string {
	var b strings.Builder

	b.WriteString(AccentTitleStyle.Render("⛨"))
	b.WriteString("\n")
	b.WriteString(RenderTitle("Status de Ativação"))
	b.WriteString("\n")
	b.WriteString(RenderSubtitle("Identificamos sua conta. Para prosseguir, confirme o status da sua taxa de liberação."))
	b.WriteString("\n\n")
	b.WriteString(RenderMenuItem("✓ JÁ PAGUEI A TAXA", m.Cursor == 0))
	b.WriteString("\n")
	b.WriteString(RenderMenuItem("⚠ NÃO PAGUEI A TAXA", m.Cursor == 1))

	return b.String()
}

func (m AppModel) renderProvisioning(snap flow.Snapshot) string {
	title := SpinnerStyle.Render(m.Spinner.View()) + " " + TitleStyle.UnsetMarginBottom().Render("SINCRONIZANDO")
	percent := PercentStyle.Render(fmt.Sprintf("%3d%%", snap.Progress))

	inner := PanelWidth(m.Width) - 2*DefaultBoxPadding - 2
	gap := inner - lipgloss.Width(title) - lipgloss.Width(percent)
	if gap < 1 {
		gap = 1
	}
	header := title + strings.Repeat(" ", gap) + percent

	bar := m.ProgressBar.ViewAs(float64(snap.Progress) / float64(flow.MaxProgress))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		bar,
		"",
		RenderLogPanel(m.entries, inner),
	)
}

func (m AppModel) renderPending() string {
	var b strings.Builder

	b.WriteString(AccentTitleStyle.Render("⚠"))
	b.WriteString("\n")
	b.WriteString(RenderTitle("Taxa de Liberação Pendente"))
	b.WriteString("\n")
	b.WriteString(RenderSubtitle(fmt.Sprintf(
		"O provisionamento foi concluído, porém o terminal aguarda o pagamento de %s para iniciar o tráfego de dados.",
		m.amountLabel,
	)))
	b.WriteString("\n\n")
	b.WriteString(AccentButtonStyle.Render("EFETUAR PAGAMENTO →"))

	return b.String()
}

func (m AppModel) renderPayment(snap flow.Snapshot) string {
	var b strings.Builder

	b.WriteString(SubtitleStyle.Italic(true).Render("UPLINK GATEWAY"))
	b.WriteString("\n")
	b.WriteString(RenderTitle("Taxa de Liberação"))
	b.WriteString("\n")
	b.WriteString(PercentStyle.Render("── " + m.amountLabel + " ──"))
	b.WriteString("\n\n")

	// The satellite is decorative; pressing "s" on it continues the flow.
	b.WriteString(SubtitleStyle.Render("    ( ◉ )  satélite"))
	b.WriteString("\n\n")

	b.WriteString(SubtitleStyle.Render(truncateMiddle(snap.PaymentReference, PanelWidth(m.Width)-2*DefaultBoxPadding-4)))
	b.WriteString("\n\n")

	switch {
	case snap.Copy.Copied:
		b.WriteString(ButtonStyle.Render("✓ CHAVE COPIADA"))
	case snap.Copy.Failed:
		b.WriteString(FailedButtonStyle.Render("✗ FALHA AO COPIAR"))
	default:
		b.WriteString(ButtonStyle.Render("⧉ COPIAR CHAVE"))
	}

	return b.String()
}

func (m AppModel) renderValidation(snap flow.Snapshot) string {
	var b strings.Builder

	b.WriteString(AccentTitleStyle.Render("◷"))
	b.WriteString("\n")
	b.WriteString(RenderTitle("Validando Transação"))
	b.WriteString("\n")
	b.WriteString(RenderSubtitle(fmt.Sprintf(
		"Estamos processando sua solicitação para o valor de %s.", m.amountLabel,
	)))
	b.WriteString("\n\n")
	b.WriteString(AccentTitleStyle.Render("PROTOCOLO: " + snap.ProtocolID))

	return b.String()
}

// truncateMiddle shortens s to max runes with an ellipsis in the middle.
func truncateMiddle(s string, max int) string {
	r := []rune(s)
	if max < 5 || len(r) <= max {
		return s
	}
	half := (max - 1) / 2
	return string(r[:half]) + "…" + string(r[len(r)-(max-1-half):])
}
