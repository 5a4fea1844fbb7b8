package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/vovakirdan/slice-arcade/internal/storage"
	"github.com/vovakirdan/slice-arcade/internal/wallet"
)

const (
	walletTimeout = 5 * time.Second
	historySize   = 20
)

// WalletKeyMap defines the key bindings for the wallet screen.
type WalletKeyMap struct {
	Connect key.Binding
	Fund    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k WalletKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Connect, k.Fund, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k WalletKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultWalletKeyMap returns default key bindings.
func DefaultWalletKeyMap() WalletKeyMap {
	return WalletKeyMap{
		Connect: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "connect")),
		Fund:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "add credits")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// WalletModel shows the player's credits and recent ledger movements.
type WalletModel struct {
	svc       Services
	player    string
	connected bool
	balance   decimal.Decimal
	transfers []storage.Transfer
	status    string
	table     table.Model
	help      help.Model
	keys      WalletKeyMap
	width     int
	height    int
	quitting  bool
	done      bool
}

// NewWalletModel creates the wallet screen and loads the balance.
func NewWalletModel(svc Services, player string, width, height int) WalletModel {
	m := WalletModel{
		svc:    svc.withDefaults(),
		player: player,
		help:   help.New(),
		keys:   DefaultWalletKeyMap(),
		width:  width,
		height: height,
	}
	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "Kind", Width: 8},
			{Title: "Amount", Width: 12},
			{Title: "With", Width: 18},
			{Title: "Date", Width: 14},
		}),
		table.WithHeight(max(height-14, 3)),
	)
	m.refresh()
	return m
}

// refresh reloads balance and history.
func (m *WalletModel) refresh() {
	if m.svc.Wallet == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), walletTimeout)
	defer cancel()

	bal, err := m.svc.Wallet.Balance(ctx, m.player)
	switch {
	case errors.Is(err, wallet.ErrUnauthorized):
		m.connected = false
		m.balance = decimal.Zero
	case err != nil:
		m.status = fmt.Sprintf("Could not read balance: %v", err)
		return
	default:
		m.connected = true
		m.balance = bal
	}

	m.transfers = nil
	if m.svc.Store != nil && m.connected {
		if m.transfers, err = m.svc.Store.Transfers(ctx, m.player, historySize); err != nil {
			m.status = fmt.Sprintf("Could not load history: %v", err)
		}
	}

	rows := make([]table.Row, len(m.transfers))
	for i, t := range m.transfers {
		amount, with := "+"+t.Amount.String(), t.From
		if t.From == m.player {
			amount, with = "-"+t.Amount.String(), t.To
		}
		rows[i] = table.Row{t.Kind, amount, shortID(with), t.CreatedAt.Local().Format("Jan 02 15:04")}
	}
	m.table.SetRows(rows)
}

// Update handles messages for the wallet screen.
func (m WalletModel) Update(msg tea.Msg) (WalletModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.done = true
		case key.Matches(msg, m.keys.Connect):
			m.connect()
		case key.Matches(msg, m.keys.Fund):
			m.fund()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-14, 3))
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m *WalletModel) connect() {
	if m.svc.Wallet == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), walletTimeout)
	defer cancel()

	created, err := m.svc.Wallet.Connect(ctx, m.player)
	switch {
	case err != nil:
		m.status = fmt.Sprintf("Connect failed: %v", err)
	case created:
		m.status = "Wallet connected."
	default:
		m.status = "Wallet already connected."
	}
	m.refresh()
}

func (m *WalletModel) fund() {
	if m.svc.Wallet == nil {
		return
	}
	amount := m.svc.Wallet.TopUp()
	if !amount.IsPositive() {
		m.status = "Top-ups are disabled."
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), walletTimeout)
	defer cancel()

	if _, err := m.svc.Wallet.Fund(ctx, m.player, amount); err != nil {
		m.status = fmt.Sprintf("Top-up failed: %v", err)
		return
	}
	m.svc.Logger.Info("wallet funded", "player", m.player, "amount", amount)
	m.status = fmt.Sprintf("Added %s credits.", amount)
	m.refresh()
}

// View renders the wallet screen.
func (m WalletModel) View() string {
	var b strings.Builder

	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(centerText(heading.Render("WALLET"), m.width))
	b.WriteString("\n\n")

	if m.svc.Wallet == nil {
		b.WriteString(centerText(dimStyle.Render("Free play: no wallet needed."), m.width))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render(m.help.View(m.keys)))
		return b.String()
	}

	fmt.Fprintf(&b, "  Player:    %s\n", m.player)
	if m.connected {
		fmt.Fprintf(&b, "  Balance:   %s credits\n", m.balance)
	} else {
		b.WriteString("  Balance:   not connected\n")
	}
	fmt.Fprintf(&b, "  Entry fee: %s credits\n\n", m.svc.Wallet.Fee())

	if m.status != "" {
		b.WriteString("  " + statusStyle.Render(m.status) + "\n\n")
	}
	if len(m.transfers) > 0 {
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
		b.WriteString(box.Render(m.table.View()))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Connected reports whether the player has an account.
func (m WalletModel) Connected() bool {
	return m.connected
}

// Balance returns the last loaded balance.
func (m WalletModel) Balance() decimal.Decimal {
	return m.balance
}

// Status returns the last action message.
func (m WalletModel) Status() string {
	return m.status
}

// Done returns true if user wants to go back to menu.
func (m WalletModel) Done() bool {
	return m.done
}

// IsQuitting returns true if user wants to quit entirely.
func (m WalletModel) IsQuitting() bool {
	return m.quitting
}
