package ui

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Mohsinsiddi/w3ico/internal/chain"
	"github.com/Mohsinsiddi/w3ico/internal/ico"
)

// Sale is what the page drives. *ico.Service implements it.
type Sale interface {
	Connect(ctx context.Context) (ico.Snapshot, error)
	Reload(ctx context.Context) ico.Snapshot
	Mint(ctx context.Context, amount *big.Int) (*ico.Result, error)
	Claim(ctx context.Context) (*ico.Result, error)
	Withdraw(ctx context.Context) (*ico.Result, error)
}

type connectedMsg struct {
	snap ico.Snapshot
	err  error
}

type reloadedMsg ico.Snapshot

type writeDoneMsg struct {
	done string // message shown on success
	res  *ico.Result
	err  error
}

// PageModel is the single-page sale view.
type PageModel struct {
	ctx      context.Context
	sale     Sale
	network  *chain.Network
	log      *zap.Logger
	snap     ico.Snapshot
	loading  bool
	amount   textinput.Model
	spin     spinner.Model
	status   string
	err      error
	quitting bool
}

// NewPage creates the page model. It starts connecting on Init.
func NewPage(ctx context.Context, sale Sale, network *chain.Network, log *zap.Logger) PageModel {
	in := textinput.New()
	in.Placeholder = "Amount of tokens"
	in.CharLimit = 6
	in.Width = 20
	in.Prompt = "▸ "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StyleChain

	if log == nil {
		log = zap.NewNop()
	}
	return PageModel{ctx: ctx, sale: sale, network: network, log: log, amount: in, spin: sp, loading: true}
}

// Snapshot returns the last state read from the chain.
func (m PageModel) Snapshot() ico.Snapshot { return m.snap }

// Action returns the control currently offered.
func (m PageModel) Action() ico.Action { return ico.NextAction(m.snap, m.loading) }

func (m PageModel) Init() tea.Cmd {
	return tea.Batch(m.connect(), m.spin.Tick)
}

func (m PageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case connectedMsg:
		m.loading = false
		if msg.err != nil {
			m.fail("connect", msg.err)
			return m, nil
		}
		m.snap, m.err = msg.snap, nil
		return m, nil

	case reloadedMsg:
		m.loading = false
		m.snap = ico.Snapshot(msg)
		return m, nil

	case writeDoneMsg:
		m.loading = false
		if msg.res != nil && msg.res.Snapshot.Connected {
			m.snap = msg.res.Snapshot
		}
		if msg.err != nil {
			m.fail("transaction", msg.err)
			return m, nil
		}
		m.err = nil
		m.status = msg.done
		m.amount.Reset()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m PageModel) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := key.String()
	if k == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.amount.Focused() {
		switch k {
		case "esc":
			m.amount.Blur()
			return m, nil
		case "enter":
			return m.submitMint()
		}
		if key.Type == tea.KeyRunes && !digits(key.Runes) {
			return m, nil
		}
		var cmd tea.Cmd
		m.amount, cmd = m.amount.Update(key)
		return m, cmd
	}

	if k == "q" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.loading {
		return m, nil
	}

	switch action := m.Action(); {
	case k == "enter" && action == ico.ActionConnect:
		return m.start(m.connect())
	case k == "r" && action != ico.ActionConnect:
		return m.start(m.reload())
	case k == "c" && action == ico.ActionClaim:
		return m.start(m.write("Successfully claimed ZeroDot618 Tokens", m.sale.Claim))
	case k == "w" && action == ico.ActionWithdraw:
		return m.start(m.write("Withdrawal confirmed", m.sale.Withdraw))
	case k == "m" && action == ico.ActionMint:
		return m, m.amount.Focus()
	case k == "enter" && action == ico.ActionMint:
		return m.submitMint()
	}
	return m, nil
}

func (m PageModel) submitMint() (tea.Model, tea.Cmd) {
	amount, ok := new(big.Int).SetString(strings.TrimSpace(m.amount.Value()), 10)
	if !ok || !ico.MintEnabled(amount) {
		m.err = ico.ErrInvalidAmount
		return m, nil
	}
	m.amount.Blur()
	return m.start(m.write("Successfully minted ZeroDot618 Tokens", func(ctx context.Context) (*ico.Result, error) {
		return m.sale.Mint(ctx, amount)
	}))
}

// start marks the page busy and runs work alongside the spinner.
func (m PageModel) start(work tea.Cmd) (tea.Model, tea.Cmd) {
	m.loading = true
	m.status, m.err = "", nil
	return m, tea.Batch(work, m.spin.Tick)
}

func (m *PageModel) fail(op string, err error) {
	m.err = err
	m.status = ""
	m.log.Error(op+" failed", zap.Error(err))
}

func (m PageModel) connect() tea.Cmd {
	ctx, sale := m.ctx, m.sale
	return func() tea.Msg {
		snap, err := sale.Connect(ctx)
		return connectedMsg{snap: snap, err: err}
	}
}

func (m PageModel) reload() tea.Cmd {
	ctx, sale := m.ctx, m.sale
	return func() tea.Msg { return reloadedMsg(sale.Reload(ctx)) }
}

func (m PageModel) write(done string, fn func(context.Context) (*ico.Result, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		res, err := fn(ctx)
		return writeDoneMsg{done: done, res: res, err: err}
	}
}

func (m PageModel) View() string {
	if m.quitting {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(StyleTitle.Render("Welcome to ZeroDot618 Devs ICO!") + "\n")
	sb.WriteString("You can claim or mint ZeroDot618 tokens here\n")
	if m.network != nil {
		sb.WriteString(Meta("network ") + ChainName(m.network.DisplayName) + "\n")
	}
	sb.WriteString("\n")

	if !m.snap.Connected {
		if m.loading {
			sb.WriteString(m.spin.View() + " Connecting...\n")
		} else {
			sb.WriteString(Button("Connect your wallet", true) + "  " + Meta("[enter]") + "\n")
		}
	} else {
		sb.WriteString(Meta("wallet  ") + Addr(m.snap.Address.Hex()) + "\n")
		sb.WriteString(m.snap.BalanceLine() + "\n")
		sb.WriteString(m.snap.MintedLine() + "\n\n")
		sb.WriteString(m.renderControl())
	}

	if m.status != "" {
		sb.WriteString("\n" + Success(m.status) + "\n")
	}
	if m.err != nil {
		sb.WriteString("\n" + Err(m.err.Error()) + "\n")
	}
	sb.WriteString("\n" + Meta(m.help()) + "\n")
	return sb.String()
}

func (m PageModel) renderControl() string {
	switch m.Action() {
	case ico.ActionLoading:
		return m.spin.View() + " " + Button(ico.ActionLoading.String(), false) + "\n"
	case ico.ActionWithdraw:
		return Button(ico.ActionWithdraw.String(), true) + "  " + Meta("[w]") + "\n"
	case ico.ActionClaim:
		return m.snap.ClaimLine() + "\n" + Button(ico.ActionClaim.String(), true) + "  " + Meta("[c]") + "\n"
	default:
		amount, ok := new(big.Int).SetString(m.amount.Value(), 10)
		enabled := ok && ico.MintEnabled(amount)
		return m.amount.View() + "\n" + Button(ico.ActionMint.String(), enabled) + "  " + Meta("[m] amount  [enter] mint") + "\n"
	}
}

func (m PageModel) help() string {
	switch {
	case m.amount.Focused():
		return "type an amount · enter mint · esc done · ctrl+c quit"
	case !m.snap.Connected:
		return "enter connect · q quit"
	default:
		return "r refresh · q quit"
	}
}

func digits(rs []rune) bool {
	for _, r := range rs {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// RunPage shows the page until the user quits.
func RunPage(ctx context.Context, sale Sale, network *chain.Network, log *zap.Logger) error {
	p := tea.NewProgram(NewPage(ctx, sale, network, log), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("page: %w", err)
	}
	return nil
}
