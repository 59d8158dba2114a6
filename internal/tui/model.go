// Package tui is a terminal browser for the invoices listing.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Raymond9734/invoices-dashboard/internal/handler"
	"github.com/Raymond9734/invoices-dashboard/internal/models"
	"github.com/Raymond9734/invoices-dashboard/internal/search"
	"github.com/Raymond9734/invoices-dashboard/internal/service"
)

// Lister fetches one rendering of the listing
type Lister interface {
	ListInvoices(ctx context.Context, rawQuery string) (*handler.InvoiceListResponse, error)
}

// listingMsg carries the response for the location it was fetched for
type listingMsg struct {
	rawQuery string
	listing  *handler.InvoiceListResponse
	err      error
}

type model struct {
	ctx      context.Context
	lister   Lister
	loc      *location
	search   *search.Controller
	input    textinput.Model
	listing  *handler.InvoiceListResponse
	err      error
	loading  bool
	lastTerm string

	// showing is the query the listing should match; older responses are dropped
	showing string
}

func newModel(ctx context.Context, lister Lister, loc *location, ctrl *search.Controller) model {
	input := textinput.New()
	input.Placeholder = "Search invoices..."
	input.Prompt = "🔍 "
	input.Focus()

	return model{
		ctx:     ctx,
		lister:  lister,
		loc:     loc,
		search:  ctrl,
		input:   input,
		loading: true,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetch(""))
}

func (m model) fetch(rawQuery string) tea.Cmd {
	return func() tea.Msg {
		listing, err := m.lister.ListInvoices(m.ctx, rawQuery)
		return listingMsg{rawQuery: rawQuery, listing: listing, err: err}
	}
}

// gotoPage navigates off the event loop, since Replace sends to the program
func (m model) gotoPage(page int) tea.Cmd {
	return func() tea.Msg {
		m.loc.Replace(search.CreatePageURL(m.loc.Path(), m.loc.CurrentParams(), page))
		return nil
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.search.Stop()
			return m, tea.Quit
		case "enter":
			ctrl := m.search
			return m, func() tea.Msg {
				ctrl.Flush()
				return nil
			}
		case "pgdown", "ctrl+n":
			if m.listing != nil && m.listing.Pagination.Page < m.listing.Pagination.TotalPages {
				return m, m.gotoPage(m.listing.Pagination.Page + 1)
			}
			return m, nil
		case "pgup", "ctrl+p":
			if m.listing != nil && m.listing.Pagination.Page > 1 {
				return m, m.gotoPage(m.listing.Pagination.Page - 1)
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if term := m.input.Value(); term != m.lastTerm {
			m.lastTerm = term
			m.search.HandleInput(term)
		}
		return m, cmd

	case navigatedMsg:
		m.loading = true
		m.showing = msg.rawQuery
		return m, m.fetch(msg.rawQuery)

	case listingMsg:
		if msg.rawQuery != m.showing {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.listing = msg.listing
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Invoices"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.listing == nil:
		b.WriteString("Loading...\n")
	default:
		b.WriteString(renderListing(m.listing))
	}

	help := "type to filter · enter apply now · pgup/pgdn page · esc quit"
	if m.loading && m.listing != nil {
		help = "refreshing... · " + help
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

func renderListing(listing *handler.InvoiceListResponse) string {
	if len(listing.Invoices) == 0 {
		return "No invoices found.\n"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-22s %-28s %12s  %-12s %s", "Customer", "Email", "Amount", "Date", "Status")))
	b.WriteString("\n")

	for _, inv := range listing.Invoices {
		status := pendingStyle.Render(inv.Status)
		if inv.Status == models.InvoiceStatusPaid {
			status = paidStyle.Render(inv.Status)
		}
		fmt.Fprintf(&b, "%-22s %-28s %12s  %-12s %s\n",
			truncate(inv.Name, 22),
			truncate(inv.Email, 28),
			service.FormatCurrency(inv.Amount),
			service.FormatDate(inv.Date),
			status,
		)
	}

	b.WriteString("\n")
	labels := make([]string, 0, len(listing.Links))
	for _, link := range listing.Links {
		if link.Current {
			labels = append(labels, currentPageStyle.Render(link.Label))
			continue
		}
		labels = append(labels, link.Label)
	}
	b.WriteString(strings.Join(labels, " "))
	b.WriteString("\n")

	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Run browses the listing until the user quits
func Run(ctx context.Context, lister Lister, debounce time.Duration) error {
	loc := newLocation(service.InvoicesPath)
	ctrl := search.NewController(loc, service.InvoicesPath, search.WithDelay(debounce), search.WithResetPage())
	defer ctrl.Stop()

	p := tea.NewProgram(newModel(ctx, lister, loc, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	loc.setSend(p.Send)

	_, err := p.Run()
	return err
}
