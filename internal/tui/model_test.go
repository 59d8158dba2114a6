package tui

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Raymond9734/invoices-dashboard/internal/handler"
	"github.com/Raymond9734/invoices-dashboard/internal/models"
	"github.com/Raymond9734/invoices-dashboard/internal/search"
	"github.com/Raymond9734/invoices-dashboard/internal/service"
)

type manualTimer struct {
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type manualScheduler struct {
	timers []*manualTimer
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) search.Timer {
	t := &manualTimer{f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) elapse() {
	for _, t := range s.timers {
		if !t.stopped {
			t.stopped = true
			t.f()
		}
	}
}

type stubLister struct {
	queries []string
}

func (l *stubLister) ListInvoices(ctx context.Context, rawQuery string) (*handler.InvoiceListResponse, error) {
	l.queries = append(l.queries, rawQuery)
	query, _ := parseRaw(rawQuery)
	return &handler.InvoiceListResponse{
		InvoiceListResult: &service.InvoiceListResult{
			Query: query,
			Invoices: []*models.InvoiceRow{{
				ID:     "i1",
				Name:   "Amy Burns",
				Email:  "amy@burns.com",
				Amount: 1250,
				Status: models.InvoiceStatusPaid,
				Date:   time.Date(2022, time.December, 6, 0, 0, 0, 0, time.UTC),
			}},
			Pagination: models.NewPaginationResult(query.Page, models.ItemsPerPage, 13),
		},
		Links: []handler.PageLink{{Label: "1", Current: true}, {Label: "2"}, {Label: "3"}},
	}, nil
}

func parseRaw(rawQuery string) (models.QueryState, error) {
	values, err := url.ParseQuery(rawQuery)
	return models.ParseQueryState(values), err
}

type harness struct {
	model  model
	lister *stubLister
	sched  *manualScheduler
	sent   []tea.Msg
}

func newHarness() *harness {
	h := &harness{lister: &stubLister{}, sched: &manualScheduler{}}
	loc := newLocation(service.InvoicesPath)
	loc.setSend(func(msg tea.Msg) { h.sent = append(h.sent, msg) })
	ctrl := search.NewController(loc, service.InvoicesPath, search.WithScheduler(h.sched), search.WithResetPage())
	h.model = newModel(context.Background(), h.lister, loc, ctrl)
	return h
}

func (h *harness) update(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(model)
	return cmd
}

func (h *harness) typeText(text string) {
	for _, r := range text {
		h.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestModel_TypingDebouncesIntoOneFetch(t *testing.T) {
	h := newHarness()

	h.typeText("amy")
	if len(h.sent) != 0 {
		t.Fatalf("navigated before the quiet period: %v", h.sent)
	}

	h.sched.elapse()

	if len(h.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(h.sent))
	}
	nav, ok := h.sent[0].(navigatedMsg)
	if !ok {
		t.Fatalf("sent %T, want navigatedMsg", h.sent[0])
	}
	if nav.rawQuery != "page=1&query=amy" {
		t.Errorf("rawQuery = %q", nav.rawQuery)
	}

	cmd := h.update(nav)
	if cmd == nil {
		t.Fatal("navigatedMsg produced no fetch")
	}
	h.update(cmd())

	if len(h.lister.queries) != 1 || h.lister.queries[0] != "page=1&query=amy" {
		t.Errorf("queries = %v", h.lister.queries)
	}

	view := h.model.View()
	for _, want := range []string{"Amy Burns", "$12.50", "Dec 6, 2022"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_ClearingRemovesQuery(t *testing.T) {
	h := newHarness()

	h.typeText("a")
	h.sched.elapse()
	h.update(tea.KeyMsg{Type: tea.KeyBackspace})
	h.sched.elapse()

	if len(h.sent) != 2 {
		t.Fatalf("sent = %v", h.sent)
	}
	if got := h.sent[1].(navigatedMsg).rawQuery; got != "page=1" {
		t.Errorf("rawQuery after clearing = %q, want page=1", got)
	}
}

func TestModel_PageDown(t *testing.T) {
	h := newHarness()
	h.update(listingMsg{listing: mustList(t, h.lister, "")})

	cmd := h.update(tea.KeyMsg{Type: tea.KeyPgDown})
	if cmd == nil {
		t.Fatal("pgdown produced no command")
	}
	cmd()

	if len(h.sent) != 1 || h.sent[0].(navigatedMsg).rawQuery != "page=2" {
		t.Errorf("sent = %v", h.sent)
	}
}

func TestModel_DropsOutOfOrderListing(t *testing.T) {
	h := newHarness()

	older := h.update(navigatedMsg{rawQuery: "page=1&query=a"})
	newer := h.update(navigatedMsg{rawQuery: "page=1&query=amy"})

	h.update(newer())
	h.update(older())

	if h.model.listing == nil || h.model.listing.Query.Term != "amy" {
		t.Errorf("listing query = %+v, want the latest term amy", h.model.listing)
	}
	if h.model.loading {
		t.Error("still loading after the current response arrived")
	}
}

func TestLocation_Replace(t *testing.T) {
	loc := newLocation(service.InvoicesPath)
	var got []tea.Msg
	loc.setSend(func(msg tea.Msg) { got = append(got, msg) })

	loc.Replace("/dashboard/invoices?query=lee&page=2")

	if loc.CurrentParams().Get("query") != "lee" || loc.Path() != "/dashboard/invoices" {
		t.Errorf("params = %v, path = %q", loc.CurrentParams(), loc.Path())
	}
	if len(got) != 1 || got[0].(navigatedMsg).rawQuery != "query=lee&page=2" {
		t.Errorf("sent = %v", got)
	}
}

func mustList(t *testing.T, l *stubLister, rawQuery string) *handler.InvoiceListResponse {
	t.Helper()
	listing, err := l.ListInvoices(context.Background(), rawQuery)
	if err != nil {
		t.Fatalf("ListInvoices() error = %v", err)
	}
	return listing
}
