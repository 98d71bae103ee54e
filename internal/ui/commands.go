package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/energy/internal/browse"
	"github.com/five82/energy/internal/catalog"
	"github.com/five82/energy/internal/detail"
	"github.com/five82/energy/internal/logtail"
	"github.com/five82/energy/internal/newsletter"
	"github.com/five82/energy/internal/rating"
)

// logTailLines is how much of the log file the overlay shows.
const logTailLines = 200

type listLoadedMsg struct {
	result browse.Result
}

type detailLoadedMsg struct {
	resp detail.Response
}

type quoteLoadedMsg struct {
	quote catalog.Quote
	ok    bool
}

type quoteRefreshMsg struct{}

type searchTickMsg struct {
	tag uint64
}

type toastExpiredMsg struct {
	seq int
}

type subscribeDoneMsg struct {
	outcome newsletter.Outcome
}

type ratingDoneMsg struct {
	outcome rating.Outcome
}

type logsLoadedMsg struct {
	lines []string
	err   error
}

func loadListCmd(ctx context.Context, loader ListLoader, req browse.Request) tea.Cmd {
	return func() tea.Msg {
		return listLoadedMsg{result: loader.Load(ctx, req)}
	}
}

func fetchDetailCmd(ctx context.Context, fetcher detail.ExerciseFetcher, t detail.Ticket) tea.Cmd {
	return func() tea.Msg {
		return detailLoadedMsg{resp: detail.Load(ctx, fetcher, t)}
	}
}

func fetchQuoteCmd(ctx context.Context, quotes QuoteSource) tea.Cmd {
	return func() tea.Msg {
		q, ok := quotes.Today(ctx)
		return quoteLoadedMsg{quote: q, ok: ok}
	}
}

func subscribeCmd(ctx context.Context, svc Subscriber, email string) tea.Cmd {
	return func() tea.Msg {
		return subscribeDoneMsg{outcome: svc.Submit(ctx, email)}
	}
}

func rateCmd(ctx context.Context, svc RatingSubmitter, form rating.Form) tea.Cmd {
	return func() tea.Msg {
		return ratingDoneMsg{outcome: svc.Submit(ctx, form)}
	}
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logsLoadedMsg{}
		}
		lines, err := logtail.Read(path, logTailLines)
		return logsLoadedMsg{lines: lines, err: err}
	}
}
