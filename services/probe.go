package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"bgg-probe/bgg"
)

// Probe runs a search followed by a detail lookup for the first hit and
// reports everything it finds as plain text lines.
type Probe struct {
	client *bgg.Client
	out    io.Writer
}

// NewProbe creates a probe writing to out. The response hook on cfg is
// replaced so that every response prints its status and size.
func NewProbe(cfg bgg.Config, out io.Writer) *Probe {
	p := &Probe{out: out}
	cfg.OnResponse = func(_ string, status, contentLength int) {
		p.println("Status:", status)
		p.println("Content length:", contentLength)
	}
	p.client = bgg.NewClientWithConfig(cfg)
	return p
}

// Run performs the probe. HTTP failures and missing data are reported as
// output lines and end the run with a nil error. Transport, timeout and
// parse failures are returned to the caller.
func (p *Probe) Run(ctx context.Context, query string) error {
	p.println("Testing the BoardGameGeek API...")
	p.println("1. Searching:", p.client.SearchURL(query))

	result, err := p.client.Search(ctx, query)
	var statusErr *bgg.StatusError
	switch {
	case errors.As(err, &statusErr):
		p.printf("Search failed: status %d\n", statusErr.Code)
		return nil
	case errors.Is(err, bgg.ErrNoGames):
		p.println("No games found")
		return nil
	case errors.Is(err, bgg.ErrNoName):
		p.println("Game name not found")
		return nil
	case err != nil:
		return err
	}

	p.printf("First game: ID=%s, Name=%s\n", result.ID, result.Name.Value)

	p.println()
	p.println("2. Game details:", p.client.DetailURL(result.ID))

	detail, err := p.client.FetchDetail(ctx, result.ID)
	switch {
	case errors.As(err, &statusErr):
		p.printf("Detail fetch failed: status %d\n", statusErr.Code)
		return nil
	case errors.Is(err, bgg.ErrNoBoardgame):
		return nil
	case err != nil:
		return err
	}

	p.printDetail(detail)
	return nil
}

// detailLine renders one labelled line, or reports false when the data is absent.
type detailLine func(d *bgg.GameDetail) (string, bool)

func labelled(label, suffix string, field func(d *bgg.GameDetail) bgg.Optional) detailLine {
	return func(d *bgg.GameDetail) (string, bool) {
		v := field(d)
		if !v.OK {
			return "", false
		}
		return label + ": " + v.Value + suffix, true
	}
}

var detailLines = []detailLine{
	labelled("Name", "", func(d *bgg.GameDetail) bgg.Optional { return d.PrimaryName }),
	labelled("Year", "", func(d *bgg.GameDetail) bgg.Optional { return d.YearPublished }),
	func(d *bgg.GameDetail) (string, bool) {
		if !d.MinPlayers.OK || !d.MaxPlayers.OK {
			return "", false
		}
		return "Players: " + d.MinPlayers.Value + "-" + d.MaxPlayers.Value, true
	},
	labelled("Playing time", " min", func(d *bgg.GameDetail) bgg.Optional { return d.PlayingTime }),
	labelled("BGG Rating", "", func(d *bgg.GameDetail) bgg.Optional { return d.BayesAverage }),
	labelled("Average rating", "", func(d *bgg.GameDetail) bgg.Optional { return d.Average }),
	labelled("Complexity", "", func(d *bgg.GameDetail) bgg.Optional { return d.AverageWeight }),
}

var voteLines = []struct {
	label string
	field func(v bgg.PlayerCountVotes) bgg.Optional
}{
	{"Best", func(v bgg.PlayerCountVotes) bgg.Optional { return v.Best }},
	{"Recommended", func(v bgg.PlayerCountVotes) bgg.Optional { return v.Recommended }},
	{"Not Recommended", func(v bgg.PlayerCountVotes) bgg.Optional { return v.NotRecommended }},
}

func (p *Probe) printDetail(d *bgg.GameDetail) {
	p.println()
	p.println("=== GAME DETAILS ===")
	for _, line := range detailLines {
		if s, ok := line(d); ok {
			p.println(s)
		}
	}

	if d.PlayerCountPoll == nil {
		return
	}
	p.println()
	p.println("=== PLAYER COUNT POLL ===")
	for _, entry := range d.PlayerCountPoll.Results {
		p.println()
		p.println("Player count:", entry.NumPlayers)
		for _, vl := range voteLines {
			if v := vl.field(entry); v.OK {
				p.printf("  %s: %s votes\n", vl.label, v.Value)
			}
		}
	}
}

func (p *Probe) println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

func (p *Probe) printf(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format, a...)
}
