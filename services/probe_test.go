package services

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"bgg-probe/bgg"
)

// fakeBGG serves fixed bodies for the search and detail endpoints and
// counts detail requests.
type fakeBGG struct {
	searchStatus int
	searchBody   string
	detailStatus int
	detailBody   string
	detailHits   int32
}

func (f *fakeBGG) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/search":
		if f.searchStatus != 0 {
			w.WriteHeader(f.searchStatus)
		}
		w.Write([]byte(f.searchBody))
	case strings.HasPrefix(r.URL.Path, "/boardgame/"):
		atomic.AddInt32(&f.detailHits, 1)
		if f.detailStatus != 0 {
			w.WriteHeader(f.detailStatus)
		}
		w.Write([]byte(f.detailBody))
	default:
		http.NotFound(w, r)
	}
}

func runProbe(t *testing.T, fake *fakeBGG) (string, error) {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	probe := NewProbe(bgg.Config{BaseURL: srv.URL}, &out)
	err := probe.Run(context.Background(), "Brass")
	return out.String(), err
}

const brassSearch = `<?xml version="1.0" encoding="utf-8"?>
<items total="2"><item id="1"><name>Brass</name></item><item id="2"><name>Brass: Birmingham</name></item></items>`

func assertContains(t *testing.T, out string, lines ...string) {
	t.Helper()
	for _, l := range lines {
		if !strings.Contains(out, l+"\n") {
			t.Errorf("Expected output to contain line %q, got:\n%s", l, out)
		}
	}
}

func assertNotContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if strings.Contains(out, f) {
			t.Errorf("Expected output not to contain %q, got:\n%s", f, out)
		}
	}
}

func TestProbeFullRun(t *testing.T) {
	fake := &fakeBGG{
		searchBody: brassSearch,
		detailBody: `<boardgames><boardgame objectid="1">
			<name primary="true">Brass</name>
			<yearpublished>1901</yearpublished>
			<minplayers>3</minplayers>
			<maxplayers>4</maxplayers>
			<playingtime>120</playingtime>
			<statistics><ratings>
				<bayesaverage>7.5</bayesaverage>
				<average>7.9</average>
				<averageweight>3.9</averageweight>
			</ratings></statistics>
			<polls><poll name="suggested_numplayers">
				<results numplayers="3">
					<result value="Best" numvotes="40"/>
					<result value="Recommended" numvotes="12"/>
					<result value="Not Recommended" numvotes="1"/>
				</results>
			</poll></polls>
		</boardgame></boardgames>`,
	}

	out, err := runProbe(t, fake)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	assertContains(t, out,
		"Status: 200",
		"First game: ID=1, Name=Brass",
		"=== GAME DETAILS ===",
		"Name: Brass",
		"Year: 1901",
		"Players: 3-4",
		"Playing time: 120 min",
		"BGG Rating: 7.5",
		"Average rating: 7.9",
		"Complexity: 3.9",
		"=== PLAYER COUNT POLL ===",
		"Player count: 3",
		"  Best: 40 votes",
		"  Recommended: 12 votes",
		"  Not Recommended: 1 votes",
	)
	if n := strings.Count(out, "Players: "); n != 1 {
		t.Errorf("Expected exactly one players line, got %d", n)
	}
	if atomic.LoadInt32(&fake.detailHits) != 1 {
		t.Errorf("Expected one detail request, got %d", fake.detailHits)
	}
}

func TestProbeNoGames(t *testing.T) {
	fake := &fakeBGG{searchBody: `<items total="0"/>`}

	out, err := runProbe(t, fake)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	assertContains(t, out, "No games found")
	if atomic.LoadInt32(&fake.detailHits) != 0 {
		t.Errorf("Expected no detail request, got %d", fake.detailHits)
	}
}

func TestProbeMissingName(t *testing.T) {
	fake := &fakeBGG{searchBody: `<items><item id="5"/></items>`}

	out, err := runProbe(t, fake)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	assertContains(t, out, "Game name not found")
	if atomic.LoadInt32(&fake.detailHits) != 0 {
		t.Errorf("Expected no detail request, got %d", fake.detailHits)
	}
}

func TestProbeSearchStatusFailure(t *testing.T) {
	fake := &fakeBGG{searchStatus: http.StatusServiceUnavailable, searchBody: "down"}

	out, err := runProbe(t, fake)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	assertContains(t, out, "Status: 503", "Content length: 4", "Search failed: status 503")
	if atomic.LoadInt32(&fake.detailHits) != 0 {
		t.Errorf("Expected no detail request, got %d", fake.detailHits)
	}
}

func TestProbeDetailStatusFailure(t *testing.T) {
	fake := &fakeBGG{searchBody: brassSearch, detailStatus: http.StatusTooManyRequests}

	out, err := runProbe(t, fake)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	assertContains(t, out, "Detail fetch failed: status 429")
	assertNotContains(t, out, "=== GAME DETAILS ===")
}

func TestProbeMissingAverageWeight(t *testing.T) {
	fake := &fakeBGG{
		searchBody: brassSearch,
		detailBody: `<boardgames><boardgame><statistics><ratings>
			<bayesaverage>7.5</bayesaverage><average>7.9</average>
		</ratings></statistics></boardgame></boardgames>`,
	}

	out, err := runProbe(t, fake)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	assertContains(t, out, "BGG Rating: 7.5", "Average rating: 7.9")
	assertNotContains(t, out, "Complexity")
}

func TestProbePollEntries(t *testing.T) {
	fake := &fakeBGG{
		searchBody: brassSearch,
		detailBody: `<boardgames><boardgame><polls><poll name="suggested_numplayers">
			<results numplayers="2">
				<result value="Recommended" numvotes="8"/>
				<result value="Not Recommended"/>
			</results>
			<results>
				<result value="Best" numvotes="77"/>
			</results>
		</poll></polls></boardgame></boardgames>`,
	}

	out, err := runProbe(t, fake)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	assertContains(t, out, "Player count: 2", "  Recommended: 8 votes", "  Not Recommended: 0 votes")
	assertNotContains(t, out, "Best:")
	if n := strings.Count(out, "Player count:"); n != 1 {
		t.Errorf("Expected one poll entry, got %d", n)
	}
}

func TestProbeNoBoardgameIsSilent(t *testing.T) {
	fake := &fakeBGG{searchBody: brassSearch, detailBody: `<boardgames/>`}

	out, err := runProbe(t, fake)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	assertNotContains(t, out, "=== GAME DETAILS ===", "not found")
}

func TestProbeMalformedXML(t *testing.T) {
	t.Run("search", func(t *testing.T) {
		out, err := runProbe(t, &fakeBGG{searchBody: `<items><item id="1"><na`})
		if err == nil {
			t.Fatal("Expected error from malformed search body")
		}
		assertNotContains(t, out, "First game:", "No games found")
	})

	t.Run("detail", func(t *testing.T) {
		out, err := runProbe(t, &fakeBGG{
			searchBody: brassSearch,
			detailBody: `<boardgames><boardgame><yearpublished>1901</yearpublished><minplay`,
		})
		if err == nil {
			t.Fatal("Expected error from malformed detail body")
		}
		assertNotContains(t, out, "=== GAME DETAILS ===", "Year:")
	})
}
