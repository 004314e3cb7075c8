package bgg

import "bgg-probe/xmltree"

var (
	firstItemPath       = xmltree.MustCompile(".//item")
	itemNamePath        = xmltree.MustCompile("name")
	boardgamePath       = xmltree.MustCompile(".//boardgame")
	playerCountPollPath = xmltree.MustCompile(`polls/poll[@name="suggested_numplayers"]`)
	pollResultsPath     = xmltree.MustCompile("results")
)

// detailField maps a path below the boardgame element to a GameDetail field.
type detailField struct {
	path  xmltree.Path
	field func(*GameDetail) *Optional
}

var detailFields = []detailField{
	{xmltree.MustCompile(`name[@primary="true"]`), func(d *GameDetail) *Optional { return &d.PrimaryName }},
	{xmltree.MustCompile("yearpublished"), func(d *GameDetail) *Optional { return &d.YearPublished }},
	{xmltree.MustCompile("minplayers"), func(d *GameDetail) *Optional { return &d.MinPlayers }},
	{xmltree.MustCompile("maxplayers"), func(d *GameDetail) *Optional { return &d.MaxPlayers }},
	{xmltree.MustCompile("playingtime"), func(d *GameDetail) *Optional { return &d.PlayingTime }},
	{xmltree.MustCompile("statistics/ratings/bayesaverage"), func(d *GameDetail) *Optional { return &d.BayesAverage }},
	{xmltree.MustCompile("statistics/ratings/average"), func(d *GameDetail) *Optional { return &d.Average }},
	{xmltree.MustCompile("statistics/ratings/averageweight"), func(d *GameDetail) *Optional { return &d.AverageWeight }},
}

// voteField maps a result element, selected by its value attribute, to a tally.
type voteField struct {
	path  xmltree.Path
	field func(*PlayerCountVotes) *Optional
}

var voteFields = []voteField{
	{xmltree.MustCompile(`result[@value="Best"]`), func(v *PlayerCountVotes) *Optional { return &v.Best }},
	{xmltree.MustCompile(`result[@value="Recommended"]`), func(v *PlayerCountVotes) *Optional { return &v.Recommended }},
	{xmltree.MustCompile(`result[@value="Not Recommended"]`), func(v *PlayerCountVotes) *Optional { return &v.NotRecommended }},
}

// parseSearch picks the first item in document order.
func parseSearch(root *xmltree.Element) (*SearchResult, error) {
	item := firstItemPath.Find(root)
	if item == nil {
		return nil, ErrNoGames
	}

	id, _ := item.Attr("id")
	result := &SearchResult{ID: id}

	name := itemNamePath.Find(item)
	if name == nil {
		return result, ErrNoName
	}
	result.Name = Some(name.Text())
	return result, nil
}

func parseDetail(root *xmltree.Element) (*GameDetail, error) {
	game := boardgamePath.Find(root)
	if game == nil {
		return nil, ErrNoBoardgame
	}

	detail := &GameDetail{}
	for _, f := range detailFields {
		if el := f.path.Find(game); el != nil {
			*f.field(detail) = Some(el.Text())
		}
	}
	detail.PlayerCountPoll = parsePlayerCountPoll(game)
	return detail, nil
}

func parsePlayerCountPoll(game *xmltree.Element) *PlayerCountPoll {
	poll := playerCountPollPath.Find(game)
	if poll == nil {
		return nil
	}

	out := &PlayerCountPoll{}
	for _, results := range pollResultsPath.FindAll(poll) {
		numPlayers, ok := results.Attr("numplayers")
		if !ok || numPlayers == "" {
			continue
		}

		votes := PlayerCountVotes{NumPlayers: numPlayers}
		for _, f := range voteFields {
			if el := f.path.Find(results); el != nil {
				*f.field(&votes) = Some(el.AttrOr("numvotes", "0"))
			}
		}
		out.Results = append(out.Results, votes)
	}
	return out
}
