package bgg

import "encoding/json"

// Optional is a string value the remote schema may omit.
type Optional struct {
	Value string
	OK    bool
}

// Some wraps a present value.
func Some(v string) Optional {
	return Optional{Value: v, OK: true}
}

// MarshalJSON encodes absent values as null.
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.OK {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// SearchResult is the first item of a search response
type SearchResult struct {
	ID   string   `json:"id"`
	Name Optional `json:"name"`
}

// PlayerCountVotes holds the suggested_numplayers tallies for one player count.
// A tally is absent when the matching result element is missing.
type PlayerCountVotes struct {
	NumPlayers     string   `json:"num_players"`
	Best           Optional `json:"best"`
	Recommended    Optional `json:"recommended"`
	NotRecommended Optional `json:"not_recommended"`
}

// PlayerCountPoll is the suggested_numplayers poll, one entry per results
// element in source order.
type PlayerCountPoll struct {
	Results []PlayerCountVotes `json:"results"`
}

// GameDetail is the subset of a boardgame record the probe reports.
type GameDetail struct {
	PrimaryName   Optional `json:"name"`
	YearPublished Optional `json:"year_published"`
	MinPlayers    Optional `json:"min_players"`
	MaxPlayers    Optional `json:"max_players"`
	PlayingTime   Optional `json:"playing_time"`
	BayesAverage  Optional `json:"bayes_average"`
	Average       Optional `json:"average"`
	AverageWeight Optional `json:"average_weight"`

	PlayerCountPoll *PlayerCountPoll `json:"player_count_poll,omitempty"`
}
