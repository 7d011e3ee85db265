package domain

// CollectionMatches is the storage collection holding match records.
const CollectionMatches = "matches"

// Match is a fixture between two teams, with their crests.
type Match struct {
	ID        string `json:"id,omitempty"`
	Team1     string `json:"team1"`
	Team1Logo string `json:"team1Logo"`
	Team2     string `json:"team2"`
	Team2Logo string `json:"team2Logo"`
}

func (m Match) Kind() string     { return CollectionMatches }
func (m Match) Identity() string { return m.ID }

func (m Match) WithIdentity(id string) Match {
	m.ID = id
	return m
}

// Validate requires both team names.
func (m Match) Validate() error {
	return RequireFields(CollectionMatches,
		Field{"team1", m.Team1},
		Field{"team2", m.Team2},
	)
}
