package search

// DefaultResultCount is used when a call does not ask for a count.
const (
	DefaultResultCount = 10
	MinResultCount     = 1
	MaxResultCount     = 10
)

// Safe search levels accepted by the provider.
const (
	SafeSearchOff    = "off"
	SafeSearchMedium = "medium"
	SafeSearchHigh   = "high"
)

// Request is a validated search call. Empty optional fields are omitted from
// the outbound query.
type Request struct {
	Query        string
	ResultCount  int
	DateRestrict string
	Language     string
	Country      string
	SafeSearch   string
}

type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// ResultSet keeps items in provider order. An empty set means "no results",
// which is not an error.
type ResultSet struct {
	Items []Result `json:"items"`
}

func (rs *ResultSet) Empty() bool {
	return rs == nil || len(rs.Items) == 0
}
