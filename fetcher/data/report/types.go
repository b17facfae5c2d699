package reportfetcher

// Return type of the report metadata query.
type ReportData struct {
	Code       string     `json:"code"`
	Title      string     `json:"title"`
	Owner      Owner      `json:"owner"`
	StartTime  int64      `json:"startTime"`
	EndTime    int64      `json:"endTime"`
	Zone       Zone       `json:"zone"`
	Fights     []RawFight `json:"fights"`
	MasterData MasterData `json:"masterData"`
}

// Owner of the uploaded report.
type Owner struct {
	Name string `json:"name"`
}

// Zone where the report took place.
type Zone struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// One fight entry as returned by the API.
// The id can be missing on inconsistent data, so it stays a pointer.
type RawFight struct {
	ID               *int     `json:"id"`
	StartTime        int64    `json:"startTime"`
	EndTime          int64    `json:"endTime"`
	Name             string   `json:"name"`
	EncounterID      int      `json:"encounterID"`
	Kill             *bool    `json:"kill"`
	Difficulty       *int     `json:"difficulty"`
	BossPercentage   *float64 `json:"bossPercentage"`
	AverageItemLevel *float64 `json:"averageItemLevel"`
}

// The actor roster of the report.
type MasterData struct {
	Actors []RawActor `json:"actors"`
}

// One actor entry as returned by the API.
type RawActor struct {
	ID      *int    `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	SubType string  `json:"subType"`
	Server  *string `json:"server"`
}

// One page of the events query.
type EventsPage struct {
	Data              []RawEvent `json:"data"`
	NextPageTimestamp *int64     `json:"nextPageTimestamp"`
}

// One raw combat event. Every field besides the type tag can be absent,
// the normalizer decides what is required per kind.
type RawEvent struct {
	Type          string `json:"type"`
	Timestamp     *int64 `json:"timestamp"`
	Fight         *int   `json:"fight"`
	AbilityGameID *int   `json:"abilityGameID"`

	SourceID    *int `json:"sourceID"`
	TargetID    *int `json:"targetID"`
	TargetNPCID *int `json:"targetNPCID"`

	Stack            *int   `json:"stack"`
	HitType          *int   `json:"hitType"`
	Amount           *int64 `json:"amount"`
	Mitigated        *int64 `json:"mitigated"`
	Absorbed         *int64 `json:"absorbed"`
	Overkill         *int64 `json:"overkill"`
	Overheal         *int64 `json:"overheal"`
	KillingBlowActor *int   `json:"killingBlowActor"`
}
