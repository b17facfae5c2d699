package filters

// Body of the aggregation request.
// Groups map a caller chosen name to a list of player names.
// BossNames restricts the totals to the named fights when present.
type AggregateRequest struct {
	Groups    map[string][]string `json:"groups" binding:"required"`
	BossNames []string            `json:"boss_names"`
}

// PlayerNames returns every distinct player name across the groups.
func (r *AggregateRequest) PlayerNames() []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)

	for _, group := range r.Groups {
		for _, name := range group {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	return names
}
