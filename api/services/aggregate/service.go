package aggregate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"

	"raidlog/api/cache"
	"raidlog/api/dto"
	"raidlog/api/filters"
	aggrepo "raidlog/api/repositories/aggregate"
)

// Cache windows. Memory stays short to not serve stale data for too
// long after a reprocess, Redis holds it a bit longer.
const (
	memCacheTTL   = 2 * time.Minute
	redisCacheTTL = 10 * time.Minute
)

// RedisCache is the shared cache contract.
type RedisCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Service for the aggregation endpoint.
type AggregateService struct {
	AggregateRepository aggrepo.AggregateRepository
	memCache            *cache.MemCache[map[string][]dto.PlayerGroupStats]
	redis               RedisCache
}

// Dependencies for the aggregate service.
type AggregateServiceDeps struct {
	Repository aggrepo.AggregateRepository
	MemCache   *cache.MemCache[map[string][]dto.PlayerGroupStats]
	Redis      RedisCache
}

// Create a instance of the aggregate service.
func NewAggregateService(deps *AggregateServiceDeps) *AggregateService {
	return &AggregateService{
		AggregateRepository: deps.Repository,
		memCache:            deps.MemCache,
		redis:               deps.Redis,
	}
}

// Running totals of one player while folding the summary rows.
type playerTotals struct {
	damage  float64
	healing float64
	fights  map[string]struct{}
}

// GetGroupStats returns the per group totals of a report. The flag
// tells if the report exists. Results are cached on memory and Redis,
// keyed by the full request.
func (as *AggregateService) GetGroupStats(ctx context.Context, reportCode string, request *filters.AggregateRequest) (map[string][]dto.PlayerGroupStats, bool, error) {
	exists, err := as.AggregateRepository.ReportExists(reportCode)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, nil
	}

	cacheKey := buildCacheKey(reportCode, request)

	if cached, found := as.memCache.Get(cacheKey); found {
		return cached, true, nil
	}

	if as.redis != nil {
		if raw, err := as.redis.Get(ctx, cacheKey); err == nil {
			var cached map[string][]dto.PlayerGroupStats
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				as.memCache.Set(cacheKey, cached, memCacheTTL)
				return cached, true, nil
			}
		}
	}

	result, err := as.computeGroupStats(reportCode, request)
	if err != nil {
		return nil, true, err
	}

	as.memCache.Set(cacheKey, result, memCacheTTL)
	if as.redis != nil {
		if marshaled, err := json.Marshal(result); err == nil {
			_ = as.redis.Set(ctx, cacheKey, marshaled, redisCacheTTL)
		}
	}

	return result, true, nil
}

// Run the aggregation itself, one summary table query for every player
// named anywhere on the request.
func (as *AggregateService) computeGroupStats(reportCode string, request *filters.AggregateRequest) (map[string][]dto.PlayerGroupStats, error) {
	result := make(map[string][]dto.PlayerGroupStats, len(request.Groups))

	names := request.PlayerNames()
	if len(names) == 0 {
		for groupName := range request.Groups {
			result[groupName] = []dto.PlayerGroupStats{}
		}
		return result, nil
	}

	rows, err := as.AggregateRepository.GetPlayerFightRows(reportCode, names, request.BossNames)
	if err != nil {
		return nil, err
	}

	// Fold the rows into per player totals.
	totals := make(map[string]*playerTotals)
	for _, row := range rows {
		player, ok := totals[row.PlayerName]
		if !ok {
			player = &playerTotals{fights: make(map[string]struct{})}
			totals[row.PlayerName] = player
		}
		player.damage += row.Damage
		player.healing += row.Healing
		player.fights[row.FightName] = struct{}{}
	}

	// Build each group keeping the caller's member list as given, each
	// listed name looked up independently, repeats included. Players with
	// no rows on the report are left out of the result.
	for groupName, members := range request.Groups {
		entries := make([]dto.PlayerGroupStats, 0, len(members))

		for _, name := range members {
			player, ok := totals[name]
			if !ok {
				continue
			}

			fightNames := make([]string, 0, len(player.fights))
			for fightName := range player.fights {
				fightNames = append(fightNames, fightName)
			}
			sort.Strings(fightNames)

			entries = append(entries, dto.PlayerGroupStats{
				PlayerName:   name,
				FightNames:   fightNames,
				TotalDamage:  player.damage,
				TotalHealing: player.healing,
			})
		}

		result[groupName] = entries
	}

	return result, nil
}

// Build a deterministic cache key from the full request body.
// Map keys marshal sorted, so equal requests hash the same.
func buildCacheKey(reportCode string, request *filters.AggregateRequest) string {
	marshaled, err := json.Marshal(request)
	if err != nil {
		return "aggregate:" + reportCode
	}

	digest := sha256.Sum256(marshaled)
	return "aggregate:" + reportCode + ":" + hex.EncodeToString(digest[:])
}
