package reportfetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"raidlog/fetcher/requests"
	"raidlog/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fake WCL endpoint serving the token and a canned GraphQL response
// per page offset.
func newFakeWclServer(t *testing.T, graphql http.HandlerFunc) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/token":
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "testing-token",
				"expires_in":   3600,
			})
		case "/api/v2/client":
			graphql(w, r)
		default:
			http.NotFound(w, r)
		}
	}))

	config.Wcl.ClientID = "test-client"
	config.Wcl.ClientSecret = "test-secret"
	config.Wcl.OAuthURL = server.URL + "/oauth/token"
	config.Wcl.ApiURL = server.URL + "/api/v2/client"

	t.Cleanup(server.Close)
	return server
}

// Read the startTime variable of a GraphQL request body.
func requestStartTime(t *testing.T, r *http.Request) int64 {
	t.Helper()

	var body struct {
		Variables map[string]any `json:"variables"`
	}
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

	startTime, ok := body.Variables["startTime"].(float64)
	require.True(t, ok, "missing startTime variable")
	return int64(startTime)
}

func writeEventsPage(w http.ResponseWriter, events []map[string]any, next *int64) {
	payload := map[string]any{
		"data": map[string]any{
			"reportData": map[string]any{
				"report": map[string]any{
					"events": map[string]any{
						"data":              events,
						"nextPageTimestamp": next,
					},
				},
			},
		},
	}
	json.NewEncoder(w).Encode(payload)
}

func TestGetAllEventsSinglePage(t *testing.T) {
	calls := 0
	newFakeWclServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeEventsPage(w, []map[string]any{
			{"type": "cast", "timestamp": 100, "fight": 1},
		}, nil)
	})

	fetcher := CreateReportFetcher(requests.NewClient())

	events, err := fetcher.GetAllEvents(context.Background(), "ABC123", []int{1}, 10000)

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	require.Len(t, events, 1)
	assert.Equal(t, "cast", events[0].Type)
}

func TestGetAllEventsPagination(t *testing.T) {
	next := int64(500)
	var offsets []int64

	newFakeWclServer(t, func(w http.ResponseWriter, r *http.Request) {
		offset := requestStartTime(t, r)
		offsets = append(offsets, offset)

		// First page points at the next offset, the second is final.
		if offset == 0 {
			writeEventsPage(w, []map[string]any{
				{"type": "cast", "timestamp": 100, "fight": 1},
				{"type": "damage", "timestamp": 200, "fight": 1},
			}, &next)
			return
		}
		writeEventsPage(w, []map[string]any{
			{"type": "death", "timestamp": 600, "fight": 1},
		}, nil)
	})

	fetcher := CreateReportFetcher(requests.NewClient())

	events, err := fetcher.GetAllEvents(context.Background(), "ABC123", []int{1}, 10000)

	require.NoError(t, err)
	assert.Equal(t, []int64{0, 500}, offsets)

	// Pages concatenated in order.
	require.Len(t, events, 3)
	assert.Equal(t, "cast", events[0].Type)
	assert.Equal(t, "damage", events[1].Type)
	assert.Equal(t, "death", events[2].Type)
}

func TestGetReportMetadata(t *testing.T) {
	newFakeWclServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"data": {
				"reportData": {
					"report": {
						"code": "ABC123",
						"title": "Weekly clear",
						"owner": {"name": "uploader"},
						"startTime": 1000,
						"endTime": 5000,
						"zone": {"id": 35, "name": "Nerub-ar Palace"},
						"fights": [{"id": 1, "startTime": 1100, "endTime": 1900, "name": "Boss1", "encounterID": 2902, "kill": true}],
						"masterData": {"actors": [{"id": 5, "name": "Aya", "type": "Player", "subType": "Mage"}]}
					}
				}
			}
		}`)
	})

	fetcher := CreateReportFetcher(requests.NewClient())

	data, err := fetcher.GetReportMetadata(context.Background(), "ABC123")

	require.NoError(t, err)
	assert.Equal(t, "ABC123", data.Code)
	assert.Equal(t, "uploader", data.Owner.Name)
	assert.Equal(t, "Nerub-ar Palace", data.Zone.Name)
	require.Len(t, data.Fights, 1)
	require.NotNil(t, data.Fights[0].Kill)
	assert.True(t, *data.Fights[0].Kill)
	require.Len(t, data.MasterData.Actors, 1)
	assert.Equal(t, "Mage", data.MasterData.Actors[0].SubType)
}

func TestGetReportMetadataMissingReport(t *testing.T) {
	newFakeWclServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"reportData": {"report": null}}}`)
	})

	fetcher := CreateReportFetcher(requests.NewClient())

	_, err := fetcher.GetReportMetadata(context.Background(), "NOPE")
	assert.ErrorContains(t, err, "no report found")
}
