package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const systemPrompt = `You are a helpful assistant designed to output JSON.`

const userPromptTemplate = `I would like 3 restaurant recommendations, 3 sports events recommendations, 3 musical events recommendations based on my location: %s, present date and time: %s.
I want the name, dates, time, address, exact latitude and longitude of the address. I also want all hours of operation for restaurants. I will give you the naming conventions for the output. Use those naming conventions to give the response.
Naming Conventions:
currentLocation, currentDateAndTime, restaurants, musicalEvents, sportsEvents
for restaurants: name, address, latitude, longitude, hoursOfOperation{}
for musicalEvents: name, address, latitude, longitude, date, time
for sportsEvents: name, address, latitude, longitude, date, time`

// Recommender produces location-based suggestions via the Chat Completions
// API.
type Recommender struct {
	client   openai.Client
	stubMode bool
}

// NewRecommender builds a recommender. An empty apiKey enables stub mode.
func NewRecommender(apiKey string) *Recommender {
	return &Recommender{
		client:   openai.NewClient(option.WithAPIKey(apiKey)),
		stubMode: apiKey == "",
	}
}

// Recommend returns restaurant and event suggestions for the given address
// and moment.
func (r *Recommender) Recommend(ctx context.Context, address string, now time.Time) (*Recommendations, error) {
	if r.stubMode {
		return stubRecommendations(address, now), nil
	}

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModelGPT4oMini,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(fmt.Sprintf(userPromptTemplate, address, now.Format(time.RFC1123))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion choices are missing")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("chat completion choice message content is missing")
	}

	var recs Recommendations
	if err := json.Unmarshal([]byte(content), &recs); err != nil {
		return nil, fmt.Errorf("failed to parse recommendations: %w", err)
	}

	return &recs, nil
}

func stubRecommendations(address string, now time.Time) *Recommendations {
	return &Recommendations{
		CurrentLocation:    address,
		CurrentDateAndTime: now.Format(time.RFC1123),
		Restaurants: []Restaurant{
			{
				Name:      "The Corner Bistro",
				Address:   "12 Main St",
				Latitude:  42.373,
				Longitude: -72.519,
				HoursOfOperation: map[string]string{
					"Monday-Friday":   "11:00-22:00",
					"Saturday-Sunday": "10:00-23:00",
				},
			},
		},
		MusicalEvents: []Event{
			{Name: "Open Mic Night", Address: "5 College Ave", Latitude: 42.375, Longitude: -72.52, Date: now.Format("2006-01-02"), Time: "19:00"},
		},
		SportsEvents: []Event{
			{Name: "Campus 5K", Address: "Athletic Fields", Latitude: 42.377, Longitude: -72.523, Date: now.Format("2006-01-02"), Time: "09:00"},
		},
	}
}
