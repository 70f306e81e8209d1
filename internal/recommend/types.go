package recommend

// Weather is the subset of the OpenWeatherMap current-weather response the
// dashboard renders.
type Weather struct {
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
}

// Restaurant is one recommended restaurant. Field names follow the response
// contract the dashboard map widget expects.
type Restaurant struct {
	Name             string            `json:"name"`
	Address          string            `json:"address"`
	Latitude         float64           `json:"latitude"`
	Longitude        float64           `json:"longitude"`
	HoursOfOperation map[string]string `json:"hoursOfOperation"`
}

// Event is one recommended musical or sports event.
type Event struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
}

// Recommendations is the chat-completion output: nearby restaurants and
// events for the user's location and local time.
type Recommendations struct {
	CurrentLocation    string       `json:"currentLocation"`
	CurrentDateAndTime string       `json:"currentDateAndTime"`
	Restaurants        []Restaurant `json:"restaurants"`
	MusicalEvents      []Event      `json:"musicalEvents"`
	SportsEvents       []Event      `json:"sportsEvents"`
}

// Response is the full payload served by the recommendations endpoint.
type Response struct {
	Location        string          `json:"location"`
	Weather         Weather         `json:"weather"`
	Recommendations Recommendations `json:"recommendations"`
}
