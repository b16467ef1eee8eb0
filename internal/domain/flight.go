package domain

// FlightInfo is the normalized view of one scheduled flight as reported by
// the upstream flight data provider.
type FlightInfo struct {
	Carrier          string `json:"carrier"`
	FlightNumber     string `json:"flightNumber"`
	DepartureAirport string `json:"departureAirport"`
	ArrivalAirport   string `json:"arrivalAirport"`
	DepartureTime    string `json:"departureTime"`
	ArrivalTime      string `json:"arrivalTime"`
	Status           string `json:"status"`
}
