package truckershub

import "encoding/json"

// envelope wraps every TruckersHub answer.
type envelope[T any] struct {
	Status   bool `json:"status"`
	Response T    `json:"response"`
}

type VTCStats struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Logo          string  `json:"logo"`
	LiveDrivers   int     `json:"live_drivers"`
	TotalDrivers  int     `json:"total_drivers"`
	TotalDistance float64 `json:"total_distance"`
	TotalJobs     int     `json:"total_jobs"`
	TotalFuel     float64 `json:"total_fuel"`
}

type LeaderboardUser struct {
	Username string  `json:"username"`
	Value    float64 `json:"value"`
}

type JobDriver struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type Job struct {
	ID                 int       `json:"id"`
	Driver             JobDriver `json:"driver"`
	StartCity          string    `json:"start_city"`
	StartCompany       string    `json:"start_company"`
	DestinationCity    string    `json:"destination_city"`
	DestinationCompany string    `json:"destination_company"`
	Cargo              string    `json:"cargo"`
	CargoMass          float64   `json:"cargo_mass"`
	Distance           float64   `json:"distance"`
	FuelUsed           float64   `json:"fuel_used"`
	MoneyMade          float64   `json:"money_made"`
	Status             string    `json:"status"`
	XP                 int       `json:"xp"`
	MaxSpeed           float64   `json:"max_speed"`
	AverageSpeed       float64   `json:"average_speed"`
	Damage             float64   `json:"damage"`
}

type DriverRole struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Driver struct {
	ID        int        `json:"id"`
	Username  string     `json:"username"`
	Role      DriverRole `json:"role"`
	Avatar    string     `json:"avatar"`
	TotalKM   float64    `json:"total_km"`
	TotalJobs int        `json:"total_jobs"`
}

type Skill struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MaxLevel    int    `json:"max_level,omitempty"`
}

type DriverSkill struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Level int    `json:"level"`
}

type User struct {
	Username string `json:"username"`
}

// Dashboard is the driver hub landing data. Any part that failed to load is nil.
type Dashboard struct {
	Stats   *VTCStats         `json:"stats"`
	AllTime []LeaderboardUser `json:"allTime"`
	Monthly []LeaderboardUser `json:"monthly"`
	Jobs    []Job             `json:"jobs"`
	User    *User             `json:"user"`
}

// RelayResponse is an upstream answer passed through untouched.
type RelayResponse struct {
	StatusCode int
	Body       json.RawMessage
}
