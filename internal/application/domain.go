package application

import (
	"regexp"
	"time"

	"vtc-portal/internal/document"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusAccepted Status = "Accepted"
	StatusRejected Status = "Rejected"
	// StatusInterview is reserved: lookups may report it but no transition produces it.
	StatusInterview Status = "Interview"
	StatusNotFound  Status = "Not Found"
)

const DefaultRole = "Trainee"

var idPattern = regexp.MustCompile(`^TP-\d{4}$`)

// ValidID reports whether id has the TP-NNNN shape.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

type Application struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	DiscordTag     string    `json:"discordTag,omitempty"`
	Email          string    `json:"email"`
	SteamURL       string    `json:"steamUrl"`
	TruckersMPURL  string    `json:"truckersmpUrl"`
	TruckersHubURL string    `json:"truckershubUrl"`
	Experience     string    `json:"experience,omitempty"`
	HowYouFound    string    `json:"howYouFound,omitempty"`
	FriendsMention string    `json:"friendsMention,omitempty"`
	OthersMention  string    `json:"othersMention,omitempty"`
	Status         Status    `json:"status"`
	SubmittedAt    time.Time `json:"submittedAt"`

	Extra document.Extra `json:"-"`
}

type StaffMember struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	ImageID       string `json:"imageId,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty"`
	SteamURL      string `json:"steamUrl"`
	TruckersMPURL string `json:"truckersmpUrl"`

	Extra document.Extra `json:"-"`
}

// ApplicationsDocument is stored newest first.
type ApplicationsDocument struct {
	Applications []Application `json:"applications"`

	Extra document.Extra `json:"-"`
}

type StaffDocument struct {
	StaffMembers []StaffMember `json:"staffMembers"`

	Extra document.Extra `json:"-"`
}

func emptyApplications() *ApplicationsDocument {
	return &ApplicationsDocument{Applications: []Application{}}
}

func emptyStaff() *StaffDocument {
	return &StaffDocument{StaffMembers: []StaffMember{}}
}

func (d *ApplicationsDocument) find(id string) *Application {
	for i := range d.Applications {
		if d.Applications[i].ID == id {
			return &d.Applications[i]
		}
	}
	return nil
}

func (d *StaffDocument) hasMember(name string) bool {
	for _, m := range d.StaffMembers {
		if m.Name == name {
			return true
		}
	}
	return false
}

// SubmitInput is the public registration form.
type SubmitInput struct {
	Username    string `json:"username" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	TruckersMP  string `json:"truckersmp" validate:"omitempty,url"`
	TruckersHub string `json:"truckershub" validate:"omitempty,url"`
	Password    string `json:"password" validate:"min=8"`
	Terms       bool   `json:"terms" validate:"eq=true"`
}

type SubmitResult struct {
	Success       bool                `json:"success"`
	Message       string              `json:"message"`
	ApplicationID string              `json:"applicationId,omitempty"`
	Errors        map[string][]string `json:"errors,omitempty"`
}

type StatusResult struct {
	ApplicationID string `json:"applicationId"`
	Status        Status `json:"status"`
}

// Result is what admin actions hand back; Message is shown to staff as-is.
type Result struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	NotFound bool   `json:"-"`
}
