package application

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"vtc-portal/internal/document"
	"vtc-portal/internal/validator"
)

const defaultStaffImageID = "testimonial-avatar"

var submitMessages = validator.Messages{
	"username":    "Username is required",
	"email":       "Invalid email address",
	"truckersmp":  "Invalid TruckersMP profile URL.",
	"truckershub": "Invalid TruckersHub profile URL.",
	"password":    "Password must be at least 8 characters long",
	"terms":       "You must accept the terms and conditions",
}

type ApplicationUsecase struct {
	store    document.Store
	notifier Notifier
	log      zerolog.Logger

	staffAvatarURL string
	now            func() time.Time
	newID          func() string
	newStaffID     func() string
}

type Option func(*ApplicationUsecase)

// WithStaffAvatar sets the image URL given to newly promoted staff members.
func WithStaffAvatar(url string) Option {
	return func(uc *ApplicationUsecase) {
		uc.staffAvatarURL = url
	}
}

func NewApplicationUsecase(
	store document.Store,
	notifier Notifier,
	logger zerolog.Logger,
	opts ...Option,
) *ApplicationUsecase {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	uc := &ApplicationUsecase{
		store:      store,
		notifier:   notifier,
		log:        logger.With().Str("component", "application").Logger(),
		now:        time.Now,
		newID:      generateApplicationID,
		newStaffID: generateStaffID,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// generateApplicationID draws TP-1000..TP-9999. Collisions with stored ids are not checked.
func generateApplicationID() string {
	return fmt.Sprintf("TP-%d", rand.Intn(9000)+1000)
}

func generateStaffID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("staff-%d", time.Now().UnixMilli())
	}
	return "staff-" + id.String()
}

func (uc *ApplicationUsecase) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	if fieldErrors := validator.Validate(ctx, input, submitMessages); fieldErrors != nil {
		return &SubmitResult{
			Success: false,
			Message: "Invalid form data.",
			Errors:  fieldErrors,
		}, nil
	}

	app := Application{
		ID:             uc.newID(),
		Name:           input.Username,
		DiscordTag:     "",
		Email:          input.Email,
		SteamURL:       "",
		TruckersMPURL:  input.TruckersMP,
		TruckersHubURL: input.TruckersHub,
		Experience:     "fresher",
		HowYouFound:    "others",
		Status:         StatusPending,
		SubmittedAt:    uc.now().UTC(),
	}

	doc := emptyApplications()
	if err := document.Load(ctx, uc.store, document.CollectionApplications, doc); err != nil {
		return nil, err
	}
	doc.Applications = slices.Insert(doc.Applications, 0, app)
	if err := document.Save(ctx, uc.store, document.CollectionApplications, doc); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("application_id", app.ID).
		Str("name", app.Name).
		Msg("application submitted")

	uc.notifier.ApplicationSubmitted(ctx, &app)

	return &SubmitResult{
		Success:       true,
		Message:       "Application submitted successfully!",
		ApplicationID: app.ID,
	}, nil
}

// GetStatus never fails: malformed ids and storage faults both read as Not Found.
func (uc *ApplicationUsecase) GetStatus(ctx context.Context, id string) StatusResult {
	notFound := StatusResult{ApplicationID: id, Status: StatusNotFound}
	if !ValidID(id) {
		return notFound
	}

	doc := emptyApplications()
	if err := document.Load(ctx, uc.store, document.CollectionApplications, doc); err != nil {
		uc.log.Error().Err(err).Str("application_id", id).Msg("failed to read application status")
		return notFound
	}

	app := doc.find(id)
	if app == nil {
		return notFound
	}
	return StatusResult{ApplicationID: id, Status: app.Status}
}

// ListAll returns every application, newest submission first.
func (uc *ApplicationUsecase) ListAll(ctx context.Context) ([]Application, error) {
	doc := emptyApplications()
	if err := document.Load(ctx, uc.store, document.CollectionApplications, doc); err != nil {
		return nil, err
	}

	apps := doc.Applications
	slices.SortStableFunc(apps, func(a, b Application) int {
		return b.SubmittedAt.Compare(a.SubmittedAt)
	})
	return apps, nil
}

// UpdateStatus sets any status on the application, unguarded and repeatable.
// Accepting also promotes the applicant into the staff roster once per name.
// The applications document is written before the staff document.
func (uc *ApplicationUsecase) UpdateStatus(ctx context.Context, id string, newStatus Status, role string) (*Result, error) {
	if role == "" {
		role = DefaultRole
	}

	apps := emptyApplications()
	if err := document.Load(ctx, uc.store, document.CollectionApplications, apps); err != nil {
		return nil, err
	}
	staff := emptyStaff()
	if err := document.Load(ctx, uc.store, document.CollectionStaff, staff); err != nil {
		return nil, err
	}

	app := apps.find(id)
	if app == nil {
		return &Result{
			Success:  false,
			Message:  fmt.Sprintf("Application with ID %s not found.", id),
			NotFound: true,
		}, nil
	}

	previous := app.Status
	app.Status = newStatus
	if err := document.Save(ctx, uc.store, document.CollectionApplications, apps); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("application_id", id).
		Str("from", string(previous)).
		Str("to", string(newStatus)).
		Msg("application status updated")

	if newStatus == StatusAccepted && !staff.hasMember(app.Name) {
		member := StaffMember{
			ID:            uc.newStaffID(),
			Name:          app.Name,
			Role:          role,
			ImageID:       defaultStaffImageID,
			ImageURL:      uc.staffAvatarURL,
			SteamURL:      app.SteamURL,
			TruckersMPURL: app.TruckersMPURL,
		}
		staff.StaffMembers = append(staff.StaffMembers, member)
		if err := document.Save(ctx, uc.store, document.CollectionStaff, staff); err != nil {
			return nil, err
		}

		uc.log.Info().
			Str("application_id", id).
			Str("staff_id", member.ID).
			Str("role", role).
			Msg("applicant promoted to staff")
	}

	switch newStatus {
	case StatusAccepted, StatusRejected:
		uc.notifier.ApplicationStatusChanged(ctx, app)
	}

	return &Result{
		Success: true,
		Message: "Application status updated successfully.",
	}, nil
}
