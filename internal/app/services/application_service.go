package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/pkg/apperrors"
	"github.com/internhub/internhub/internal/pkg/auth"
	"github.com/internhub/internhub/internal/pkg/email"
	"github.com/internhub/internhub/internal/pkg/filestorage"
)

type applicationStore interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	EmailHasActiveApplication(ctx context.Context, email string) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, interviewDate *time.Time, interviewLink *string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *dto.ApplicationListFilter, page, pageSize int) ([]*models.Application, int64, error)
}

type applicationTokenStore interface {
	Create(ctx context.Context, token *models.ApplicationToken) error
	GetByToken(ctx context.Context, token string) (*models.ApplicationToken, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context) ([]*models.ApplicationToken, error)
}

type interviewStore interface {
	Create(ctx context.Context, interview *models.Interview) error
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.Interview, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, notes string) error
}

type internCreator interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	EnrollmentExists(ctx context.Context, enrollmentNumber string) (bool, error)
	Create(ctx context.Context, intern *models.Intern) error
}

type loginCreator interface {
	Create(ctx context.Context, login *models.Login) error
}

// generatedPasswordLength is the length of the temporary password mailed
// to a hired candidate.
const generatedPasswordLength = 12

// defaultTokenLifetime applies when an invite omits expiresIn.
const defaultTokenLifetime = 72 * time.Hour

// ApplicationService implements application intake and the hiring workflow.
type ApplicationService struct {
	applications applicationStore
	tokens       applicationTokenStore
	interviews   interviewStore
	interns      internCreator
	logins       loginCreator
	storage      filestorage.FileStorage
	emails       email.Sender
	logger       zerolog.Logger
	baseURL      string
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(
	applications applicationStore,
	tokens applicationTokenStore,
	interviews interviewStore,
	interns internCreator,
	logins loginCreator,
	storage filestorage.FileStorage,
	emails email.Sender,
	logger zerolog.Logger,
	baseURL string,
) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		tokens:       tokens,
		interviews:   interviews,
		interns:      interns,
		logins:       logins,
		storage:      storage,
		emails:       emails,
		logger:       logger,
		baseURL:      baseURL,
	}
}

// Submit records a new candidacy. When the request carries an invite token
// the token must be valid, unexpired, match the email and gets consumed.
// Uploaded resume and profile picture are stored before the row is written.
func (s *ApplicationService) Submit(ctx context.Context, req *dto.SubmitApplicationRequest, resume, profileImage *multipart.FileHeader) (*models.Application, error) {
	if req.Token != "" {
		token, err := s.tokens.GetByToken(ctx, req.Token)
		if err != nil {
			return nil, apperrors.ErrTokenInvalid
		}
		if token.Used {
			return nil, apperrors.ErrApplicationTokenUsed
		}
		if token.ExpiresAt.Before(time.Now()) {
			return nil, apperrors.ErrTokenExpired
		}
		if !strings.EqualFold(token.Email, req.Email) {
			return nil, apperrors.ErrTokenInvalid
		}
		if err := s.tokens.MarkUsed(ctx, token.ID); err != nil {
			return nil, err
		}
	}

	exists, err := s.applications.EmailHasActiveApplication(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("an application with this email is already in progress")
	}
	hired, err := s.interns.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if hired {
		return nil, apperrors.ErrAlreadyHired
	}

	app := &models.Application{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		EnrollmentNumber: req.EnrollmentNumber,
		University:       req.University,
		Degree:           req.Degree,
		Department:       req.Department,
		Skills:           splitCommaList(req.Skills),
		CoverLetter:      req.CoverLetter,
		Status:           models.ApplicationSubmitted,
	}

	if resume != nil {
		saved, err := s.storage.SaveFileWithPath(resume, "resumes")
		if err != nil {
			return nil, fmt.Errorf("failed to store resume: %w", err)
		}
		app.ResumeURL = &saved.URL
	}
	if profileImage != nil {
		saved, err := s.storage.SaveFileWithPath(profileImage, "profile_images")
		if err != nil {
			return nil, fmt.Errorf("failed to store profile image: %w", err)
		}
		app.ProfileImageURL = &saved.URL
	}

	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// GetByID returns one application.
func (s *ApplicationService) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	return s.applications.GetByID(ctx, id)
}

// List returns applications matching the filter.
func (s *ApplicationService) List(ctx context.Context, filter *dto.ApplicationListFilter, page, pageSize int) ([]*models.Application, int64, error) {
	return s.applications.List(ctx, filter, page, pageSize)
}

// Delete removes an application.
func (s *ApplicationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.applications.Delete(ctx, id)
}

// UpdateStatus moves an application through the workflow. HIRED creates the
// intern and a login with a generated password, emailed to the candidate.
// REJECTED and INTERVIEW send their own notifications. Email failures are
// logged, not surfaced; the status change has already been committed.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	status := models.ApplicationStatus(req.Status)
	if !models.ValidApplicationStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}

	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch status {
	case models.ApplicationHired:
		if err := s.hire(ctx, app); err != nil {
			return nil, err
		}
	case models.ApplicationInterview:
		// The invite only goes out when both the date and the meeting
		// link are known.
		if req.InterviewDate != nil && req.InterviewLink != nil {
			if err := s.emails.SendInterviewInviteEmail(app.Email, app.FirstName, *req.InterviewDate, *req.InterviewLink); err != nil {
				s.logger.Error().Err(err).Str("email", app.Email).Msg("Failed to send interview invite")
			}
		}
	case models.ApplicationRejected:
		if err := s.emails.SendRejectionEmail(app.Email, app.FirstName); err != nil {
			s.logger.Error().Err(err).Str("email", app.Email).Msg("Failed to send rejection email")
		}
	}

	if err := s.applications.UpdateStatus(ctx, id, status, req.InterviewDate, req.InterviewLink); err != nil {
		return nil, err
	}
	return s.applications.GetByID(ctx, id)
}

// hire converts an accepted application into an intern plus a login. Both
// rows store the same password hash and the generated plaintext is emailed
// to the candidate once.
func (s *ApplicationService) hire(ctx context.Context, app *models.Application) error {
	exists, err := s.interns.EmailExists(ctx, app.Email)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrAlreadyHired
	}
	if app.EnrollmentNumber != "" {
		taken, err := s.interns.EnrollmentExists(ctx, app.EnrollmentNumber)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.ErrEnrollmentExists
		}
	}

	password, err := auth.GenerateRandomPassword(generatedPasswordLength)
	if err != nil {
		return fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	intern := &models.Intern{
		FirstName:        app.FirstName,
		LastName:         app.LastName,
		Email:            app.Email,
		Password:         hash,
		Phone:            app.Phone,
		University:       app.University,
		Degree:           app.Degree,
		Department:       app.Department,
		EnrollmentNumber: app.EnrollmentNumber,
		Skills:           app.Skills,
		Status:           models.InternshipActive,
		StartDate:        &now,
		ProfileImageURL:  app.ProfileImageURL,
		ResumeURL:        app.ResumeURL,
	}
	if err := s.interns.Create(ctx, intern); err != nil {
		return err
	}

	login := &models.Login{
		Email:    app.Email,
		Password: hash,
		Role:     models.RoleIntern,
		UserID:   intern.ID,
	}
	if err := s.logins.Create(ctx, login); err != nil {
		return err
	}

	if err := s.emails.SendCredentialsEmail(app.Email, app.FirstName, password); err != nil {
		s.logger.Error().Err(err).Str("email", app.Email).Msg("Failed to send credentials email")
	}
	return nil
}

// CreateToken mints an invite token and emails the application link.
func (s *ApplicationService) CreateToken(ctx context.Context, req *dto.CreateApplicationTokenRequest) (*models.ApplicationToken, error) {
	lifetime := defaultTokenLifetime
	if req.ExpiresIn != "" {
		parsed, err := time.ParseDuration(req.ExpiresIn)
		if err != nil {
			return nil, apperrors.NewBadRequestError("invalid expiresIn duration")
		}
		lifetime = parsed
	}

	token := &models.ApplicationToken{
		Token:     uuid.NewString(),
		Email:     req.Email,
		ExpiresAt: time.Now().Add(lifetime),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/apply?token=%s", strings.TrimRight(s.baseURL, "/"), token.Token)
	if err := s.emails.SendApplicationLinkEmail(req.Email, link); err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to send application link")
	}
	return token, nil
}

// ListActiveTokens returns unexpired unused invite tokens.
func (s *ApplicationService) ListActiveTokens(ctx context.Context) ([]*models.ApplicationToken, error) {
	return s.tokens.ListActive(ctx)
}

// ScheduleInterview records an interview and flips the application to the
// INTERVIEW stage.
func (s *ApplicationService) ScheduleInterview(ctx context.Context, applicationID uuid.UUID, req *dto.ScheduleInterviewRequest) (*models.Interview, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	interview := &models.Interview{
		ApplicationID: applicationID,
		ScheduledAt:   req.ScheduledAt,
		MeetingLink:   req.MeetingLink,
		Interviewer:   req.Interviewer,
		Notes:         req.Notes,
	}
	if err := s.interviews.Create(ctx, interview); err != nil {
		return nil, err
	}

	if err := s.applications.UpdateStatus(ctx, applicationID, models.ApplicationInterview, &req.ScheduledAt, &req.MeetingLink); err != nil {
		return nil, err
	}

	if err := s.emails.SendInterviewInviteEmail(app.Email, app.FirstName, req.ScheduledAt, req.MeetingLink); err != nil {
		s.logger.Error().Err(err).Str("email", app.Email).Msg("Failed to send interview invite")
	}
	return interview, nil
}

// ListInterviews returns interviews scheduled for an application.
func (s *ApplicationService) ListInterviews(ctx context.Context, applicationID uuid.UUID) ([]*models.Interview, error) {
	return s.interviews.ListByApplication(ctx, applicationID)
}

// CompleteInterview marks an interview done.
func (s *ApplicationService) CompleteInterview(ctx context.Context, interviewID uuid.UUID, notes string) error {
	return s.interviews.MarkCompleted(ctx, interviewID, notes)
}

// splitCommaList turns "go, sql ,docker" into a trimmed list.
func splitCommaList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
