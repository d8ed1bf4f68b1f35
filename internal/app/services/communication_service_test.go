package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internhub/internhub/internal/app/models"
	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/pkg/apperrors"
)

type fakeMessageStore struct {
	messages  []*models.Message
	templates map[uuid.UUID]*models.MessageTemplate
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{templates: make(map[uuid.UUID]*models.MessageTemplate)}
}

func (f *fakeMessageStore) CreateMessage(ctx context.Context, msg *models.Message) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeMessageStore) ListMessagesByIntern(ctx context.Context, internID uuid.UUID, page, pageSize int) ([]*models.Message, int64, error) {
	var out []*models.Message
	for _, msg := range f.messages {
		if msg.InternID == internID {
			out = append(out, msg)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeMessageStore) CreateTemplate(ctx context.Context, tpl *models.MessageTemplate) error {
	if tpl.ID == uuid.Nil {
		tpl.ID = uuid.New()
	}
	f.templates[tpl.ID] = tpl
	return nil
}

func (f *fakeMessageStore) GetTemplateByID(ctx context.Context, id uuid.UUID) (*models.MessageTemplate, error) {
	tpl, ok := f.templates[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("template not found")
	}
	return tpl, nil
}

func (f *fakeMessageStore) ListTemplates(ctx context.Context) ([]*models.MessageTemplate, error) {
	out := make([]*models.MessageTemplate, 0, len(f.templates))
	for _, tpl := range f.templates {
		out = append(out, tpl)
	}
	return out, nil
}

func (f *fakeMessageStore) UpdateTemplate(ctx context.Context, tpl *models.MessageTemplate) error {
	f.templates[tpl.ID] = tpl
	return nil
}

func (f *fakeMessageStore) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	delete(f.templates, id)
	return nil
}

func newCommunicationFixture() (*CommunicationService, *fakeMessageStore, *fakeInternDirectory, *recordingEmailSender) {
	store := newFakeMessageStore()
	interns := newFakeInternDirectory()
	emails := newRecordingEmailSender()
	svc := NewCommunicationService(store, interns, emails, zerolog.Nop())
	return svc, store, interns, emails
}

func TestSendMessageDeliversEmail(t *testing.T) {
	svc, store, interns, emails := newCommunicationFixture()
	intern := interns.add("ada", "Lovelace")
	sender := uuid.New()

	msg, err := svc.SendMessage(context.Background(), sender, &dto.SendMessageRequest{
		InternID: intern.ID,
		Subject:  "Weekly sync",
		Body:     "See you at 10:00.",
	})
	require.NoError(t, err)

	assert.Equal(t, sender, msg.SenderID)
	assert.Len(t, store.messages, 1)
	assert.Equal(t, []string{intern.Email}, emails.messages)
}

func TestSendMessageWithTemplateSubstitutesPlaceholders(t *testing.T) {
	svc, _, interns, _ := newCommunicationFixture()
	intern := interns.add("ada", "Lovelace")

	tpl, err := svc.CreateTemplate(context.Background(), &dto.CreateMessageTemplateRequest{
		Name:    "welcome",
		Subject: "Welcome {{name}}",
		Body:    "Hello {{name}}, your desk is {{desk}}.",
	})
	require.NoError(t, err)

	msg, err := svc.SendMessage(context.Background(), uuid.New(), &dto.SendMessageRequest{
		InternID:     intern.ID,
		TemplateID:   &tpl.ID,
		Placeholders: map[string]string{"name": "Ada", "desk": "B-12"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Welcome Ada", msg.Subject)
	assert.Equal(t, "Hello Ada, your desk is B-12.", msg.Body)
}

func TestSendMessageExplicitFieldsWinOverTemplate(t *testing.T) {
	svc, _, interns, _ := newCommunicationFixture()
	intern := interns.add("ada", "Lovelace")

	tpl, err := svc.CreateTemplate(context.Background(), &dto.CreateMessageTemplateRequest{
		Name:    "welcome",
		Subject: "Template subject",
		Body:    "Template body",
	})
	require.NoError(t, err)

	msg, err := svc.SendMessage(context.Background(), uuid.New(), &dto.SendMessageRequest{
		InternID:   intern.ID,
		TemplateID: &tpl.ID,
		Subject:    "Explicit subject",
	})
	require.NoError(t, err)

	assert.Equal(t, "Explicit subject", msg.Subject)
	assert.Equal(t, "Template body", msg.Body)
}

func TestSendMessageUnknownPlaceholderKept(t *testing.T) {
	svc, _, interns, _ := newCommunicationFixture()
	intern := interns.add("ada", "Lovelace")

	tpl, err := svc.CreateTemplate(context.Background(), &dto.CreateMessageTemplateRequest{
		Name:    "welcome",
		Subject: "Hello",
		Body:    "Hello {{name}}, floor {{floor}}.",
	})
	require.NoError(t, err)

	msg, err := svc.SendMessage(context.Background(), uuid.New(), &dto.SendMessageRequest{
		InternID:     intern.ID,
		TemplateID:   &tpl.ID,
		Placeholders: map[string]string{"name": "Ada"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada, floor {{floor}}.", msg.Body)
}

func TestSendMessageWithoutContentRejected(t *testing.T) {
	svc, _, interns, _ := newCommunicationFixture()
	intern := interns.add("ada", "Lovelace")

	_, err := svc.SendMessage(context.Background(), uuid.New(), &dto.SendMessageRequest{
		InternID: intern.ID,
		Subject:  "Only a subject",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestSendMessageUnknownIntern(t *testing.T) {
	svc, _, _, _ := newCommunicationFixture()

	_, err := svc.SendMessage(context.Background(), uuid.New(), &dto.SendMessageRequest{
		InternID: uuid.New(),
		Subject:  "Hi",
		Body:     "There",
	})
	assert.ErrorIs(t, err, apperrors.ErrInternNotFound)
}

func TestListMessagesByIntern(t *testing.T) {
	svc, _, interns, _ := newCommunicationFixture()
	first := interns.add("ada", "Lovelace")
	second := interns.add("grace", "Hopper")

	for _, internID := range []uuid.UUID{first.ID, first.ID, second.ID} {
		_, err := svc.SendMessage(context.Background(), uuid.New(), &dto.SendMessageRequest{
			InternID: internID,
			Subject:  "Hi",
			Body:     "There",
		})
		require.NoError(t, err)
	}

	msgs, total, err := svc.ListMessages(context.Background(), first.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
	assert.Equal(t, int64(2), total)
}

func TestUpdateTemplatePartialFields(t *testing.T) {
	svc, _, _, _ := newCommunicationFixture()

	tpl, err := svc.CreateTemplate(context.Background(), &dto.CreateMessageTemplateRequest{
		Name:    "welcome",
		Subject: "Old subject",
		Body:    "Body",
	})
	require.NoError(t, err)

	subject := "New subject"
	updated, err := svc.UpdateTemplate(context.Background(), tpl.ID, &dto.UpdateMessageTemplateRequest{Subject: &subject})
	require.NoError(t, err)

	assert.Equal(t, "New subject", updated.Subject)
	assert.Equal(t, "welcome", updated.Name)
}

func TestDeleteTemplate(t *testing.T) {
	svc, _, _, _ := newCommunicationFixture()

	tpl, err := svc.CreateTemplate(context.Background(), &dto.CreateMessageTemplateRequest{
		Name:    "welcome",
		Subject: "Subject",
		Body:    "Body",
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTemplate(context.Background(), tpl.ID))

	listed, err := svc.ListTemplates(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}
