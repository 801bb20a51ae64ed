package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/mocks"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/testutil"
)

func activeUser(t *testing.T, password string) model.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return model.User{
		ID:           uuid.New(),
		CompanyID:    uuid.New(),
		Username:     "contractor01",
		Mobile:       "09123456789",
		PasswordHash: hash,
		FirstName:    "Ali",
		LastName:     "Ahmadi",
		Active:       true,
	}
}

func TestAuth_Login_Success(t *testing.T) {
	ctx := context.Background()
	credentials := &mocks.CredentialStore{}
	facts := &mocks.FactSource{}

	user := activeUser(t, "correct horse")
	company := model.Company{ID: user.CompanyID, Name: "Sazeh Gostar", StatusCode: 2}

	credentials.On("GetByUsername", mock.Anything, "contractor01").Return(user, nil)
	credentials.On("GetCompanyByUserID", mock.Anything, user.ID).Return(company, nil)
	credentials.On("RecordLastLogin", mock.Anything, user.ID, mock.AnythingOfType("time.Time")).Return(nil)

	a := NewAuth(credentials, facts, testutil.MakeNoopLogger())

	got, err := a.Login(ctx, "contractor01", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, company.ID, got.CompanyID)
	assert.Equal(t, "contractor01", got.Username)
	assert.Equal(t, "Sazeh Gostar", got.CompanyName)
	assert.Equal(t, 2, got.StatusCode)
	assert.Nil(t, got.AccountTask, "derived facts stay absent until first refresh")
	assert.Nil(t, got.Participation, "derived facts stay absent until first refresh")
	credentials.AssertExpectations(t)
}

func TestAuth_Login_UnknownUser(t *testing.T) {
	credentials := &mocks.CredentialStore{}
	credentials.On("GetByUsername", mock.Anything, "nobody").Return(model.User{}, model.ErrNotFound)

	a := NewAuth(credentials, &mocks.FactSource{}, testutil.MakeNoopLogger())

	_, err := a.Login(context.Background(), "nobody", "whatever")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_Login_InactiveUser(t *testing.T) {
	credentials := &mocks.CredentialStore{}
	user := activeUser(t, "pw")
	user.Active = false
	credentials.On("GetByUsername", mock.Anything, "contractor01").Return(user, nil)

	a := NewAuth(credentials, &mocks.FactSource{}, testutil.MakeNoopLogger())

	_, err := a.Login(context.Background(), "contractor01", "pw")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	credentials := &mocks.CredentialStore{}
	user := activeUser(t, "right")
	credentials.On("GetByUsername", mock.Anything, "contractor01").Return(user, nil)

	a := NewAuth(credentials, &mocks.FactSource{}, testutil.MakeNoopLogger())

	_, err := a.Login(context.Background(), "contractor01", "wrong")
	require.ErrorIs(t, err, model.ErrInvalidCredentials,
		"wrong password and unknown user must be indistinguishable")
}

func TestAuth_Login_CompanyMissing(t *testing.T) {
	credentials := &mocks.CredentialStore{}
	user := activeUser(t, "pw")
	credentials.On("GetByUsername", mock.Anything, "contractor01").Return(user, nil)
	credentials.On("GetCompanyByUserID", mock.Anything, user.ID).Return(model.Company{}, model.ErrNotFound)

	a := NewAuth(credentials, &mocks.FactSource{}, testutil.MakeNoopLogger())

	_, err := a.Login(context.Background(), "contractor01", "pw")
	require.ErrorIs(t, err, model.ErrAccountDataMissing)
}

func TestAuth_Login_LastLoginFailureIsNonFatal(t *testing.T) {
	credentials := &mocks.CredentialStore{}
	user := activeUser(t, "pw")
	company := model.Company{ID: user.CompanyID, Name: "Sazeh Gostar"}
	credentials.On("GetByUsername", mock.Anything, "contractor01").Return(user, nil)
	credentials.On("GetCompanyByUserID", mock.Anything, user.ID).Return(company, nil)
	credentials.On("RecordLastLogin", mock.Anything, user.ID, mock.AnythingOfType("time.Time")).
		Return(errors.New("deadlock detected"))

	a := NewAuth(credentials, &mocks.FactSource{}, testutil.MakeNoopLogger())

	_, err := a.Login(context.Background(), "contractor01", "pw")
	require.NoError(t, err)
}

func refreshPayload() model.SessionUser {
	return model.SessionUser{
		UserID:      uuid.New(),
		CompanyID:   uuid.New(),
		Username:    "contractor01",
		FirstName:   "Ali",
		LastName:    "Ahmadi",
		CompanyName: "Sazeh Gostar",
		StatusCode:  2,
	}
}

func TestAuth_Refresh_BackfillsAbsentGroups(t *testing.T) {
	facts := &mocks.FactSource{}
	current := refreshPayload()

	task := model.TaskStatus{Kind: model.TaskInProgress}
	participation := model.Participation{TenderCount: 4, InquiryCount: 2, CallCount: 1}
	facts.On("AccountTask", mock.Anything, current.CompanyID).Return(task, nil)
	facts.On("Participation", mock.Anything, current.CompanyID).Return(participation, nil)

	a := NewAuth(&mocks.CredentialStore{}, facts, testutil.MakeNoopLogger())

	got := a.Refresh(context.Background(), current, nil)
	require.NotNil(t, got.AccountTask)
	assert.Equal(t, task, *got.AccountTask)
	require.NotNil(t, got.Participation)
	assert.Equal(t, participation, *got.Participation)
	facts.AssertExpectations(t)
}

func TestAuth_Refresh_PopulatedGroupsLeftAloneWhenNotRequested(t *testing.T) {
	facts := &mocks.FactSource{}
	current := refreshPayload()
	current.AccountTask = &model.TaskStatus{Kind: model.TaskCompleted}
	current.Participation = &model.Participation{TenderCount: 1}

	a := NewAuth(&mocks.CredentialStore{}, facts, testutil.MakeNoopLogger())

	got := a.Refresh(context.Background(), current, nil)
	assert.Equal(t, current, got)
	facts.AssertNotCalled(t, "AccountTask", mock.Anything, mock.Anything)
	facts.AssertNotCalled(t, "Participation", mock.Anything, mock.Anything)
}

func TestAuth_Refresh_RequestedGroupReplacesExistingValue(t *testing.T) {
	facts := &mocks.FactSource{}
	current := refreshPayload()
	current.AccountTask = &model.TaskStatus{Kind: model.TaskPending}
	current.Participation = &model.Participation{TenderCount: 1}

	facts.On("AccountTask", mock.Anything, current.CompanyID).
		Return(model.TaskStatus{Kind: model.TaskCompleted}, nil)

	a := NewAuth(&mocks.CredentialStore{}, facts, testutil.MakeNoopLogger())

	got := a.Refresh(context.Background(), current, []string{model.FieldGroupAccountTask})
	require.NotNil(t, got.AccountTask)
	assert.Equal(t, model.TaskCompleted, got.AccountTask.Kind)
	assert.Equal(t, current.Participation, got.Participation)
	facts.AssertNotCalled(t, "Participation", mock.Anything, mock.Anything)
}

func TestAuth_Refresh_GroupFailureRetainsStaleValue(t *testing.T) {
	facts := &mocks.FactSource{}
	current := refreshPayload()
	current.AccountTask = &model.TaskStatus{Kind: model.TaskPending}
	current.Participation = &model.Participation{TenderCount: 1}

	facts.On("AccountTask", mock.Anything, current.CompanyID).
		Return(model.TaskStatus{}, errors.New("derived-fact source down"))
	facts.On("Participation", mock.Anything, current.CompanyID).
		Return(model.Participation{TenderCount: 9}, nil)

	a := NewAuth(&mocks.CredentialStore{}, facts, testutil.MakeNoopLogger())

	got := a.Refresh(context.Background(), current,
		[]string{model.FieldGroupAccountTask, model.FieldGroupParticipation})
	assert.Equal(t, model.TaskPending, got.AccountTask.Kind, "failed group keeps stale value")
	assert.Equal(t, 9, got.Participation.TenderCount, "other groups still commit")
}

func TestAuth_Refresh_IdentityNeverChanges(t *testing.T) {
	facts := &mocks.FactSource{}
	current := refreshPayload()
	facts.On("AccountTask", mock.Anything, current.CompanyID).Return(model.TaskStatus{Kind: model.TaskPending}, nil)
	facts.On("Participation", mock.Anything, current.CompanyID).Return(model.Participation{}, nil)

	a := NewAuth(&mocks.CredentialStore{}, facts, testutil.MakeNoopLogger())

	got := a.Refresh(context.Background(), current, nil)
	assert.Equal(t, current.UserID, got.UserID)
	assert.Equal(t, current.CompanyID, got.CompanyID)
	assert.Equal(t, current.Username, got.Username)
	assert.Equal(t, current.CompanyName, got.CompanyName)
	assert.Equal(t, current.StatusCode, got.StatusCode)
}

func TestHashPassword_VerifiableRoundtrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", string(hash))

	require.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("s3cret")))
	require.Error(t, bcrypt.CompareHashAndPassword(hash, []byte("other")))
}
