package complaint

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shakwa/backend/internal/domain/catalog"
	"github.com/shakwa/backend/internal/domain/complaint"
	"github.com/shakwa/backend/internal/domain/identity"
	"github.com/shakwa/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mocks
// =============================================================================

// MockRepository is a mock implementation of complaint.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*complaint.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*complaint.Complaint), args.Error(1)
}

func (m *MockRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*complaint.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*complaint.Complaint), args.Error(1)
}

func (m *MockRepository) FindByIDAndAgencyForUpdate(ctx context.Context, id uuid.UUID, agency catalog.Agency) (*complaint.Complaint, error) {
	args := m.Called(ctx, id, agency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*complaint.Complaint), args.Error(1)
}

func (m *MockRepository) FindPage(ctx context.Context, q complaint.Query) (shared.Paginated[*complaint.Complaint], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(shared.Paginated[*complaint.Complaint]), args.Error(1)
}

func (m *MockRepository) CountByStatus(ctx context.Context, q complaint.Query) (map[catalog.ComplaintStatus]int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[catalog.ComplaintStatus]int64), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, c *complaint.Complaint) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeTxManager runs the unit of work directly, without a real transaction
type fakeTxManager struct{}

func (fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// =============================================================================
// Helpers
// =============================================================================

func newService(repo *MockRepository) *Service {
	return NewService(repo, fakeTxManager{})
}

func filedComplaint(t *testing.T, citizenID uuid.UUID, agency catalog.Agency) *complaint.Complaint {
	t.Helper()
	c, err := complaint.NewComplaint(
		citizenID,
		catalog.TypeInfrastructure,
		catalog.GovernorateDamascus,
		agency,
		"شارع الثورة",
		"حفرة كبيرة في الطريق",
		"",
		nil,
	)
	require.NoError(t, err)
	return c
}

func validCreateRequest() CreateComplaintRequest {
	return CreateComplaintRequest{
		ComplaintType:    string(catalog.TypeInfrastructure),
		Governorate:      string(catalog.GovernorateDamascus),
		GovernmentAgency: string(catalog.AgencyWater),
		Location:         "شارع الثورة",
		Description:      "حفرة كبيرة في الطريق",
	}
}

// =============================================================================
// Tests
// =============================================================================

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("citizen files a complaint", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)
		citizenID := uuid.New()

		repo.On("Save", ctx, mock.AnythingOfType("*complaint.Complaint")).Return(nil)

		resp, err := svc.Create(ctx, identity.CitizenCaller(citizenID), validCreateRequest())
		require.NoError(t, err)
		assert.Equal(t, citizenID, resp.CitizenID)
		assert.Equal(t, string(catalog.StatusPending), resp.Status)
		repo.AssertExpectations(t)
	})

	t.Run("supplied status overrides the default", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)
		citizenID := uuid.New()

		repo.On("Save", ctx, mock.AnythingOfType("*complaint.Complaint")).Return(nil)

		req := validCreateRequest()
		req.Status = string(catalog.StatusInProgress)
		resp, err := svc.Create(ctx, identity.CitizenCaller(citizenID), req)
		require.NoError(t, err)
		assert.Equal(t, string(catalog.StatusInProgress), resp.Status)
	})

	t.Run("invalid status rejected before save", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)

		req := validCreateRequest()
		req.Status = "SOLVED"
		_, err := svc.Create(ctx, identity.CitizenCaller(uuid.New()), req)
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("employee cannot file", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)

		_, err := svc.Create(ctx, identity.EmployeeCaller(uuid.New(), catalog.AgencyWater), validCreateRequest())
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unresolved caller rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)

		_, err := svc.Create(ctx, identity.Caller{}, validCreateRequest())
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("invalid enum rejected before save", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)

		req := validCreateRequest()
		req.GovernmentAgency = "MINISTRY_OF_MAGIC"
		_, err := svc.Create(ctx, identity.CitizenCaller(uuid.New()), req)
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()
	citizenID := uuid.New()

	t.Run("owner reads own complaint", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)
		c := filedComplaint(t, citizenID, catalog.AgencyWater)

		repo.On("FindByID", ctx, c.ID).Return(c, nil)

		resp, err := svc.GetByID(ctx, identity.CitizenCaller(citizenID), c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, resp.ID)
	})

	t.Run("other citizen rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)
		c := filedComplaint(t, citizenID, catalog.AgencyWater)

		repo.On("FindByID", ctx, c.ID).Return(c, nil)

		_, err := svc.GetByID(ctx, identity.CitizenCaller(uuid.New()), c.ID)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("employee of another agency rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)
		c := filedComplaint(t, citizenID, catalog.AgencyWater)

		repo.On("FindByID", ctx, c.ID).Return(c, nil)

		_, err := svc.GetByID(ctx, identity.EmployeeCaller(uuid.New(), catalog.AgencyHealth), c.ID)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("admin reads anything", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)
		c := filedComplaint(t, citizenID, catalog.AgencyWater)

		repo.On("FindByID", ctx, c.ID).Return(c, nil)

		_, err := svc.GetByID(ctx, identity.AdminCaller(uuid.New()), c.ID)
		assert.NoError(t, err)
	})

	t.Run("not found passes through", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)
		id := uuid.New()

		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.GetByID(ctx, identity.AdminCaller(uuid.New()), id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("citizen scope forced into query", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)
		citizenID := uuid.New()

		repo.On("FindPage", ctx, mock.MatchedBy(func(q complaint.Query) bool {
			return q.CitizenID != nil && *q.CitizenID == citizenID
		})).Return(shared.Paginated[*complaint.Complaint]{Items: []*complaint.Complaint{}}, nil)

		// The caller asks for someone else's complaints; the scope wins.
		other := uuid.New().String()
		_, err := svc.List(ctx, identity.CitizenCaller(citizenID), ListFilter{CitizenID: other})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("employee pinned to own agency", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)

		repo.On("FindPage", ctx, mock.MatchedBy(func(q complaint.Query) bool {
			return q.Agency != nil && *q.Agency == catalog.AgencyHealth
		})).Return(shared.Paginated[*complaint.Complaint]{Items: []*complaint.Complaint{}}, nil)

		_, err := svc.List(ctx, identity.EmployeeCaller(uuid.New(), catalog.AgencyHealth), ListFilter{
			GovernmentAgency: string(catalog.AgencyWater),
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("unresolved caller rejected without query", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)

		_, err := svc.List(ctx, identity.Caller{}, ListFilter{})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
		repo.AssertNotCalled(t, "FindPage", mock.Anything, mock.Anything)
	})

	t.Run("invalid filter enum rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)

		_, err := svc.List(ctx, identity.AdminCaller(uuid.New()), ListFilter{Status: "SOLVED"})
		require.Error(t, err)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	citizenID := uuid.New()

	t.Run("employee updates complaint of own agency", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)
		c := filedComplaint(t, citizenID, catalog.AgencyWater)
		employee := identity.EmployeeCaller(uuid.New(), catalog.AgencyWater)

		repo.On("FindByIDAndAgencyForUpdate", ctx, c.ID, catalog.AgencyWater).Return(c, nil)
		repo.On("Save", ctx, c).Return(nil)

		newLocation := "شارع بغداد"
		resp, err := svc.Update(ctx, employee, c.ID, UpdateComplaintRequest{Location: &newLocation})
		require.NoError(t, err)
		assert.Equal(t, "شارع بغداد", resp.Location)
		assert.Equal(t, "حفرة كبيرة في الطريق", resp.Description)
		repo.AssertExpectations(t)
	})

	t.Run("citizen cannot update", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)

		_, err := svc.Update(ctx, identity.CitizenCaller(citizenID), uuid.New(), UpdateComplaintRequest{})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
		repo.AssertNotCalled(t, "FindByIDAndAgencyForUpdate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("complaint of other agency reads as not found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)
		employee := identity.EmployeeCaller(uuid.New(), catalog.AgencyHealth)
		id := uuid.New()

		repo.On("FindByIDAndAgencyForUpdate", ctx, id, catalog.AgencyHealth).Return(nil, shared.ErrNotFound)

		_, err := svc.Update(ctx, employee, id, UpdateComplaintRequest{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lock timeout surfaces", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)
		employee := identity.EmployeeCaller(uuid.New(), catalog.AgencyWater)
		id := uuid.New()

		repo.On("FindByIDAndAgencyForUpdate", ctx, id, catalog.AgencyWater).Return(nil, shared.ErrLockTimeout)

		_, err := svc.Update(ctx, employee, id, UpdateComplaintRequest{})
		assert.ErrorIs(t, err, shared.ErrLockTimeout)
	})
}

func TestService_Respond(t *testing.T) {
	ctx := context.Background()
	citizenID := uuid.New()

	t.Run("employee responds with status change", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)
		c := filedComplaint(t, citizenID, catalog.AgencyWater)
		employeeID := uuid.New()
		employee := identity.EmployeeCaller(employeeID, catalog.AgencyWater)

		repo.On("FindByIDAndAgencyForUpdate", ctx, c.ID, catalog.AgencyWater).Return(c, nil)
		repo.On("Save", ctx, c).Return(nil)

		status := string(catalog.StatusInProgress)
		resp, err := svc.Respond(ctx, employee, c.ID, "تم استلام الشكوى وجاري المعالجة", &status)
		require.NoError(t, err)
		assert.Equal(t, string(catalog.StatusInProgress), resp.Status)
		assert.Equal(t, "تم استلام الشكوى وجاري المعالجة", resp.Response)
		require.NotNil(t, resp.RespondedBy)
		assert.Equal(t, employeeID, *resp.RespondedBy)
		assert.NotNil(t, resp.RespondedAt)
	})

	t.Run("status unchanged when omitted", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)
		c := filedComplaint(t, citizenID, catalog.AgencyWater)
		employee := identity.EmployeeCaller(uuid.New(), catalog.AgencyWater)

		repo.On("FindByIDAndAgencyForUpdate", ctx, c.ID, catalog.AgencyWater).Return(c, nil)
		repo.On("Save", ctx, c).Return(nil)

		resp, err := svc.Respond(ctx, employee, c.ID, "رد بدون تغيير حالة", nil)
		require.NoError(t, err)
		assert.Equal(t, string(catalog.StatusPending), resp.Status)
	})

	t.Run("blank response rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)
		c := filedComplaint(t, citizenID, catalog.AgencyWater)
		employee := identity.EmployeeCaller(uuid.New(), catalog.AgencyWater)

		repo.On("FindByIDAndAgencyForUpdate", ctx, c.ID, catalog.AgencyWater).Return(c, nil)

		_, err := svc.Respond(ctx, employee, c.ID, "   ", nil)
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("invalid status rejected before lock", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)
		employee := identity.EmployeeCaller(uuid.New(), catalog.AgencyWater)

		bad := "DONE"
		_, err := svc.Respond(ctx, employee, uuid.New(), "text", &bad)
		require.Error(t, err)
		repo.AssertNotCalled(t, "FindByIDAndAgencyForUpdate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("citizen cannot respond", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)

		_, err := svc.Respond(ctx, identity.CitizenCaller(citizenID), uuid.New(), "text", nil)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	citizenID := uuid.New()

	t.Run("owner deletes own complaint", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)
		c := filedComplaint(t, citizenID, catalog.AgencyWater)

		repo.On("FindByID", ctx, c.ID).Return(c, nil)
		repo.On("Delete", ctx, c.ID).Return(nil)

		err := svc.Delete(ctx, identity.CitizenCaller(citizenID), c.ID)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)
		c := filedComplaint(t, citizenID, catalog.AgencyWater)

		repo.On("FindByID", ctx, c.ID).Return(c, nil)

		err := svc.Delete(ctx, identity.CitizenCaller(uuid.New()), c.ID)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("matching-agency employee deletes", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)
		c := filedComplaint(t, citizenID, catalog.AgencyWater)

		repo.On("FindByID", ctx, c.ID).Return(c, nil)
		repo.On("Delete", ctx, c.ID).Return(nil)

		err := svc.Delete(ctx, identity.EmployeeCaller(uuid.New(), catalog.AgencyWater), c.ID)
		assert.NoError(t, err)
	})
}

func TestService_CountByStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("counts with total", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)

		repo.On("CountByStatus", ctx, mock.AnythingOfType("complaint.Query")).Return(map[catalog.ComplaintStatus]int64{
			catalog.StatusPending:    3,
			catalog.StatusInProgress: 1,
			catalog.StatusResolved:   2,
			catalog.StatusRejected:   0,
		}, nil)

		counts, err := svc.CountByStatus(ctx, identity.AdminCaller(uuid.New()))
		require.NoError(t, err)
		assert.Equal(t, int64(3), counts[string(catalog.StatusPending)])
		assert.Equal(t, int64(6), counts["total"])
	})

	t.Run("unresolved caller rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newService(repo)

		_, err := svc.CountByStatus(ctx, identity.Caller{})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}
