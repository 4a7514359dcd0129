package db_test

import (
	"context"
	"errors"
	"testing"

	"quickbids/db"
	"quickbids/internal/apperror"
	"quickbids/internal/handlers/testutils"
	"quickbids/internal/repository"
	"quickbids/models"

	"github.com/stretchr/testify/require"
)

func newContractor(t *testing.T, s *db.Storage, username string, primary bool) *models.Contractor {
	t.Helper()
	ctx := context.Background()

	u := &models.User{Username: username, Password: "hash", Email: username + "@example.com", IsActive: true}
	require.NoError(t, s.CreateUser(ctx, u))

	c := &models.Contractor{UserID: u.ID, CompanyName: username + " Inc", PhoneNumber: "555", PrimaryContractor: primary}
	require.NoError(t, s.CreateContractor(ctx, c))
	return c
}

func newJob(t *testing.T, s *db.Storage, contractorID int64, fieldIDs ...int64) *models.Job {
	t.Helper()
	ctx := context.Background()

	fields, err := s.FindFields(ctx, fieldIDs)
	require.NoError(t, err)
	open, complete := true, false
	j := &models.Job{ContractorID: contractorID, Name: "job", Address: "addr", Open: &open, Complete: &complete, Fields: fields}
	require.NoError(t, s.CreateJob(ctx, j))
	return j
}

func TestUsers(t *testing.T) {
	s := testutils.NewTestStore(t)
	ctx := context.Background()

	u := &models.User{Username: "alice", Password: "hash", FirstName: "Alice", Email: "alice@example.com", IsActive: true}
	require.NoError(t, s.CreateUser(ctx, u))
	require.NotZero(t, u.ID)
	require.False(t, u.DateJoined.IsZero())

	got, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "hash", got.Password)

	dup := &models.User{Username: "alice", Password: "x", Email: "other@example.com"}
	err = s.CreateUser(ctx, dup)
	require.True(t, apperror.IsConflict(err), "got %v", err)

	got.LastName = "Smith"
	got.Password = "ignored"
	require.NoError(t, s.UpdateUser(ctx, got))

	got, err = s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Smith", got.LastName)
	require.Equal(t, "hash", got.Password)

	require.NoError(t, s.DeleteUser(ctx, u.ID))
	_, err = s.GetUser(ctx, u.ID)
	require.True(t, apperror.IsNotFound(err))
	require.True(t, apperror.IsNotFound(s.DeleteUser(ctx, u.ID)))
}

func TestContractors(t *testing.T) {
	s := testutils.NewTestStore(t)
	ctx := context.Background()

	alice := newContractor(t, s, "alice", true)
	bob := newContractor(t, s, "bob", false)

	got, err := s.GetContractor(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.User.Username)
	require.Equal(t, alice.UserID, got.User.ID)

	byUser, err := s.GetContractorByUser(ctx, bob.UserID)
	require.NoError(t, err)
	require.Equal(t, bob.ID, byUser.ID)

	primary := true
	list, err := s.ListContractors(ctx, models.ContractorFilter{Primary: &primary})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, alice.ID, list[0].ID)

	list, err = s.ListContractors(ctx, models.ContractorFilter{UserID: &bob.UserID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, bob.ID, list[0].ID)

	list, err = s.ListContractors(ctx, models.ContractorFilter{Page: models.Page{Offset: 1}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, bob.ID, list[0].ID)

	err = s.CreateContractor(ctx, &models.Contractor{UserID: 9999, CompanyName: "ghost", PhoneNumber: "1"})
	require.True(t, apperror.IsNotFound(err), "got %v", err)

	err = s.CreateContractor(ctx, &models.Contractor{UserID: alice.UserID, CompanyName: "twice", PhoneNumber: "1"})
	require.True(t, apperror.IsConflict(err), "got %v", err)

	_, err = s.GetContractor(ctx, 9999)
	require.True(t, apperror.IsNotFound(err))
}

func TestDeleteContractor_Cascades(t *testing.T) {
	s := testutils.NewTestStore(t)
	ctx := context.Background()

	alice := newContractor(t, s, "alice", true)
	bob := newContractor(t, s, "bob", false)
	carol := newContractor(t, s, "carol", true)

	aliceJob := newJob(t, s, alice.ID, 1, 2)
	carolJob := newJob(t, s, carol.ID, 1)

	onAliceJob := &models.Bid{JobID: aliceJob.ID, PrimaryContractorID: alice.ID, SubContractorID: bob.ID}
	require.NoError(t, s.CreateBid(ctx, onAliceJob))
	aliceAsSub := &models.Bid{JobID: carolJob.ID, PrimaryContractorID: carol.ID, SubContractorID: alice.ID}
	require.NoError(t, s.CreateBid(ctx, aliceAsSub))
	unrelated := &models.Bid{JobID: carolJob.ID, PrimaryContractorID: carol.ID, SubContractorID: bob.ID}
	require.NoError(t, s.CreateBid(ctx, unrelated))

	require.NoError(t, s.DeleteContractor(ctx, alice.ID))

	_, err := s.GetJob(ctx, aliceJob.ID)
	require.True(t, apperror.IsNotFound(err))
	_, err = s.GetBid(ctx, onAliceJob.ID)
	require.True(t, apperror.IsNotFound(err))
	_, err = s.GetBid(ctx, aliceAsSub.ID)
	require.True(t, apperror.IsNotFound(err))

	remaining, err := s.ListBids(ctx, models.BidFilter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, unrelated.ID, remaining[0].ID)

	// the user is left for the caller
	_, err = s.GetUser(ctx, alice.UserID)
	require.NoError(t, err)

	require.True(t, apperror.IsNotFound(s.DeleteContractor(ctx, alice.ID)))
}

func TestFields(t *testing.T) {
	s := testutils.NewTestStore(t)
	ctx := context.Background()

	seeded, err := s.ListFields(ctx)
	require.NoError(t, err)
	require.Len(t, seeded, 8)

	found, err := s.FindFields(ctx, []int64{3, 1, 3, 999})
	require.NoError(t, err)
	require.Equal(t, []models.Field{{ID: 1, JobTitle: "Painting"}, {ID: 3, JobTitle: "Epoxy Flooring"}}, found)

	found, err = s.FindFields(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, found)

	f := &models.Field{JobTitle: "Masonry"}
	require.NoError(t, s.CreateField(ctx, f))
	f.JobTitle = "Stone Masonry"
	require.NoError(t, s.UpdateField(ctx, f))

	got, err := s.GetField(ctx, f.ID)
	require.NoError(t, err)
	require.Equal(t, "Stone Masonry", got.JobTitle)

	alice := newContractor(t, s, "alice", true)
	job := newJob(t, s, alice.ID, 1, f.ID)
	require.NoError(t, s.DeleteField(ctx, f.ID))

	job, err = s.GetJob(ctx, job.ID)
	require.NoError(t, err)
	require.Equal(t, []models.Field{{ID: 1, JobTitle: "Painting"}}, job.Fields)

	require.True(t, apperror.IsNotFound(s.UpdateField(ctx, f)))
	require.True(t, apperror.IsNotFound(s.DeleteField(ctx, f.ID)))
}

func TestJobs(t *testing.T) {
	s := testutils.NewTestStore(t)
	ctx := context.Background()

	alice := newContractor(t, s, "alice", true)
	bob := newContractor(t, s, "bob", true)

	j1 := newJob(t, s, alice.ID, 2, 1, 2)
	j2 := newJob(t, s, bob.ID)

	got, err := s.GetJob(ctx, j1.ID)
	require.NoError(t, err)
	require.Equal(t, "alice Inc", got.Contractor.CompanyName)
	require.Equal(t, []models.Field{{ID: 1, JobTitle: "Painting"}, {ID: 2, JobTitle: "Drywall"}}, got.Fields)
	require.Nil(t, got.Blueprint)
	require.Nil(t, got.SquareFootage)

	closed := false
	got.Open = &closed
	got.ContractorID = bob.ID
	got.Fields = []models.Field{{ID: 4}}
	require.NoError(t, s.UpdateJob(ctx, got))

	open := true
	list, err := s.ListJobs(ctx, models.JobFilter{Open: &open})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, j2.ID, list[0].ID)
	require.NotNil(t, list[0].Fields)
	require.Empty(t, list[0].Fields)

	list, err = s.ListJobs(ctx, models.JobFilter{ContractorID: &bob.ID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, []models.Field{{ID: 4, JobTitle: "Electrical"}}, list[0].Fields)

	list, err = s.ListJobs(ctx, models.JobFilter{Page: models.Page{Limit: 1}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, j1.ID, list[0].ID)

	err = s.CreateJob(ctx, &models.Job{ContractorID: 9999, Name: "n", Address: "a"})
	require.True(t, apperror.IsNotFound(err), "got %v", err)

	require.NoError(t, s.DeleteJob(ctx, j1.ID))
	require.True(t, apperror.IsNotFound(s.DeleteJob(ctx, j1.ID)))
	require.True(t, apperror.IsNotFound(s.UpdateJob(ctx, &models.Job{ID: j1.ID})))
}

func TestBids(t *testing.T) {
	s := testutils.NewTestStore(t)
	ctx := context.Background()

	alice := newContractor(t, s, "alice", true)
	bob := newContractor(t, s, "bob", false)
	job := newJob(t, s, alice.ID)

	rate := 42.5
	b := &models.Bid{JobID: job.ID, PrimaryContractorID: alice.ID, SubContractorID: bob.ID, Rate: &rate, IsRequest: true}
	require.NoError(t, s.CreateBid(ctx, b))

	got, err := s.GetBid(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, job.ID, got.Job.ID)
	require.Equal(t, alice.ID, got.Job.ContractorID)
	require.True(t, *got.Job.Open)
	require.Equal(t, models.ContractorRef{ID: alice.ID, CompanyName: "alice Inc"}, got.PrimaryContractor)
	require.Equal(t, models.ContractorRef{ID: bob.ID, CompanyName: "bob Inc"}, got.SubContractor)
	require.Equal(t, 42.5, *got.Rate)
	require.False(t, got.Accepted)

	accepted := true
	list, err := s.ListBids(ctx, models.BidFilter{Accepted: &accepted})
	require.NoError(t, err)
	require.Empty(t, list)

	got.Accepted = true
	got.Rate = nil
	require.NoError(t, s.UpdateBid(ctx, got))

	list, err = s.ListBids(ctx, models.BidFilter{
		Accepted:            &accepted,
		SubContractorID:     &bob.ID,
		PrimaryContractorID: &alice.ID,
		JobID:               &job.ID,
		IsRequest:           &accepted,
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Nil(t, list[0].Rate)

	err = s.CreateBid(ctx, &models.Bid{JobID: 9999, PrimaryContractorID: alice.ID, SubContractorID: bob.ID})
	require.True(t, apperror.IsNotFound(err), "got %v", err)

	require.NoError(t, s.DeleteBid(ctx, b.ID))
	require.True(t, apperror.IsNotFound(s.DeleteBid(ctx, b.ID)))
}

func TestWithTx(t *testing.T) {
	s := testutils.NewTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx repository.Repository) error {
		require.NoError(t, tx.CreateField(ctx, &models.Field{JobTitle: "Rolled Back"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	fields, err := s.ListFields(ctx)
	require.NoError(t, err)
	require.Len(t, fields, 8)

	err = s.WithTx(ctx, func(tx repository.Repository) error {
		if err := tx.CreateField(ctx, &models.Field{JobTitle: "Committed"}); err != nil {
			return err
		}
		// nested calls join the open transaction
		return tx.(repository.Store).WithTx(ctx, func(inner repository.Repository) error {
			return inner.CreateField(ctx, &models.Field{JobTitle: "Nested"})
		})
	})
	require.NoError(t, err)

	fields, err = s.ListFields(ctx)
	require.NoError(t, err)
	require.Len(t, fields, 10)

	require.Panics(t, func() {
		_ = s.WithTx(ctx, func(tx repository.Repository) error {
			_ = tx.CreateField(ctx, &models.Field{JobTitle: "Panicked"})
			panic("boom")
		})
	})
	fields, err = s.ListFields(ctx)
	require.NoError(t, err)
	require.Len(t, fields, 10)
}

func TestConnect_UnknownDriver(t *testing.T) {
	_, err := db.Connect(context.Background(), "mysql", "dsn")
	require.Error(t, err)
}
