//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
	repo "github.com/mforoutan/nak-tender-manager-sub001/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "tender_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/tender_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func seedCompanyWithUser(ctx context.Context, t *testing.T, conn *repo.Connection, username, mobile string) (uuid.UUID, uuid.UUID) {
	t.Helper()

	companyID := uuid.New()
	_, err := conn.Exec(ctx,
		`INSERT INTO companies (id, name, status_code) VALUES ($1, $2, $3)`,
		companyID, "Sazeh Gostar", 2)
	require.NoError(t, err)

	userID := uuid.New()
	_, err = conn.Exec(ctx,
		`INSERT INTO users (id, company_id, username, mobile, password_hash, first_name, last_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		userID, companyID, username, mobile, []byte("hash"), "Ali", "Ahmadi")
	require.NoError(t, err)

	return userID, companyID
}

func TestRepositories(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	t.Run("user_repository", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)
		userID, companyID := seedCompanyWithUser(ctx, t, conn, "contractor01", "09120000001")

		byUsername, err := ur.GetByUsername(ctx, "contractor01")
		require.NoError(t, err)
		require.Equal(t, userID, byUsername.ID)
		require.Equal(t, companyID, byUsername.CompanyID)
		require.Equal(t, []byte("hash"), byUsername.PasswordHash)
		require.True(t, byUsername.Active)
		require.Nil(t, byUsername.LastLoginAt)

		byMobile, err := ur.GetByMobile(ctx, "09120000001")
		require.NoError(t, err)
		require.Equal(t, userID, byMobile.ID)

		_, err = ur.GetByUsername(ctx, "missing")
		require.ErrorIs(t, err, model.ErrNotFound)

		_, err = ur.GetByMobile(ctx, "09999999999")
		require.ErrorIs(t, err, model.ErrNotFound)

		company, err := ur.GetCompanyByUserID(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, companyID, company.ID)
		require.Equal(t, "Sazeh Gostar", company.Name)
		require.Equal(t, 2, company.StatusCode)

		_, err = ur.GetCompanyByUserID(ctx, uuid.New())
		require.ErrorIs(t, err, model.ErrNotFound)

		at := time.Now().UTC().Truncate(time.Second)
		require.NoError(t, ur.RecordLastLogin(ctx, userID, at))
		again, err := ur.GetByUsername(ctx, "contractor01")
		require.NoError(t, err)
		require.NotNil(t, again.LastLoginAt)
		require.Equal(t, at, again.LastLoginAt.UTC())
	})

	t.Run("fact_repository", func(t *testing.T) {
		fr := repo.NewFactRepository(conn)
		_, companyID := seedCompanyWithUser(ctx, t, conn, "contractor02", "09120000002")

		task, err := fr.AccountTask(ctx, companyID)
		require.NoError(t, err)
		require.Equal(t, model.TaskPending, task.Kind)

		_, err = conn.Exec(ctx,
			`INSERT INTO account_tasks (company_id, status, rejection_reason) VALUES ($1, $2, $3)`,
			companyID, string(model.TaskRejected), "incomplete documents")
		require.NoError(t, err)

		task, err = fr.AccountTask(ctx, companyID)
		require.NoError(t, err)
		require.Equal(t, model.TaskRejected, task.Kind)
		require.Equal(t, "incomplete documents", task.RejectionReason)

		participation, err := fr.Participation(ctx, companyID)
		require.NoError(t, err)
		require.Equal(t, model.Participation{}, participation)

		for i := 0; i < 3; i++ {
			_, err = conn.Exec(ctx,
				`INSERT INTO tender_participants (tender_id, company_id) VALUES ($1, $2)`,
				uuid.New(), companyID)
			require.NoError(t, err)
		}
		_, err = conn.Exec(ctx,
			`INSERT INTO inquiry_participants (inquiry_id, company_id) VALUES ($1, $2)`,
			uuid.New(), companyID)
		require.NoError(t, err)

		participation, err = fr.Participation(ctx, companyID)
		require.NoError(t, err)
		require.Equal(t, model.Participation{TenderCount: 3, InquiryCount: 1}, participation)
	})
}
