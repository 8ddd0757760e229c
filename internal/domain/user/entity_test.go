//go:build unit

package user_test

import (
	"testing"

	"salon-scheduler/internal/domain/user"
	"salon-scheduler/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreUnexported(user.User{}),
	cmpopts.EquateEmpty(),
}

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestUser(t *testing.T) {
	t.Run("builds an active user", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		email, _ := user.NewEmail("test@example.com")
		role, _ := user.NewRole("admin")
		salonID := uuid.New()
		expected := user.NewUser(email, "hashed_password", role, &salonID)

		if diff := cmp.Diff(expected, actual, cmpOpts...); diff != "" {
			t.Errorf("User mismatch (-want +got):\n%s", diff)
		}

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.True(t, actual.IsActive())
		assert.Nil(t, actual.LastLogin())
	})

	t.Run("email validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "valid email",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("valid@example.com") },
			},
			{
				name:   "empty email",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "missing domain",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalid-email") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "missing at sign",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalidemail.com") },
				errIs:  user.ErrInvalidEmail,
			},
		})
	})

	t.Run("role validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "admin role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("admin") },
			},
			{
				name:   "manager role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("manager") },
			},
			{
				name:   "receptionist role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("receptionist") },
			},
			{
				name:   "stylist role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("stylist") },
			},
			{
				name:   "unknown role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("janitor") },
				errIs:  user.ErrInvalidRole,
			},
			{
				name:   "empty role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("") },
				errIs:  user.ErrInvalidRole,
			},
		})
	})

	t.Run("salon binding", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name: "bound to a salon",
				mutate: func(b *builder.UserBuilder) {
					salonID := uuid.New()
					b.WithSalonID(&salonID)
				},
			},
			{
				name:   "admin without a salon",
				mutate: func(b *builder.UserBuilder) { b.WithoutSalon() },
			},
		})
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
