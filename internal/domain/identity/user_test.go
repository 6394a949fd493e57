package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with valid username and password", func(t *testing.T) {
		user, err := NewUser("testuser", "Password123", RoleSalesExecutive)

		require.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "testuser", user.Username)
		assert.NotEmpty(t, user.PasswordHash)
		assert.Equal(t, RoleSalesExecutive, user.Role)
		assert.Equal(t, UserStatusActive, user.Status)

		// Should have domain event
		events := user.GetDomainEvents()
		assert.Len(t, events, 1)
		_, ok := events[0].(*UserCreatedEvent)
		assert.True(t, ok)
	})

	t.Run("normalizes username to lowercase", func(t *testing.T) {
		user, err := NewUser("TestUser", "Password123", RoleAdmin)

		require.NoError(t, err)
		assert.Equal(t, "testuser", user.Username)
	})

	t.Run("trims username whitespace", func(t *testing.T) {
		user, err := NewUser("  testuser  ", "Password123", RoleAdmin)

		require.NoError(t, err)
		assert.Equal(t, "testuser", user.Username)
	})

	t.Run("fails with empty username", func(t *testing.T) {
		_, err := NewUser("", "Password123", RoleAdmin)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with short username", func(t *testing.T) {
		_, err := NewUser("ab", "Password123", RoleAdmin)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 3 characters")
	})

	t.Run("fails with invalid username characters", func(t *testing.T) {
		_, err := NewUser("test@user", "Password123", RoleAdmin)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only contain letters")
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser("testuser", "Pass1", RoleAdmin)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("fails with password without numbers", func(t *testing.T) {
		_, err := NewUser("testuser", "Passwords", RoleAdmin)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least one letter and one number")
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		_, err := NewUser("testuser", "Password123", Role("superuser"))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Unknown role")
	})
}

func TestRoleIsValid(t *testing.T) {
	for _, role := range AllRoles() {
		assert.True(t, role.IsValid(), "role %s should be valid", role)
	}
	assert.False(t, Role("manager").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestUserVerifyPassword(t *testing.T) {
	user, err := NewUser("testuser", "Password123", RoleAccountant)
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("Password123"))
	assert.False(t, user.VerifyPassword("WrongPassword1"))
	assert.False(t, user.VerifyPassword(""))
}

func TestUserChangePassword(t *testing.T) {
	t.Run("changes password with correct old password", func(t *testing.T) {
		user, err := NewUser("testuser", "Password123", RoleAccountant)
		require.NoError(t, err)
		oldVersion := user.Version

		err = user.ChangePassword("Password123", "NewPassword456")

		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("NewPassword456"))
		assert.False(t, user.VerifyPassword("Password123"))
		assert.Greater(t, user.Version, oldVersion)
	})

	t.Run("fails with wrong old password", func(t *testing.T) {
		user, err := NewUser("testuser", "Password123", RoleAccountant)
		require.NoError(t, err)

		err = user.ChangePassword("WrongPassword1", "NewPassword456")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "incorrect")
	})

	t.Run("fails with weak new password", func(t *testing.T) {
		user, err := NewUser("testuser", "Password123", RoleAccountant)
		require.NoError(t, err)

		err = user.ChangePassword("Password123", "short")

		assert.Error(t, err)
	})
}

func TestUserChangeRole(t *testing.T) {
	t.Run("changes role and publishes event", func(t *testing.T) {
		user, err := NewUser("testuser", "Password123", RoleSalesExecutive)
		require.NoError(t, err)
		user.ClearDomainEvents()

		err = user.ChangeRole(RoleSalesManager)

		require.NoError(t, err)
		assert.Equal(t, RoleSalesManager, user.Role)

		events := user.GetDomainEvents()
		require.Len(t, events, 1)
		evt, ok := events[0].(*UserRoleChangedEvent)
		require.True(t, ok)
		assert.Equal(t, RoleSalesExecutive, evt.OldRole)
		assert.Equal(t, RoleSalesManager, evt.NewRole)
	})

	t.Run("same role is a no-op", func(t *testing.T) {
		user, err := NewUser("testuser", "Password123", RoleSalesExecutive)
		require.NoError(t, err)
		user.ClearDomainEvents()
		oldVersion := user.Version

		err = user.ChangeRole(RoleSalesExecutive)

		require.NoError(t, err)
		assert.Equal(t, oldVersion, user.Version)
		assert.Empty(t, user.GetDomainEvents())
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		user, err := NewUser("testuser", "Password123", RoleSalesExecutive)
		require.NoError(t, err)

		err = user.ChangeRole(Role("owner"))

		assert.Error(t, err)
	})
}

func TestUserEmailAndProfile(t *testing.T) {
	user, err := NewUser("testuser", "Password123", RoleEngineer)
	require.NoError(t, err)

	t.Run("normalizes email to lowercase", func(t *testing.T) {
		err := user.SetEmail("Test.User@Example.COM")
		require.NoError(t, err)
		assert.Equal(t, "test.user@example.com", user.Email)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		err := user.SetEmail("not-an-email")
		assert.Error(t, err)
	})

	t.Run("sets full name trimmed", func(t *testing.T) {
		err := user.SetFullName("  Jane Doe  ")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", user.FullName)
	})

	t.Run("sets phone", func(t *testing.T) {
		err := user.SetPhone("+1-555-0100")
		require.NoError(t, err)
		assert.Equal(t, "+1-555-0100", user.Phone)
	})
}

func TestUserActivation(t *testing.T) {
	user, err := NewUser("testuser", "Password123", RoleClient)
	require.NoError(t, err)

	assert.True(t, user.IsActive())
	assert.True(t, user.CanLogin())

	err = user.Deactivate()
	require.NoError(t, err)
	assert.False(t, user.IsActive())
	assert.False(t, user.CanLogin())

	// Deactivating twice fails
	err = user.Deactivate()
	assert.Error(t, err)

	err = user.Activate()
	require.NoError(t, err)
	assert.True(t, user.CanLogin())

	// Activating twice fails
	err = user.Activate()
	assert.Error(t, err)
}

func TestUserRecordLoginSuccess(t *testing.T) {
	user, err := NewUser("testuser", "Password123", RoleAdmin)
	require.NoError(t, err)
	require.Nil(t, user.LastLoginAt)

	user.RecordLoginSuccess()

	assert.NotNil(t, user.LastLoginAt)
}
