package crm

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("creates client", func(t *testing.T) {
		client, err := NewClient("Globex Inc", "Hank Scorpio")

		require.NoError(t, err)
		assert.Equal(t, "Globex Inc", client.CompanyName)
		assert.Equal(t, "Hank Scorpio", client.ContactPerson)
		assert.Nil(t, client.AccountManager)

		events := client.GetDomainEvents()
		require.Len(t, events, 1)
		_, ok := events[0].(*ClientCreatedEvent)
		assert.True(t, ok)
	})

	t.Run("fails with empty company name", func(t *testing.T) {
		_, err := NewClient("", "Hank Scorpio")
		assert.Error(t, err)
	})

	t.Run("fails with empty contact person", func(t *testing.T) {
		_, err := NewClient("Globex Inc", "  ")
		assert.Error(t, err)
	})
}

func TestClientUpdate(t *testing.T) {
	client, err := NewClient("Globex Inc", "Hank Scorpio")
	require.NoError(t, err)
	oldVersion := client.Version

	err = client.Update("Globex International", "Frank Grimes", "Frank@Globex.COM",
		"+1-555-0200", "742 Evergreen Terrace", "Springfield", "USA", "TAX-123")

	require.NoError(t, err)
	assert.Equal(t, "Globex International", client.CompanyName)
	assert.Equal(t, "frank@globex.com", client.Email)
	assert.Equal(t, "Springfield", client.City)
	assert.Equal(t, "TAX-123", client.TaxID)
	assert.Greater(t, client.Version, oldVersion)
}

func TestClientSetAccountManager(t *testing.T) {
	client, err := NewClient("Globex Inc", "Hank Scorpio")
	require.NoError(t, err)

	managerID := uuid.New()
	require.NoError(t, client.SetAccountManager(managerID))
	require.NotNil(t, client.AccountManager)
	assert.Equal(t, managerID, *client.AccountManager)

	assert.Error(t, client.SetAccountManager(uuid.Nil))
}
