package crm

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCallLog(t *testing.T) {
	leadID := uuid.New()
	clientID := uuid.New()
	createdBy := uuid.New()

	t.Run("creates call log for a lead", func(t *testing.T) {
		log, err := NewCallLog(&leadID, nil, CallTypeCall, "Intro call", createdBy)

		require.NoError(t, err)
		require.NotNil(t, log.LeadID)
		assert.Equal(t, leadID, *log.LeadID)
		assert.Nil(t, log.ClientID)
		assert.False(t, log.Completed)

		events := log.GetDomainEvents()
		require.Len(t, events, 1)
		_, ok := events[0].(*CallLogCreatedEvent)
		assert.True(t, ok)
	})

	t.Run("creates call log for a client", func(t *testing.T) {
		log, err := NewCallLog(nil, &clientID, CallTypeMeeting, "Quarterly review", createdBy)

		require.NoError(t, err)
		assert.Nil(t, log.LeadID)
		require.NotNil(t, log.ClientID)
		assert.Equal(t, clientID, *log.ClientID)
	})

	t.Run("fails with both lead and client", func(t *testing.T) {
		_, err := NewCallLog(&leadID, &clientID, CallTypeCall, "Subject", createdBy)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one")
	})

	t.Run("fails with neither lead nor client", func(t *testing.T) {
		_, err := NewCallLog(nil, nil, CallTypeCall, "Subject", createdBy)

		assert.Error(t, err)
	})

	t.Run("nil uuid does not count as a target", func(t *testing.T) {
		nilID := uuid.Nil
		_, err := NewCallLog(&nilID, nil, CallTypeCall, "Subject", createdBy)

		assert.Error(t, err)
	})

	t.Run("fails with invalid type", func(t *testing.T) {
		_, err := NewCallLog(&leadID, nil, CallType("fax"), "Subject", createdBy)

		assert.Error(t, err)
	})

	t.Run("fails with empty subject", func(t *testing.T) {
		_, err := NewCallLog(&leadID, nil, CallTypeEmail, "  ", createdBy)

		assert.Error(t, err)
	})
}

func TestCallLogMarkCompleted(t *testing.T) {
	leadID := uuid.New()
	log, err := NewCallLog(&leadID, nil, CallTypeCall, "Follow up", uuid.New())
	require.NoError(t, err)

	require.NoError(t, log.MarkCompleted())
	assert.True(t, log.Completed)

	assert.Error(t, log.MarkCompleted())
}

func TestCallLogReschedule(t *testing.T) {
	leadID := uuid.New()
	log, err := NewCallLog(&leadID, nil, CallTypeCall, "Follow up", uuid.New())
	require.NoError(t, err)

	when := time.Now().Add(48 * time.Hour)
	require.NoError(t, log.Reschedule(when))
	require.NotNil(t, log.ScheduledFor)
	assert.Equal(t, when, *log.ScheduledFor)

	require.NoError(t, log.MarkCompleted())
	assert.Error(t, log.Reschedule(when.Add(time.Hour)))
}

func TestCallLogUpdate(t *testing.T) {
	leadID := uuid.New()
	log, err := NewCallLog(&leadID, nil, CallTypeCall, "Follow up", uuid.New())
	require.NoError(t, err)

	require.NoError(t, log.Update(CallTypeNote, "Left voicemail", "will retry tomorrow"))
	assert.Equal(t, CallTypeNote, log.Type)
	assert.Equal(t, "Left voicemail", log.Subject)
	assert.Equal(t, "will retry tomorrow", log.Notes)

	assert.Error(t, log.Update(CallTypeNote, "", ""))
}
