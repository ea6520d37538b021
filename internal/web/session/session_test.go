package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestData_WriteRead(t *testing.T) {
	Init(nil)

	id := GenerateSessionID()
	assert.Len(t, id, 43)
	assert.NotEqual(t, id, GenerateSessionID())

	in := &Data{UserID: 7, Username: "admin", LoggedInAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, in.Write(id, time.Minute))

	out := new(Data)
	require.NoError(t, out.Read(id))
	assert.Equal(t, in, out)
	assert.True(t, out.IsAuthenticated())

	require.NoError(t, Destroy(id))
	require.ErrorIs(t, new(Data).Read(id), ErrNoSession)
	require.ErrorIs(t, new(Data).Read(""), ErrNoSession)
}

func TestData_IsAuthenticated(t *testing.T) {
	var nilData *Data

	assert.False(t, nilData.IsAuthenticated())
	assert.False(t, (&Data{}).IsAuthenticated())
}
