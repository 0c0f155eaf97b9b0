package commands_test

import (
	"testing"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, "boat-17", "engine overhaul", 6)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, "boat-17", cmd.BoatID())
	assert.Equal(t, "engine overhaul", cmd.Description())
	assert.Equal(t, 6, cmd.EstimatedDuration())
	require.NoError(t, cmd.Validate())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, "boat-17", "engine overhaul", 6)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_EmptyBoatID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "  ", "engine overhaul", 6)
	require.ErrorIs(t, err, commands.ErrBoatIDIsRequired)
}

func TestNewCreateOrderCommand_EmptyDescription(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "boat-17", "", 6)
	require.ErrorIs(t, err, commands.ErrDescriptionIsRequired)
}

func TestNewCreateOrderCommand_NegativeDuration(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "boat-17", "engine overhaul", -1)
	require.ErrorIs(t, err, commands.ErrEstimatedDurationIsNegative)
}

func TestNewCreateOrderCommand_ReportsAllErrors(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "", "", -1)
	require.ErrorIs(t, err, commands.ErrBoatIDIsRequired)
	require.ErrorIs(t, err, commands.ErrDescriptionIsRequired)
	require.ErrorIs(t, err, commands.ErrEstimatedDurationIsNegative)
}

func TestCreateOrderCommand_ZeroValueIsNotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
