package domain_test

import (
	"testing"

	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestWorkOrderOwningWorkspaceID(t *testing.T) {
	t.Run("direct workspace reference wins", func(t *testing.T) {
		order := domain.WorkOrder{
			WorkspaceID: "w-direct",
			Asset:       &domain.Asset{AssetID: "a1", WorkspaceID: "w-asset"},
		}
		id, ok := order.OwningWorkspaceID()
		assert.True(t, ok)
		assert.Equal(t, "w-direct", id)
	})

	t.Run("falls back to asset workspace", func(t *testing.T) {
		order := domain.WorkOrder{
			Asset: &domain.Asset{AssetID: "a1", WorkspaceID: "w-asset"},
			Task:  &domain.MaintenanceTask{TaskID: "t1", WorkspaceID: "w-task"},
		}
		id, ok := order.OwningWorkspaceID()
		assert.True(t, ok)
		assert.Equal(t, "w-asset", id)
	})

	t.Run("falls back to task workspace when asset has none", func(t *testing.T) {
		order := domain.WorkOrder{
			Asset: &domain.Asset{AssetID: "a1"},
			Task:  &domain.MaintenanceTask{TaskID: "t1", WorkspaceID: "w-task"},
		}
		id, ok := order.OwningWorkspaceID()
		assert.True(t, ok)
		assert.Equal(t, "w-task", id)
	})

	t.Run("unresolvable is a value, not an error", func(t *testing.T) {
		order := domain.WorkOrder{WorkOrderID: "o1"}
		id, ok := order.OwningWorkspaceID()
		assert.False(t, ok)
		assert.Empty(t, id)
	})
}

func TestActivityInstanceOwningWorkspaceID(t *testing.T) {
	t.Run("direct workspace reference", func(t *testing.T) {
		activity := domain.ActivityInstance{WorkspaceID: "w1"}
		id, ok := activity.OwningWorkspaceID()
		assert.True(t, ok)
		assert.Equal(t, "w1", id)
	})

	t.Run("derived through asset", func(t *testing.T) {
		activity := domain.ActivityInstance{
			Asset: &domain.Asset{AssetID: "a1", WorkspaceID: "w1"},
		}
		id, ok := activity.OwningWorkspaceID()
		assert.True(t, ok)
		assert.Equal(t, "w1", id)
	})

	t.Run("no recursive walk past the asset", func(t *testing.T) {
		activity := domain.ActivityInstance{
			Asset: &domain.Asset{AssetID: "a1"},
		}
		_, ok := activity.OwningWorkspaceID()
		assert.False(t, ok)
	})
}

func TestWorkspaceNeverResolves(t *testing.T) {
	workspace := domain.Workspace{WorkspaceID: "w1"}
	_, ok := workspace.OwningWorkspaceID()
	assert.False(t, ok)
}

func TestCatalogRecordsNeverResolve(t *testing.T) {
	_, ok := domain.FormFactor{FormFactorID: "ff1"}.OwningWorkspaceID()
	assert.False(t, ok)
	_, ok = domain.OS{OSID: "os1"}.OwningWorkspaceID()
	assert.False(t, ok)
	_, ok = domain.Application{ApplicationID: "app1"}.OwningWorkspaceID()
	assert.False(t, ok)
}

func TestValidWorkOrderStatus(t *testing.T) {
	assert.True(t, domain.ValidWorkOrderStatus(domain.StatusOpen))
	assert.True(t, domain.ValidWorkOrderStatus(domain.StatusDone))
	assert.True(t, domain.ValidWorkOrderStatus(domain.StatusCancelled))
	assert.False(t, domain.ValidWorkOrderStatus("paused"))
}

func TestValidActivityKind(t *testing.T) {
	assert.True(t, domain.ValidActivityKind(domain.ActivityChecked))
	assert.True(t, domain.ValidActivityKind(domain.ActivityPatched))
	assert.True(t, domain.ValidActivityKind(domain.ActivityBackupVerified))
	assert.False(t, domain.ValidActivityKind("rebooted"))
}
