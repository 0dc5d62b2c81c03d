package authz_test

import (
	"testing"

	"github.com/FlynntKnapp/planit-mini/internal/core/authz"
	"github.com/FlynntKnapp/planit-mini/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func membershipsFor(workspaceIDs ...string) authz.MembershipSet {
	rows := make([]domain.Membership, 0, len(workspaceIDs))
	for _, id := range workspaceIDs {
		rows = append(rows, domain.Membership{
			MembershipID: uuid.NewString(),
			UserID:       "u1",
			WorkspaceID:  id,
			Role:         domain.RoleViewer,
		})
	}
	return authz.NewMembershipSet(rows)
}

func TestVisibleSubset_AnonymousSeesNothing(t *testing.T) {
	assets := []domain.Asset{{AssetID: "a1", WorkspaceID: "w1"}}

	visible := authz.VisibleSubset(authz.Anonymous, membershipsFor("w1"), assets)

	assert.Empty(t, visible)
}

func TestVisibleSubset_StaffSeesEverythingUnchanged(t *testing.T) {
	staff := authz.Principal{UserID: "u1", Authenticated: true, IsStaff: true}
	assets := []domain.Asset{
		{AssetID: "a1", WorkspaceID: "w1"},
		{AssetID: "a2", WorkspaceID: "w2"},
	}

	visible := authz.VisibleSubset(staff, nil, assets)

	assert.Equal(t, assets, visible)
}

func TestVisibleSubset_FiltersToMemberWorkspaces(t *testing.T) {
	p := authz.Principal{UserID: "u1", Authenticated: true}
	assets := []domain.Asset{
		{AssetID: "a1", WorkspaceID: "w1"},
		{AssetID: "a2", WorkspaceID: "w2"},
		{AssetID: "a3", WorkspaceID: "w1"},
	}

	visible := authz.VisibleSubset(p, membershipsFor("w1"), assets)

	assert.Len(t, visible, 2)
	assert.Equal(t, "a1", visible[0].AssetID)
	assert.Equal(t, "a3", visible[1].AssetID)
}

func TestVisibleSubset_AnyRoleGrantsVisibility(t *testing.T) {
	p := authz.Principal{UserID: "u1", Authenticated: true}
	set := authz.NewMembershipSet([]domain.Membership{
		{MembershipID: uuid.NewString(), UserID: "u1", WorkspaceID: "w1", Role: domain.RoleViewer},
	})
	tasks := []domain.MaintenanceTask{{TaskID: "t1", WorkspaceID: "w1"}}

	visible := authz.VisibleSubset(p, set, tasks)

	assert.Len(t, visible, 1)
}

func TestVisibleSubset_ExcludesUnresolvableRecords(t *testing.T) {
	p := authz.Principal{UserID: "u1", Authenticated: true}
	orders := []domain.WorkOrder{
		{WorkOrderID: "o1", WorkspaceID: "w1"},
		{WorkOrderID: "o2"}, // no workspace, asset, or task reference
	}

	visible := authz.VisibleSubset(p, membershipsFor("w1"), orders)

	assert.Len(t, visible, 1)
	assert.Equal(t, "o1", visible[0].WorkOrderID)
}

func TestVisibleSubset_ResolvesWorkspaceThroughAsset(t *testing.T) {
	p := authz.Principal{UserID: "u1", Authenticated: true}
	orders := []domain.WorkOrder{
		{
			WorkOrderID: "o1",
			Asset:       &domain.Asset{AssetID: "a1", WorkspaceID: "w1"},
		},
	}

	visible := authz.VisibleSubset(p, membershipsFor("w1"), orders)

	assert.Len(t, visible, 1)
}

func TestVisibleSubset_CollapsesDuplicatesByIdentity(t *testing.T) {
	p := authz.Principal{UserID: "u1", Authenticated: true}
	assets := []domain.Asset{
		{AssetID: "a1", WorkspaceID: "w1"},
		{AssetID: "a1", WorkspaceID: "w1"},
		{AssetID: "a2", WorkspaceID: "w1"},
	}

	visible := authz.VisibleSubset(p, membershipsFor("w1"), assets)

	assert.Len(t, visible, 2)
	assert.Equal(t, "a1", visible[0].AssetID)
	assert.Equal(t, "a2", visible[1].AssetID)
}

func TestVisibleSubset_DeterministicRegardlessOfInputOrder(t *testing.T) {
	p := authz.Principal{UserID: "u1", Authenticated: true}
	set := membershipsFor("w1", "w2")
	forward := []domain.Asset{
		{AssetID: "a1", WorkspaceID: "w1"},
		{AssetID: "a2", WorkspaceID: "w2"},
	}
	reversed := []domain.Asset{forward[1], forward[0]}

	gotForward := authz.VisibleSubset(p, set, forward)
	gotReversed := authz.VisibleSubset(p, set, reversed)

	assert.ElementsMatch(t, gotForward, gotReversed)
}
