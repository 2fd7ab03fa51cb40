package pages

import (
	"bytes"
	"context"
	"testing"

	"barangay_portal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminSidebarNotificationsLink(t *testing.T) {
	admin := &models.StaffAdmin{
		Username:  "admin1",
		Role:      models.RoleAdmin,
		FirstName: "Ana",
		LastName:  "Reyes",
	}

	var buf bytes.Buffer
	component := AdminDashboard(AdminDashboardView{Admin: admin})
	require.NoError(t, component.Render(context.Background(), &buf))

	// Admin notifications are served from the shared staff surface
	html := buf.String()
	assert.Contains(t, html, `href="/staff/notifications"`)
	assert.NotContains(t, html, `href="/admin/notifications"`)
}
